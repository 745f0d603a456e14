// Package peer implements cross-pod in-app delivery: when the cache
// directory says a user's live stream is held on a different pod, the
// owning pod's worker or RPC handler dials that pod directly and invokes
// its forwardNotify endpoint, per spec §4.7/§4.9. No connection pool is
// kept — each forward dials a fresh grpc.ClientConn and closes it, since
// forwards are rare relative to local in-process delivery.
package peer

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/arda-labs/notify-core/internal/domain"
	"github.com/arda-labs/notify-core/internal/rpc"
	notifyv1 "github.com/arda-labs/notify-core/proto/notify/v1"
)

const dialTimeout = 3 * time.Second

// Forwarder dials a peer pod's gRPC port per call. grpcMethod picks which
// service's forwardNotify to invoke, since the frontend and backstage
// services each expose their own (identically shaped) RPC.
type Forwarder struct {
	grpcMethod string
	port       int
}

// NewFrontendForwarder builds a Forwarder bound to FrontendNotifyService.
func NewFrontendForwarder(port int) *Forwarder {
	return &Forwarder{grpcMethod: "/notify.v1.FrontendNotifyService/ForwardNotify", port: port}
}

// NewBackstageForwarder builds a Forwarder bound to BackstageNotifyService.
func NewBackstageForwarder(port int) *Forwarder {
	return &Forwarder{grpcMethod: "/notify.v1.BackstageNotifyService/ForwardNotify", port: port}
}

// ForwardNotify dials podAddr, invokes forwardNotify, and closes the
// connection. Implements both internal/worker/singlenotify.Forwarder and
// the backstage fan-out's peer-forward dependency.
func (f *Forwarder) ForwardNotify(ctx context.Context, podAddr string, clientID, userID int64, n domain.Notify) error {
	return f.ForwardNotifyRoles(ctx, podAddr, clientID, userID, nil, n)
}

// ForwardNotifyRoles is the general form used by systemToBackstageUser's
// fan-out, which addresses a peer connection by role membership rather
// than a single user id.
func (f *Forwarder) ForwardNotifyRoles(ctx context.Context, podAddr string, clientID, userID int64, roleIDs []int64, n domain.Notify) error {
	callCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	target := fmt.Sprintf("%s:%d", podAddr, f.port)
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return domain.NewConnectionError("dial peer "+target, err)
	}
	defer conn.Close()

	req := &notifyv1.ForwardNotifyRequest{ClientId: clientID, UserId: userID, RoleIds: roleIDs, Notify: rpc.NotifyToProto(n)}
	resp := &notifyv1.ForwardNotifyResponse{}
	if err := conn.Invoke(callCtx, f.grpcMethod, req, resp); err != nil {
		return domain.NewConnectionError("forward notify to "+target, err)
	}
	return nil
}
