// Package frontend implements FrontendNotifyService: the end-user-facing
// gRPC surface spec §4.7 describes, built against the connection registry,
// cache directory, broker gateway, record store, and identity client that
// cmd/server/main.go wires together.
package frontend

import (
	"context"

	"github.com/arda-labs/notify-core/internal/broker"
	"github.com/arda-labs/notify-core/internal/cache"
	"github.com/arda-labs/notify-core/internal/domain"
	"github.com/arda-labs/notify-core/internal/identity"
	"github.com/arda-labs/notify-core/internal/registry"
	"github.com/arda-labs/notify-core/internal/rpc"
	"github.com/arda-labs/notify-core/internal/store"
	"github.com/arda-labs/notify-core/internal/template"
	notifyv1 "github.com/arda-labs/notify-core/proto/notify/v1"
)

// Forwarder dials a peer pod's FrontendNotifyService.ForwardNotify.
type Forwarder interface {
	ForwardNotify(ctx context.Context, podAddr string, clientID, userID int64, n domain.Notify) error
}

// Server implements notifyv1.FrontendNotifyServiceServer.
type Server struct {
	notifyv1.UnimplementedFrontendNotifyServiceServer

	registry *registry.FrontendRegistry
	cache    *cache.Directory
	gw       *broker.Gateway
	store    store.Store
	idClient *identity.Client
	forward  Forwarder
	selfAddr string
}

func New(reg *registry.FrontendRegistry, cacheDir *cache.Directory, gw *broker.Gateway, st store.Store, idClient *identity.Client, forward Forwarder, selfAddr string) *Server {
	return &Server{registry: reg, cache: cacheDir, gw: gw, store: st, idClient: idClient, forward: forward, selfAddr: selfAddr}
}

// CreateConnection allocates the single-slot outbound channel, registers it
// under (client_id, user_id) replacing any prior entry, writes the cache
// directory entry, and streams until the client disconnects or the channel
// is closed by a concurrent CloseConnection.
func (s *Server) CreateConnection(req *notifyv1.CreateConnectionRequest, stream notifyv1.FrontendNotifyService_CreateConnectionServer) error {
	ctx := stream.Context()
	key := registry.Key{ClientID: req.ClientId, UserID: req.UserId}
	ch := s.registry.Register(key)

	if err := s.cache.SaveUserLocation(ctx, req.UserId, s.selfAddr); err != nil {
		return rpc.StatusFromError(domain.NewInternalError("save user location", err))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case n, ok := <-ch:
			if !ok {
				return nil
			}
			if err := stream.Send(rpc.ReceiverFromNotify(n)); err != nil {
				return rpc.StatusFromError(domain.NewConnectionError("stream send", err))
			}
		}
	}
}

// CloseConnection drops the registry entry and evicts the cache directory
// entry.
func (s *Server) CloseConnection(ctx context.Context, req *notifyv1.CloseConnectionRequest) (*notifyv1.CloseConnectionResponse, error) {
	key := registry.Key{ClientID: req.ClientId, UserID: req.UserId}
	s.registry.Unregister(key)
	if err := s.cache.RemoveUserLocation(ctx, req.UserId); err != nil {
		return nil, rpc.StatusFromError(domain.NewInternalError("remove user location", err))
	}
	return &notifyv1.CloseConnectionResponse{}, nil
}

// SystemToFrontendUser verifies the event exists for this tenant on the
// Frontend platform, fetches the user profile, loads every "on" template
// for (client_id, event, language), and publishes one SingleNotifyModel
// per template. A zero (unset) language is treated as Jp.
func (s *Server) SystemToFrontendUser(ctx context.Context, req *notifyv1.SystemToFrontendUserRequest) (*notifyv1.SystemToFrontendUserResponse, error) {
	notifyEvent, err := domain.ParseNotifyEvent(int(req.NotifyEvent))
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}

	event, err := s.store.GetEvent(ctx, req.ClientId, int64(notifyEvent))
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}
	if event.Platform != domain.PlatformFrontend {
		return nil, rpc.StatusFromError(domain.NewArgumentError("event is not registered for the Frontend platform"))
	}

	profile, err := s.idClient.GetUserProfile(ctx, req.ClientId, req.UserId)
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}

	lang := domain.Language(req.Language)
	if lang == domain.LanguageUsEn {
		lang = domain.LanguageJp
	}
	templates, err := s.store.ListOnTemplates(ctx, req.ClientId, event.ID, lang, event.NotifyTypes)
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}

	contacts, err := s.idClient.GetEmailAndPhoneByUserIDs(ctx, req.ClientId, []int64{req.UserId})
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}
	var email, phone *string
	if len(contacts) > 0 {
		email, phone = contacts[0].Email, contacts[0].Phone
	}

	for _, tmpl := range templates {
		title, content := template.Fill(tmpl.Title, tmpl.Content, profile, req.KeyMap)
		model := domain.SingleNotifyModel{
			ClientID: req.ClientId, UserID: req.UserId, SenderID: 0, SenderAccount: "System",
			NotifyType: tmpl.NotifyType, NotifyLevel: domain.NotifyLevelSystem,
			Title: title, Content: content, ReceiveAddress: domain.GetReceiveAddressOpt(tmpl.NotifyType, email, phone),
			KeyMap: req.KeyMap, ClientEventID: event.ID,
		}
		if err := s.gw.PublishSingle(ctx, model); err != nil {
			return nil, rpc.StatusFromError(err)
		}
	}
	return &notifyv1.SystemToFrontendUserResponse{}, nil
}

// SendMessageInApp looks up the recipient's pod in the cache directory and
// pushes locally or forwards to the owning peer; a recipient with no cache
// entry is offline and the call is a no-op. It is not part of the gRPC
// service and has no caller in this module; the single-notify worker does
// the same routing in its own dispatchInApp.
func (s *Server) SendMessageInApp(ctx context.Context, clientID, userID, notifyID int64, level domain.NotifyLevel, title, content string) error {
	podAddr, ok, err := s.cache.GetUserLocation(ctx, userID)
	if err != nil {
		return rpc.StatusFromError(domain.NewInternalError("cache lookup", err))
	}
	if !ok {
		return nil
	}

	n := domain.Notify{NotifyID: notifyID, NotifyLevel: level, Title: title, Content: content, NotifyStatus: domain.NotifyStatusUnread}
	key := registry.Key{ClientID: clientID, UserID: userID}

	if podAddr == s.selfAddr {
		if err := s.registry.Send(key, n); err != nil {
			return rpc.StatusFromError(err)
		}
		return nil
	}
	if err := s.forward.ForwardNotify(ctx, podAddr, clientID, userID, n); err != nil {
		return rpc.StatusFromError(err)
	}
	return nil
}

// ForwardNotify is invoked by a peer pod holding the canonical message;
// this pod pushes it onto its own local connection, if any. On failure the
// cache entry is evicted so the caller's state converges through absence.
func (s *Server) ForwardNotify(ctx context.Context, req *notifyv1.ForwardNotifyRequest) (*notifyv1.ForwardNotifyResponse, error) {
	key := registry.Key{ClientID: req.ClientId, UserID: req.UserId}
	n := rpc.ProtoToNotify(req.Notify)
	if err := s.registry.Send(key, n); err != nil {
		s.registry.Remove(key)
		_ = s.cache.RemoveUserLocation(ctx, req.UserId)
		return nil, rpc.StatusFromError(err)
	}
	return &notifyv1.ForwardNotifyResponse{}, nil
}

// GetNotifyRecords returns a paginated, optionally status/level-filtered
// view of the user's InApp records, plus the current unread count.
func (s *Server) GetNotifyRecords(ctx context.Context, req *notifyv1.GetNotifyRecordsRequest) (*notifyv1.GetNotifyRecordsResponse, error) {
	filter := store.NotifyRecordFilter{Page: int(req.NowPage)}
	if req.NotifyStatus != 0 {
		status := domain.NotifyStatus(req.NotifyStatus)
		filter.Status = &status
	}
	if req.NotifyLevel != 0 {
		level := domain.NotifyLevel(req.NotifyLevel)
		filter.Level = &level
	}

	records, err := s.store.ListNotifyRecords(ctx, req.ClientId, req.UserId, filter)
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}
	unread, err := s.store.CountUnread(ctx, req.ClientId, req.UserId)
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}
	return &notifyv1.GetNotifyRecordsResponse{Records: rpc.NotifyRecordsToProto(records), UnreadCount: int32(unread)}, nil
}

// UpdateNotifyRecords bulk-updates status for the given id set, scoped to
// one (client_id, user_id).
func (s *Server) UpdateNotifyRecords(ctx context.Context, req *notifyv1.UpdateNotifyRecordsRequest) (*notifyv1.UpdateNotifyRecordsResponse, error) {
	newStatus, err := domain.ParseNotifyStatus(int(req.NotifyStatus))
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}
	records, err := s.store.UpdateNotifyRecordsStatus(ctx, tx, req.ClientId, req.UserId, newStatus, req.NotifyIds)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, rpc.StatusFromError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, rpc.StatusFromError(err)
	}
	return &notifyv1.UpdateNotifyRecordsResponse{Records: rpc.NotifyRecordsToProto(records)}, nil
}

// AllRead marks every non-Delete InApp record read, optionally scoped to one
// level.
func (s *Server) AllRead(ctx context.Context, req *notifyv1.AllReadRequest) (*notifyv1.AllReadResponse, error) {
	var level *domain.NotifyLevel
	if req.NotifyLevel != 0 {
		l := domain.NotifyLevel(req.NotifyLevel)
		level = &l
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}
	if err := s.store.UpdateAllRead(ctx, tx, req.ClientId, req.UserId, level); err != nil {
		_ = tx.Rollback(ctx)
		return nil, rpc.StatusFromError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, rpc.StatusFromError(err)
	}
	return &notifyv1.AllReadResponse{}, nil
}
