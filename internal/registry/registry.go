// Package registry is the in-memory connection directory spec §4.7/§4.8/§9
// describes: a concurrent map from (client_id, user_id) to a live outbound
// stream handle. It generalizes the teacher's internal/transport/http/
// sse_hub.go Hub — which already holds an RWMutex-guarded
// map[tenant]map[user][]*Client and already releases the lock before
// sending — from SSE clients to gRPC server-stream handles.
package registry

import (
	"sync"

	"github.com/arda-labs/notify-core/internal/domain"
)

// Key identifies one tenant/user pair's connection slot.
type Key struct {
	ClientID int64
	UserID   int64
}

// ErrNotConnected is returned by Send when no stream is registered for Key.
var ErrNotConnected = domain.NewDataNotFoundError("user connection not found")

// FrontendRegistry holds one single-slot outbound channel per connected
// frontend user.
type FrontendRegistry struct {
	mu    sync.RWMutex
	conns map[Key]chan domain.Notify
}

func NewFrontendRegistry() *FrontendRegistry {
	return &FrontendRegistry{conns: make(map[Key]chan domain.Notify)}
}

// Register allocates a single-slot buffered channel for key, replacing any
// prior entry (matching createConnection's "insert, replacing any prior
// entry" semantics).
func (r *FrontendRegistry) Register(key Key) <-chan domain.Notify {
	ch := make(chan domain.Notify, 1)
	r.mu.Lock()
	r.conns[key] = ch
	r.mu.Unlock()
	return ch
}

// Unregister removes key's channel, closing it so the stream handler's
// range loop exits.
func (r *FrontendRegistry) Unregister(key Key) {
	r.mu.Lock()
	ch, ok := r.conns[key]
	delete(r.conns, key)
	r.mu.Unlock()
	if ok {
		close(ch)
	}
}

// Send pushes n onto key's channel without blocking. The channel handle is
// copied out from under the read lock and the lock released before the
// send, so a slow consumer never blocks registry readers/writers (spec
// §5/§9); if the channel's buffer is full, Send returns an InternalError
// instead of waiting.
func (r *FrontendRegistry) Send(key Key, n domain.Notify) error {
	r.mu.RLock()
	ch, ok := r.conns[key]
	r.mu.RUnlock()
	if !ok {
		return ErrNotConnected
	}

	select {
	case ch <- n:
		return nil
	default:
		return domain.NewInternalError("stream buffer full", nil)
	}
}

// BackstageConn is one admin's connection state: its outbound channel plus
// the account name and role set recorded at createConnection time.
type BackstageConn struct {
	Ch      chan domain.Notify
	Account string
	RoleIDs []int64
}

// BackstageRegistry holds one connection per connected admin.
type BackstageRegistry struct {
	mu    sync.RWMutex
	conns map[Key]*BackstageConn
}

func NewBackstageRegistry() *BackstageRegistry {
	return &BackstageRegistry{conns: make(map[Key]*BackstageConn)}
}

func (r *BackstageRegistry) Register(key Key, account string, roleIDs []int64) <-chan domain.Notify {
	conn := &BackstageConn{Ch: make(chan domain.Notify, 1), Account: account, RoleIDs: roleIDs}
	r.mu.Lock()
	r.conns[key] = conn
	r.mu.Unlock()
	return conn.Ch
}

func (r *BackstageRegistry) Unregister(key Key) {
	r.mu.Lock()
	conn, ok := r.conns[key]
	delete(r.conns, key)
	r.mu.Unlock()
	if ok {
		close(conn.Ch)
	}
}

func (r *BackstageRegistry) Send(key Key, n domain.Notify) error {
	r.mu.RLock()
	conn, ok := r.conns[key]
	r.mu.RUnlock()
	if !ok {
		return ErrNotConnected
	}
	select {
	case conn.Ch <- n:
		return nil
	default:
		return domain.NewInternalError("stream buffer full", nil)
	}
}

// MatchingAdmins returns every connected admin belonging to clientID whose
// role set intersects roleIDs non-emptily, per systemToBackstageUser's
// fan-out filter. The returned slice is a snapshot copy made under the
// read lock; callers do I/O against it after the lock is released.
func (r *BackstageRegistry) MatchingAdmins(clientID int64, roleIDs []int64) []Key {
	wanted := make(map[int64]bool, len(roleIDs))
	for _, id := range roleIDs {
		wanted[id] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []Key
	for key, conn := range r.conns {
		if key.ClientID != clientID {
			continue
		}
		if hasCommonRole(conn.RoleIDs, wanted) {
			matches = append(matches, key)
		}
	}
	return matches
}

// Remove drops key's entry without closing the channel, used when a send
// fails against a stale connection (the goroutine holding it has already
// gone away).
func (r *BackstageRegistry) Remove(key Key) {
	r.mu.Lock()
	delete(r.conns, key)
	r.mu.Unlock()
}

// Remove is FrontendRegistry's counterpart, used by the InApp dispatch
// path on a failed local push (spec §4.7 forwardNotify: "on local-push
// failure, delete the cache entry").
func (r *FrontendRegistry) Remove(key Key) {
	r.mu.Lock()
	delete(r.conns, key)
	r.mu.Unlock()
}

func hasCommonRole(have []int64, wanted map[int64]bool) bool {
	for _, id := range have {
		if wanted[id] {
			return true
		}
	}
	return false
}
