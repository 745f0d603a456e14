// Package backstage implements BackstageNotifyService: the admin-facing
// gRPC surface spec §4.8 describes.
package backstage

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arda-labs/notify-core/internal/broker"
	"github.com/arda-labs/notify-core/internal/cache"
	"github.com/arda-labs/notify-core/internal/domain"
	"github.com/arda-labs/notify-core/internal/identity"
	"github.com/arda-labs/notify-core/internal/poddiscovery"
	"github.com/arda-labs/notify-core/internal/registry"
	"github.com/arda-labs/notify-core/internal/rpc"
	"github.com/arda-labs/notify-core/internal/snowflake"
	"github.com/arda-labs/notify-core/internal/store"
	"github.com/arda-labs/notify-core/internal/template"
	"github.com/arda-labs/notify-core/internal/tenantmap"
	notifyv1 "github.com/arda-labs/notify-core/proto/notify/v1"
)

// Forwarder dials a peer pod's BackstageNotifyService.ForwardNotify. Unlike
// the frontend surface, a backstage forward addresses recipients by role
// set rather than a single user id.
type Forwarder interface {
	ForwardNotifyRoles(ctx context.Context, podAddr string, clientID, userID int64, roleIDs []int64, n domain.Notify) error
}

// Server implements notifyv1.BackstageNotifyServiceServer.
type Server struct {
	notifyv1.UnimplementedBackstageNotifyServiceServer

	registry  *registry.BackstageRegistry
	cache     *cache.Directory
	gw        *broker.Gateway
	store     store.Store
	idClient  *identity.Client
	tenantMap *tenantmap.Client
	pods      *poddiscovery.Client
	forward   Forwarder
	ids       *snowflake.Generator
	selfAddr  string
}

func New(
	reg *registry.BackstageRegistry, cacheDir *cache.Directory, gw *broker.Gateway, st store.Store,
	idClient *identity.Client, tenantMap *tenantmap.Client, pods *poddiscovery.Client,
	forward Forwarder, ids *snowflake.Generator, selfAddr string,
) *Server {
	return &Server{
		registry: reg, cache: cacheDir, gw: gw, store: st, idClient: idClient,
		tenantMap: tenantMap, pods: pods, forward: forward, ids: ids, selfAddr: selfAddr,
	}
}

// CreateConnection registers the admin's connection, also recording the
// account name fetched from the identity service and the role set carried
// by req, and streams pushes until the client disconnects.
func (s *Server) CreateConnection(req *notifyv1.CreateConnectionRequest, stream notifyv1.BackstageNotifyService_CreateConnectionServer) error {
	ctx := stream.Context()
	account, err := s.idClient.GetAccountByUserID(ctx, req.ClientId, req.UserId)
	if err != nil {
		return rpc.StatusFromError(err)
	}

	key := registry.Key{ClientID: req.ClientId, UserID: req.UserId}
	ch := s.registry.Register(key, account, req.RoleIds)

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

func (s *Server) CloseConnection(ctx context.Context, req *notifyv1.CloseConnectionRequest) (*notifyv1.CloseConnectionResponse, error) {
	key := registry.Key{ClientID: req.ClientId, UserID: req.UserId}
	s.registry.Unregister(key)
	if err := s.cache.RemoveUserLocation(ctx, req.UserId); err != nil {
		return nil, rpc.StatusFromError(err)
	}
	return &notifyv1.CloseConnectionResponse{}, nil
}

// SystemToBackstageUser translates the initiating frontend tenant to its
// paired backstage tenant, verifies the mapped event, materializes the
// single backstage InApp template against the initiator's profile, and
// concurrently (a) fans out to every matching locally-connected admin and
// (b) forwards the same payload to every other pod in the deployment.
// Both halves are best-effort: a peer failure is collected as a warning,
// never rolled back against the local writes.
func (s *Server) SystemToBackstageUser(ctx context.Context, req *notifyv1.SystemToBackstageUserRequest) (*notifyv1.SystemToBackstageUserResponse, error) {
	backstageEvent, err := domain.ParseNotifyEvent(int(req.BackstageEvent))
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}

	backstageClientID, err := s.tenantMap.GetBackstageClient(ctx, req.InitiatorClientId)
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}

	event, err := s.store.GetEvent(ctx, backstageClientID, int64(backstageEvent))
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}
	if event.Platform != domain.PlatformBackstage {
		return nil, rpc.StatusFromError(domain.NewArgumentError("event is not registered for the Backstage platform"))
	}

	profile, err := s.idClient.GetUserProfile(ctx, req.InitiatorClientId, req.InitiatorUserId)
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}

	tmpl, err := s.store.GetTemplate(ctx, backstageClientID, event.ID, domain.NotifyTypeInApp, domain.LanguageJp)
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}
	title, content := template.Fill(tmpl.Title, tmpl.Content, profile, req.KeyMap)

	var warnings []string
	var mu warningCollector
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.fanOutLocal(gctx, backstageClientID, event.ID, req.RoleIds, title, content)
	})
	g.Go(func() error {
		msgs := s.fanOutPeers(gctx, backstageClientID, req.RoleIds, title, content)
		mu.add(msgs)
		return nil
	})
	if err := g.Wait(); err != nil {
		warnings = append(warnings, err.Error())
	}
	warnings = append(warnings, mu.warnings...)

	return &notifyv1.SystemToBackstageUserResponse{PeerWarnings: warnings}, nil
}

type warningCollector struct{ warnings []string }

func (w *warningCollector) add(msgs []string) { w.warnings = append(w.warnings, msgs...) }

// fanOutLocal inserts one NotifyRecord per matching connected admin inside
// one transaction, then pushes to each admin's channel after commit.
func (s *Server) fanOutLocal(ctx context.Context, backstageClientID int64, eventID int64, roleIDs []int64, title, content string) error {
	matches := s.registry.MatchingAdmins(backstageClientID, roleIDs)
	if len(matches) == 0 {
		return nil
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}

	type push struct {
		key registry.Key
		n   domain.Notify
	}
	pushes := make([]push, 0, len(matches))

	for _, key := range matches {
		id := s.ids.Next()
		record := &domain.NotifyRecord{
			ID: id, ClientID: key.ClientID, UserID: key.UserID, ClientNotifyEventID: eventID,
			NotifyType: domain.NotifyTypeInApp, NotifyLevel: domain.NotifyLevelSystem,
			NotifyStatus: domain.NotifyStatusUnread, Title: title, Content: content,
		}
		if err := s.store.InsertNotifyRecord(ctx, tx, record); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
		pushes = append(pushes, push{key: key, n: domain.Notify{
			NotifyID: id, NotifyLevel: domain.NotifyLevelSystem, Title: title, Content: content,
			CreateAt: record.CreateAt, NotifyStatus: domain.NotifyStatusUnread,
		}})
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	for _, p := range pushes {
		if err := s.registry.Send(p.key, p.n); err != nil {
			s.registry.Remove(p.key)
		}
	}
	return nil
}

// fanOutPeers forwards the same payload to every other pod in the
// deployment, addressed by role membership rather than a single user, and
// returns a human-readable warning per failed peer.
func (s *Server) fanOutPeers(ctx context.Context, backstageClientID int64, roleIDs []int64, title, content string) []string {
	peers := s.pods.Peers(ctx)
	if len(peers) == 0 {
		return nil
	}

	n := domain.Notify{NotifyLevel: domain.NotifyLevelSystem, Title: title, Content: content, NotifyStatus: domain.NotifyStatusUnread}

	var warnings []string
	for _, podAddr := range peers {
		if err := s.forward.ForwardNotifyRoles(ctx, podAddr, backstageClientID, 0, roleIDs, n); err != nil {
			warnings = append(warnings, "peer "+podAddr+": "+err.Error())
		}
	}
	return warnings
}

// ForwardNotify is invoked by a peer pod; this pod pushes onto its own
// local connection, matched by role set rather than a single user id.
func (s *Server) ForwardNotify(ctx context.Context, req *notifyv1.ForwardNotifyRequest) (*notifyv1.ForwardNotifyResponse, error) {
	matches := s.registry.MatchingAdmins(req.ClientId, req.RoleIds)
	n := rpc.ProtoToNotify(req.Notify)
	for _, key := range matches {
		if err := s.registry.Send(key, n); err != nil {
			s.registry.Remove(key)
		}
	}
	return &notifyv1.ForwardNotifyResponse{}, nil
}

// BackstageSendToUser resolves the recipient set by exclusive choice
// (all users, then a specific id list, then a VIP-level list), optionally
// persists a new custom event + deduplicated templates, then persists the
// task as Pending plus one detail row per template whose title or content
// is non-empty (templates with both empty are skipped) and publishes a
// BatchNotifyModel referring to it.
func (s *Server) BackstageSendToUser(ctx context.Context, req *notifyv1.BackstageSendToUserRequest) (*notifyv1.BackstageSendToUserResponse, error) {
	receiverIDs, err := s.resolveRecipients(ctx, req)
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}

	var eventID int64
	if req.IsSaveAsEvent && req.ClientEventName != nil {
		eventID = s.ids.Next()
		event := &domain.ClientNotifyEvent{
			ID: eventID, ClientID: req.ClientId, Name: *req.ClientEventName,
			IsSystemEvent: false, NotifyTypes: []domain.NotifyType{domain.NotifyTypeInApp, domain.NotifyTypeEmail},
			Platform: domain.PlatformFrontend, EditorAccount: req.SenderAccount,
		}
		if err := s.store.CreateEvent(ctx, tx, event); err != nil {
			_ = tx.Rollback(ctx)
			return nil, rpc.StatusFromError(err)
		}
		for _, t := range dedupeByNotifyType(req.Templates) {
			tmpl := &domain.ClientNotifyTemplate{
				ClientID: req.ClientId, ClientNotifyEvent: eventID, NotifyType: domain.NotifyType(t.NotifyType),
				LanguageID: domain.LanguageJp, Title: t.Title, Content: t.Content, IsSystem: false,
			}
			if err := s.store.UpsertTemplate(ctx, tx, tmpl); err != nil {
				_ = tx.Rollback(ctx)
				return nil, rpc.StatusFromError(err)
			}
		}
	}

	taskID := s.ids.Next()
	task := &domain.BackstageSendTask{
		ID: taskID, ClientID: req.ClientId, ClientEventID: eventID, SenderID: req.SenderId,
		SenderAccount: req.SenderAccount, SenderIP: req.SenderIp, NotifyLevel: domain.NotifyLevel(req.NotifyLevel),
		TaskStatus: domain.TaskStatusPending, ReceiverCount: len(receiverIDs), ReceiverID: receiverIDs,
	}
	if err := s.store.InsertBackstageSendTask(ctx, tx, task); err != nil {
		_ = tx.Rollback(ctx)
		return nil, rpc.StatusFromError(err)
	}

	templateModels := make([]domain.TemplateModel, 0, len(req.Templates))
	for _, t := range req.Templates {
		if t.Title == "" && t.Content == "" {
			continue
		}
		detail := &domain.BackstageSendTaskDetail{ID: s.ids.Next(), TaskID: taskID, NotifyType: domain.NotifyType(t.NotifyType), Title: t.Title, Content: t.Content}
		if err := s.store.InsertBackstageSendTaskDetail(ctx, tx, detail); err != nil {
			_ = tx.Rollback(ctx)
			return nil, rpc.StatusFromError(err)
		}
		templateModels = append(templateModels, domain.TemplateModel{
			NotifyType: domain.NotifyType(t.NotifyType), NotifyLevel: domain.NotifyLevel(req.NotifyLevel), Title: t.Title, Content: t.Content,
		})
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, rpc.StatusFromError(err)
	}

	batch := domain.BatchNotifyModel{
		TaskID: taskID, FrontendClientID: req.ClientId, ClientID: req.ClientId, ClientEventID: eventID,
		SenderID: req.SenderId, SenderAccount: req.SenderAccount, SenderIP: req.SenderIp,
		NotifyLevel: int(req.NotifyLevel), ReceiverIDs: receiverIDs, Templates: templateModels,
	}
	if err := s.gw.PublishBatch(ctx, batch); err != nil {
		return nil, rpc.StatusFromError(err)
	}

	return &notifyv1.BackstageSendToUserResponse{TaskId: taskID}, nil
}

// resolveRecipients applies the exclusive-choice priority: IsAll, then a
// specific ReceiverIds list, then VipLevels.
func (s *Server) resolveRecipients(ctx context.Context, req *notifyv1.BackstageSendToUserRequest) ([]int64, error) {
	switch {
	case req.IsAll:
		ids, _, err := s.idClient.GetAccountsByClientID(ctx, req.ClientId)
		return ids, err
	case len(req.ReceiverIds) > 0:
		ids, _, err := s.idClient.GetAccountsByUserIDs(ctx, req.ClientId, req.ReceiverIds)
		return ids, err
	case len(req.VipLevels) > 0:
		levels := make([]int, len(req.VipLevels))
		for i, v := range req.VipLevels {
			levels[i] = int(v)
		}
		ids, _, err := s.idClient.GetAccountsByVipLevel(ctx, req.ClientId, levels)
		return ids, err
	default:
		return nil, domain.NewArgumentError("no recipient selector provided")
	}
}

func dedupeByNotifyType(templates []*notifyv1.TemplateInput) []*notifyv1.TemplateInput {
	seen := make(map[int32]bool, len(templates))
	out := make([]*notifyv1.TemplateInput, 0, len(templates))
	for _, t := range templates {
		if seen[t.NotifyType] {
			continue
		}
		seen[t.NotifyType] = true
		out = append(out, t)
	}
	return out
}

// Event/template CRUD and listing surfaces (spec §4.8).

func (s *Server) ListClientEvents(ctx context.Context, req *notifyv1.ListClientEventsRequest) (*notifyv1.ListClientEventsResponse, error) {
	var platform *domain.Platform
	if req.Platform != nil {
		p := domain.Platform(*req.Platform)
		platform = &p
	}
	notifyTypeSubset := make([]domain.NotifyType, len(req.NotifyTypeSubset))
	for i, t := range req.NotifyTypeSubset {
		notifyTypeSubset[i] = domain.NotifyType(t)
	}
	var startAt, endAt *time.Time
	if req.StartAt != nil {
		t := unixMilliToTime(*req.StartAt)
		startAt = &t
	}
	if req.EndAt != nil {
		t := unixMilliToTime(*req.EndAt)
		endAt = &t
	}

	events, total, err := s.store.ListEvents(ctx, req.ClientId, platform, req.IsSystem, req.NameOrAccountLike, notifyTypeSubset, startAt, endAt, int(req.Page))
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}

	views := make([]*notifyv1.ClientNotifyEventView, 0, len(events))
	for _, e := range events {
		views = append(views, clientNotifyEventToProto(e))
	}
	return &notifyv1.ListClientEventsResponse{Events: views, Total: int32(total)}, nil
}

func (s *Server) UpdateClientEvent(ctx context.Context, req *notifyv1.UpdateClientEventRequest) (*notifyv1.UpdateClientEventResponse, error) {
	e := clientNotifyEventFromProto(req.Event)

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}
	if err := s.store.UpdateEvent(ctx, tx, e); err != nil {
		_ = tx.Rollback(ctx)
		return nil, rpc.StatusFromError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, rpc.StatusFromError(err)
	}
	return &notifyv1.UpdateClientEventResponse{}, nil
}

func (s *Server) DeleteClientEvent(ctx context.Context, req *notifyv1.DeleteClientEventRequest) (*notifyv1.DeleteClientEventResponse, error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}
	if err := s.store.DeleteEvent(ctx, tx, req.ClientId, req.EventId); err != nil {
		_ = tx.Rollback(ctx)
		return nil, rpc.StatusFromError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, rpc.StatusFromError(err)
	}
	return &notifyv1.DeleteClientEventResponse{}, nil
}

func (s *Server) ListEventTemplates(ctx context.Context, req *notifyv1.ListEventTemplatesRequest) (*notifyv1.ListEventTemplatesResponse, error) {
	templates, err := s.store.ListTemplates(ctx, req.ClientId, req.EventId)
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}
	views := make([]*notifyv1.ClientNotifyTemplateView, 0, len(templates))
	for _, t := range templates {
		views = append(views, clientNotifyTemplateToProto(t))
	}
	return &notifyv1.ListEventTemplatesResponse{Templates: views}, nil
}

func (s *Server) UpdateTemplate(ctx context.Context, req *notifyv1.UpdateTemplateRequest) (*notifyv1.UpdateTemplateResponse, error) {
	t := clientNotifyTemplateFromProto(req.Template)

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}
	if err := s.store.UpsertTemplate(ctx, tx, t); err != nil {
		_ = tx.Rollback(ctx)
		return nil, rpc.StatusFromError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, rpc.StatusFromError(err)
	}
	return &notifyv1.UpdateTemplateResponse{}, nil
}

func (s *Server) ListTasks(ctx context.Context, req *notifyv1.ListTasksRequest) (*notifyv1.ListTasksResponse, error) {
	tasks, total, err := s.store.ListTasks(ctx, req.ClientId, int(req.Page))
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}
	views := make([]*notifyv1.BackstageSendTaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, backstageSendTaskToProto(t))
	}
	return &notifyv1.ListTasksResponse{Tasks: views, Total: int32(total)}, nil
}

func (s *Server) ListTaskDetails(ctx context.Context, req *notifyv1.ListTaskDetailsRequest) (*notifyv1.ListTaskDetailsResponse, error) {
	details, err := s.store.ListTaskDetails(ctx, req.TaskId)
	if err != nil {
		return nil, rpc.StatusFromError(err)
	}
	views := make([]*notifyv1.BackstageSendTaskDetailView, 0, len(details))
	for _, d := range details {
		views = append(views, backstageSendTaskDetailToProto(d))
	}
	return &notifyv1.ListTaskDetailsResponse{Details: views}, nil
}

func unixMilliToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

func clientNotifyEventToProto(e domain.ClientNotifyEvent) *notifyv1.ClientNotifyEventView {
	notifyTypes := make([]notifyv1.NotifyType, len(e.NotifyTypes))
	for i, t := range e.NotifyTypes {
		notifyTypes[i] = notifyv1.NotifyType(t)
	}
	return &notifyv1.ClientNotifyEventView{
		Id: e.ID, ClientId: e.ClientID, Name: e.Name, Memo: e.Memo,
		IsSystemEvent: e.IsSystemEvent, NotifyTypes: notifyTypes, Platform: notifyv1.Platform(e.Platform),
		EditorAccount: e.EditorAccount, CreateAt: e.CreateAt.UnixMilli(), UpdateAt: e.UpdateAt.UnixMilli(),
	}
}

func clientNotifyEventFromProto(v *notifyv1.ClientNotifyEventView) *domain.ClientNotifyEvent {
	notifyTypes := make([]domain.NotifyType, len(v.NotifyTypes))
	for i, t := range v.NotifyTypes {
		notifyTypes[i] = domain.NotifyType(t)
	}
	return &domain.ClientNotifyEvent{
		ID: v.Id, ClientID: v.ClientId, Name: v.Name, Memo: v.Memo,
		IsSystemEvent: v.IsSystemEvent, NotifyTypes: notifyTypes, Platform: domain.Platform(v.Platform),
		EditorAccount: v.EditorAccount,
	}
}

func clientNotifyTemplateToProto(t domain.ClientNotifyTemplate) *notifyv1.ClientNotifyTemplateView {
	return &notifyv1.ClientNotifyTemplateView{
		Id: t.ID, ClientId: t.ClientID, ClientNotifyEvent: t.ClientNotifyEvent,
		NotifyType: notifyv1.NotifyType(t.NotifyType), LanguageId: notifyv1.Language(t.LanguageID),
		Title: t.Title, Content: t.Content, KeyList: t.KeyList, IsSystem: t.IsSystem,
		CreateAt: t.CreateAt.UnixMilli(), UpdateAt: t.UpdateAt.UnixMilli(),
	}
}

func clientNotifyTemplateFromProto(v *notifyv1.ClientNotifyTemplateView) *domain.ClientNotifyTemplate {
	return &domain.ClientNotifyTemplate{
		ID: v.Id, ClientID: v.ClientId, ClientNotifyEvent: v.ClientNotifyEvent,
		NotifyType: domain.NotifyType(v.NotifyType), LanguageID: domain.Language(v.LanguageId),
		Title: v.Title, Content: v.Content, KeyList: v.KeyList, IsSystem: v.IsSystem,
	}
}

func backstageSendTaskToProto(t domain.BackstageSendTask) *notifyv1.BackstageSendTaskView {
	return &notifyv1.BackstageSendTaskView{
		Id: t.ID, ClientId: t.ClientID, ClientEventId: t.ClientEventID, SenderId: t.SenderID,
		SenderAccount: t.SenderAccount, SenderIp: t.SenderIP, TaskName: t.TaskName,
		NotifyLevel: notifyv1.NotifyLevel(t.NotifyLevel), TaskStatus: notifyv1.TaskStatus(t.TaskStatus),
		ReceiverCount: int32(t.ReceiverCount), ErrorMessage: t.ErrorMessage,
		CreateAt: t.CreateAt.UnixMilli(), UpdateAt: t.UpdateAt.UnixMilli(),
	}
}

func backstageSendTaskDetailToProto(d domain.BackstageSendTaskDetail) *notifyv1.BackstageSendTaskDetailView {
	return &notifyv1.BackstageSendTaskDetailView{
		Id: d.ID, TaskId: d.TaskID, NotifyType: notifyv1.NotifyType(d.NotifyType),
		Title: d.Title, Content: d.Content, CreateAt: d.CreateAt.UnixMilli(),
	}
}
