// Package singlenotify implements the per-recipient delivery worker: it
// consumes single_notify_queue and fans each message out to the channel
// (email, SMS, in-app) its NotifyType names, per spec §4.3.
package singlenotify

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/arda-labs/notify-core/internal/broker"
	"github.com/arda-labs/notify-core/internal/cache"
	"github.com/arda-labs/notify-core/internal/domain"
	"github.com/arda-labs/notify-core/internal/identity"
	"github.com/arda-labs/notify-core/internal/mailer"
	"github.com/arda-labs/notify-core/internal/registry"
	"github.com/arda-labs/notify-core/internal/sms"
	"github.com/arda-labs/notify-core/internal/snowflake"
	"github.com/arda-labs/notify-core/internal/store"
	"github.com/arda-labs/notify-core/internal/template"
)

// Forwarder delivers an in-app notification to a user connected to a
// different pod. The concrete implementation dials the peer's gRPC
// forwardNotify endpoint; see internal/peer.
type Forwarder interface {
	ForwardNotify(ctx context.Context, podAddr string, clientID, userID int64, n domain.Notify) error
}

// Worker is the worker.Job implementation bound to one broker consumer.
// One Worker serves exactly one engine goroutine; the pool that starts N of
// them shares every dependency below.
type Worker struct {
	gw       *broker.Gateway
	store    store.Store
	idClient *identity.Client
	mailer   *mailer.Mailer
	sms      *sms.Sender
	cache    *cache.Directory
	registry *registry.FrontendRegistry
	forward  Forwarder
	ids      *snowflake.Generator
	selfAddr string
	log      zerolog.Logger

	consumer *broker.Consumer
}

func New(
	gw *broker.Gateway,
	st store.Store,
	idClient *identity.Client,
	mailer *mailer.Mailer,
	sms *sms.Sender,
	cacheDir *cache.Directory,
	reg *registry.FrontendRegistry,
	forward Forwarder,
	ids *snowflake.Generator,
	selfAddr string,
	log zerolog.Logger,
) *Worker {
	return &Worker{
		gw: gw, store: st, idClient: idClient, mailer: mailer, sms: sms,
		cache: cacheDir, registry: reg, forward: forward, ids: ids,
		selfAddr: selfAddr, log: log,
	}
}

func (w *Worker) Name() string { return "single-notify" }

func (w *Worker) ShouldContinue() bool { return true }

// Start opens a consumer on single_notify_queue.
func (w *Worker) Start(ctx context.Context) error {
	consumer, err := w.gw.ConsumeSingle("single-notify-" + w.selfAddr)
	if err != nil {
		return err
	}
	w.consumer = consumer
	return nil
}

// Update pulls exactly one delivery, acks it immediately (at-most-once per
// spec §7/§9), then processes it inside one transaction. A decode failure
// still records an audit row, carrying the raw bytes since no fields could
// be parsed.
func (w *Worker) Update(ctx context.Context) error {
	d, ok := <-w.consumer.Deliveries
	if !ok {
		return domain.NewConnectionError("single-notify delivery channel closed", nil)
	}
	if err := w.gw.Ack(d); err != nil {
		return err
	}

	var model domain.SingleNotifyModel
	if err := json.Unmarshal(d.Body, &model); err != nil {
		return w.writeFailure(ctx, domain.MqFailedRecord{RawPayload: d.Body, ErrorMessage: err.Error()})
	}

	if err := w.process(ctx, model); err != nil {
		return w.writeFailure(ctx, domain.MqFailedRecord{
			NotifyID:     model.NotifyID,
			ClientID:     model.ClientID,
			UserID:       model.UserID,
			SenderID:     model.SenderID,
			Title:        model.Title,
			NotifyType:   model.NotifyType,
			Content:      model.Content,
			RawPayload:   d.Body,
			ErrorMessage: err.Error(),
		})
	}
	return nil
}

func (w *Worker) process(ctx context.Context, model domain.SingleNotifyModel) error {
	profile, err := w.idClient.GetUserProfile(ctx, model.ClientID, model.UserID)
	if err != nil {
		return err
	}

	title, content := template.Fill(model.Title, model.Content, profile, model.KeyMap)

	tx, err := w.store.Begin(ctx)
	if err != nil {
		return err
	}

	// Email/SMS dispatch happens before the record/success inserts, inside
	// this transaction: a non-2xx or transport failure must abort before
	// either insert so the update-phase error handler writes exactly one
	// MqFailedRecord and no NotifyRecord for this message (spec §4.3, §8).
	if err := w.dispatchExternal(ctx, model, title, content); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	id := w.ids.Next()
	record := &domain.NotifyRecord{
		ID: id, ClientID: model.ClientID, UserID: model.UserID, UserAccount: profile.Account,
		ClientNotifyEventID: model.ClientEventID, SenderID: model.SenderID, SenderAccount: model.SenderAccount,
		SenderIP: model.SenderIP, NotifyType: model.NotifyType, NotifyLevel: model.NotifyLevel,
		NotifyStatus: domain.NotifyStatusUnread, Title: title, Content: content,
	}

	if err := w.store.InsertNotifyRecord(ctx, tx, record); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	payload, _ := json.Marshal(model)
	if err := w.store.InsertMqSuccessRecord(ctx, tx, &domain.MqSuccessRecord{ID: w.ids.Next(), NotifyID: model.NotifyID, Payload: string(payload)}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	// InApp dispatch happens after commit and is best-effort: a missing or
	// stale live stream doesn't corrupt delivery semantics the way a failed
	// external send would, so it is logged rather than propagated.
	if model.NotifyType == domain.NotifyTypeInApp {
		w.dispatchInApp(ctx, model, domain.Notify{
			NotifyID: id, NotifyLevel: model.NotifyLevel, Title: title, Content: content,
			CreateAt: record.CreateAt, NotifyStatus: domain.NotifyStatusUnread,
		})
	}
	return nil
}

// dispatchExternal sends the Email/SMS channel body and propagates any
// failure so the caller aborts the transaction before recording success.
// InApp is not an external channel and is a no-op here.
func (w *Worker) dispatchExternal(ctx context.Context, model domain.SingleNotifyModel, title, content string) error {
	switch model.NotifyType {
	case domain.NotifyTypeEmail:
		return w.mailer.Send(ctx, model.ReceiveAddress, title, content)
	case domain.NotifyTypeSMS:
		return w.sms.Send(ctx, model.ReceiveAddress, content)
	default:
		return nil
	}
}

func (w *Worker) dispatchInApp(ctx context.Context, model domain.SingleNotifyModel, n domain.Notify) {
	key := registry.Key{ClientID: model.ClientID, UserID: model.UserID}

	podAddr, ok, err := w.cache.GetUserLocation(ctx, model.UserID)
	if err != nil {
		w.log.Warn().Err(err).Int64("user_id", model.UserID).Msg("cache lookup failed")
		return
	}
	if !ok {
		return // user offline, nothing to push
	}

	if podAddr == w.selfAddr {
		if err := w.registry.Send(key, n); err != nil {
			w.log.Warn().Err(err).Int64("user_id", model.UserID).Msg("local in-app push failed, evicting stale cache entry")
			w.registry.Remove(key)
			_ = w.cache.RemoveUserLocation(ctx, model.UserID)
		}
		return
	}

	if err := w.forward.ForwardNotify(ctx, podAddr, model.ClientID, model.UserID, n); err != nil {
		w.log.Warn().Err(err).Str("pod", podAddr).Int64("user_id", model.UserID).Msg("peer forward failed, evicting stale cache entry")
		_ = w.cache.RemoveUserLocation(ctx, model.UserID)
	}
}

func (w *Worker) writeFailure(ctx context.Context, rec domain.MqFailedRecord) error {
	return domain.NewWorkerPhaseError(domain.PhaseUpdate, &failureMarker{rec: rec})
}

// failureMarker carries the MqFailedRecord to write through OnError without
// re-deriving it from the raw error string.
type failureMarker struct {
	rec domain.MqFailedRecord
}

func (f *failureMarker) Error() string { return f.rec.ErrorMessage }

// OnError commits the audit row for a handled update-phase failure in its
// own transaction, then reports the failure as handled so the Update loop
// continues consuming. Start/End phase errors are only logged.
func (w *Worker) OnError(ctx context.Context, phase domain.WorkerPhase, err error) error {
	if phase != domain.PhaseUpdate {
		w.log.Warn().Err(err).Str("phase", string(phase)).Msg("single-notify worker phase error")
		return nil
	}

	marker, ok := err.(*failureMarker)
	if !ok {
		if wpe, wrapped := err.(*domain.WorkerPhaseError); wrapped {
			marker, ok = wpe.Err.(*failureMarker)
		}
	}
	if !ok {
		w.log.Error().Err(err).Msg("unrecognized single-notify update error")
		return nil
	}

	marker.rec.ID = w.ids.Next()
	tx, txErr := w.store.Begin(ctx)
	if txErr != nil {
		return txErr
	}
	if insertErr := w.store.InsertMqFailedRecord(ctx, tx, &marker.rec); insertErr != nil {
		_ = tx.Rollback(ctx)
		return insertErr
	}
	return tx.Commit(ctx)
}

func (w *Worker) End(ctx context.Context) error {
	return nil
}
