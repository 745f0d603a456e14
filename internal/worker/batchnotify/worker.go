// Package batchnotify implements the broadcast-expansion worker: it
// consumes batch_notify_queue, resolves each recipient's contact details,
// and republishes one SingleNotifyModel per (recipient, template) pair onto
// single_notify_routing_key, per spec §4.4.
package batchnotify

import (
	"encoding/json"

	"context"

	"github.com/rs/zerolog"

	"github.com/arda-labs/notify-core/internal/broker"
	"github.com/arda-labs/notify-core/internal/domain"
	"github.com/arda-labs/notify-core/internal/identity"
	"github.com/arda-labs/notify-core/internal/store"
)

// Worker is the worker.Job implementation bound to one batch-notify
// consumer.
type Worker struct {
	gw       *broker.Gateway
	store    store.Store
	idClient *identity.Client
	selfAddr string
	log      zerolog.Logger

	consumer *broker.Consumer
}

func New(gw *broker.Gateway, st store.Store, idClient *identity.Client, selfAddr string, log zerolog.Logger) *Worker {
	return &Worker{gw: gw, store: st, idClient: idClient, selfAddr: selfAddr, log: log}
}

func (w *Worker) Name() string { return "batch-notify" }

func (w *Worker) ShouldContinue() bool { return true }

func (w *Worker) Start(ctx context.Context) error {
	consumer, err := w.gw.ConsumeBatch("batch-notify-" + w.selfAddr)
	if err != nil {
		return err
	}
	w.consumer = consumer
	return nil
}

func (w *Worker) Update(ctx context.Context) error {
	d, ok := <-w.consumer.Deliveries
	if !ok {
		return domain.NewConnectionError("batch-notify delivery channel closed", nil)
	}
	if err := w.gw.Ack(d); err != nil {
		return err
	}

	var model domain.BatchNotifyModel
	if err := json.Unmarshal(d.Body, &model); err != nil {
		w.log.Error().Err(err).Msg("batch-notify decode failed, message dropped")
		return nil
	}

	if err := w.expand(ctx, model); err != nil {
		return domain.NewWorkerPhaseError(domain.PhaseUpdate, &taskFailure{taskID: model.TaskID, err: err})
	}
	return nil
}

// expand resolves contact info for every recipient and republishes one
// SingleNotifyModel per (recipient, template) pair, then marks the task
// Success. client_event_id is propagated from the batch model; client_id on
// each published message is the task's frontend-facing client id, and
// key_map is always empty since batch sends carry no per-recipient
// substitutions (spec §4.4).
func (w *Worker) expand(ctx context.Context, model domain.BatchNotifyModel) error {
	contacts, err := w.idClient.GetEmailAndPhoneByUserIDs(ctx, model.ClientID, model.ReceiverIDs)
	if err != nil {
		return err
	}
	byUser := make(map[int64]domain.UserContact, len(contacts))
	for _, c := range contacts {
		byUser[c.UserID] = c
	}

	notifyLevel, err := domain.ParseNotifyLevel(model.NotifyLevel)
	if err != nil {
		return err
	}

	for _, userID := range model.ReceiverIDs {
		contact := byUser[userID]
		for _, tmpl := range model.Templates {
			address := domain.GetReceiveAddressOpt(tmpl.NotifyType, contact.Email, contact.Phone)
			single := domain.SingleNotifyModel{
				ClientID: model.FrontendClientID, UserID: userID, SenderID: model.SenderID,
				SenderAccount: model.SenderAccount, SenderIP: model.SenderIP,
				NotifyType: tmpl.NotifyType, NotifyLevel: notifyLevel,
				Title: tmpl.Title, Content: tmpl.Content, ReceiveAddress: address,
				KeyMap: map[string]string{}, ClientEventID: model.ClientEventID,
			}
			if err := w.gw.PublishSingle(ctx, single); err != nil {
				return err
			}
		}
	}

	tx, err := w.store.Begin(ctx)
	if err != nil {
		return err
	}
	if err := w.store.UpdateTaskStatus(ctx, tx, model.TaskID, domain.TaskStatusSuccess, nil); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

type taskFailure struct {
	taskID int64
	err    error
}

func (f *taskFailure) Error() string { return f.err.Error() }
func (f *taskFailure) Unwrap() error { return f.err }

// OnError marks the originating task Fail with the error string, in its own
// transaction, and reports the failure as handled so the consumer keeps
// running.
func (w *Worker) OnError(ctx context.Context, phase domain.WorkerPhase, err error) error {
	if phase != domain.PhaseUpdate {
		w.log.Warn().Err(err).Str("phase", string(phase)).Msg("batch-notify worker phase error")
		return nil
	}

	var tf *taskFailure
	if wpe, wrapped := err.(*domain.WorkerPhaseError); wrapped {
		tf, _ = wpe.Err.(*taskFailure)
	} else {
		tf, _ = err.(*taskFailure)
	}
	if tf == nil {
		w.log.Error().Err(err).Msg("unrecognized batch-notify update error")
		return nil
	}

	tx, txErr := w.store.Begin(ctx)
	if txErr != nil {
		return txErr
	}
	msg := tf.err.Error()
	if updErr := w.store.UpdateTaskStatus(ctx, tx, tf.taskID, domain.TaskStatusFail, &msg); updErr != nil {
		_ = tx.Rollback(ctx)
		return updErr
	}
	return tx.Commit(ctx)
}

func (w *Worker) End(ctx context.Context) error {
	return nil
}
