// Package store defines the record-store contract the pipeline and RPC
// surfaces depend on; internal/store/postgres provides the pgx-backed
// implementation. Keeping the interface here (rather than importing pgx
// types into every caller) follows the teacher's domain/repository.go
// split between contract and adapter.
package store

import (
	"context"
	"time"

	"github.com/arda-labs/notify-core/internal/domain"
)

// Tx is an open database transaction. Every write that touches more than
// one row is wrapped in one, per spec §5.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// NotifyRecordFilter narrows a paginated record query.
type NotifyRecordFilter struct {
	Status *domain.NotifyStatus
	Level  *domain.NotifyLevel
	Page   int // 1-based; ListNotifyRecords treats values below 1 as 1
}

const NotifyPageSize = 10

// Store is the full persistence contract.
type Store interface {
	Begin(ctx context.Context) (Tx, error)

	// Events
	GetEvent(ctx context.Context, clientID, eventID int64) (*domain.ClientNotifyEvent, error)
	CreateEvent(ctx context.Context, tx Tx, e *domain.ClientNotifyEvent) error
	UpdateEvent(ctx context.Context, tx Tx, e *domain.ClientNotifyEvent) error
	DeleteEvent(ctx context.Context, tx Tx, clientID, eventID int64) error
	ListEvents(ctx context.Context, clientID int64, platform *domain.Platform, isSystem *bool, nameOrAccountLike string, notifyTypeSubset []domain.NotifyType, startAt, endAt *time.Time, page int) ([]domain.ClientNotifyEvent, int, error)

	// Templates
	GetTemplate(ctx context.Context, clientID, eventID int64, notifyType domain.NotifyType, lang domain.Language) (*domain.ClientNotifyTemplate, error)
	ListOnTemplates(ctx context.Context, clientID, eventID int64, lang domain.Language, enabledTypes []domain.NotifyType) ([]domain.ClientNotifyTemplate, error)
	ListTemplates(ctx context.Context, clientID, eventID int64) ([]domain.ClientNotifyTemplate, error)
	UpsertTemplate(ctx context.Context, tx Tx, t *domain.ClientNotifyTemplate) error

	// Notify records
	InsertNotifyRecord(ctx context.Context, tx Tx, r *domain.NotifyRecord) error
	ListNotifyRecords(ctx context.Context, clientID, userID int64, f NotifyRecordFilter) ([]domain.NotifyRecord, error)
	CountUnread(ctx context.Context, clientID, userID int64) (int, error)
	UpdateNotifyRecordsStatus(ctx context.Context, tx Tx, clientID, userID int64, status domain.NotifyStatus, ids []int64) ([]domain.NotifyRecord, error)
	UpdateAllRead(ctx context.Context, tx Tx, clientID, userID int64, level *domain.NotifyLevel) error

	// Audit
	InsertMqSuccessRecord(ctx context.Context, tx Tx, r *domain.MqSuccessRecord) error
	InsertMqFailedRecord(ctx context.Context, tx Tx, r *domain.MqFailedRecord) error

	// Backstage tasks
	InsertBackstageSendTask(ctx context.Context, tx Tx, t *domain.BackstageSendTask) error
	InsertBackstageSendTaskDetail(ctx context.Context, tx Tx, d *domain.BackstageSendTaskDetail) error
	UpdateTaskStatus(ctx context.Context, tx Tx, taskID int64, status domain.TaskStatus, errMsg *string) error
	ListTasks(ctx context.Context, clientID int64, page int) ([]domain.BackstageSendTask, int, error)
	ListTaskDetails(ctx context.Context, taskID int64) ([]domain.BackstageSendTaskDetail, error)
}
