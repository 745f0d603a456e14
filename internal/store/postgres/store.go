// Package postgres implements store.Store against the schema in
// SPEC_FULL.md §10, grounded on the teacher's pgxpool usage in its own
// (now superseded) internal/infrastructure/postgres/repository.go: manual
// scanning helpers, explicit transactions, update_at always set by the
// application rather than relied on from a trigger.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arda-labs/notify-core/internal/domain"
	"github.com/arda-labs/notify-core/internal/store"
)

// Store implements store.Store on top of a pgxpool.Pool.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// pgTx adapts *pgx.Tx to the store.Tx interface.
type pgTx struct{ tx pgx.Tx }

func (t pgTx) Commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t pgTx) Rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }

func (s *Store) Begin(ctx context.Context) (store.Tx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.NewInternalError("begin transaction", err)
	}
	return pgTx{tx: tx}, nil
}

// unwrap extracts the concrete pgx.Tx a caller passed in as store.Tx. Any
// other store.Tx value yields nil; there is no fallback to the pool.
func unwrap(tx store.Tx) pgx.Tx {
	if t, ok := tx.(pgTx); ok {
		return t.tx
	}
	return nil
}

// --- Events -----------------------------------------------------------

func (s *Store) GetEvent(ctx context.Context, clientID, eventID int64) (*domain.ClientNotifyEvent, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, client_id, name, memo, is_system_event, notify_types, platform,
		       editor_account, create_at, update_at
		FROM client_notify_event WHERE client_id = $1 AND id = $2`, clientID, eventID)
	e, err := scanEvent(row)
	if err == pgx.ErrNoRows {
		return nil, domain.NewDataNotFoundError(fmt.Sprintf("event %d for client %d", eventID, clientID))
	}
	if err != nil {
		return nil, domain.NewInternalError("get event", err)
	}
	return e, nil
}

func scanEvent(row pgx.Row) (*domain.ClientNotifyEvent, error) {
	var e domain.ClientNotifyEvent
	var notifyTypes []int32
	var platform int
	if err := row.Scan(&e.ID, &e.ClientID, &e.Name, &e.Memo, &e.IsSystemEvent, &notifyTypes,
		&platform, &e.EditorAccount, &e.CreateAt, &e.UpdateAt); err != nil {
		return nil, err
	}
	e.Platform = domain.Platform(platform)
	for _, nt := range notifyTypes {
		e.NotifyTypes = append(e.NotifyTypes, domain.NotifyType(nt))
	}
	return &e, nil
}

func (s *Store) CreateEvent(ctx context.Context, tx store.Tx, e *domain.ClientNotifyEvent) error {
	now := time.Now()
	e.CreateAt, e.UpdateAt = now, now
	_, err := unwrap(tx).Exec(ctx, `
		INSERT INTO client_notify_event (id, client_id, name, memo, is_system_event, notify_types, platform, editor_account, create_at, update_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		e.ID, e.ClientID, e.Name, e.Memo, e.IsSystemEvent, notifyTypesToInt32(e.NotifyTypes),
		int(e.Platform), e.EditorAccount, e.CreateAt, e.UpdateAt)
	if err != nil {
		return domain.NewInternalError("create event", err)
	}
	return nil
}

func (s *Store) UpdateEvent(ctx context.Context, tx store.Tx, e *domain.ClientNotifyEvent) error {
	existing, err := s.GetEvent(ctx, e.ClientID, e.ID)
	if err != nil {
		return err
	}
	if existing.IsSystemEvent {
		if e.Name != existing.Name {
			return domain.NewArgumentError("system event name is immutable")
		}
	}
	e.NotifyTypes = dedupeNotifyTypes(e.NotifyTypes)
	e.UpdateAt = time.Now()
	_, err = unwrap(tx).Exec(ctx, `
		UPDATE client_notify_event
		SET name=$3, memo=$4, notify_types=$5, editor_account=$6, update_at=$7
		WHERE client_id=$1 AND id=$2`,
		e.ClientID, e.ID, e.Name, e.Memo, notifyTypesToInt32(e.NotifyTypes), e.EditorAccount, e.UpdateAt)
	if err != nil {
		return domain.NewInternalError("update event", err)
	}
	return nil
}

func (s *Store) DeleteEvent(ctx context.Context, tx store.Tx, clientID, eventID int64) error {
	existing, err := s.GetEvent(ctx, clientID, eventID)
	if err != nil {
		return err
	}
	if existing.IsSystemEvent {
		return domain.NewArgumentError("system event cannot be deleted")
	}
	_, err = unwrap(tx).Exec(ctx, `DELETE FROM client_notify_event WHERE client_id=$1 AND id=$2`, clientID, eventID)
	if err != nil {
		return domain.NewInternalError("delete event", err)
	}
	return nil
}

func (s *Store) ListEvents(ctx context.Context, clientID int64, platform *domain.Platform, isSystem *bool, nameOrAccountLike string, notifyTypeSubset []domain.NotifyType, startAt, endAt *time.Time, page int) ([]domain.ClientNotifyEvent, int, error) {
	if page < 1 {
		page = 1
	}
	sql := `SELECT id, client_id, name, memo, is_system_event, notify_types, platform, editor_account, create_at, update_at
		FROM client_notify_event WHERE client_id = $1`
	args := []any{clientID}
	n := 1

	add := func(clause string, val any) {
		n++
		sql += fmt.Sprintf(" AND %s $%d", clause, n)
		args = append(args, val)
	}
	if platform != nil {
		add("platform =", int(*platform))
	}
	if isSystem != nil {
		add("is_system_event =", *isSystem)
	}
	if nameOrAccountLike != "" {
		n++
		sql += fmt.Sprintf(" AND (name ILIKE $%d OR editor_account ILIKE $%d)", n, n)
		args = append(args, "%"+nameOrAccountLike+"%")
	}
	if len(notifyTypeSubset) > 0 {
		add("notify_types @>", notifyTypesToInt32(notifyTypeSubset))
	}
	if startAt != nil {
		add("update_at >=", *startAt)
	}
	if endAt != nil {
		add("update_at <=", *endAt)
	}
	sql += " ORDER BY update_at DESC"

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, domain.NewInternalError("list events", err)
	}
	defer rows.Close()

	var all []domain.ClientNotifyEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, domain.NewInternalError("scan event", err)
		}
		all = append(all, *e)
	}
	total := len(all)
	return paginate(all, page, store.NotifyPageSize), total, nil
}

// --- Templates ----------------------------------------------------------

func (s *Store) GetTemplate(ctx context.Context, clientID, eventID int64, notifyType domain.NotifyType, lang domain.Language) (*domain.ClientNotifyTemplate, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, client_id, client_notify_event, notify_type, language_id, title, content, key_list, is_system, create_at, update_at
		FROM client_notify_template
		WHERE client_id=$1 AND client_notify_event=$2 AND notify_type=$3 AND language_id=$4`,
		clientID, eventID, int(notifyType), int(lang))
	t, err := scanTemplate(row)
	if err == pgx.ErrNoRows {
		return nil, domain.NewDataNotFoundError("template")
	}
	if err != nil {
		return nil, domain.NewInternalError("get template", err)
	}
	return t, nil
}

func scanTemplate(row pgx.Row) (*domain.ClientNotifyTemplate, error) {
	var t domain.ClientNotifyTemplate
	var notifyType, lang int
	if err := row.Scan(&t.ID, &t.ClientID, &t.ClientNotifyEvent, &notifyType, &lang,
		&t.Title, &t.Content, &t.KeyList, &t.IsSystem, &t.CreateAt, &t.UpdateAt); err != nil {
		return nil, err
	}
	t.NotifyType = domain.NotifyType(notifyType)
	t.LanguageID = domain.Language(lang)
	return &t, nil
}

func (s *Store) ListOnTemplates(ctx context.Context, clientID, eventID int64, lang domain.Language, enabledTypes []domain.NotifyType) ([]domain.ClientNotifyTemplate, error) {
	all, err := s.ListTemplates(ctx, clientID, eventID)
	if err != nil {
		return nil, err
	}
	enabled := make(map[domain.NotifyType]bool, len(enabledTypes))
	for _, t := range enabledTypes {
		enabled[t] = true
	}
	var on []domain.ClientNotifyTemplate
	for _, t := range all {
		if t.LanguageID == lang && enabled[t.NotifyType] {
			on = append(on, t)
		}
	}
	return on, nil
}

func (s *Store) ListTemplates(ctx context.Context, clientID, eventID int64) ([]domain.ClientNotifyTemplate, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, client_id, client_notify_event, notify_type, language_id, title, content, key_list, is_system, create_at, update_at
		FROM client_notify_template WHERE client_id=$1 AND client_notify_event=$2`, clientID, eventID)
	if err != nil {
		return nil, domain.NewInternalError("list templates", err)
	}
	defer rows.Close()

	var out []domain.ClientNotifyTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, domain.NewInternalError("scan template", err)
		}
		out = append(out, *t)
	}
	return out, nil
}

// UpsertTemplate overwrites an existing row matched by
// (client_id, client_notify_event, notify_type, language_id), or inserts a
// new one. is_system is not checked, here or in the backstage
// UpdateTemplate handler; the store has no template delete method.
func (s *Store) UpsertTemplate(ctx context.Context, tx store.Tx, t *domain.ClientNotifyTemplate) error {
	t.UpdateAt = time.Now()
	if t.CreateAt.IsZero() {
		t.CreateAt = t.UpdateAt
	}
	_, err := unwrap(tx).Exec(ctx, `
		INSERT INTO client_notify_template (client_id, client_notify_event, notify_type, language_id, title, content, key_list, is_system, create_at, update_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (client_id, client_notify_event, notify_type, language_id)
		DO UPDATE SET title=EXCLUDED.title, content=EXCLUDED.content, key_list=EXCLUDED.key_list, update_at=EXCLUDED.update_at`,
		t.ClientID, t.ClientNotifyEvent, int(t.NotifyType), int(t.LanguageID), t.Title, t.Content, t.KeyList, t.IsSystem, t.CreateAt, t.UpdateAt)
	if err != nil {
		return domain.NewInternalError("upsert template", err)
	}
	// An update to any template row transitively marks its parent event's
	// update_at fresh (spec §3).
	_, err = unwrap(tx).Exec(ctx, `UPDATE client_notify_event SET update_at=$3 WHERE client_id=$1 AND id=$2`,
		t.ClientID, t.ClientNotifyEvent, t.UpdateAt)
	if err != nil {
		return domain.NewInternalError("touch parent event", err)
	}
	return nil
}

// --- Notify records -------------------------------------------------------

func (s *Store) InsertNotifyRecord(ctx context.Context, tx store.Tx, r *domain.NotifyRecord) error {
	now := time.Now()
	r.CreateAt, r.UpdateAt = now, now
	_, err := unwrap(tx).Exec(ctx, `
		INSERT INTO notify_record (id, client_id, user_id, user_account, client_notify_event_id,
			sender_id, sender_account, sender_ip, notify_type, notify_level, notify_status,
			title, content, read_at, create_at, update_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		r.ID, r.ClientID, r.UserID, r.UserAccount, r.ClientNotifyEventID, r.SenderID, r.SenderAccount,
		r.SenderIP, int(r.NotifyType), int(r.NotifyLevel), int(r.NotifyStatus), r.Title, r.Content,
		r.ReadAt, r.CreateAt, r.UpdateAt)
	if err != nil {
		return domain.NewInternalError("insert notify record", err)
	}
	return nil
}

func (s *Store) ListNotifyRecords(ctx context.Context, clientID, userID int64, f store.NotifyRecordFilter) ([]domain.NotifyRecord, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	sql := `SELECT id, client_id, user_id, user_account, client_notify_event_id, sender_id, sender_account,
		sender_ip, notify_type, notify_level, notify_status, title, content, read_at, create_at, update_at
		FROM notify_record WHERE client_id=$1 AND user_id=$2 AND notify_type=$3`
	args := []any{clientID, userID, int(domain.NotifyTypeInApp)}
	n := 3
	if f.Status != nil {
		n++
		sql += fmt.Sprintf(" AND notify_status = $%d", n)
		args = append(args, int(*f.Status))
	}
	if f.Level != nil {
		n++
		sql += fmt.Sprintf(" AND notify_level = $%d", n)
		args = append(args, int(*f.Level))
	}
	sql += " ORDER BY create_at DESC"

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, domain.NewInternalError("list notify records", err)
	}
	defer rows.Close()

	var all []domain.NotifyRecord
	for rows.Next() {
		r, err := scanNotifyRecord(rows)
		if err != nil {
			return nil, domain.NewInternalError("scan notify record", err)
		}
		all = append(all, *r)
	}
	return paginate(all, page, store.NotifyPageSize), nil
}

func scanNotifyRecord(row pgx.Row) (*domain.NotifyRecord, error) {
	var r domain.NotifyRecord
	var notifyType, level, status int
	if err := row.Scan(&r.ID, &r.ClientID, &r.UserID, &r.UserAccount, &r.ClientNotifyEventID,
		&r.SenderID, &r.SenderAccount, &r.SenderIP, &notifyType, &level, &status,
		&r.Title, &r.Content, &r.ReadAt, &r.CreateAt, &r.UpdateAt); err != nil {
		return nil, err
	}
	r.NotifyType = domain.NotifyType(notifyType)
	r.NotifyLevel = domain.NotifyLevel(level)
	r.NotifyStatus = domain.NotifyStatus(status)
	return &r, nil
}

func (s *Store) CountUnread(ctx context.Context, clientID, userID int64) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `
		SELECT count(*) FROM notify_record
		WHERE client_id=$1 AND user_id=$2 AND notify_type=$3 AND notify_status=$4`,
		clientID, userID, int(domain.NotifyTypeInApp), int(domain.NotifyStatusUnread)).Scan(&count)
	if err != nil {
		return 0, domain.NewInternalError("count unread", err)
	}
	return count, nil
}

func (s *Store) UpdateNotifyRecordsStatus(ctx context.Context, tx store.Tx, clientID, userID int64, status domain.NotifyStatus, ids []int64) ([]domain.NotifyRecord, error) {
	now := time.Now()
	var readAt any
	if status == domain.NotifyStatusRead {
		readAt = now
	}
	rows, err := unwrap(tx).Query(ctx, `
		UPDATE notify_record SET notify_status=$1, read_at=COALESCE($2, read_at), update_at=$3
		WHERE client_id=$4 AND user_id=$5 AND id = ANY($6)
		RETURNING id, client_id, user_id, user_account, client_notify_event_id, sender_id, sender_account,
			sender_ip, notify_type, notify_level, notify_status, title, content, read_at, create_at, update_at`,
		int(status), readAt, now, clientID, userID, ids)
	if err != nil {
		return nil, domain.NewInternalError("update notify records", err)
	}
	defer rows.Close()

	var out []domain.NotifyRecord
	for rows.Next() {
		r, err := scanNotifyRecord(rows)
		if err != nil {
			return nil, domain.NewInternalError("scan updated record", err)
		}
		out = append(out, *r)
	}
	return out, nil
}

func (s *Store) UpdateAllRead(ctx context.Context, tx store.Tx, clientID, userID int64, level *domain.NotifyLevel) error {
	now := time.Now()
	sql := `UPDATE notify_record SET notify_status=$1, read_at=$2, update_at=$2
		WHERE client_id=$3 AND user_id=$4 AND notify_type=$5 AND notify_status != $6`
	args := []any{int(domain.NotifyStatusRead), now, clientID, userID, int(domain.NotifyTypeInApp), int(domain.NotifyStatusDelete)}
	if level != nil {
		sql += " AND notify_level=$7"
		args = append(args, int(*level))
	}
	_, err := unwrap(tx).Exec(ctx, sql, args...)
	if err != nil {
		return domain.NewInternalError("update all read", err)
	}
	return nil
}

// --- Audit ----------------------------------------------------------------

func (s *Store) InsertMqSuccessRecord(ctx context.Context, tx store.Tx, r *domain.MqSuccessRecord) error {
	r.CreateAt = time.Now()
	_, err := unwrap(tx).Exec(ctx, `
		INSERT INTO mq_success_record (id, notify_id, payload, create_at) VALUES ($1,$2,$3,$4)`,
		r.ID, r.NotifyID, r.Payload, r.CreateAt)
	if err != nil {
		return domain.NewInternalError("insert mq success record", err)
	}
	return nil
}

func (s *Store) InsertMqFailedRecord(ctx context.Context, tx store.Tx, r *domain.MqFailedRecord) error {
	r.CreateAt = time.Now()
	_, err := unwrap(tx).Exec(ctx, `
		INSERT INTO mq_failed_record (id, notify_id, client_id, user_id, sender_id, title, notify_type,
			content, raw_payload, error_message, create_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		r.ID, r.NotifyID, r.ClientID, r.UserID, r.SenderID, r.Title, int(r.NotifyType),
		r.Content, r.RawPayload, r.ErrorMessage, r.CreateAt)
	if err != nil {
		return domain.NewInternalError("insert mq failed record", err)
	}
	return nil
}

// --- Backstage tasks --------------------------------------------------------

func (s *Store) InsertBackstageSendTask(ctx context.Context, tx store.Tx, t *domain.BackstageSendTask) error {
	now := time.Now()
	t.CreateAt, t.UpdateAt = now, now
	_, err := unwrap(tx).Exec(ctx, `
		INSERT INTO backstage_send_task (id, client_id, client_event_id, sender_id, sender_account, sender_ip,
			task_name, notify_level, task_status, receiver_count, receiver_id, receiver_account, error_message,
			create_at, update_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		t.ID, t.ClientID, t.ClientEventID, t.SenderID, t.SenderAccount, t.SenderIP, t.TaskName,
		int(t.NotifyLevel), int(t.TaskStatus), t.ReceiverCount, t.ReceiverID, t.ReceiverAccount,
		t.ErrorMessage, t.CreateAt, t.UpdateAt)
	if err != nil {
		return domain.NewInternalError("insert backstage send task", err)
	}
	return nil
}

func (s *Store) InsertBackstageSendTaskDetail(ctx context.Context, tx store.Tx, d *domain.BackstageSendTaskDetail) error {
	d.CreateAt = time.Now()
	_, err := unwrap(tx).Exec(ctx, `
		INSERT INTO backstage_send_task_detail (id, task_id, notify_type, title, content, create_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		d.ID, d.TaskID, int(d.NotifyType), d.Title, d.Content, d.CreateAt)
	if err != nil {
		return domain.NewInternalError("insert backstage send task detail", err)
	}
	return nil
}

func (s *Store) UpdateTaskStatus(ctx context.Context, tx store.Tx, taskID int64, status domain.TaskStatus, errMsg *string) error {
	_, err := unwrap(tx).Exec(ctx, `
		UPDATE backstage_send_task SET task_status=$1, error_message=$2, update_at=$3 WHERE id=$4`,
		int(status), errMsg, time.Now(), taskID)
	if err != nil {
		return domain.NewInternalError("update task status", err)
	}
	return nil
}

func (s *Store) ListTasks(ctx context.Context, clientID int64, page int) ([]domain.BackstageSendTask, int, error) {
	if page < 1 {
		page = 1
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, client_id, client_event_id, sender_id, sender_account, sender_ip, task_name,
			notify_level, task_status, receiver_count, receiver_id, receiver_account, error_message,
			create_at, update_at
		FROM backstage_send_task WHERE client_id=$1 ORDER BY create_at DESC`, clientID)
	if err != nil {
		return nil, 0, domain.NewInternalError("list tasks", err)
	}
	defer rows.Close()

	var all []domain.BackstageSendTask
	for rows.Next() {
		var t domain.BackstageSendTask
		var level, status int
		if err := rows.Scan(&t.ID, &t.ClientID, &t.ClientEventID, &t.SenderID, &t.SenderAccount, &t.SenderIP,
			&t.TaskName, &level, &status, &t.ReceiverCount, &t.ReceiverID, &t.ReceiverAccount,
			&t.ErrorMessage, &t.CreateAt, &t.UpdateAt); err != nil {
			return nil, 0, domain.NewInternalError("scan task", err)
		}
		t.NotifyLevel = domain.NotifyLevel(level)
		t.TaskStatus = domain.TaskStatus(status)
		all = append(all, t)
	}
	return paginate(all, page, store.NotifyPageSize), len(all), nil
}

func (s *Store) ListTaskDetails(ctx context.Context, taskID int64) ([]domain.BackstageSendTaskDetail, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, task_id, notify_type, title, content, create_at
		FROM backstage_send_task_detail WHERE task_id=$1`, taskID)
	if err != nil {
		return nil, domain.NewInternalError("list task details", err)
	}
	defer rows.Close()

	var out []domain.BackstageSendTaskDetail
	for rows.Next() {
		var d domain.BackstageSendTaskDetail
		var notifyType int
		if err := rows.Scan(&d.ID, &d.TaskID, &notifyType, &d.Title, &d.Content, &d.CreateAt); err != nil {
			return nil, domain.NewInternalError("scan task detail", err)
		}
		d.NotifyType = domain.NotifyType(notifyType)
		out = append(out, d)
	}
	return out, nil
}

// --- helpers ----------------------------------------------------------------

func notifyTypesToInt32(ts []domain.NotifyType) []int32 {
	out := make([]int32, len(ts))
	for i, t := range ts {
		out[i] = int32(t)
	}
	return out
}

func dedupeNotifyTypes(ts []domain.NotifyType) []domain.NotifyType {
	seen := make(map[domain.NotifyType]bool, len(ts))
	var out []domain.NotifyType
	for _, t := range ts {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

func paginate[T any](all []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}
