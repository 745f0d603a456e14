package domain

import "time"

// ClientNotifyEvent is an event registered for one tenant on one platform.
// Composite key (ID, ClientID). System events are immutable/undeletable —
// see the record store's update/delete guards.
type ClientNotifyEvent struct {
	ID            int64
	ClientID      int64
	Name          string
	Memo          string
	IsSystemEvent bool
	NotifyTypes   []NotifyType
	Platform      Platform
	EditorAccount string
	CreateAt      time.Time
	UpdateAt      time.Time
}

// HasNotifyType reports whether t is present in the event's enabled set,
// i.e. whether a template of that channel is "on" for this event.
func (e *ClientNotifyEvent) HasNotifyType(t NotifyType) bool {
	for _, nt := range e.NotifyTypes {
		if nt == t {
			return true
		}
	}
	return false
}

// ClientNotifyTemplate holds the (title, content) body bound to one event,
// channel, and language for one tenant. Unique on
// (ClientID, ClientNotifyEvent, NotifyType, LanguageID).
type ClientNotifyTemplate struct {
	ID                int64 // DB serial, not a snowflake (unlike every other entity here)
	ClientID          int64
	ClientNotifyEvent int64
	NotifyType        NotifyType
	LanguageID        Language
	Title             string
	Content           string
	KeyList           []string
	IsSystem          bool
	CreateAt          time.Time
	UpdateAt          time.Time
}

// NotifyRecord is one delivered (or otherwise recorded) message.
type NotifyRecord struct {
	ID                  int64 // snowflake
	ClientID            int64
	UserID              int64
	UserAccount         string
	ClientNotifyEventID int64
	SenderID            int64
	SenderAccount       string
	SenderIP            *string
	NotifyType          NotifyType
	NotifyLevel         NotifyLevel
	NotifyStatus        NotifyStatus
	Title               string
	Content             string
	ReadAt              *time.Time
	CreateAt            time.Time
	UpdateAt            time.Time
}

// BackstageSendTask is one admin-initiated broadcast.
type BackstageSendTask struct {
	ID             int64 // snowflake
	ClientID       int64
	ClientEventID  int64
	SenderID       int64
	SenderAccount  string
	SenderIP       *string
	TaskName       string
	NotifyLevel    NotifyLevel
	TaskStatus     TaskStatus
	ReceiverCount  int
	ReceiverID     []int64
	ReceiverAccount []string
	ErrorMessage   *string
	CreateAt       time.Time
	UpdateAt       time.Time
}

// BackstageSendTaskDetail ties a BackstageSendTask to one of the channel
// bodies it shipped.
type BackstageSendTaskDetail struct {
	ID         int64
	TaskID     int64
	NotifyType NotifyType
	Title      string
	Content    string
	CreateAt   time.Time
}

// MqSuccessRecord is an append-only audit row written in the same
// transaction as the NotifyRecord of a successful single-notify dispatch.
type MqSuccessRecord struct {
	ID       int64
	NotifyID int64
	Payload  string
	CreateAt time.Time
}

// MqFailedRecord is an append-only audit row written by the single-notify
// worker's update-phase error handler. RawPayload carries the delivery's
// bytes; when the message failed to parse at all, closing the "orphaned
// message" gap flagged in the design notes, every field other than
// RawPayload and ErrorMessage is left zero-valued.
type MqFailedRecord struct {
	ID           int64
	NotifyID     int64
	ClientID     int64
	UserID       int64
	SenderID     int64
	Title        string
	NotifyType   NotifyType
	Content      string
	RawPayload   []byte
	ErrorMessage string
	CreateAt     time.Time
}

// UserProfile is the subset of identity-service fields the template engine
// substitutes.
type UserProfile struct {
	UserID    int64
	Account   string
	LastName  string
	FirstName string
	City      string
	Country   string
}

// Notify is the message pushed over a frontend or backstage stream's
// outbound channel — the payload side of the Receiver oneof the RPC
// surfaces stream.
type Notify struct {
	NotifyID     int64
	NotifyLevel  NotifyLevel
	Title        string
	Content      string
	CreateAt     time.Time
	NotifyStatus NotifyStatus
}

// UserContact is what the identity service returns for a batch email/phone
// lookup; both fields are optional since not every user has every contact
// method on file.
type UserContact struct {
	UserID int64
	Email  *string
	Phone  *string
}
