package domain

// SingleNotifyModel is the broker payload for one recipient, published to
// single_notify_routing_key and consumed by the single-notify worker. Field
// names are wire-visible JSON and must not change.
type SingleNotifyModel struct {
	NotifyID       int64             `json:"notify_id"`
	ClientID       int64             `json:"client_id"`
	UserID         int64             `json:"user_id"`
	SenderID       int64             `json:"sender_id"`
	SenderAccount  string            `json:"sender_account"`
	SenderIP       *string           `json:"sender_ip,omitempty"`
	NotifyType     NotifyType        `json:"notify_type"`
	NotifyLevel    NotifyLevel       `json:"notify_level"`
	Title          string            `json:"title"`
	Content        string            `json:"content"`
	ReceiveAddress string            `json:"receive_address"`
	KeyMap         map[string]string `json:"key_map"`
	ClientEventID  int64             `json:"client_event_id"`
}

// TemplateModel is one channel body carried inside a BatchNotifyModel.
type TemplateModel struct {
	NotifyType  NotifyType  `json:"notify_type"`
	NotifyLevel NotifyLevel `json:"notify_level"`
	Title       string      `json:"title"`
	Content     string      `json:"content"`
}

// BatchNotifyModel is the broker payload for a broadcast task, published to
// batch_notify_routing_key and consumed by the batch-notify worker.
type BatchNotifyModel struct {
	TaskID            int64           `json:"task_id"`
	FrontendClientID  int64           `json:"frontend_client_id"`
	ClientID          int64           `json:"client_id"`
	ClientEventID     int64           `json:"client_event_id"`
	SenderID          int64           `json:"sender_id"`
	SenderAccount     string          `json:"sender_account"`
	SenderIP          *string         `json:"sender_ip,omitempty"`
	NotifyLevel       int             `json:"notify_level"`
	ReceiverIDs       []int64         `json:"receiver_ids"`
	Templates         []TemplateModel `json:"templates"`
}

// GetReceiveAddress computes the channel-appropriate destination address
// for a non-optional email/phone pair. No code path in this module calls it;
// the dispatch paths use GetReceiveAddressOpt.
func GetReceiveAddress(t NotifyType, email, phone string) string {
	switch t {
	case NotifyTypeEmail:
		return email
	case NotifyTypeSMS:
		return phone
	default:
		return ""
	}
}

// GetReceiveAddressOpt is the Option-aware counterpart used by the batch
// worker and by the frontend SystemToFrontendUser handler, whose identity
// batch-lookup may not have an email or phone on file for every recipient.
func GetReceiveAddressOpt(t NotifyType, email, phone *string) string {
	switch t {
	case NotifyTypeEmail:
		if email == nil {
			return ""
		}
		return *email
	case NotifyTypeSMS:
		if phone == nil {
			return ""
		}
		return *phone
	default:
		return ""
	}
}
