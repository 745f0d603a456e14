package rpc

import (
	"time"

	"github.com/arda-labs/notify-core/internal/domain"
	notifyv1 "github.com/arda-labs/notify-core/proto/notify/v1"
)

func unixMilliToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// NotifyToProto converts the internal push payload into the wire message
// carried by a CreateConnection stream's Receiver.notify member.
func NotifyToProto(n domain.Notify) *notifyv1.Notify {
	return &notifyv1.Notify{
		NotifyId:     n.NotifyID,
		NotifyLevel:  notifyv1.NotifyLevel(n.NotifyLevel),
		Title:        n.Title,
		Content:      n.Content,
		CreateAt:     n.CreateAt.UnixMilli(),
		NotifyStatus: notifyv1.NotifyStatus(n.NotifyStatus),
	}
}

// ReceiverFromNotify wraps a push payload in the oneof CreateConnection's
// stream sends.
func ReceiverFromNotify(n domain.Notify) *notifyv1.Receiver {
	return &notifyv1.Receiver{Notify: NotifyToProto(n)}
}

// ProtoToNotify converts a wire Notify back to the internal push payload,
// used on the receiving side of a peer forwardNotify call.
func ProtoToNotify(n *notifyv1.Notify) domain.Notify {
	if n == nil {
		return domain.Notify{}
	}
	return domain.Notify{
		NotifyID:     n.NotifyId,
		NotifyLevel:  domain.NotifyLevel(n.NotifyLevel),
		Title:        n.Title,
		Content:      n.Content,
		CreateAt:     unixMilliToTime(n.CreateAt),
		NotifyStatus: domain.NotifyStatus(n.NotifyStatus),
	}
}

// NotifyRecordToProto converts one persisted record into the view the
// frontend list RPCs return.
func NotifyRecordToProto(r domain.NotifyRecord) *notifyv1.NotifyRecordView {
	return &notifyv1.NotifyRecordView{
		Id:           r.ID,
		NotifyType:   int32(r.NotifyType),
		NotifyLevel:  notifyv1.NotifyLevel(r.NotifyLevel),
		NotifyStatus: notifyv1.NotifyStatus(r.NotifyStatus),
		Title:        r.Title,
		Content:      r.Content,
		CreateAt:     r.CreateAt.UnixMilli(),
	}
}

func NotifyRecordsToProto(records []domain.NotifyRecord) []*notifyv1.NotifyRecordView {
	out := make([]*notifyv1.NotifyRecordView, 0, len(records))
	for _, r := range records {
		out = append(out, NotifyRecordToProto(r))
	}
	return out
}
