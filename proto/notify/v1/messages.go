// Package notifyv1 holds the Go types proto/notify/v1/notify.proto
// describes. In a normal build these come from protoc-gen-go/
// protoc-gen-go-grpc and are not checked in; since this module is built
// without running protoc, the message structs and service bindings below
// are hand-maintained to match what that codegen would produce from the
// .proto in this directory — field names follow protoc-gen-go's own
// name-mangling (ClientId, not ClientID) rather than this module's own Go
// naming convention, since that is what a real generated file would emit.
// Keep this file and notify.proto in lockstep by hand.
package notifyv1

// NotifyType mirrors the wire enum; UNSPECIFIED occupies the zero value so
// an absent/defaulted field never collides with a real channel.
type NotifyType int32

const (
	NotifyType_NOTIFY_TYPE_UNSPECIFIED NotifyType = 0
	NotifyType_NOTIFY_TYPE_IN_APP      NotifyType = 1
	NotifyType_NOTIFY_TYPE_EMAIL       NotifyType = 2
	NotifyType_NOTIFY_TYPE_SMS         NotifyType = 3
)

type NotifyLevel int32

const (
	NotifyLevel_NOTIFY_LEVEL_UNSPECIFIED NotifyLevel = 0
	NotifyLevel_NOTIFY_LEVEL_INFO        NotifyLevel = 1
	NotifyLevel_NOTIFY_LEVEL_SYSTEM      NotifyLevel = 2
	NotifyLevel_NOTIFY_LEVEL_IMPORTANT   NotifyLevel = 3
)

type NotifyStatus int32

const (
	NotifyStatus_NOTIFY_STATUS_UNSPECIFIED NotifyStatus = 0
	NotifyStatus_NOTIFY_STATUS_UNREAD      NotifyStatus = 1
	NotifyStatus_NOTIFY_STATUS_READ        NotifyStatus = 2
	NotifyStatus_NOTIFY_STATUS_DELETE      NotifyStatus = 3
)

type Platform int32

const (
	Platform_PLATFORM_UNSPECIFIED     Platform = 0
	Platform_PLATFORM_FRONTEND        Platform = 1
	Platform_PLATFORM_BACKSTAGE       Platform = 2
	Platform_PLATFORM_MASTER_BACKSTAGE Platform = 3
)

type TaskStatus int32

const (
	TaskStatus_TASK_STATUS_UNSPECIFIED TaskStatus = 0
	TaskStatus_TASK_STATUS_PENDING     TaskStatus = 1
	TaskStatus_TASK_STATUS_SUCCESS     TaskStatus = 2
	TaskStatus_TASK_STATUS_FAIL        TaskStatus = 3
)

type Language int32

const (
	Language_LANGUAGE_US_EN Language = 0
	Language_LANGUAGE_JP    Language = 1
	Language_LANGUAGE_ZH_TW Language = 2
	Language_LANGUAGE_ZH_CN Language = 3
)

// Receiver is the oneof pushed down a CreateConnection stream.
type Receiver struct {
	Notify *Notify
	Empty  *Empty
}

type Empty struct{}

type Notify struct {
	NotifyId     int64
	NotifyLevel  NotifyLevel
	Title        string
	Content      string
	CreateAt     int64
	NotifyStatus NotifyStatus
}

type CreateConnectionRequest struct {
	ClientId int64
	UserId   int64
	RoleIds  []int64
}

type CloseConnectionRequest struct {
	ClientId int64
	UserId   int64
}

type CloseConnectionResponse struct{}

type ForwardNotifyRequest struct {
	ClientId            int64
	UserId              int64
	RoleIds             []int64
	ClientNotifyEventId int64
	Notify              *Notify
}

type ForwardNotifyResponse struct{}

type SystemToFrontendUserRequest struct {
	ClientId    int64
	UserId      int64
	NotifyEvent int32
	KeyMap      map[string]string
	Language    Language
}

type SystemToFrontendUserResponse struct{}

type GetNotifyRecordsRequest struct {
	ClientId     int64
	UserId       int64
	NotifyStatus int32
	NotifyLevel  int32
	NowPage      int32
}

type GetNotifyRecordsResponse struct {
	Records     []*NotifyRecordView
	UnreadCount int32
}

type NotifyRecordView struct {
	Id           int64
	NotifyType   int32
	NotifyLevel  NotifyLevel
	NotifyStatus NotifyStatus
	Title        string
	Content      string
	CreateAt     int64
}

type UpdateNotifyRecordsRequest struct {
	ClientId     int64
	UserId       int64
	NotifyStatus int32
	NotifyIds    []int64
}

type UpdateNotifyRecordsResponse struct {
	Records []*NotifyRecordView
}

type AllReadRequest struct {
	ClientId    int64
	UserId      int64
	NotifyLevel int32
}

type AllReadResponse struct{}

type SystemToBackstageUserRequest struct {
	InitiatorClientId int64
	InitiatorUserId   int64
	BackstageEvent    int32
	RoleIds           []int64
	KeyMap            map[string]string
}

type SystemToBackstageUserResponse struct {
	PeerWarnings []string
}

type BackstageSendToUserRequest struct {
	ClientId        int64
	SenderId        int64
	SenderAccount   string
	SenderIp        *string
	IsAll           bool
	ReceiverIds     []int64
	VipLevels       []int32
	NotifyLevel     NotifyLevel
	Templates       []*TemplateInput
	IsSaveAsEvent   bool
	ClientEventName *string
}

type TemplateInput struct {
	NotifyType int32
	Title      string
	Content    string
}

type BackstageSendToUserResponse struct {
	TaskId int64
}

type ListClientEventsRequest struct {
	ClientId          int64
	Platform          *Platform
	IsSystem          *bool
	NameOrAccountLike string
	NotifyTypeSubset  []NotifyType
	StartAt           *int64
	EndAt             *int64
	Page              int32
}

type ClientNotifyEventView struct {
	Id             int64
	ClientId       int64
	Name           string
	Memo           string
	IsSystemEvent  bool
	NotifyTypes    []NotifyType
	Platform       Platform
	EditorAccount  string
	CreateAt       int64
	UpdateAt       int64
}

type ListClientEventsResponse struct {
	Events []*ClientNotifyEventView
	Total  int32
}

type UpdateClientEventRequest struct {
	Event *ClientNotifyEventView
}

type UpdateClientEventResponse struct{}

type DeleteClientEventRequest struct {
	ClientId int64
	EventId  int64
}

type DeleteClientEventResponse struct{}

type ListEventTemplatesRequest struct {
	ClientId int64
	EventId  int64
}

type ClientNotifyTemplateView struct {
	Id                 int64
	ClientId           int64
	ClientNotifyEvent  int64
	NotifyType         NotifyType
	LanguageId         Language
	Title              string
	Content            string
	KeyList            []string
	IsSystem           bool
	CreateAt           int64
	UpdateAt           int64
}

type ListEventTemplatesResponse struct {
	Templates []*ClientNotifyTemplateView
}

type UpdateTemplateRequest struct {
	Template *ClientNotifyTemplateView
}

type UpdateTemplateResponse struct{}

type ListTasksRequest struct {
	ClientId int64
	Page     int32
}

type BackstageSendTaskView struct {
	Id            int64
	ClientId      int64
	ClientEventId int64
	SenderId      int64
	SenderAccount string
	SenderIp      *string
	TaskName      string
	NotifyLevel   NotifyLevel
	TaskStatus    TaskStatus
	ReceiverCount int32
	ErrorMessage  *string
	CreateAt      int64
	UpdateAt      int64
}

type ListTasksResponse struct {
	Tasks []*BackstageSendTaskView
	Total int32
}

type ListTaskDetailsRequest struct {
	TaskId int64
}

type BackstageSendTaskDetailView struct {
	Id         int64
	TaskId     int64
	NotifyType NotifyType
	Title      string
	Content    string
	CreateAt   int64
}

type ListTaskDetailsResponse struct {
	Details []*BackstageSendTaskDetailView
}
