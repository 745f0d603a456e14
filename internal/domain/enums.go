// Package domain holds the types shared by every other package: wire-visible
// enumerations, persisted entities, the broker payload models, and the error
// taxonomy that the RPC and worker layers translate at their boundaries.
package domain

import "fmt"

// NotifyType identifies the delivery channel for a notification.
type NotifyType int

const (
	NotifyTypeInApp NotifyType = 1
	NotifyTypeEmail NotifyType = 2
	NotifyTypeSMS   NotifyType = 3
)

func (t NotifyType) Valid() bool {
	switch t {
	case NotifyTypeInApp, NotifyTypeEmail, NotifyTypeSMS:
		return true
	}
	return false
}

func (t NotifyType) String() string {
	switch t {
	case NotifyTypeInApp:
		return "InApp"
	case NotifyTypeEmail:
		return "Email"
	case NotifyTypeSMS:
		return "SMS"
	default:
		return fmt.Sprintf("NotifyType(%d)", int(t))
	}
}

// ParseNotifyType converts a wire integer into a NotifyType, returning
// ArgumentError for values outside the enum.
func ParseNotifyType(v int) (NotifyType, error) {
	t := NotifyType(v)
	if !t.Valid() {
		return 0, NewArgumentError(fmt.Sprintf("invalid notify_type %d", v))
	}
	return t, nil
}

// NotifyLevel is the severity/category of a notification.
type NotifyLevel int

const (
	NotifyLevelInfo      NotifyLevel = 1
	NotifyLevelSystem    NotifyLevel = 2
	NotifyLevelImportant NotifyLevel = 3
)

func (l NotifyLevel) Valid() bool {
	switch l {
	case NotifyLevelInfo, NotifyLevelSystem, NotifyLevelImportant:
		return true
	}
	return false
}

func ParseNotifyLevel(v int) (NotifyLevel, error) {
	l := NotifyLevel(v)
	if !l.Valid() {
		return 0, NewArgumentError(fmt.Sprintf("invalid notify_level %d", v))
	}
	return l, nil
}

// NotifyStatus is the lifecycle state of a persisted NotifyRecord.
type NotifyStatus int

const (
	NotifyStatusUnread NotifyStatus = 1
	NotifyStatusRead   NotifyStatus = 2
	NotifyStatusDelete NotifyStatus = 3
)

func (s NotifyStatus) Valid() bool {
	switch s {
	case NotifyStatusUnread, NotifyStatusRead, NotifyStatusDelete:
		return true
	}
	return false
}

func ParseNotifyStatus(v int) (NotifyStatus, error) {
	s := NotifyStatus(v)
	if !s.Valid() {
		return 0, NewArgumentError(fmt.Sprintf("invalid notify_status %d", v))
	}
	return s, nil
}

// Platform distinguishes which tenant surface an event or template belongs to.
type Platform int

const (
	PlatformFrontend       Platform = 1
	PlatformBackstage      Platform = 2
	PlatformMasterBackstage Platform = 3
)

func (p Platform) Valid() bool {
	switch p {
	case PlatformFrontend, PlatformBackstage, PlatformMasterBackstage:
		return true
	}
	return false
}

// TaskStatus is the lifecycle state of a BackstageSendTask.
type TaskStatus int

const (
	TaskStatusPending TaskStatus = 1
	TaskStatusSuccess TaskStatus = 2
	TaskStatusFail    TaskStatus = 3
)

// Language selects the template language bucket. Jp is the default used
// throughout the pipeline. UsEn is the proto3 zero value, so rpc/frontend's
// SystemToFrontendUser treats a zero (unset) language as Jp.
type Language int

const (
	LanguageUsEn Language = 0
	LanguageJp   Language = 1
	LanguageZhTw Language = 2
	LanguageZhCn Language = 3
)

func (l Language) Valid() bool {
	switch l {
	case LanguageUsEn, LanguageJp, LanguageZhTw, LanguageZhCn:
		return true
	}
	return false
}

// CommonKey names the five fixed profile placeholders the template engine
// substitutes after the caller-supplied key map.
type CommonKey int

const (
	CommonKeyUserAccount CommonKey = iota + 1
	CommonKeyUserLastName
	CommonKeyUserFirstName
	CommonKeyUserCity
	CommonKeyUserCountry
)

// Placeholder returns the literal {{...}} token substituted for this key.
func (k CommonKey) Placeholder() string {
	switch k {
	case CommonKeyUserAccount:
		return "{{user_account}}"
	case CommonKeyUserLastName:
		return "{{user_last_name}}"
	case CommonKeyUserFirstName:
		return "{{user_first_name}}"
	case CommonKeyUserCity:
		return "{{user_city}}"
	case CommonKeyUserCountry:
		return "{{user_country}}"
	default:
		return ""
	}
}
