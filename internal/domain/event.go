package domain

import "fmt"

// NotifyEvent is one of the 34 system-seeded occasions a tenant can send
// notifications for. Codes and names are reproduced verbatim from
// original_source/src/enums/notify_event.rs; renumbering any of them would
// break rows already seeded by the relational store's migrations, which
// are out of this module's scope.
type NotifyEvent int

const (
	NotifyEventNormalInfo               NotifyEvent = 1
	NotifyEventLoginAnomaly             NotifyEvent = 2
	NotifyEventRegisterSuccess          NotifyEvent = 3
	NotifyEventDepositSuccess           NotifyEvent = 4
	NotifyEventWithdrawSuccess          NotifyEvent = 5
	NotifyEventWithdrawFail             NotifyEvent = 6
	NotifyEventKycVerifySuccess         NotifyEvent = 7
	NotifyEventKycVerifyFail            NotifyEvent = 8
	NotifyEventKycReverify              NotifyEvent = 9
	NotifyEventCreditCardVerifySuccess  NotifyEvent = 10
	NotifyEventCreditCardVerifyFail     NotifyEvent = 11
	NotifyEventLoginWarning             NotifyEvent = 12
	NotifyEventUpdateProfileSuccess     NotifyEvent = 13
	NotifyEventLoginSuccess             NotifyEvent = 14
	NotifyEventVerifyEmail              NotifyEvent = 15
	NotifyEventVerifyPhone              NotifyEvent = 16
	NotifyEventBackstageVerifyKyc       NotifyEvent = 17
	NotifyEventBackstageVerifyWithdraw  NotifyEvent = 18
	NotifyEventBackstageVerifyDeposit   NotifyEvent = 19
	NotifyEventBackstageVerifyCreditCard NotifyEvent = 20
	NotifyEventNewEventOnline           NotifyEvent = 21
	NotifyEventVipLevelUp               NotifyEvent = 22
	NotifyEventBonusExpiration          NotifyEvent = 23
	NotifyEventEventCompletion          NotifyEvent = 24
	NotifyEventReceiveTips              NotifyEvent = 25
	NotifyEventGiveTips                 NotifyEvent = 26
	NotifyEventReceiveBirthdayBonus     NotifyEvent = 27
	NotifyEventActivitySerialNumber     NotifyEvent = 28
	NotifyEventReceiveBonus             NotifyEvent = 29
	NotifyEventForgetPassword           NotifyEvent = 30
	NotifyEventLoginPasswordReset       NotifyEvent = 31
	NotifyEventLoginPasswordChange      NotifyEvent = 32
	NotifyEventWithdrawPasswordSet      NotifyEvent = 33
	NotifyEventWithdrawPasswordReset    NotifyEvent = 34
)

var notifyEventNames = map[NotifyEvent]string{
	NotifyEventNormalInfo:                "NormalInfo",
	NotifyEventLoginAnomaly:              "LoginAnomaly",
	NotifyEventRegisterSuccess:           "RegisterSuccess",
	NotifyEventDepositSuccess:            "DepositSuccess",
	NotifyEventWithdrawSuccess:           "WithdrawSuccess",
	NotifyEventWithdrawFail:              "WithdrawFail",
	NotifyEventKycVerifySuccess:          "KycVerifySuccess",
	NotifyEventKycVerifyFail:             "KycVerifyFail",
	NotifyEventKycReverify:               "KycReverify",
	NotifyEventCreditCardVerifySuccess:   "CreditCardVerifySuccess",
	NotifyEventCreditCardVerifyFail:      "CreditCardVerifyFail",
	NotifyEventLoginWarning:              "LoginWarning",
	NotifyEventUpdateProfileSuccess:      "UpdateProfileSuccess",
	NotifyEventLoginSuccess:              "LoginSuccess",
	NotifyEventVerifyEmail:               "VerifyEmail",
	NotifyEventVerifyPhone:               "VerifyPhone",
	NotifyEventBackstageVerifyKyc:        "BackstageVerifyKyc",
	NotifyEventBackstageVerifyWithdraw:   "BackstageVerifyWithdraw",
	NotifyEventBackstageVerifyDeposit:    "BackstageVerifyDeposit",
	NotifyEventBackstageVerifyCreditCard: "BackstageVerifyCreditCard",
	NotifyEventNewEventOnline:            "NewEventOnline",
	NotifyEventVipLevelUp:                "VipLevelUp",
	NotifyEventBonusExpiration:           "BonusExpiration",
	NotifyEventEventCompletion:           "EventCompletion",
	NotifyEventReceiveTips:               "ReceiveTips",
	NotifyEventGiveTips:                  "GiveTips",
	NotifyEventReceiveBirthdayBonus:      "ReceiveBirthdayBonus",
	NotifyEventActivitySerialNumber:      "ActivitySerialNumber",
	NotifyEventReceiveBonus:              "ReceiveBonus",
	NotifyEventForgetPassword:            "ForgetPassword",
	NotifyEventLoginPasswordReset:        "LoginPasswordReset",
	NotifyEventLoginPasswordChange:       "LoginPasswordChange",
	NotifyEventWithdrawPasswordSet:       "WithdrawPasswordSet",
	NotifyEventWithdrawPasswordReset:     "WithdrawPasswordReset",
}

// backstageEvents are the only codes whose platform is Backstage; every
// other code maps to Frontend. Taken from notify_event.rs's get_platform().
var backstageEvents = map[NotifyEvent]bool{
	NotifyEventBackstageVerifyKyc:        true,
	NotifyEventBackstageVerifyWithdraw:   true,
	NotifyEventBackstageVerifyDeposit:    true,
	NotifyEventBackstageVerifyCreditCard: true,
}

func (e NotifyEvent) Valid() bool {
	_, ok := notifyEventNames[e]
	return ok
}

func (e NotifyEvent) String() string {
	if name, ok := notifyEventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("NotifyEvent(%d)", int(e))
}

// Platform returns the platform this system event code is seeded under.
func (e NotifyEvent) Platform() Platform {
	if backstageEvents[e] {
		return PlatformBackstage
	}
	return PlatformFrontend
}

func ParseNotifyEvent(v int) (NotifyEvent, error) {
	e := NotifyEvent(v)
	if !e.Valid() {
		return 0, NewArgumentError(fmt.Sprintf("invalid notify_event %d", v))
	}
	return e, nil
}
