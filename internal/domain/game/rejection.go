package game

import (
	"errors"
	"fmt"
)

type RejectCode string

const (
	CodeWrongPhase        RejectCode = "wrong_phase"
	CodeNotYourTurn       RejectCode = "not_your_turn"
	CodeNotYourSeat       RejectCode = "not_your_seat"
	CodeMainActionTaken   RejectCode = "main_action_taken"
	CodeMainActionMissing RejectCode = "main_action_missing"
	CodePendingOpen       RejectCode = "pending_interaction"
	CodeNoPending         RejectCode = "no_pending_interaction"
	CodeInvalidTarget     RejectCode = "invalid_target"
	CodeInvalidOption     RejectCode = "invalid_option"
	CodeUnaffordable      RejectCode = "unaffordable"
	CodeLimitReached      RejectCode = "limit_reached"
	CodeOutOfRange        RejectCode = "out_of_range"
	CodeAlreadyUsed       RejectCode = "already_used"
	CodeFederation        RejectCode = "federation_threshold"
	CodeInsufficientQIC   RejectCode = "insufficient_qic"
	CodeInsufficientPower RejectCode = "insufficient_power"
	CodeNoSnapshot        RejectCode = "no_snapshot"
	CodeUnknownCommand    RejectCode = "unknown_command"
)

// Rejection is a rule refusal. The session is unchanged when one is returned.
// UserFacing rejections are always reported back to the seat.
type Rejection struct {
	Code       RejectCode `json:"code"`
	Message    string     `json:"message"`
	UserFacing bool       `json:"user_facing"`
}

func (r *Rejection) Error() string {
	return string(r.Code) + ": " + r.Message
}

func (r *Rejection) Is(target error) bool {
	var other *Rejection
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == r.Code
}

func Reject(code RejectCode, format string, args ...any) *Rejection {
	return &Rejection{Code: code, Message: fmt.Sprintf(format, args...)}
}

// RejectUser builds a rejection the seat always gets to see.
func RejectUser(code RejectCode, format string, args ...any) *Rejection {
	r := Reject(code, format, args...)
	r.UserFacing = true
	return r
}

// AsRejection unwraps err into a Rejection when it is one.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}
