package domain

import "fmt"

// The service's error taxonomy is a small set of typed errors rather than a
// third-party errors package: the teacher itself sticks to stdlib errors/
// fmt.Errorf("%w", …) throughout, so this one ambient concern stays on the
// standard library (see DESIGN.md).

// ArgumentError covers event/platform mismatches, unknown status/level
// integers, and missing required body fields.
type ArgumentError struct{ Msg string }

func (e *ArgumentError) Error() string { return "argument error: " + e.Msg }

func NewArgumentError(msg string) error { return &ArgumentError{Msg: msg} }

// DataNotFoundError covers a row absent for a composite key, an unknown
// event, or a user with no open connection.
type DataNotFoundError struct{ Msg string }

func (e *DataNotFoundError) Error() string { return "not found: " + e.Msg }

func NewDataNotFoundError(msg string) error { return &DataNotFoundError{Msg: msg} }

// ConnectionError covers external HTTP transport failures, broker pool
// exhaustion, and peer-pod RPC transport failures.
type ConnectionError struct {
	Msg string
	Err error
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return "connection error: " + e.Msg + ": " + e.Err.Error()
	}
	return "connection error: " + e.Msg
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func NewConnectionError(msg string, err error) error {
	return &ConnectionError{Msg: msg, Err: err}
}

// StatusError covers an external HTTP endpoint returning a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status error: %d: %s", e.StatusCode, e.Body)
}

func NewStatusError(statusCode int, body string) error {
	return &StatusError{StatusCode: statusCode, Body: body}
}

// InvalidPhoneNumberError covers an SMS address under the minimum length
// required for country-code extraction.
type InvalidPhoneNumberError struct{ Address string }

func (e *InvalidPhoneNumberError) Error() string {
	return "invalid phone number: " + e.Address
}

func NewInvalidPhoneNumberError(address string) error {
	return &InvalidPhoneNumberError{Address: address}
}

// InternalError covers DB commit failures, cache errors, and unexpected
// server conditions that are not caller mistakes.
type InternalError struct {
	Msg string
	Err error
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return "internal error: " + e.Msg + ": " + e.Err.Error()
	}
	return "internal error: " + e.Msg
}

func (e *InternalError) Unwrap() error { return e.Err }

func NewInternalError(msg string, err error) error {
	return &InternalError{Msg: msg, Err: err}
}

// WorkerPhase tags which phase of the Start->Update->End state machine an
// error originated in.
type WorkerPhase string

const (
	PhaseStart  WorkerPhase = "start"
	PhaseUpdate WorkerPhase = "update"
	PhaseEnd    WorkerPhase = "end"
)

// WorkerPhaseError wraps any other taxonomy member with the phase it
// occurred in, so the worker engine and its onError handlers can branch on
// phase without inspecting the wrapped error's concrete type.
type WorkerPhaseError struct {
	Phase WorkerPhase
	Err   error
}

func (e *WorkerPhaseError) Error() string {
	return string(e.Phase) + " phase error: " + e.Err.Error()
}

func (e *WorkerPhaseError) Unwrap() error { return e.Err }

func NewWorkerPhaseError(phase WorkerPhase, err error) error {
	if err == nil {
		return nil
	}
	return &WorkerPhaseError{Phase: phase, Err: err}
}
