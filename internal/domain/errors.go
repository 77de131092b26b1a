package domain

import "errors"

type Kind string

const (
	KindValidation  Kind = "validation"
	KindServiceCall Kind = "service_call_failed"
	KindSynthesis   Kind = "synthesis_failed"
	KindPermission  Kind = "permission_denied"
	KindNotFound    Kind = "not_found"
	KindConflict    Kind = "conflict"
)

// Error is the only error shape the session controller hands to delivery.
// Transport and parse failures are wrapped under one of the sentinels below.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func NewValidation(msg string) error {
	return &Error{Kind: KindValidation, Msg: msg}
}

var (
	ErrEvaluationFailed = &Error{Kind: KindServiceCall, Msg: "evaluation failed"}
	ErrExtractionFailed = &Error{Kind: KindServiceCall, Msg: "document extraction failed"}
	ErrReportFailed     = &Error{Kind: KindServiceCall, Msg: "report generation failed"}
	ErrSynthesisFailed  = &Error{Kind: KindSynthesis, Msg: "speech synthesis failed"}

	ErrMicrophoneDenied = &Error{
		Kind: KindPermission,
		Msg:  "microphone access was denied: allow the microphone in the browser settings or type your answer",
	}

	ErrSessionNotFound    = &Error{Kind: KindNotFound, Msg: "session not found"}
	ErrEvaluationInFlight = &Error{Kind: KindConflict, Msg: "an evaluation is already running"}
	ErrInvalidTransition  = &Error{Kind: KindConflict, Msg: "action not allowed on this screen"}
	ErrReportPending      = &Error{Kind: KindConflict, Msg: "a report is already being generated"}
	ErrNoFeedback         = &Error{Kind: KindConflict, Msg: "no feedback to read aloud"}
)

// KindOf returns the Kind of the outermost *Error in err's chain, or "".
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
