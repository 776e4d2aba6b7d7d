// Package services defines the business logic for profiles, notes and the
// static content catalog. This file centralizes the service-level error type
// so that every service method fails in one of a small set of kinds that the
// handler layer maps to HTTP status codes deterministically.
//
// Translation into user-facing responses is performed at the handler layer;
// services never reference HTTP.
package services

import "errors"

// Kind classifies a service failure.
type Kind int

const (
	// KindUnknown is reported for errors that did not originate here.
	KindUnknown Kind = iota
	// KindValidation means the caller supplied bad input.
	KindValidation
	// KindNotFound means the requested record or content does not exist.
	KindNotFound
	// KindStore means the document store failed.
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindStore:
		return "store"
	}
	return "unknown"
}

// User-facing messages shared with the handler layer.
const (
	MsgWeekRange       = "Week must be between 1 and 42"
	MsgContentNotFound = "Content not found"
	MsgInvalidMode     = "mode must be 'vaginal' or 'cesarean'"
	MsgEmailRequired   = "email is required"
	MsgTextRequired    = "text is required"
	MsgNameRequired    = "name is required"
	MsgProfileNotFound = "profile not found"
)

// Error is the error type returned by service methods.
type Error struct {
	Kind Kind
	// Msg is safe to show to API clients.
	Msg string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Msg == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validation returns a KindValidation error with msg.
func Validation(msg string) error { return &Error{Kind: KindValidation, Msg: msg} }

// NotFound returns a KindNotFound error with msg.
func NotFound(msg string) error { return &Error{Kind: KindNotFound, Msg: msg} }

// Store wraps a document store failure. The message carries the failure
// text so clients see what went wrong.
func Store(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindStore, Msg: err.Error(), Err: err}
}

// KindOf reports the Kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

// MessageOf returns the client-safe message of err.
func MessageOf(err error) string {
	var se *Error
	if errors.As(err, &se) && se.Msg != "" {
		return se.Msg
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
