// Package apperrors classifies provider failures into a small set of
// kinds so the retry loop can pick a policy without inspecting error
// strings.
package apperrors

import (
	"errors"
	"strings"
)

type Kind string

const (
	KindTransient  Kind = "transient"
	KindRateLimit  Kind = "rate_limit"
	KindAuth       Kind = "auth"
	KindValidation Kind = "validation"
	KindBadRequest Kind = "bad_request"
)

// Error pairs a kind with a message safe for user-facing output.
// The wrapped cause stays available for troubleshooting but is never
// shown directly, since provider errors can echo prompt text.
type Error struct {
	Kind        Kind
	SafeMessage string
	Cause       error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if msg := strings.TrimSpace(e.SafeMessage); msg != "" {
		return msg
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

var kindMessages = map[Kind]string{
	KindTransient:  "Temporary upstream error. Please try again.",
	KindRateLimit:  "Rate limit exceeded. Please try again later.",
	KindAuth:       "Authentication failed. Please verify your API key and permissions.",
	KindValidation: "Response validation failed.",
	KindBadRequest: "Request rejected by upstream API.",
}

// New builds a kinded error. An empty safeMessage gets the kind's stock
// message so every error stays presentable.
func New(kind Kind, safeMessage string, cause error) error {
	msg := strings.TrimSpace(safeMessage)
	if msg == "" {
		msg = kindMessages[kind]
		if msg == "" {
			msg = "Request failed."
		}
	}
	return &Error{Kind: kind, SafeMessage: msg, Cause: cause}
}

func Transient(err error) error  { return New(KindTransient, "", err) }
func RateLimit(err error) error  { return New(KindRateLimit, "", err) }
func Auth(err error) error       { return New(KindAuth, "", err) }
func Validation(err error) error { return New(KindValidation, "", err) }
func BadRequest(err error) error { return New(KindBadRequest, "", err) }

// KindOf reports the kind of err, if it carries one.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Kind, true
}

// PublicMessage returns text safe to show the user for any error.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}

// IsRetryable reports whether another attempt could plausibly succeed.
// Validation counts: a malformed completion is a roll of the dice, not a
// permanent condition.
func IsRetryable(err error) bool {
	kind, ok := KindOf(err)
	if !ok {
		return false
	}
	return kind == KindTransient || kind == KindRateLimit || kind == KindValidation
}

func IsRateLimit(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindRateLimit
}
