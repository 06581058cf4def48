// Package apperrors classifies quote loading failures. The message of an
// *Error is safe to show in the widget and to log; the cause stays available
// to errors.Is and errors.As.
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
	KindUnexpected Kind = "unexpected"
)

var kindMessages = map[Kind]string{
	KindTransient:  "Temporary upstream error.",
	KindRateLimit:  "Quote service rate limit exceeded.",
	KindAuth:       "Authentication failed. Please verify your API key.",
	KindValidation: "Quote response was not usable.",
	KindBadRequest: "Request rejected by the quote service.",
	KindUnexpected: "Unexpected failure while loading.",
}

// Message is the default user-facing text for k.
func (k Kind) Message() string {
	if m, ok := kindMessages[k]; ok {
		return m
	}
	return "Request failed."
}

// ConfigProblem reports kinds that persist until the user changes the key or
// model. They are logged louder than network noise.
func (k Kind) ConfigProblem() bool {
	return k == KindAuth || k == KindBadRequest
}

type Error struct {
	Kind        Kind
	SafeMessage string
	Cause       error
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return ""
	case strings.TrimSpace(e.SafeMessage) != "":
		return strings.TrimSpace(e.SafeMessage)
	case e.Cause != nil:
		return e.Cause.Error()
	}
	return e.Kind.Message()
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// New wraps cause as kind. A blank safeMessage takes the kind's default.
func New(kind Kind, safeMessage string, cause error) error {
	msg := strings.TrimSpace(safeMessage)
	if msg == "" {
		msg = kind.Message()
	}
	return &Error{Kind: kind, SafeMessage: msg, Cause: cause}
}

func Auth(err error) error       { return New(KindAuth, "", err) }
func Validation(err error) error { return New(KindValidation, "", err) }
func Unexpected(err error) error { return New(KindUnexpected, "", err) }

func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// Is reports whether err carries kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// PublicMessage is the text a front end may display for err.
func PublicMessage(err error) string {
	var e *Error
	switch {
	case err == nil:
		return ""
	case errors.As(err, &e):
		return e.Error()
	}
	return err.Error()
}

func IsConfigProblem(err error) bool {
	k, ok := KindOf(err)
	return ok && k.ConfigProblem()
}
