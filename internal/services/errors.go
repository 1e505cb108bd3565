package services

import (
	"errors"
)

// Error kinds. Handlers map these to HTTP statuses with errors.Is.
var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrOTPNotFound        = errors.New("otp not found")
	ErrOTPExpired         = errors.New("otp expired")
	ErrOTPLocked          = errors.New("otp locked")
	ErrInvalidCode        = errors.New("invalid otp")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConfiguration      = errors.New("configuration error")
	ErrEmailDelivery      = errors.New("email delivery failed")
	ErrTooLarge           = errors.New("payload too large")
	ErrUnavailable        = errors.New("feature unavailable")
)

// Error pairs an error kind with the message shown to the client. Cause,
// when set, is internal detail that is only surfaced outside production.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func newError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

func wrapError(kind error, message string, cause error) error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}
