package application

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	default:
		return "internal"
	}
}

// Error is returned by every Service operation. Code is a stable
// machine-readable reason; Message is safe to show to the client.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

// Client-facing messages.
const (
	MsgMissingFields      = "All fields are required."
	MsgInvalidEmail       = "Invalid email format."
	MsgInvalidPhone       = "Phone must be 10 digits."
	MsgFieldTooLong       = "One or more fields are too long."
	MsgPasswordTooLong    = "Password must be at most 72 bytes."
	MsgUserIDExists       = "User ID already exists. Please choose another."
	MsgEmailExists        = "Email already registered. Please login."
	MsgLoginMissingFields = "User ID / Username and password are required."
	MsgInvalidCredentials = "Invalid User ID / username or password."
	MsgServerError        = "Server error. Please try again."
)

var (
	ErrMissingFields      = &Error{Kind: KindValidation, Code: "missing_fields", Message: MsgMissingFields}
	ErrInvalidEmail       = &Error{Kind: KindValidation, Code: "invalid_email", Message: MsgInvalidEmail}
	ErrInvalidPhone       = &Error{Kind: KindValidation, Code: "invalid_phone", Message: MsgInvalidPhone}
	ErrFieldTooLong       = &Error{Kind: KindValidation, Code: "field_too_long", Message: MsgFieldTooLong}
	ErrPasswordTooLong    = &Error{Kind: KindValidation, Code: "password_too_long", Message: MsgPasswordTooLong}
	ErrUserIDExists       = &Error{Kind: KindConflict, Code: "user_id_exists", Message: MsgUserIDExists}
	ErrEmailExists        = &Error{Kind: KindConflict, Code: "email_exists", Message: MsgEmailExists}
	ErrLoginMissingFields = &Error{Kind: KindValidation, Code: "missing_fields", Message: MsgLoginMissingFields}
	ErrInvalidCredentials = &Error{Kind: KindAuth, Code: "invalid_credentials", Message: MsgInvalidCredentials}
)

func internal(err error) *Error {
	return &Error{Kind: KindInternal, Code: "internal", Message: MsgServerError, Err: err}
}

// KindOf returns the Kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
