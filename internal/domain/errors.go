package domain

import (
	"errors"
)

// Every error kind below renders Msg verbatim when it is set, because handlers
// surface it to the traveller. The fallback text is only for logs.

func orDefault(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}

// NotFoundError covers unknown journeys, bookings owned by someone else and
// expired selections alike.
type NotFoundError struct {
	Resource string
	Msg      string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return orDefault(e.Msg, "not found")
	}
	return orDefault(e.Msg, e.Resource+" not found")
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError rejects traveller input. Field names the offending form field.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return orDefault(e.Msg, "invalid input")
	}
	return orDefault(e.Msg, "invalid "+e.Field)
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	if e.Resource == "" {
		return orDefault(e.Msg, "already exists")
	}
	return orDefault(e.Msg, e.Resource+" already exists")
}

func (e ConflictError) Unwrap() error { return e.Err }

// UnauthorizedError is returned when credentials or tokens do not check out.
type UnauthorizedError struct {
	Msg string
	Err error
}

func (e UnauthorizedError) Error() string { return orDefault(e.Msg, "unauthorized") }

func (e UnauthorizedError) Unwrap() error { return e.Err }

// InternalError wraps storage failures. Msg stays generic; Err keeps the cause for logs.
type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string { return orDefault(e.Msg, "internal error") }

func (e InternalError) Unwrap() error { return e.Err }

func isKind[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

func IsNotFound(err error) bool     { return isKind[NotFoundError](err) }
func IsValidation(err error) bool   { return isKind[ValidationError](err) }
func IsConflict(err error) bool     { return isKind[ConflictError](err) }
func IsInternal(err error) bool     { return isKind[InternalError](err) }
func IsUnauthorized(err error) bool { return isKind[UnauthorizedError](err) }
