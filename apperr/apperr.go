// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the closed set of failures the API reports.
type Kind uint8

const (
	KindNotFound Kind = iota + 1
	KindGone
	KindDuplicate
	KindStaleSchema
	KindValidation
	KindLocked
	KindUnauthorized
	KindForbidden
	KindDatabase
)

// Error is a typed failure with a catalog message and the operation that produced it.
type Error struct {
	Kind    Kind
	Message string
	Args    []any
	Op      string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if len(e.Args) > 0 {
		msg = fmt.Sprintf(e.Message, e.Args...)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the kind to its HTTP status code. These values are part of the
// public contract and must not change.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindGone:
		return http.StatusGone
	case KindDuplicate, KindStaleSchema, KindLocked:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindDatabase:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// Code is the stable machine-readable identifier sent to clients.
func (e *Error) Code() string {
	switch e.Kind {
	case KindNotFound:
		return "not_found"
	case KindGone:
		return "gone"
	case KindDuplicate:
		return "duplicate_submission"
	case KindStaleSchema:
		return "survey_modified"
	case KindValidation:
		return "validation_failed"
	case KindLocked:
		return "survey_locked"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindDatabase:
		return "database_error"
	}
	return "internal_error"
}

func NotFound(msg string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: msg, Args: args}
}

func Gone(msg string, args ...any) *Error {
	return &Error{Kind: KindGone, Message: msg, Args: args}
}

func Duplicate(msg string, args ...any) *Error {
	return &Error{Kind: KindDuplicate, Message: msg, Args: args}
}

// StaleSchema reports answers that reference questions or choices the survey no
// longer has. It signals a concurrent edit, not bad user input.
func StaleSchema(msg string, args ...any) *Error {
	return &Error{Kind: KindStaleSchema, Message: msg, Args: args}
}

func Validation(msg string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: msg, Args: args}
}

func Locked(msg string, args ...any) *Error {
	return &Error{Kind: KindLocked, Message: msg, Args: args}
}

func Unauthorized(msg string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg, Args: args}
}

func Forbidden(msg string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: msg, Args: args}
}

// Database wraps a store failure with the name of the failing operation.
func Database(op string, err error) *Error {
	return &Error{Kind: KindDatabase, Message: MsgDatabase, Op: op, Err: err}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}
