// Package apperr gives every failure that reaches a client one shape:
// HTTP 500 with the text "Something went wrong: {cause}".
//
// The Kind only labels logs and metrics; it never changes the status.
package apperr

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Kind string

const (
	KindStore       Kind = "store"
	KindNotFound    Kind = "not_found"
	KindTooManyRows Kind = "too_many_rows"
	KindConstraint  Kind = "constraint"
	KindDecode      Kind = "decode"
	KindInvalidID   Kind = "invalid_id"
)

const messagePrefix = "Something went wrong: "

type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) StatusCode() int {
	return http.StatusInternalServerError
}

// Message is the client-facing body.
func (e *Error) Message() string {
	return messagePrefix + e.Error()
}

// New tags err with an explicit kind.
func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// From converts any error into an *Error, inferring the kind from store errors.
// A kind already tagged further down the chain is kept.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*Error); ok {
		return appErr
	}

	var inner *Error
	if errors.As(err, &inner) {
		return &Error{Kind: inner.Kind, Err: err}
	}

	return &Error{Kind: kindOf(err), Err: err}
}

func kindOf(err error) Kind {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return KindNotFound
	case errors.Is(err, pgx.ErrTooManyRows):
		return KindTooManyRows
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 && pgErr.Code[:2] == "23" {
		return KindConstraint
	}

	return KindStore
}
