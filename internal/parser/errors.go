package parser

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrorFormat ErrorKind = "FORMAT_ERROR"
	ErrorSchema ErrorKind = "SCHEMA_ERROR"
)

const expectedShape = `{"interactionModel": {"languageModel": {"intents": [...], "types": [...]}}}`

type Error struct {
	Kind   ErrorKind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("parser: %s (%s)", e.Kind, e.Reason)
	}
	return fmt.Sprintf("parser: %s (%s): %v", e.Kind, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(kind ErrorKind, reason string, err error) *Error {
	return &Error{Kind: kind, Reason: reason, Err: err}
}

func IsFormatError(err error) bool {
	return hasKind(err, ErrorFormat)
}

func IsSchemaError(err error) bool {
	return hasKind(err, ErrorSchema)
}

func hasKind(err error, kind ErrorKind) bool {
	var perr *Error
	if !errors.As(err, &perr) {
		return false
	}
	return perr.Kind == kind
}
