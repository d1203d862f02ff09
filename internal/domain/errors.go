package domain

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidContent       = errors.New("invalid content")
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("not found")
	ErrRestorationFailure   = errors.New("restoration failure")
	ErrTimeout              = errors.New("timeout")
	ErrUnparsableAuthorship = errors.New("unparsable authorship")
)

// ErrorKind is the machine-readable category of an engine error
type ErrorKind string

const (
	KindInternal             ErrorKind = "internal"
	KindInvalidContent       ErrorKind = "invalid_content"
	KindInvalidInput         ErrorKind = "invalid_input"
	KindNotFound             ErrorKind = "not_found"
	KindRestorationFailure   ErrorKind = "restoration_failure"
	KindTimeout              ErrorKind = "timeout"
	KindUnparsableAuthorship ErrorKind = "unparsable_authorship"
)

var kindSentinels = map[ErrorKind]error{
	KindInvalidContent:       ErrInvalidContent,
	KindInvalidInput:         ErrInvalidInput,
	KindNotFound:             ErrNotFound,
	KindRestorationFailure:   ErrRestorationFailure,
	KindTimeout:              ErrTimeout,
	KindUnparsableAuthorship: ErrUnparsableAuthorship,
}

// Error is a typed engine error carrying the operation context it happened in.
// errors.Is matches it against the sentinel of its kind.
type Error struct {
	Branch string
	Err    error
	Kind   ErrorKind
	Op     string
	Repo   string
}

// NewError creates an error of the given kind
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Error implements error
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
	}
	if e.Repo != "" {
		b.WriteString(" repo=")
		b.WriteString(e.Repo)
	}
	if e.Branch != "" {
		b.WriteString(" branch=")
		b.WriteString(e.Branch)
	}
	if b.Len() > 0 {
		b.WriteString(": ")
	}
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString(string(e.Kind))
	}
	return b.String()
}

// Unwrap exposes both the kind sentinel and the cause
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s, ok := kindSentinels[e.Kind]; ok {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Detail returns the cause text without the operation prefix
func (e *Error) Detail() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

// KindOf returns the kind of err, or KindInternal for untyped errors
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		if de.Kind == KindInternal && errors.Is(de.Err, context.DeadlineExceeded) {
			return KindTimeout
		}
		return de.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	for kind, sentinel := range kindSentinels {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return KindInternal
}

// WrapError attaches operation context to err, keeping its kind
func WrapError(err error, op, repo, branch string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Branch: branch,
		Err:    err,
		Kind:   KindOf(err),
		Op:     op,
		Repo:   repo,
	}
}

// NotFoundError reports a missing ref or object
func NotFoundError(op string, err error) *Error {
	return NewError(KindNotFound, op, err)
}

// InvalidInputError reports a request rejected before any I/O
func InvalidInputError(op string, err error) *Error {
	return NewError(KindInvalidInput, op, err)
}
