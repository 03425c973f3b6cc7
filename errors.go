package ladder

import (
	"errors"
	"fmt"
)

// ErrorKind classifies solver failures.
type ErrorKind int

const (
	// KindNotReady: a query was issued before a lexicon finished loading.
	KindNotReady ErrorKind = iota + 1
	// KindNoElements: the loaded lexicon, or the common word list, is empty.
	KindNoElements
	// KindInvalidSource: a dictionary or common word source could not be retrieved or parsed.
	KindInvalidSource
	// KindInvalidParameter: query words do not match the lexicon's word length.
	KindInvalidParameter
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotReady:
		return "not-ready"
	case KindNoElements:
		return "no-elements"
	case KindInvalidSource:
		return "invalid-source"
	case KindInvalidParameter:
		return "invalid-parameter"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the error type returned by Solver. Use errors.Is with the Err* sentinels to match a
// kind, or errors.As to read the operation and detail.
type Error struct {
	Kind   ErrorKind
	Op     string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "ladder: " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinel errors for errors.Is.
var (
	ErrNotReady = &Error{
		Kind:   KindNotReady,
		Detail: "the solver has not completed loading; have the dictionaries been loaded?",
	}
	ErrNoElements = &Error{
		Kind:   KindNoElements,
		Detail: "no words are available; check that the correct dictionary was loaded",
	}
	ErrInvalidSource = &Error{
		Kind:   KindInvalidSource,
		Detail: "the dictionary source could not be retrieved or parsed",
	}
	ErrInvalidParameter = &Error{
		Kind:   KindInvalidParameter,
		Detail: "parameters do not meet the requirements",
	}
)

func newError(kind ErrorKind, op, detail string, err error) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail, Err: err}
}
