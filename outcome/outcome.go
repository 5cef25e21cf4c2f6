// Package outcome classifies the failures that fetch and compute operations
// hand back to the web layer.
package outcome

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Unexpected Kind = iota
	TransientFetch
	NoData
	InvalidSelector
	InvalidInput
)

func (k Kind) String() string {
	switch k {
	case TransientFetch:
		return "transient_fetch"
	case NoData:
		return "no_data"
	case InvalidSelector:
		return "invalid_selector"
	case InvalidInput:
		return "invalid_input"
	default:
		return "unexpected"
	}
}

// Warning reports whether errors of this kind are shown as non-fatal warnings.
func (k Kind) Warning() bool {
	return k == NoData || k == InvalidSelector || k == InvalidInput
}

type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind, so errors.Is(err, &Error{Kind: NoData}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Msg == "" && t.Err == nil
}

func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func Errorf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or Unexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unexpected
}

// UserMessage is the text shown to the end user. Unexpected errors are
// summarized; their detail belongs in the server log.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return "An unexpected error occurred. Please try again."
	}
	switch e.Kind {
	case TransientFetch:
		if e.Msg != "" {
			return "Could not get data: " + e.Msg + "."
		}
		return "Could not get data from the stats service. Please check your network connection."
	case Unexpected:
		return "An unexpected error occurred. Please try again."
	default:
		if e.Msg != "" {
			return e.Msg
		}
		return e.Kind.String()
	}
}
