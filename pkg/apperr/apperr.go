package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failed operation.
type Kind int

const (
	KindInternal Kind = iota
	KindAuthorization
	KindCapacity
	KindState
	KindFunds
	KindNotFound
	KindInvalidAmount
	KindConflict
	KindInvalid
)

var kindNames = map[Kind]string{
	KindInternal:      "internal",
	KindAuthorization: "authorization",
	KindCapacity:      "capacity",
	KindState:         "state",
	KindFunds:         "funds",
	KindNotFound:      "not_found",
	KindInvalidAmount: "invalid_amount",
	KindConflict:      "conflict",
	KindInvalid:       "invalid",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinels usable with errors.Is against any *Error of the same kind.
var (
	ErrAuthorization = &Error{Kind: KindAuthorization}
	ErrCapacity      = &Error{Kind: KindCapacity}
	ErrState         = &Error{Kind: KindState}
	ErrFunds         = &Error{Kind: KindFunds}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrInvalidAmount = &Error{Kind: KindInvalidAmount}
	ErrConflict      = &Error{Kind: KindConflict}
	ErrInvalid       = &Error{Kind: KindInvalid}
)

// Error is the structured result of a failed operation.
type Error struct {
	Kind Kind
	// Op is the operation that failed, e.g. "publish_news".
	Op  string
	Err error
}

// E builds an Error of the given kind for op.
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same Kind, so the package sentinels work
// with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

// KindOf returns the Kind of the first *Error in err's chain, or
// KindInternal if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the innermost cause text, without kind or op prefixes.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Err != nil {
		return e.Err.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
