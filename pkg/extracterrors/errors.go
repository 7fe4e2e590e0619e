package extracterrors

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindMissingRequiredTable     Kind = "MissingRequiredTable"
	KindSchemaMismatch           Kind = "SchemaMismatch"
	KindRowArityMismatch         Kind = "RowArityMismatch"
	KindInvalidValue             Kind = "InvalidValue"
	KindUnsupportedCalendarRow   Kind = "UnsupportedCalendarRow"
	KindUnsupportedExceptionType Kind = "UnsupportedExceptionType"
	KindUnresolvedReference      Kind = "UnresolvedReference"
)

// Sentinels so callers can use errors.Is against a kind.
var (
	ErrMissingRequiredTable     = &Error{Kind: KindMissingRequiredTable}
	ErrSchemaMismatch           = &Error{Kind: KindSchemaMismatch}
	ErrRowArityMismatch         = &Error{Kind: KindRowArityMismatch}
	ErrInvalidValue             = &Error{Kind: KindInvalidValue}
	ErrUnsupportedCalendarRow   = &Error{Kind: KindUnsupportedCalendarRow}
	ErrUnsupportedExceptionType = &Error{Kind: KindUnsupportedExceptionType}
	ErrUnresolvedReference      = &Error{Kind: KindUnresolvedReference}
)

// Error is a fatal extraction failure. Table, Column and Line are set when the
// failure can be traced back to a position in the feed.
type Error struct {
	Kind   Kind
	Table  string
	Column string
	Line   int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))

	if e.Table != "" {
		fmt.Fprintf(&b, " in %s.txt", e.Table)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %q", e.Column)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, which makes the sentinels usable with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

func New(kind Kind, table string, detail string) *Error {
	return &Error{Kind: kind, Table: table, Detail: detail}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return ""
}
