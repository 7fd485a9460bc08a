// Package errors provides error handling for oascaffold.
//
// It re-exports github.com/cockroachdb/errors so that every package wraps,
// marks and inspects errors the same way, and it defines the failure
// taxonomy of the generator:
//
//	ErrIO            a file could not be read, created or written
//	ErrParse         an input source unit is not valid Go
//	ErrFormat        an emitted tree failed to re-parse (generator defect)
//	ErrDuplicate     two derived names collide
//	ErrMissingSuffix an identifier lacks the expected suffix marker
//
// Taxonomy errors are attached with Mark, so errors.Is keeps matching
// after any number of Wrap calls.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

var (
	// ErrIO indicates a file could not be read, created or written.
	ErrIO = New("io error")

	// ErrParse indicates a source unit is not syntactically valid Go.
	ErrParse = New("parse error")

	// ErrFormat indicates generated code failed to re-parse.
	ErrFormat = New("format error")

	// ErrDuplicate indicates two derived names collide.
	ErrDuplicate = New("duplicate name")

	// ErrMissingSuffix indicates an identifier does not carry the suffix marker.
	ErrMissingSuffix = New("missing suffix")
)

// IO marks err as an ErrIO and wraps it with the offending path.
func IO(err error, path string) error {
	if err == nil {
		return nil
	}
	return Mark(Wrapf(err, "%s", path), ErrIO)
}

// Parse marks err as an ErrParse and wraps it with the offending path.
func Parse(err error, path string) error {
	if err == nil {
		return nil
	}
	return Mark(Wrapf(err, "parse %s", path), ErrParse)
}

// Format marks err as an ErrFormat. Formatting errors are generator defects,
// so the hint points at the emitted unit instead of the user's input.
func Format(err error, path string) error {
	if err == nil {
		return nil
	}
	return WithHintf(Mark(Wrapf(err, "format %s", path), ErrFormat),
		"the code generated for %s is not valid Go; please report this", path)
}

// Duplicatef returns an ErrDuplicate with a formatted message.
func Duplicatef(format string, args ...any) error {
	return Mark(Newf(format, args...), ErrDuplicate)
}

// IsIO reports whether err is or wraps ErrIO.
func IsIO(err error) bool { return err != nil && Is(err, ErrIO) }

// IsParse reports whether err is or wraps ErrParse.
func IsParse(err error) bool { return err != nil && Is(err, ErrParse) }

// IsFormat reports whether err is or wraps ErrFormat.
func IsFormat(err error) bool { return err != nil && Is(err, ErrFormat) }
