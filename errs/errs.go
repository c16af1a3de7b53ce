// Package errs defines the two externally visible failure kinds produced by
// the runtime: RuntimeError for execution faults and ParserError for faults
// surfaced by the (external) script parser, including those re-raised by the
// runtime when an include fails to parse.
package errs

import "fmt"

// RuntimeError is raised for structural or contract faults: an unknown jump
// label, an undefined function, an exhausted statement quota, a failed
// include. It carries a message only, matching the source language's own
// runtime error shape.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// NewRuntimeError formats a RuntimeError the way fmt.Errorf formats an error.
func NewRuntimeError(format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...)}
}

// ParserError is raised by the external script parser. Line and
// ColumnNumber are 1-based and zero when unknown, mirroring go/scanner.Error's
// Pos+Msg pair. Prefix, when set, is prepended to Error()'s output by an
// including script ("Included from \"U\"").
type ParserError struct {
	Message      string
	Line         int
	ColumnNumber int
	Prefix       string
}

func (e *ParserError) Error() string {
	if e.Prefix == "" {
		return e.Message
	}
	return e.Prefix + ": " + e.Message
}

// WithPrefix returns a copy of e annotated with prefix, used by include
// (see lang/runtime) to record which including script triggered a nested
// parse failure. It does not mutate e.
func (e *ParserError) WithPrefix(prefix string) *ParserError {
	cp := *e
	if cp.Prefix == "" {
		cp.Prefix = prefix
	} else {
		cp.Prefix = prefix + " -> " + cp.Prefix
	}
	return &cp
}
