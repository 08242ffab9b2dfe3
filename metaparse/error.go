package metaparse

import "fmt"

// ParseError is the fatal meta-parse error of §7 kind 1: a malformed
// token sequence (missing operand, unbalanced bracket, invalid count, or
// unknown token), identified by the offending token's offset. Meta-parse
// errors are fatal by design (§1 Non-goals): there is no recovery, no
// retry — callers must fix their grammar.
type ParseError struct {
	Offset int
	Reason string
	Inner  error
}

func (e *ParseError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("meta-parse error at offset %d: %s: %v", e.Offset, e.Reason, e.Inner)
	}
	return fmt.Sprintf("meta-parse error at offset %d: %s", e.Offset, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Inner
}

func errAt(offset int, reason string) error {
	return &ParseError{Offset: offset, Reason: reason}
}

func errAtf(offset int, format string, args ...interface{}) error {
	return &ParseError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}
