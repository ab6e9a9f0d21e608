// Package syntax parses regular expression patterns into syntax trees.
//
// The parser is a single-pass recursive descent over the pattern bytes. It
// never backtracks; ambiguity is resolved by the grammar precedence:
//
//	Alternation   := Concatenation ('|' Concatenation)*
//	Concatenation := Quantified*
//	Quantified    := Atom ('*' | '+' | '?' | '{' Counts '}')?
//	Atom          := '^' | '$' | '.' | CharClass | Group | Escape | LiteralChar
//
// The resulting *Node tree is immutable once Parse returns and may be shared
// between goroutines.
package syntax

import (
	"errors"
	"fmt"
)

// Parse error codes. Every error returned by Parse wraps exactly one of these.
var (
	// ErrInvalidPattern indicates malformed top-level structure: a quantifier
	// with no preceding atom, or unparsed input such as a stray ')'.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrUnmatchedParenthesis indicates a '(' without a matching ')'.
	ErrUnmatchedParenthesis = errors.New("missing closing )")

	// ErrInvalidQuantifier indicates a malformed or unterminated {n,m}.
	ErrInvalidQuantifier = errors.New("invalid repeat count")

	// ErrInvalidCharacterClass indicates an unterminated [...] or a reversed range.
	ErrInvalidCharacterClass = errors.New("invalid character class")

	// ErrInvalidEscape indicates a trailing '\' at the end of the pattern.
	ErrInvalidEscape = errors.New("trailing backslash at end of expression")

	// ErrNestingDepth indicates groups nested deeper than Flags.MaxDepth.
	ErrNestingDepth = errors.New("expression nests too deeply")
)

// Error describes a failure to parse a pattern.
type Error struct {
	Code error  // one of the Err* sentinels above
	Expr string // the offending part of the pattern
	Pos  int    // byte offset in the pattern where the problem was detected
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("error parsing regexp: %v: `%s`", e.Code, e.Expr)
}

// Unwrap returns the error code so errors.Is works against the sentinels.
func (e *Error) Unwrap() error {
	return e.Code
}
