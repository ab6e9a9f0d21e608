// Package relog provides a small backtracking regex engine for classifying
// log lines.
//
// The engine walks the parsed pattern directly against the text. It supports
// literals, '.', bracket classes, \d \w \s, the anchors ^ and $, grouping,
// alternation and the quantifiers * + ? {n} {n,} {n,m}. Matching is byte
// oriented and ASCII only.
//
// Basic usage:
//
//	// Compile a pattern
//	re, err := relog.Compile(`\d+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Find first match
//	match := re.Find([]byte("hello 123 world"))
//	fmt.Println(string(match)) // "123"
//
//	// Check if matches
//	if re.MatchString("hello 123") {
//	    fmt.Println("matched!")
//	}
//
// Advanced usage:
//
//	// Case-insensitive, prefiltered
//	config := relog.DefaultConfig()
//	config.CaseInsensitive = true
//	config.Optimize = true
//	re, err := relog.CompileWithConfig("error|fatal", config)
//
// Semantics:
//   - A match is reported at the lowest start offset where the pattern
//     succeeds; ^ and $ refer to the whole text, not to that offset
//   - Alternation and quantifiers commit to the first way they succeed and
//     are never retried when later parts of the pattern fail, so (a|ab)c
//     does not match "abc"
//
// Limitations:
//   - No capture groups or back-references
//   - No Unicode classes, lookaround, or multiline mode
//   - No match timeouts; matching time is not polynomially bounded
package relog

import (
	"github.com/coregx/relog/meta"
)

// Regex represents a compiled regular expression.
//
// A Regex is safe to use concurrently from multiple goroutines.
//
// Example:
//
//	re := relog.MustCompile(`hello`)
//	if re.Match([]byte("hello world")) {
//	    println("matched!")
//	}
type Regex struct {
	engine  *meta.Engine
	pattern string
}

// Config is the compile-time configuration. See meta.Config.
type Config = meta.Config

// Compile compiles a regular expression pattern with the default configuration.
//
// Returns a *syntax.Error if the pattern is invalid.
//
// Example:
//
//	re, err := relog.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a regular expression pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
//
// Example:
//
//	var errorRegex = relog.MustCompile(`error|fatal`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("regexp: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := relog.DefaultConfig()
//	config.CaseInsensitive = true
//	re, err := relog.CompileWithConfig("warn(ing)?", config)
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	engine, err := meta.Compile(pattern, config)
	if err != nil {
		return nil, err
	}

	return &Regex{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// DefaultConfig returns the default configuration for compilation:
// case-sensitive and without prefiltering.
//
// Users can customize this and pass to CompileWithConfig.
func DefaultConfig() Config {
	return meta.DefaultConfig()
}

// MatchString reports whether the string s contains any match of pattern.
// The pattern is compiled and discarded on every call.
func MatchString(pattern, s string) (bool, error) {
	re, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}

// FindStringIndex returns the location of the first match of pattern in s,
// or nil if there is none. The pattern is compiled and discarded on every call.
func FindStringIndex(pattern, s string) ([]int, error) {
	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	return re.FindStringIndex(s), nil
}

// QuoteMeta returns a string that escapes all regular expression metacharacters
// inside the argument text; the returned string is a regular expression matching
// the literal text.
//
// Example:
//
//	escaped := relog.QuoteMeta("hello.world")
//	// escaped = "hello\\.world"
//	re := relog.MustCompile(escaped)
//	re.MatchString("hello.world") // true
func QuoteMeta(s string) string {
	// Special characters that need escaping in regex
	const special = `\.+*?()|[]{}^$`

	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}

	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

// isSpecial returns true if c is in the special characters string.
func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}

// Match reports whether the byte slice b contains any match of the pattern.
func (r *Regex) Match(b []byte) bool {
	return r.engine.IsMatch(b)
}

// MatchString reports whether the string s contains any match of the pattern.
//
// Example:
//
//	re := relog.MustCompile(`\d+`)
//	re.MatchString("hello 123") // true
func (r *Regex) MatchString(s string) bool {
	return r.engine.IsMatch([]byte(s))
}

// Find returns a slice holding the text of the first match in b.
// Returns nil if no match is found.
func (r *Regex) Find(b []byte) []byte {
	start, end, ok := r.engine.FindIndices(b)
	if !ok {
		return nil
	}
	return b[start:end:end]
}

// FindString returns a string holding the text of the first match in s.
// Returns empty string if no match is found.
func (r *Regex) FindString(s string) string {
	start, end, ok := r.engine.FindIndices([]byte(s))
	if !ok {
		return ""
	}
	return s[start:end]
}

// FindIndex returns a two-element slice of integers defining the location of
// the first match in b. The match itself is at b[loc[0]:loc[1]].
// Returns nil if no match is found.
func (r *Regex) FindIndex(b []byte) []int {
	start, end, ok := r.engine.FindIndices(b)
	if !ok {
		return nil
	}
	return []int{start, end}
}

// FindStringIndex returns a two-element slice of integers defining the location
// of the first match in s.
// Returns nil if no match is found.
//
// Example:
//
//	re := relog.MustCompile(`world`)
//	loc := re.FindStringIndex("hello world") // [6, 11]
func (r *Regex) FindStringIndex(s string) []int {
	return r.FindIndex([]byte(s))
}

// FindMatch returns the first match in b as a meta.Match.
func (r *Regex) FindMatch(b []byte) (meta.Match, bool) {
	return r.engine.Find(b)
}

// FindAllIndex returns the locations of all successive non-overlapping matches
// in b. If n > 0, it returns at most n matches. If n < 0, it returns all matches.
// An empty match immediately after the previous match is skipped.
func (r *Regex) FindAllIndex(b []byte, n int) [][]int {
	if n == 0 {
		return nil
	}

	var matches [][]int
	pos, prevEnd := 0, -1
	for pos <= len(b) {
		start, end, ok := r.engine.FindAt(b, pos)
		if !ok {
			break
		}

		if start == end && start == prevEnd {
			// Empty match adjacent to the previous one: advance by 1
			pos = start + 1
			continue
		}
		matches = append(matches, []int{start, end})
		prevEnd = end

		if end > start {
			pos = end
		} else {
			pos = end + 1
		}

		if n > 0 && len(matches) >= n {
			break
		}
	}

	return matches
}

// FindAll returns a slice of all successive matches of the pattern in b.
// If n > 0, it returns at most n matches. If n < 0, it returns all matches.
//
// Example:
//
//	re := relog.MustCompile(`\d+`)
//	matches := re.FindAll([]byte("1 2 3"), -1)
//	// matches = [[]byte("1"), []byte("2"), []byte("3")]
func (r *Regex) FindAll(b []byte, n int) [][]byte {
	locs := r.FindAllIndex(b, n)
	if locs == nil {
		return nil
	}

	matches := make([][]byte, len(locs))
	for i, loc := range locs {
		matches[i] = b[loc[0]:loc[1]:loc[1]]
	}
	return matches
}

// FindAllString returns a slice of all successive matches of the pattern in s.
// If n > 0, it returns at most n matches. If n < 0, it returns all matches.
func (r *Regex) FindAllString(s string, n int) []string {
	locs := r.FindAllIndex([]byte(s), n)
	if locs == nil {
		return nil
	}

	result := make([]string, len(locs))
	for i, loc := range locs {
		result[i] = s[loc[0]:loc[1]]
	}
	return result
}

// Count returns the number of non-overlapping matches in b, as FindAllIndex
// would report them.
func (r *Regex) Count(b []byte, n int) int {
	return len(r.FindAllIndex(b, n))
}

// String returns the source text used to compile the regular expression.
func (r *Regex) String() string {
	return r.pattern
}

// Config returns the configuration the pattern was compiled with.
func (r *Regex) Config() Config {
	return r.engine.Config()
}

// Stats returns execution statistics of the underlying engine.
func (r *Regex) Stats() meta.Stats {
	return r.engine.Stats()
}

// Strategy returns the search strategy chosen at compile time.
func (r *Regex) Strategy() meta.Strategy {
	return r.engine.Strategy()
}
