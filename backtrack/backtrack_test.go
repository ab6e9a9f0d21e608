package backtrack

import (
	"strings"
	"testing"

	"github.com/coregx/relog/syntax"
)

func mustParse(t *testing.T, pattern string) *syntax.Node {
	t.Helper()
	re, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	return re
}

func TestMatchAt(t *testing.T) {
	tests := []struct {
		pattern string
		text    string
		pos     int
		wantOK  bool
		wantEnd int
	}{
		{"a", "a", 0, true, 1},
		{"a", "b", 0, false, 0},
		{"a", "", 0, false, 0},
		{"", "xyz", 1, true, 1},
		{".", "\n", 0, false, 0},
		{".", "x", 0, true, 1},
		{"^", "ab", 0, true, 0},
		{"^", "ab", 1, false, 1},
		{"$", "ab", 2, true, 2},
		{"$", "ab", 1, false, 1},
		{"a*", "aaab", 0, true, 3},
		{"a*", "b", 0, true, 0},
		{"a+", "aaab", 0, true, 3},
		{"a+", "b", 0, false, 0},
		{"a?", "aa", 0, true, 1},
		{"a?", "b", 0, true, 0},
		{"a{2}", "aaa", 0, true, 2},
		{"a{2}", "ab", 0, false, 0},
		{"a{2,}", "aaaa", 0, true, 4},
		{"a{2,3}", "aaaa", 0, true, 3},
		{"a{0,2}", "", 0, true, 0},
		{"a{3,1}", "aaaaa", 0, true, 3},
		{"a{3,1}", "aa", 0, false, 0},
		{"ab|a", "ab", 0, true, 2},
		{"a|ab", "ab", 0, true, 1},
		{"(ab)+", "ababa", 0, true, 4},
		{"abc", "abd", 0, false, 2},
		{"[^a-z]", "5", 0, true, 1},
		{"[^]", "\n", 0, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.text, func(t *testing.T) {
			ok, end := MatchAt(mustParse(t, tt.pattern), []byte(tt.text), tt.pos)
			if ok != tt.wantOK || end != tt.wantEnd {
				t.Errorf("MatchAt(%q, %q, %d) = (%v, %d), want (%v, %d)",
					tt.pattern, tt.text, tt.pos, ok, end, tt.wantOK, tt.wantEnd)
			}
		})
	}
}

// TestCommitSemantics pins the no-retry behaviour of alternation and
// repetition. A full backtracking engine would match all of these.
func TestCommitSemantics(t *testing.T) {
	tests := []struct {
		pattern string
		text    string
		want    bool
	}{
		{"(a|ab)c", "abc", false},
		{"(a|ab)c", "ac", true},
		{"(ab|a)c", "abc", true},
		{"a*a", "aaa", false},
		{"a+a", "aa", false},
		{"a?a", "a", false},
		{"a{1,3}a", "aaa", false},
		{"a{1,3}a", "aaaa", true},
		{"^.*x$", "abx", false},
		{"x.*", "abx", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.text, func(t *testing.T) {
			if got := IsMatch(mustParse(t, tt.pattern), []byte(tt.text)); got != tt.want {
				t.Errorf("IsMatch(%q, %q) = %v, want %v", tt.pattern, tt.text, got, tt.want)
			}
		})
	}
}

func TestZeroWidthRepetitionTerminates(t *testing.T) {
	patterns := []string{"(a*)*", "(a*)+", "(a?){5,}", "(^)*", "($)+b", "(|a)*"}
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			re := mustParse(t, pattern)
			IsMatch(re, []byte("aaab"))
			IsMatch(re, nil)
		})
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		pattern   string
		text      string
		from      int
		wantStart int
		wantEnd   int
		wantOK    bool
	}{
		{"world", "hello world", 0, 6, 11, true},
		{`\d+`, "abc123", 0, 3, 6, true},
		{"a{2,4}", "aaaaa", 0, 0, 4, true},
		{"a{2,4}", "aaaaa", 2, 2, 5, true},
		{"", "abc", 0, 0, 0, true},
		{"", "abc", 3, 3, 3, true},
		{"$", "abc", 0, 3, 3, true},
		{"^abc", "xabc", 0, -1, -1, false},
		{"^b", "ab", 1, -1, -1, false},
		{"z", "abc", 0, -1, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.text, func(t *testing.T) {
			start, end, ok := Search(mustParse(t, tt.pattern), []byte(tt.text), tt.from)
			if start != tt.wantStart || end != tt.wantEnd || ok != tt.wantOK {
				t.Errorf("Search(%q, %q, %d) = (%d, %d, %v), want (%d, %d, %v)",
					tt.pattern, tt.text, tt.from, start, end, ok,
					tt.wantStart, tt.wantEnd, tt.wantOK)
			}
		})
	}
}

func TestMatchAtConcurrent(t *testing.T) {
	re := mustParse(t, `[a-z]+@[a-z]+\.com`)
	text := []byte(strings.Repeat("x", 100) + " user@example.com")

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				if start, _, ok := Search(re, text, 0); !ok || start != 101 {
					t.Errorf("Search = (%d, %v), want (101, true)", start, ok)
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
