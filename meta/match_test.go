package meta

import "testing"

// TestFindMatch checks the match bounds and text the engine reports,
// including empty matches and the ends chosen by committed quantifiers.
func TestFindMatch(t *testing.T) {
	tests := []struct {
		pattern  string
		haystack string
		start    int
		end      int
		text     string
	}{
		{"foo", "a foo b", 2, 5, "foo"},
		// Empty matches.
		{"a*", "bbb", 0, 0, ""},
		{"x*$", "ab", 2, 2, ""},
		{"$", "", 0, 0, ""},
		{"^", "abc", 0, 0, ""},
		// Greedy quantifiers keep everything they consumed.
		{"a*", "aaab", 0, 3, "aaa"},
		{"a{1,2}", "aaaa", 0, 2, "aa"},
		// The first successful branch sets the end.
		{"(a|ab)", "abc", 0, 1, "a"},
		{"(ab|a)", "abc", 0, 2, "ab"},
		{"b+$", "abb", 1, 3, "bb"},
	}

	for _, tt := range tests {
		for _, config := range []Config{DefaultConfig(), optimized()} {
			engine := mustCompile(t, tt.pattern, config)
			m, ok := engine.Find([]byte(tt.haystack))
			if !ok {
				t.Errorf("%q on %q (optimize=%v): no match", tt.pattern, tt.haystack, config.Optimize)
				continue
			}
			if m.Start() != tt.start || m.End() != tt.end || m.String() != tt.text {
				t.Errorf("%q on %q (optimize=%v) = (%d, %d, %q), want (%d, %d, %q)",
					tt.pattern, tt.haystack, config.Optimize,
					m.Start(), m.End(), m.String(), tt.start, tt.end, tt.text)
			}
		}
	}
}

func TestFindMatchNone(t *testing.T) {
	m, ok := mustCompile(t, "(a|ab)c", DefaultConfig()).Find([]byte("abc"))
	if ok {
		t.Errorf("Find() = (%d, %d), want no match", m.Start(), m.End())
	}
}

// TestMatchBytesAliasesHaystack checks that Bytes is a view, not a copy.
func TestMatchBytesAliasesHaystack(t *testing.T) {
	haystack := []byte("id=42;")
	m, ok := mustCompile(t, `\d+`, DefaultConfig()).Find(haystack)
	if !ok {
		t.Fatal("expected a match")
	}
	b := m.Bytes()
	if string(b) != "42" {
		t.Fatalf("Bytes() = %q, want 42", b)
	}
	if &b[0] != &haystack[3] {
		t.Error("Bytes() should point into the haystack")
	}
}
