package syntax

import "testing"

func TestCharClassMatches(t *testing.T) {
	cc := NewCharClass()
	cc.AddRange('a', 'z')
	cc.AddChar('_')

	for c := 0; c < 256; c++ {
		want := (c >= 'a' && c <= 'z') || c == '_'
		if got := cc.Matches(byte(c)); got != want {
			t.Fatalf("Matches(%q) = %v, want %v", c, got, want)
		}
	}

	cc.SetNegated(true)
	for c := 0; c < 256; c++ {
		want := !((c >= 'a' && c <= 'z') || c == '_')
		if got := cc.Matches(byte(c)); got != want {
			t.Fatalf("negated Matches(%q) = %v, want %v", c, got, want)
		}
	}
	if cc.Len() != 27 {
		t.Errorf("Len() = %d, want 27", cc.Len())
	}
	if n := len(cc.Members()); n != 256-27 {
		t.Errorf("len(Members()) = %d, want %d", n, 256-27)
	}
}

func TestCharClassReversedRange(t *testing.T) {
	cc := NewCharClass()
	cc.AddRange('z', 'a')
	if cc.Len() != 0 {
		t.Errorf("reversed range added %d members", cc.Len())
	}

	cc.AddRange(0, 255)
	if cc.Len() != 256 {
		t.Errorf("full range Len() = %d, want 256", cc.Len())
	}
}

func TestPredefinedClasses(t *testing.T) {
	tests := []struct {
		name  string
		class *CharClass
		in    string
		out   string
	}{
		{"digit", DigitClass(), "0123456789", "a /:"},
		{"word", WordClass(), "azAZ09_", " -.\n"},
		{"space", SpaceClass(), " \t\n\r\f\v", "a_0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < len(tt.in); i++ {
				if !tt.class.Matches(tt.in[i]) {
					t.Errorf("%s should match %q", tt.name, tt.in[i])
				}
			}
			for i := 0; i < len(tt.out); i++ {
				if tt.class.Matches(tt.out[i]) {
					t.Errorf("%s should not match %q", tt.name, tt.out[i])
				}
			}
		})
	}
}

func TestCharClassString(t *testing.T) {
	tests := []struct {
		build func(*CharClass)
		want  string
	}{
		{func(cc *CharClass) {}, "[]"},
		{func(cc *CharClass) { cc.AddChar('a') }, "[a]"},
		{func(cc *CharClass) { cc.AddRange('a', 'b') }, "[ab]"},
		{func(cc *CharClass) { cc.AddRange('0', '9'); cc.SetNegated(true) }, "[^0-9]"},
		{func(cc *CharClass) { cc.AddChar('\t'); cc.AddChar(']') }, `[\t\]]`},
		{func(cc *CharClass) { cc.AddChar(0xff) }, `[\xff]`},
	}

	for _, tt := range tests {
		cc := NewCharClass()
		tt.build(cc)
		if got := cc.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFoldCase(t *testing.T) {
	cc := NewCharClass()
	cc.AddChar('Q')
	cc.AddChar('7')
	cc.FoldCase()

	for _, c := range []byte("Qq7") {
		if !cc.Matches(c) {
			t.Errorf("folded class should match %q", c)
		}
	}
	if cc.Len() != 3 {
		t.Errorf("Len() = %d, want 3", cc.Len())
	}
}
