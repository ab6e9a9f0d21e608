package syntax

import "strings"

// CharClass is a set of single-byte characters with an optional negation.
//
// Membership is a 256-entry table; Matches reports negated XOR member, so a
// negated class matches every byte not added to it.
type CharClass struct {
	members [256]bool
	negated bool
}

// NewCharClass returns an empty, non-negated class.
func NewCharClass() *CharClass {
	return &CharClass{}
}

// DigitClass returns the \d class: [0-9].
func DigitClass() *CharClass {
	cc := NewCharClass()
	cc.AddRange('0', '9')
	return cc
}

// WordClass returns the \w class: [A-Za-z0-9_].
func WordClass() *CharClass {
	cc := NewCharClass()
	cc.AddRange('a', 'z')
	cc.AddRange('A', 'Z')
	cc.AddRange('0', '9')
	cc.AddChar('_')
	return cc
}

// SpaceClass returns the \s class: space, \t, \n, \r, \f and \v.
func SpaceClass() *CharClass {
	cc := NewCharClass()
	for _, c := range []byte{' ', '\t', '\n', '\r', '\f', '\v'} {
		cc.AddChar(c)
	}
	return cc
}

// AddChar adds a single byte to the class.
func (cc *CharClass) AddChar(c byte) {
	cc.members[c] = true
}

// AddRange adds every byte in [lo, hi]. A reversed range adds nothing.
func (cc *CharClass) AddRange(lo, hi byte) {
	if lo > hi {
		return
	}
	for c := int(lo); c <= int(hi); c++ {
		cc.members[c] = true
	}
}

// AddClass adds the members of other, ignoring its negation flag.
func (cc *CharClass) AddClass(other *CharClass) {
	for c, ok := range other.members {
		if ok {
			cc.members[c] = true
		}
	}
}

// FoldCase adds the other ASCII case of every member letter.
func (cc *CharClass) FoldCase() {
	for c := 'a'; c <= 'z'; c++ {
		upper := c - 'a' + 'A'
		if cc.members[c] || cc.members[upper] {
			cc.members[c] = true
			cc.members[upper] = true
		}
	}
}

// SetNegated sets the negation flag.
func (cc *CharClass) SetNegated(negated bool) {
	cc.negated = negated
}

// Negated reports whether the class is negated.
func (cc *CharClass) Negated() bool {
	return cc.negated
}

// Matches reports whether c belongs to the class.
func (cc *CharClass) Matches(c byte) bool {
	return cc.negated != cc.members[c]
}

// Len returns the number of bytes added to the class, before negation.
func (cc *CharClass) Len() int {
	n := 0
	for _, ok := range cc.members {
		if ok {
			n++
		}
	}
	return n
}

// Members returns every byte for which Matches is true, in ascending order.
func (cc *CharClass) Members() []byte {
	var out []byte
	for c := 0; c < 256; c++ {
		if cc.Matches(byte(c)) {
			out = append(out, byte(c))
		}
	}
	return out
}

// String renders the class in bracket notation, collapsing runs into ranges.
func (cc *CharClass) String() string {
	var b strings.Builder
	b.WriteByte('[')
	if cc.negated {
		b.WriteByte('^')
	}
	for c := 0; c < 256; {
		if !cc.members[c] {
			c++
			continue
		}
		lo := c
		for c < 256 && cc.members[c] {
			c++
		}
		writeClassByte(&b, byte(lo))
		if hi := c - 1; hi > lo {
			if hi > lo+1 {
				b.WriteByte('-')
			}
			writeClassByte(&b, byte(hi))
		}
	}
	b.WriteByte(']')
	return b.String()
}

func writeClassByte(b *strings.Builder, c byte) {
	switch {
	case c == '\n':
		b.WriteString(`\n`)
	case c == '\t':
		b.WriteString(`\t`)
	case c == '\r':
		b.WriteString(`\r`)
	case c == ']' || c == '\\' || c == '-' || c == '^':
		b.WriteByte('\\')
		b.WriteByte(c)
	case c < 0x20 || c >= 0x7f:
		const hex = "0123456789abcdef"
		b.WriteString(`\x`)
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0xf])
	default:
		b.WriteByte(c)
	}
}
