package syntax

import "strings"

const (
	// DefaultMaxDepth is the group nesting limit used when Flags.MaxDepth is 0.
	DefaultMaxDepth = 1000

	// MaxRepeat is the largest count accepted inside {n,m}.
	MaxRepeat = 1000
)

// Flags control parsing.
type Flags struct {
	// FoldCase makes ASCII letters match regardless of case.
	FoldCase bool

	// MaxDepth limits how deeply groups may nest. Zero means DefaultMaxDepth.
	MaxDepth int
}

// Parse parses pattern with default flags.
//
// Example:
//
//	re, err := syntax.Parse(`a{2,4}`)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(re) // Repeat{2,4}(Char('a'))
func Parse(pattern string) (*Node, error) {
	return ParseWithFlags(pattern, Flags{})
}

// ParseWithFlags parses pattern into a syntax tree.
//
// On error no tree is returned; the error is a *Error wrapping one of the
// Err* codes.
func ParseWithFlags(pattern string, flags Flags) (*Node, error) {
	p := &parser{
		pattern:  pattern,
		flags:    flags,
		maxDepth: flags.MaxDepth,
	}
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxDepth
	}

	root, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	// parseAlternation only stops early on ')'.
	if p.more() {
		return nil, p.fail(ErrInvalidPattern, p.pos, len(p.pattern))
	}
	return root, nil
}

type parser struct {
	pattern  string
	pos      int
	depth    int
	maxDepth int
	flags    Flags
}

func (p *parser) more() bool {
	return p.pos < len(p.pattern)
}

func (p *parser) peek() byte {
	return p.pattern[p.pos]
}

func (p *parser) fail(code error, start, end int) *Error {
	return &Error{Code: code, Expr: p.pattern[start:end], Pos: start}
}

func (p *parser) parseAlternation() (*Node, error) {
	left, err := p.parseConcatenation()
	if err != nil {
		return nil, err
	}
	for p.more() && p.peek() == '|' {
		p.pos++
		right, err := p.parseConcatenation()
		if err != nil {
			return nil, err
		}
		left = &Node{Op: OpAlternate, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseConcatenation() (*Node, error) {
	var left *Node
	for p.more() {
		if c := p.peek(); c == '|' || c == ')' {
			break
		}
		next, err := p.parseQuantified()
		if err != nil {
			return nil, err
		}
		if left == nil {
			left = next
		} else {
			left = &Node{Op: OpConcat, Left: left, Right: next}
		}
	}
	if left == nil {
		return &Node{Op: OpChar, Char: Epsilon}, nil
	}
	return left, nil
}

func (p *parser) parseQuantified() (*Node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if !p.more() {
		return atom, nil
	}
	switch p.peek() {
	case '*':
		p.pos++
		return &Node{Op: OpStar, Sub: atom}, nil
	case '+':
		p.pos++
		return &Node{Op: OpPlus, Sub: atom}, nil
	case '?':
		p.pos++
		return &Node{Op: OpQuest, Sub: atom}, nil
	case '{':
		lo, hi, err := p.parseCounts()
		if err != nil {
			return nil, err
		}
		return &Node{Op: OpRepeat, Sub: atom, Min: lo, Max: hi}, nil
	}
	return atom, nil
}

func (p *parser) parseAtom() (*Node, error) {
	c := p.peek()
	switch c {
	case '*', '+', '?', '{':
		return nil, p.fail(ErrInvalidPattern, p.pos, p.pos+1)
	case '^':
		p.pos++
		return &Node{Op: OpStartAnchor}, nil
	case '$':
		p.pos++
		return &Node{Op: OpEndAnchor}, nil
	case '.':
		p.pos++
		return &Node{Op: OpAny}, nil
	case '[':
		return p.parseClass()
	case '(':
		return p.parseGroup()
	case '\\':
		return p.parseEscape()
	}
	p.pos++
	return p.literal(c), nil
}

func (p *parser) parseGroup() (*Node, error) {
	start := p.pos
	p.depth++
	if p.depth > p.maxDepth {
		return nil, p.fail(ErrNestingDepth, start, len(p.pattern))
	}
	p.pos++

	sub, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if !p.more() || p.peek() != ')' {
		return nil, p.fail(ErrUnmatchedParenthesis, start, len(p.pattern))
	}
	p.pos++
	p.depth--
	return &Node{Op: OpGroup, Sub: sub}, nil
}

func (p *parser) parseEscape() (*Node, error) {
	start := p.pos
	p.pos++
	if !p.more() {
		return nil, p.fail(ErrInvalidEscape, start, len(p.pattern))
	}
	c := p.peek()
	p.pos++
	if class := escapeClass(c); class != nil {
		return &Node{Op: OpCharClass, Class: class}, nil
	}
	return p.literal(escapeChar(c)), nil
}

// escapeClass returns the class for \d, \w and \s, or nil for any other letter.
func escapeClass(c byte) *CharClass {
	switch c {
	case 'd':
		return DigitClass()
	case 'w':
		return WordClass()
	case 's':
		return SpaceClass()
	}
	return nil
}

// escapeChar maps the letter after '\' to the byte it stands for.
// Unknown escapes denote the letter itself.
func escapeChar(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	}
	return c
}

// literal builds the node for a literal byte. A NUL byte in the pattern
// becomes a one-member class so it cannot be mistaken for epsilon.
func (p *parser) literal(c byte) *Node {
	if c == Epsilon || (p.flags.FoldCase && isASCIILetter(c)) {
		cc := NewCharClass()
		cc.AddChar(c)
		if p.flags.FoldCase {
			cc.FoldCase()
		}
		return &Node{Op: OpCharClass, Class: cc}
	}
	return &Node{Op: OpChar, Char: c}
}

func (p *parser) parseClass() (*Node, error) {
	start := p.pos
	p.pos++
	cc := NewCharClass()
	if p.more() && p.peek() == '^' {
		cc.SetNegated(true)
		p.pos++
	}

	for {
		if !p.more() {
			return nil, p.fail(ErrInvalidCharacterClass, start, len(p.pattern))
		}
		if p.peek() == ']' {
			p.pos++
			break
		}

		rangeStart := p.pos
		lo, class, err := p.parseClassAtom(start)
		if err != nil {
			return nil, err
		}
		if class != nil {
			cc.AddClass(class)
			continue
		}

		// '-' is a range operator unless it is the last byte before ']'.
		if p.pos+1 < len(p.pattern) && p.peek() == '-' && p.pattern[p.pos+1] != ']' {
			p.pos++
			hi, hiClass, err := p.parseClassAtom(start)
			if err != nil {
				return nil, err
			}
			if hiClass != nil || lo > hi {
				return nil, p.fail(ErrInvalidCharacterClass, rangeStart, p.pos)
			}
			cc.AddRange(lo, hi)
			continue
		}
		cc.AddChar(lo)
	}

	if p.flags.FoldCase {
		cc.FoldCase()
	}
	return &Node{Op: OpCharClass, Class: cc}, nil
}

// parseClassAtom reads one member of a bracket class: either a single byte or
// an escaped class such as \d.
func (p *parser) parseClassAtom(classStart int) (byte, *CharClass, error) {
	c := p.peek()
	p.pos++
	if c != '\\' {
		return c, nil, nil
	}
	if !p.more() {
		return 0, nil, p.fail(ErrInvalidCharacterClass, classStart, len(p.pattern))
	}
	c = p.peek()
	p.pos++
	if class := escapeClass(c); class != nil {
		return 0, class, nil
	}
	return escapeChar(c), nil, nil
}

// parseCounts parses {n}, {n,} or {n,m} starting at '{'. Max is -1 when
// unbounded. n > m is accepted.
func (p *parser) parseCounts() (lo, hi int, err error) {
	start := p.pos
	p.pos++

	lo, ok := p.parseInt()
	if !ok {
		return 0, 0, p.quantifierError(start)
	}
	hi = lo
	if p.more() && p.peek() == ',' {
		p.pos++
		hi = -1
		if p.more() && isDigit(p.peek()) {
			if hi, ok = p.parseInt(); !ok {
				return 0, 0, p.quantifierError(start)
			}
		}
	}
	if !p.more() || p.peek() != '}' {
		return 0, 0, p.quantifierError(start)
	}
	p.pos++
	return lo, hi, nil
}

// parseInt reads a decimal count. It fails on no digits or a value above
// MaxRepeat.
func (p *parser) parseInt() (int, bool) {
	start := p.pos
	n := 0
	for p.more() && isDigit(p.peek()) {
		if n <= MaxRepeat {
			n = n*10 + int(p.peek()-'0')
		}
		p.pos++
	}
	if p.pos == start || n > MaxRepeat {
		return 0, false
	}
	return n, true
}

func (p *parser) quantifierError(start int) *Error {
	end := len(p.pattern)
	if i := strings.IndexByte(p.pattern[start:], '}'); i >= 0 {
		end = start + i + 1
	}
	return p.fail(ErrInvalidQuantifier, start, end)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
