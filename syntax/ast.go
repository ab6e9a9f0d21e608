package syntax

import (
	"strconv"
	"strings"
)

// Op is the kind of a syntax tree node.
type Op uint8

const (
	// OpChar matches a single literal byte. Char 0 is the epsilon node and
	// matches the empty string.
	OpChar Op = iota + 1
	// OpCharClass matches one byte from Class.
	OpCharClass
	// OpAny matches any byte except '\n'.
	OpAny
	// OpStartAnchor matches the empty string at offset 0.
	OpStartAnchor
	// OpEndAnchor matches the empty string at the end of the text.
	OpEndAnchor
	// OpAlternate tries Left, then Right.
	OpAlternate
	// OpConcat matches Left followed by Right.
	OpConcat
	// OpStar matches Sub zero or more times.
	OpStar
	// OpPlus matches Sub one or more times.
	OpPlus
	// OpQuest matches Sub zero or one time.
	OpQuest
	// OpRepeat matches Sub between Min and Max times; Max < 0 means unbounded.
	OpRepeat
	// OpGroup is a transparent, non-capturing wrapper around Sub.
	OpGroup
)

var opNames = [...]string{
	OpChar:        "Char",
	OpCharClass:   "CharClass",
	OpAny:         "Any",
	OpStartAnchor: "StartAnchor",
	OpEndAnchor:   "EndAnchor",
	OpAlternate:   "Alternate",
	OpConcat:      "Concat",
	OpStar:        "Star",
	OpPlus:        "Plus",
	OpQuest:       "Quest",
	OpRepeat:      "Repeat",
	OpGroup:       "Group",
}

func (op Op) String() string {
	if int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	return "Op(" + strconv.Itoa(int(op)) + ")"
}

// Epsilon is the byte value an OpChar node uses to denote the empty match.
const Epsilon byte = 0

// Node is a syntax tree node. Which fields are meaningful depends on Op:
//
//	OpChar                      Char
//	OpCharClass                 Class
//	OpAlternate, OpConcat       Left, Right
//	OpStar, OpPlus, OpQuest     Sub
//	OpGroup                     Sub
//	OpRepeat                    Sub, Min, Max
//
// Every node is owned by exactly one parent.
type Node struct {
	Op    Op
	Char  byte
	Class *CharClass
	Left  *Node
	Right *Node
	Sub   *Node
	Min   int
	Max   int
}

// IsEpsilon reports whether n is the empty-match node.
func (n *Node) IsEpsilon() bool {
	return n.Op == OpChar && n.Char == Epsilon
}

// Walk calls fn for n and every descendant, parents before children.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n.Op {
	case OpAlternate, OpConcat:
		n.Left.Walk(fn)
		n.Right.Walk(fn)
	case OpStar, OpPlus, OpQuest, OpRepeat, OpGroup:
		n.Sub.Walk(fn)
	}
}

// String returns an S-expression dump of the tree, for tests and debugging.
func (n *Node) String() string {
	var b strings.Builder
	n.dump(&b)
	return b.String()
}

func (n *Node) dump(b *strings.Builder) {
	if n == nil {
		b.WriteString("nil")
		return
	}
	switch n.Op {
	case OpChar:
		if n.Char == Epsilon {
			b.WriteString("Empty")
			return
		}
		b.WriteString("Char(")
		b.WriteString(strconv.QuoteRune(rune(n.Char)))
		b.WriteByte(')')
	case OpCharClass:
		b.WriteString("Class(")
		b.WriteString(n.Class.String())
		b.WriteByte(')')
	case OpAny, OpStartAnchor, OpEndAnchor:
		b.WriteString(n.Op.String())
	case OpAlternate, OpConcat:
		b.WriteString(n.Op.String())
		b.WriteByte('(')
		n.Left.dump(b)
		b.WriteString(", ")
		n.Right.dump(b)
		b.WriteByte(')')
	case OpRepeat:
		b.WriteString("Repeat{")
		b.WriteString(strconv.Itoa(n.Min))
		b.WriteByte(',')
		if n.Max >= 0 {
			b.WriteString(strconv.Itoa(n.Max))
		}
		b.WriteString("}(")
		n.Sub.dump(b)
		b.WriteByte(')')
	default:
		b.WriteString(n.Op.String())
		b.WriteByte('(')
		n.Sub.dump(b)
		b.WriteByte(')')
	}
}
