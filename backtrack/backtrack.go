// Package backtrack evaluates syntax trees directly against text.
//
// The interpreter walks the tree recursively. Alternation and repetition
// commit to the first successful branch or count: a later failure in the
// surrounding concatenation does not make them retry. For example `(a|ab)c`
// does not match "abc", because the alternation commits to "a" and the
// following 'c' then fails against 'b'.
//
// Repetition stops as soon as an iteration consumes no input, so patterns
// such as `(a*)*` terminate.
//
// The interpreter holds no state between calls; a tree may be matched from
// many goroutines at once.
package backtrack

import "github.com/coregx/relog/syntax"

// MatchAt matches node against text beginning at byte offset pos.
// It returns whether the node matched and the offset just past the match.
// On failure the returned offset is where the failing sub-match stopped.
func MatchAt(node *syntax.Node, text []byte, pos int) (bool, int) {
	switch node.Op {
	case syntax.OpChar:
		if node.Char == syntax.Epsilon {
			return true, pos
		}
		if pos < len(text) && text[pos] == node.Char {
			return true, pos + 1
		}
		return false, pos

	case syntax.OpCharClass:
		if pos < len(text) && node.Class.Matches(text[pos]) {
			return true, pos + 1
		}
		return false, pos

	case syntax.OpAny:
		if pos < len(text) && text[pos] != '\n' {
			return true, pos + 1
		}
		return false, pos

	case syntax.OpStartAnchor:
		return pos == 0, pos

	case syntax.OpEndAnchor:
		return pos == len(text), pos

	case syntax.OpAlternate:
		if ok, end := MatchAt(node.Left, text, pos); ok {
			return true, end
		}
		return MatchAt(node.Right, text, pos)

	case syntax.OpConcat:
		ok, end := MatchAt(node.Left, text, pos)
		if !ok {
			return false, end
		}
		return MatchAt(node.Right, text, end)

	case syntax.OpStar:
		return true, repeat(node.Sub, text, pos, -1)

	case syntax.OpPlus:
		ok, end := MatchAt(node.Sub, text, pos)
		if !ok {
			return false, pos
		}
		return true, repeat(node.Sub, text, end, -1)

	case syntax.OpQuest:
		if ok, end := MatchAt(node.Sub, text, pos); ok {
			return true, end
		}
		return true, pos

	case syntax.OpRepeat:
		return matchRepeat(node, text, pos)

	case syntax.OpGroup:
		return MatchAt(node.Sub, text, pos)
	}
	panic("backtrack: unknown op " + node.Op.String())
}

// matchRepeat handles {min,max}: min mandatory iterations, then greedy
// optional ones up to max in total.
func matchRepeat(node *syntax.Node, text []byte, pos int) (bool, int) {
	cur := pos
	for i := 0; i < node.Min; i++ {
		ok, end := MatchAt(node.Sub, text, cur)
		if !ok {
			return false, pos
		}
		cur = end
	}
	if node.Max < 0 {
		return true, repeat(node.Sub, text, cur, -1)
	}
	// {n,m} with m < n performs no optional iterations.
	if extra := node.Max - node.Min; extra > 0 {
		cur = repeat(node.Sub, text, cur, extra)
	}
	return true, cur
}

// repeat greedily matches sub up to limit more times (limit < 0: no limit)
// and returns the furthest offset reached. It stops on failure or on an
// iteration that consumes nothing.
func repeat(sub *syntax.Node, text []byte, pos, limit int) int {
	for n := 0; limit < 0 || n < limit; n++ {
		ok, end := MatchAt(sub, text, pos)
		if !ok || end == pos {
			break
		}
		pos = end
	}
	return pos
}

// Search tries every start offset from `from` to len(text) in ascending order
// and returns the first one at which node matches, with the match end.
// Anchors are evaluated against the whole text, not against the start offset.
func Search(node *syntax.Node, text []byte, from int) (start, end int, ok bool) {
	for start = from; start <= len(text); start++ {
		if ok, end = MatchAt(node, text, start); ok {
			return start, end, true
		}
	}
	return -1, -1, false
}

// IsMatch reports whether node matches anywhere in text.
func IsMatch(node *syntax.Node, text []byte) bool {
	_, _, ok := Search(node, text, 0)
	return ok
}
