package meta

// Match is the first match found by Engine.Find. It keeps a reference to the
// searched haystack, so Bytes does not copy.
type Match struct {
	start    int
	end      int
	haystack []byte
}

// Start returns the offset of the first matched byte.
func (m Match) Start() int {
	return m.start
}

// End returns the offset just past the match. For an empty match End equals
// Start.
func (m Match) End() int {
	return m.end
}

// Bytes returns the matched bytes as a view into the haystack.
func (m Match) Bytes() []byte {
	return m.haystack[m.start:m.end]
}

func (m Match) String() string {
	return string(m.Bytes())
}
