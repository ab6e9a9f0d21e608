package config

import (
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Keys and bare values share one token type: the lexer takes the first rule
// that matches, so a separate identifier rule would split values like
// "logs/app" into several tokens.
var configLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "String", Pattern: `"(\\.|[^"\\\n])*"`},
	{Name: "Raw", Pattern: `'[^'\n]*'`},
	{Name: "Punct", Pattern: `=`},
	{Name: "Word", Pattern: `[^\s=#'"]+`},
})

type file struct {
	Entries []*entry `parser:"@@*"`
}

type entry struct {
	Pos   lexer.Position
	Key   string `parser:"@Word '='"`
	Value *value `parser:"@@"`
}

type value struct {
	Pos    lexer.Position
	Quoted *string `parser:"  @String"`
	Raw    *string `parser:"| @Raw"`
	Word   *string `parser:"| @Word"`
}

var parser = participle.MustBuild[file](
	participle.Lexer(configLexer),
	participle.Elide("Comment", "Whitespace"),
)

// text returns the value with quoting removed. Double-quoted values use Go
// escapes; single-quoted values are taken verbatim.
func (v *value) text() (string, error) {
	switch {
	case v.Quoted != nil:
		return strconv.Unquote(*v.Quoted)
	case v.Raw != nil:
		raw := *v.Raw
		return raw[1 : len(raw)-1], nil
	default:
		return *v.Word, nil
	}
}
