// Package config reads the log router configuration file.
//
// The file is a list of key = value entries:
//
//	# comment
//	output_dir = "logs"
//	default_category = other
//	case_insensitive = true
//	optimize = true
//	workers = 4
//	category.error = 'error|fatal|panic'
//	category.warn  = "warn(ing)?"
//
// Values may be double-quoted (Go escapes), single-quoted (taken verbatim) or
// bare words. Categories are routed in the order they appear.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/coregx/relog"
)

const categoryPrefix = "category."

var (
	ErrUnknownKey      = errors.New("unknown key")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrInvalidValue    = errors.New("invalid value")
	ErrInvalidCategory = errors.New("invalid category name")
	ErrNoCategories    = errors.New("no categories defined")
)

// Error is a configuration problem at a position in the file.
type Error struct {
	Pos  lexer.Position
	Code error
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v", e.Pos, e.Code)
	}
	return fmt.Sprintf("%s: %v: %s", e.Pos, e.Code, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Code
}

// Category is a named pattern. Lines matching Pattern are routed to Name.
type Category struct {
	Name    string
	Pattern string
	Pos     lexer.Position
}

// Config is the parsed configuration file.
type Config struct {
	OutputDir       string
	DefaultCategory string
	CaseInsensitive bool
	Optimize        bool
	Workers         int
	Categories      []Category
}

// Default returns the configuration used for keys missing from the file.
func Default() *Config {
	return &Config{
		OutputDir: ".",
		Workers:   1,
	}
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(path, f)
}

// Parse parses a configuration from r. filename is used in error positions.
func Parse(filename string, r io.Reader) (*Config, error) {
	ast, err := parser.Parse(filename, r)
	if err != nil {
		return nil, err
	}

	config := Default()
	seen := make(map[string]lexer.Position)
	for _, e := range ast.Entries {
		if prev, ok := seen[e.Key]; ok {
			return nil, &Error{Pos: e.Pos, Code: ErrDuplicateKey,
				Msg: fmt.Sprintf("%s (first defined at %s)", e.Key, prev)}
		}
		seen[e.Key] = e.Pos
		if err := config.apply(e); err != nil {
			return nil, err
		}
	}

	if len(config.Categories) == 0 {
		return nil, &Error{Pos: lexer.Position{Filename: filename, Line: 1, Column: 1},
			Code: ErrNoCategories}
	}
	return config, nil
}

func (c *Config) apply(e *entry) error {
	text, err := e.Value.text()
	if err != nil {
		return &Error{Pos: e.Value.Pos, Code: ErrInvalidValue, Msg: err.Error()}
	}

	switch {
	case e.Key == "output_dir":
		c.OutputDir = text
	case e.Key == "default_category":
		if !validName(text) {
			return &Error{Pos: e.Value.Pos, Code: ErrInvalidCategory, Msg: strconv.Quote(text)}
		}
		c.DefaultCategory = text
	case e.Key == "case_insensitive":
		return parseBool(e, text, &c.CaseInsensitive)
	case e.Key == "optimize":
		return parseBool(e, text, &c.Optimize)
	case e.Key == "workers":
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 {
			return &Error{Pos: e.Value.Pos, Code: ErrInvalidValue,
				Msg: fmt.Sprintf("workers must be a positive integer, got %q", text)}
		}
		c.Workers = n
	case strings.HasPrefix(e.Key, categoryPrefix):
		name := strings.TrimPrefix(e.Key, categoryPrefix)
		if !validName(name) {
			return &Error{Pos: e.Pos, Code: ErrInvalidCategory, Msg: strconv.Quote(name)}
		}
		c.Categories = append(c.Categories, Category{Name: name, Pattern: text, Pos: e.Value.Pos})
	default:
		return &Error{Pos: e.Pos, Code: ErrUnknownKey, Msg: e.Key}
	}
	return nil
}

func parseBool(e *entry, text string, dst *bool) error {
	b, err := strconv.ParseBool(text)
	if err != nil {
		return &Error{Pos: e.Value.Pos, Code: ErrInvalidValue,
			Msg: fmt.Sprintf("%s must be a boolean, got %q", e.Key, text)}
	}
	*dst = b
	return nil
}

// validName reports whether name is usable as a category and file name.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		case c == '_' || c == '-':
		default:
			return false
		}
	}
	return true
}

// ParseCategory parses a name=pattern category definition given outside a
// configuration file, such as on the command line.
func ParseCategory(definition string) (Category, error) {
	name, pattern, ok := strings.Cut(definition, "=")
	if !ok {
		return Category{}, fmt.Errorf("%w: missing '=' in %q",
			ErrInvalidValue, definition)
	}
	if !validName(name) {
		return Category{}, fmt.Errorf("%w: %q", ErrInvalidCategory, name)
	}
	return Category{Name: name, Pattern: pattern}, nil
}

// RegexConfig returns the pattern compilation settings of the file.
func (c *Config) RegexConfig() relog.Config {
	config := relog.DefaultConfig()
	config.CaseInsensitive = c.CaseInsensitive
	config.Optimize = c.Optimize
	return config
}

// Compile compiles every category pattern in order. The error names the
// category and its position.
func (c *Config) Compile() ([]*relog.Regex, error) {
	config := c.RegexConfig()
	regexes := make([]*relog.Regex, 0, len(c.Categories))
	for _, cat := range c.Categories {
		re, err := relog.CompileWithConfig(cat.Pattern, config)
		if err != nil {
			return nil, fmt.Errorf("%s: category %s: %w", cat.Pos, cat.Name, err)
		}
		regexes = append(regexes, re)
	}
	return regexes, nil
}
