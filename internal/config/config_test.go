package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `# routing rules
output_dir = "logs/app"
default_category = other
case_insensitive = true
optimize = true
workers = 4

category.error = 'error|fatal|panic'
category.warn  = "warn(ing)?"
category.http  = GET|POST   # bare word
`

func TestParseSample(t *testing.T) {
	config, err := Parse("sample.conf", strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, "logs/app", config.OutputDir)
	assert.Equal(t, "other", config.DefaultCategory)
	assert.True(t, config.CaseInsensitive)
	assert.True(t, config.Optimize)
	assert.Equal(t, 4, config.Workers)

	require.Len(t, config.Categories, 3)
	names := []string{}
	patterns := []string{}
	for _, c := range config.Categories {
		names = append(names, c.Name)
		patterns = append(patterns, c.Pattern)
	}
	assert.Equal(t, []string{"error", "warn", "http"}, names)
	assert.Equal(t, []string{"error|fatal|panic", "warn(ing)?", "GET|POST"}, patterns)
	assert.Equal(t, 8, config.Categories[0].Pos.Line)
}

func TestParseDefaults(t *testing.T) {
	config, err := Parse("min.conf", strings.NewReader("category.all = x"))
	require.NoError(t, err)

	assert.Equal(t, ".", config.OutputDir)
	assert.Equal(t, "", config.DefaultCategory)
	assert.Equal(t, 1, config.Workers)
	assert.False(t, config.CaseInsensitive)
	assert.False(t, config.Optimize)
}

func TestParseQuoting(t *testing.T) {
	input := `category.a = "tab\there"
category.b = '\d+\s'
category.c = "\\d+"
`
	config, err := Parse("q.conf", strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, config.Categories, 3)

	assert.Equal(t, "tab\there", config.Categories[0].Pattern)
	assert.Equal(t, `\d+\s`, config.Categories[1].Pattern)
	assert.Equal(t, `\d+`, config.Categories[2].Pattern)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode error
		wantLine int
	}{
		{"unknown key", "category.a = x\nbogus = 1\n", ErrUnknownKey, 2},
		{"duplicate category", "category.a = x\n\ncategory.a = y\n", ErrDuplicateKey, 3},
		{"bad bool", "category.a = x\noptimize = maybe\n", ErrInvalidValue, 2},
		{"bad workers", "workers = 0\ncategory.a = x\n", ErrInvalidValue, 1},
		{"non-numeric workers", "workers = many\ncategory.a = x\n", ErrInvalidValue, 1},
		{"empty category name", "category. = x\n", ErrInvalidCategory, 1},
		{"bad category name", "category.a/b = x\n", ErrInvalidCategory, 1},
		{"bad default name", "default_category = 'a b'\ncategory.a = x\n", ErrInvalidCategory, 1},
		{"bad escape", "category.a = \"\\d\"\n", ErrInvalidValue, 1},
		{"no categories", "# nothing\n", ErrNoCategories, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.conf", strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantCode), "error = %v, want %v", err, tt.wantCode)

			var cerr *Error
			require.True(t, errors.As(err, &cerr), "error type = %T", err)
			assert.Equal(t, tt.wantLine, cerr.Pos.Line)
			assert.Equal(t, "bad.conf", cerr.Pos.Filename)
			assert.True(t, strings.HasPrefix(err.Error(), "bad.conf:"), err.Error())
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("bad.conf", strings.NewReader("category.a x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.conf:1:")

	_, err = Parse("bad.conf", strings.NewReader("category.a = 'unterminated\n"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relog.conf")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	config, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, config.Categories, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.conf"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCompile(t *testing.T) {
	config, err := Parse("c.conf", strings.NewReader("case_insensitive = true\ncategory.err = error\ncategory.num = '\\d+'\n"))
	require.NoError(t, err)

	regexes, err := config.Compile()
	require.NoError(t, err)
	require.Len(t, regexes, 2)
	assert.True(t, regexes[0].MatchString("ERROR: disk full"))
	assert.True(t, regexes[1].MatchString("code 42"))
	assert.True(t, config.RegexConfig().CaseInsensitive)

	config, err = Parse("c.conf", strings.NewReader("category.ok = x\ncategory.broken = 'a(b'\n"))
	require.NoError(t, err)
	_, err = config.Compile()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "c.conf:2:")
	assert.Contains(t, err.Error(), "category broken")
}

func TestParseCategory(t *testing.T) {
	category, err := ParseCategory("http=GET|POST /a=b")
	require.NoError(t, err)
	assert.Equal(t, "http", category.Name)
	assert.Equal(t, "GET|POST /a=b", category.Pattern)

	_, err = ParseCategory("no-separator")
	assert.True(t, errors.Is(err, ErrInvalidValue))

	_, err = ParseCategory("a b=x")
	assert.True(t, errors.Is(err, ErrInvalidCategory))

	_, err = ParseCategory("=x")
	assert.True(t, errors.Is(err, ErrInvalidCategory))
}
