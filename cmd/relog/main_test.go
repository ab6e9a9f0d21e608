package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Cloud-Foundations/Dominator/lib/flagutil"
	"github.com/Cloud-Foundations/Dominator/lib/log/testlogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/relog/internal/config"
)

func TestMatchTexts(t *testing.T) {
	var output bytes.Buffer
	err := matchTexts(&output, `(a|ab)c`, []string{"ac", "abc", "xxac"},
		testlogger.New(t))
	require.NoError(t, err)
	assert.Equal(t, "0 2\nno match\n2 4\n", output.String())

	err = matchTexts(&output, `a(b`, []string{"ab"}, testlogger.New(t))
	assert.Error(t, err)
}

func TestRoute(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Parse("test.conf", strings.NewReader(
		"output_dir = '"+dir+"'\n"+
			"default_category = other\n"+
			"workers = 2\n"+
			"category.error = error\n"+
			"category.warn = warn\n"))
	require.NoError(t, err)

	input := "error one\nwarn two\ninfo three\nerror four\n"
	var output bytes.Buffer
	err = route(context.Background(), cfg, strings.NewReader(input), &output,
		testlogger.New(t))
	require.NoError(t, err)
	assert.Equal(t, "error\t2\nwarn\t1\nother\t1\nunmatched\t1\n",
		output.String())

	readLog := func(name string) string {
		data, err := os.ReadFile(filepath.Join(dir, name+".log"))
		require.NoError(t, err)
		return string(data)
	}
	assert.Equal(t, "error one\nerror four\n", readLog("error"))
	assert.Equal(t, "warn two\n", readLog("warn"))
	assert.Equal(t, "info three\n", readLog("other"))
}

func TestRouteBadPattern(t *testing.T) {
	cfg, err := config.Parse("test.conf", strings.NewReader(
		"output_dir = '"+t.TempDir()+"'\ncategory.bad = 'a['\n"))
	require.NoError(t, err)

	var output bytes.Buffer
	err = route(context.Background(), cfg, strings.NewReader(""), &output,
		testlogger.New(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category bad")
}

func TestCheckConfig(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "relog.conf")
	require.NoError(t, os.WriteFile(filename,
		[]byte("category.error = 'error|fatal'\n"), 0644))
	assert.NoError(t, checkConfig(filename, testlogger.New(t)))

	require.NoError(t, os.WriteFile(filename,
		[]byte("category.error = 'error|('\n"), 0644))
	assert.Error(t, checkConfig(filename, testlogger.New(t)))
}

func TestJoinCategoryList(t *testing.T) {
	var list flagutil.StringList
	require.NoError(t, list.Set(`num=\d{2,4},err=error|fatal,set=[a,b]c`))
	assert.Equal(t,
		[]string{`num=\d{2,4}`, "err=error|fatal", "set=[a,b]c"},
		joinCategoryList(list))

	assert.Equal(t, []string{"a=x", "b=y"},
		joinCategoryList([]string{"a=x", "b=y"}))
	assert.Empty(t, joinCategoryList(nil))
}

func TestLoadRouteConfigFromFlags(t *testing.T) {
	require.NoError(t, categoryList.Set(`num=\d{2,4},err=error`))
	defer categoryList.Set("")

	cfg, err := loadRouteConfig()
	require.NoError(t, err)
	require.Len(t, cfg.Categories, 2)
	assert.Equal(t, "num", cfg.Categories[0].Name)
	assert.Equal(t, `\d{2,4}`, cfg.Categories[0].Pattern)
	assert.Equal(t, "error", cfg.Categories[1].Pattern)

	regexes, err := cfg.Compile()
	require.NoError(t, err)
	assert.True(t, regexes[0].MatchString("took 123ms"))
	assert.False(t, regexes[0].MatchString("took 1ms"))
}
