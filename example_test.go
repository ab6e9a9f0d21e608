package relog_test

import (
	"fmt"

	"github.com/coregx/relog"
)

// ExampleCompile demonstrates basic pattern compilation and matching.
func ExampleCompile() {
	re, err := relog.Compile(`\d+`)
	if err != nil {
		panic(err)
	}

	fmt.Println(re.Match([]byte("hello 123")))
	// Output: true
}

// ExampleMustCompile demonstrates panic-on-error compilation.
func ExampleMustCompile() {
	re := relog.MustCompile(`hello`)
	fmt.Println(re.MatchString("hello world"))
	// Output: true
}

// ExampleCompileWithConfig demonstrates case-insensitive matching.
func ExampleCompileWithConfig() {
	config := relog.DefaultConfig()
	config.CaseInsensitive = true

	re, err := relog.CompileWithConfig("error|fatal", config)
	if err != nil {
		panic(err)
	}

	fmt.Println(re.MatchString("FATAL: out of memory"))
	fmt.Println(re.MatchString("info: started"))
	// Output:
	// true
	// false
}

// ExampleRegex_Find demonstrates finding the first match.
func ExampleRegex_Find() {
	re := relog.MustCompile(`\d+`)
	match := re.Find([]byte("age: 42 years"))
	fmt.Println(string(match))
	// Output: 42
}

// ExampleRegex_FindStringIndex demonstrates locating the first match.
func ExampleRegex_FindStringIndex() {
	re := relog.MustCompile(`world`)
	fmt.Println(re.FindStringIndex("hello world"))
	// Output: [6 11]
}

// ExampleRegex_FindAllString demonstrates finding all matches.
func ExampleRegex_FindAllString() {
	re := relog.MustCompile(`[a-z]+=\d+`)
	fmt.Println(re.FindAllString("cpu=4 mem=512 disk=ok", -1))
	// Output: [cpu=4 mem=512]
}

// ExampleRegex_MatchString_commit shows that alternation commits to the first
// branch that matches.
func ExampleRegex_MatchString_commit() {
	re := relog.MustCompile(`(a|ab)c`)
	fmt.Println(re.MatchString("abc"))
	fmt.Println(re.MatchString("ac"))
	// Output:
	// false
	// true
}

// ExampleQuoteMeta demonstrates escaping metacharacters.
func ExampleQuoteMeta() {
	fmt.Println(relog.QuoteMeta("1+1=2?"))
	// Output: 1\+1=2\?
}

// ExampleMatchString demonstrates one-off matching.
func ExampleMatchString() {
	matched, err := relog.MatchString(`^\w+@\w+$`, "admin@localhost")
	fmt.Println(matched, err)
	// Output: true <nil>
}
