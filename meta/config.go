// Package meta implements the engine that sits between the public API and the
// backtracking interpreter.
//
// The engine parses the pattern once and picks an execution strategy:
//   - UseBacktrack: try every start offset in ascending order
//   - UsePrefilter: jump to start offsets where a required literal prefix
//     occurs, then verify each candidate with the interpreter
//
// Both strategies report identical results; the prefilter only skips offsets
// where no match can begin. Strategy selection is opt-in via Config.Optimize.
package meta

import "github.com/coregx/relog/syntax"

// Config controls engine behavior.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.CaseInsensitive = true
//	engine, err := meta.Compile("error", config)
type Config struct {
	// CaseInsensitive makes ASCII letters in the pattern match either case.
	// Default: false
	CaseInsensitive bool

	// Optimize enables literal-prefix prefiltering. Results are the same with
	// or without it.
	// Default: false
	Optimize bool

	// MaxNestingDepth limits how deeply groups may nest.
	// Default: 1000
	MaxNestingDepth int

	// MaxLiterals limits the number of prefix literals extracted for prefiltering.
	// Default: 64
	MaxLiterals int

	// MaxLiteralLen limits the length of each extracted prefix literal.
	// Default: 64
	MaxLiteralLen int

	// MaxClassSize limits the size of character classes expanded into literals.
	// Default: 10
	MaxClassSize int
}

// DefaultConfig returns a configuration with the defaults documented on Config.
func DefaultConfig() Config {
	return Config{
		CaseInsensitive: false,
		Optimize:        false,
		MaxNestingDepth: syntax.DefaultMaxDepth,
		MaxLiterals:     64,
		MaxLiteralLen:   64,
		MaxClassSize:    10,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of range.
//
// Valid ranges:
//   - MaxNestingDepth: 1 to 100,000
//   - MaxLiterals: 1 to 1,000 (only checked with Optimize)
//   - MaxLiteralLen: 1 to 256 (only checked with Optimize)
//   - MaxClassSize: 1 to 256 (only checked with Optimize)
func (c Config) Validate() error {
	if c.MaxNestingDepth < 1 || c.MaxNestingDepth > 100_000 {
		return &ConfigError{
			Field:   "MaxNestingDepth",
			Message: "must be between 1 and 100,000",
		}
	}

	if c.Optimize {
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 1,000",
			}
		}
		if c.MaxLiteralLen < 1 || c.MaxLiteralLen > 256 {
			return &ConfigError{
				Field:   "MaxLiteralLen",
				Message: "must be between 1 and 256",
			}
		}
		if c.MaxClassSize < 1 || c.MaxClassSize > 256 {
			return &ConfigError{
				Field:   "MaxClassSize",
				Message: "must be between 1 and 256",
			}
		}
	}

	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "regexp: invalid config: " + e.Field + ": " + e.Message
}
