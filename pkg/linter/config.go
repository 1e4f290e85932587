package linter

// DefaultFormatPasses is the number of fix-and-relint rounds Format performs
const DefaultFormatPasses = 3

// Config tunes the engine
type Config struct {
	// Android selects the Android Kotlin style defaults
	Android bool

	// FormatPasses bounds the rounds of fixes applied by Format
	FormatPasses int

	// DisabledRules lists qualified rule ids disabled in addition to the
	// file's disabled_rules option
	DisabledRules []string
}

// DefaultConfig returns the default engine configuration
func DefaultConfig() *Config {
	return &Config{
		FormatPasses: DefaultFormatPasses,
	}
}

func (c *Config) passes() int {
	if c.FormatPasses <= 0 {
		return DefaultFormatPasses
	}
	return c.FormatPasses
}
