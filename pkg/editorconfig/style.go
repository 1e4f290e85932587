package editorconfig

import (
	"sort"
	"strconv"
	"strings"
)

// Well-known option names
const (
	KeyCharset                = "charset"
	KeyIndentStyle            = "indent_style"
	KeyIndentSize             = "indent_size"
	KeyTabWidth               = "tab_width"
	KeyContinuationIndentSize = "continuation_indent_size"
	KeyMaxLineLength          = "max_line_length"
	KeyInsertFinalNewline     = "insert_final_newline"
	KeyTrimTrailingWhitespace = "trim_trailing_whitespace"
	KeyDisabledRules          = "disabled_rules"
)

// DefaultIndentSize is used when indent_size is unset or unusable
const DefaultIndentSize = 4

// AndroidMaxLineLength applies in android mode when max_line_length is unset
const AndroidMaxLineLength = 100

// StyleConfig is the merged set of style options for one execution
type StyleConfig struct {
	values map[string]string
}

// NewStyleConfig copies values into a StyleConfig with lower-cased keys
func NewStyleConfig(values map[string]string) StyleConfig {
	m := make(map[string]string, len(values))
	for k, v := range values {
		m[strings.ToLower(k)] = v
	}
	return StyleConfig{values: m}
}

// Len returns the number of options
func (s StyleConfig) Len() int {
	return len(s.values)
}

// Keys returns the option names in sorted order
func (s StyleConfig) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the raw value of an option
func (s StyleConfig) Get(key string) (string, bool) {
	v, ok := s.values[strings.ToLower(key)]
	return v, ok
}

// Bool returns an option parsed as a boolean
func (s StyleConfig) Bool(key string) (bool, bool) {
	v, ok := s.Get(key)
	if !ok {
		return false, false
	}
	switch strings.ToLower(v) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// Int returns an option parsed as an integer
func (s StyleConfig) Int(key string) (int, bool) {
	v, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

// IndentStyle returns "space" or "tab"
func (s StyleConfig) IndentStyle() string {
	if v, ok := s.Get(KeyIndentStyle); ok && strings.EqualFold(v, "tab") {
		return "tab"
	}
	return "space"
}

// IndentSize returns the indentation width
func (s StyleConfig) IndentSize() int {
	if v, ok := s.Get(KeyIndentSize); ok && strings.EqualFold(v, "tab") {
		if n, ok := s.Int(KeyTabWidth); ok && n > 0 {
			return n
		}
		return DefaultIndentSize
	}
	if n, ok := s.Int(KeyIndentSize); ok && n > 0 {
		return n
	}
	return DefaultIndentSize
}

// ContinuationIndentSize returns the continuation indentation width
func (s StyleConfig) ContinuationIndentSize() int {
	if n, ok := s.Int(KeyContinuationIndentSize); ok && n > 0 {
		return n
	}
	return s.IndentSize()
}

// MaxLineLength returns the line length limit, 0 when unlimited
func (s StyleConfig) MaxLineLength(android bool) int {
	v, ok := s.Get(KeyMaxLineLength)
	if !ok {
		if android {
			return AndroidMaxLineLength
		}
		return 0
	}
	if strings.EqualFold(v, "off") {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// DisabledRules returns the rule ids listed in disabled_rules
func (s StyleConfig) DisabledRules() []string {
	v, ok := s.Get(KeyDisabledRules)
	if !ok {
		return nil
	}
	var rules []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			rules = append(rules, part)
		}
	}
	return rules
}

// String renders the options as {k1=v1, k2=v2} sorted by key
func (s StyleConfig) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range s.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(s.values[k])
	}
	b.WriteByte('}')
	return b.String()
}
