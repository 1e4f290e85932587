package linter

import "strings"

// Rule interface that all lint rules must implement
type Rule interface {
	Name() string
	Description() string
	CanAutoFix() bool
	Check(file *File) []Violation
}

// Violation represents a linting violation
type Violation struct {
	Rule         string `json:"rule"`
	Line         int    `json:"line"`
	Column       int    `json:"column"`
	Message      string `json:"message"`
	Corrected    bool   `json:"corrected,omitempty"`
	SuggestedFix *Fix   `json:"-"`
}

// Fix represents an automatic fix
type Fix struct {
	Description string
	Changes     []Change
}

// Change replaces the bytes [Start, End) of a file with NewText
type Change struct {
	Start   int
	End     int
	OldText string
	NewText string
}

// Delete returns a fix removing [start, end) of the file
func Delete(f *File, start, end int) *Fix {
	return &Fix{
		Description: "delete",
		Changes:     []Change{{Start: start, End: end, OldText: string(f.Content[start:end])}},
	}
}

// Insert returns a fix inserting text at offset
func Insert(offset int, text string) *Fix {
	return &Fix{
		Description: "insert",
		Changes:     []Change{{Start: offset, End: offset, NewText: text}},
	}
}

// SyntaxRule is the rule id reported for files that do not parse
const SyntaxRule = "syntax"

// RuleSetKind tags the built-in rule sets
type RuleSetKind int

const (
	Standard RuleSetKind = iota
	Experimental
)

func (k RuleSetKind) String() string {
	switch k {
	case Standard:
		return "standard"
	case Experimental:
		return "experimental"
	default:
		return "unknown"
	}
}

// RuleSet is a named group of rules that is enabled or disabled as a whole
type RuleSet struct {
	ID       string
	Kind     RuleSetKind
	Priority int
	Rules    []Rule
}

// Qualify returns the id a rule of this set is reported and configured under.
// Standard rules use their bare name, others are prefixed with the set id.
func (s RuleSet) Qualify(rule string) string {
	if s.Kind == Standard {
		return rule
	}
	return s.ID + ":" + rule
}

// normalizeRuleID strips the optional "standard:" prefix
func normalizeRuleID(id string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(id), "standard:"))
}
