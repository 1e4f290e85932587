package linter

import (
	"sort"
	"strings"

	"github.com/platinummonkey/ktlint-report/pkg/kotlin"
)

const (
	disableDirective = "ktlint-disable"
	enableDirective  = "ktlint-enable"
)

// suppression silences rules for the offsets [start, end]. A nil rule set
// silences every rule.
type suppression struct {
	start int
	end   int
	rules map[string]bool
}

func (s suppression) covers(offset int, rule string) bool {
	if offset < s.start || offset > s.end {
		return false
	}
	return s.rules == nil || s.rules[rule]
}

// parseDirective splits a comment into its directive and rule ids
func parseDirective(tok kotlin.Token) (string, []string) {
	text := tok.Text
	switch tok.Kind {
	case kotlin.LineComment:
		text = strings.TrimPrefix(text, "//")
	case kotlin.BlockComment:
		text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	default:
		return "", nil
	}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", nil
	}
	if fields[0] != disableDirective && fields[0] != enableDirective {
		return "", nil
	}

	ids := make([]string, 0, len(fields)-1)
	for _, f := range fields[1:] {
		for _, id := range strings.Split(f, ",") {
			if id = normalizeRuleID(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return fields[0], ids
}

func ruleSet(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

func ruleKey(ids []string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// suppressions collects the ktlint-disable regions of a file
func suppressions(f *File) []suppression {
	var (
		result []suppression
		open   = map[string]suppression{}
		order  []string
	)
	tokens := f.Tokens()

	for i, tok := range tokens {
		directive, ids := parseDirective(tok)
		if directive == "" {
			continue
		}

		if tok.Kind == kotlin.LineComment {
			// only a comment trailing code applies to its line
			if directive != disableDirective || kotlin.FirstOnLine(tokens, i) {
				continue
			}
			line := f.lines[tok.Line-1]
			result = append(result, suppression{start: line.Start, end: line.End, rules: ruleSet(ids)})
			continue
		}

		key := ruleKey(ids)
		switch directive {
		case disableDirective:
			if _, ok := open[key]; ok {
				continue
			}
			open[key] = suppression{start: tok.Offset, rules: ruleSet(ids)}
			order = append(order, key)
		case enableDirective:
			if s, ok := open[key]; ok {
				s.end = tok.End()
				result = append(result, s)
				delete(open, key)
			}
		}
	}

	for _, key := range order {
		if s, ok := open[key]; ok {
			s.end = len(f.Content)
			result = append(result, s)
			delete(open, key)
		}
	}
	return result
}

func suppressed(regions []suppression, offset int, rule string) bool {
	for _, s := range regions {
		if s.covers(offset, rule) {
			return true
		}
	}
	return false
}
