package linter

import (
	"fmt"
	"sort"

	"github.com/platinummonkey/ktlint-report/pkg/log"
)

// Registry holds the available rule sets
type Registry struct {
	sets map[string]RuleSet
}

// NewRegistry creates an empty rule set registry
func NewRegistry() *Registry {
	return &Registry{
		sets: make(map[string]RuleSet),
	}
}

// Register adds a rule set, replacing any set with the same id
func (r *Registry) Register(set RuleSet) {
	r.sets[set.ID] = set
}

// Get retrieves a rule set by id
func (r *Registry) Get(id string) (RuleSet, bool) {
	set, ok := r.sets[id]
	return set, ok
}

// All returns every rule set ordered by priority, then id
func (r *Registry) All() []RuleSet {
	sets := make([]RuleSet, 0, len(r.sets))
	for _, set := range r.sets {
		sets = append(sets, set)
	}
	sort.Slice(sets, func(i, j int) bool {
		if sets[i].Priority != sets[j].Priority {
			return sets[i].Priority < sets[j].Priority
		}
		return sets[i].ID < sets[j].ID
	})
	return sets
}

// Enabled reports whether a rule set takes part in a run
func Enabled(set RuleSet, experimental bool) bool {
	return set.Kind != Experimental || experimental
}

// Resolve announces every rule set in order, then each one left disabled, and
// returns the enabled sets.
func (r *Registry) Resolve(experimental bool, l log.Log) []RuleSet {
	all := r.All()
	for _, set := range all {
		l.Debug(fmt.Sprintf("Discovered ruleset '%s'", set.ID))
	}

	enabled := make([]RuleSet, 0, len(all))
	for _, set := range all {
		if !Enabled(set, experimental) {
			l.Debug(fmt.Sprintf("Disabled ruleset '%s'", set.ID))
			continue
		}
		enabled = append(enabled, set)
	}
	return enabled
}

// Rule looks up a rule by qualified id
func (r *Registry) Rule(id string) (Rule, RuleSet, bool) {
	id = normalizeRuleID(id)
	for _, set := range r.All() {
		for _, rule := range set.Rules {
			if set.Qualify(rule.Name()) == id {
				return rule, set, true
			}
		}
	}
	return nil, RuleSet{}, false
}
