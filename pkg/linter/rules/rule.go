package rules

// BaseRule provides common functionality for rules
type BaseRule struct {
	RuleName        string
	RuleDescription string
	AutoFixable     bool
}

func (r *BaseRule) Name() string        { return r.RuleName }
func (r *BaseRule) Description() string { return r.RuleDescription }
func (r *BaseRule) CanAutoFix() bool    { return r.AutoFixable }
