package project

import "strings"

// ActionRule maps visible-text keywords to a semantic action tag. Rules run
// in order and the first match wins, so specific phrases must precede the
// near-catch-all "more" rule. The table is swappable configuration, same as
// the plan rules.
type ActionRule struct {
	Keywords []string
	Action   string
}

// ActionDetail is the default tag when no rule matches.
const ActionDetail = "detail"

var defaultActionRules = []ActionRule{
	{Keywords: []string{"login", "sign in"}, Action: "login"},
	{Keywords: []string{"sign up", "register"}, Action: "register"},
	{Keywords: []string{"contact", "reach"}, Action: "contact"},
	{Keywords: []string{"learn", "more"}, Action: ActionDetail},
	{Keywords: []string{"start", "begin"}, Action: "get_started"},
	{Keywords: []string{"feature"}, Action: "features"},
	{Keywords: []string{"about"}, Action: "about"},
}

// InferAction tags a button or input with a semantic action by
// case-insensitive substring matching of its visible text against the rule
// table. First matching rule in table order wins; unmatched text is tagged
// as a generic detail action.
func InferAction(text string, rules []ActionRule) string {
	if rules == nil {
		rules = defaultActionRules
	}
	lowered := strings.ToLower(text)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lowered, kw) {
				return rule.Action
			}
		}
	}
	return ActionDetail
}
