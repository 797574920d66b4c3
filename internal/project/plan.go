package project

import "strings"

// Page types the planner knows about. PageDetail doubles as the generic
// filler type used to pad short plans and to resolve leftover calls-to-action.
const (
	PageHome     = "home"
	PageLogin    = "login"
	PageFeatures = "features"
	PageAbout    = "about"
	PageContact  = "contact"
	PageDetail   = "detail"
)

// minPlannedPages pads every inferred plan up to a useful minimum.
const minPlannedPages = 3

// PlanRule maps description keywords to a page type. Rules run in order;
// each rule fires at most once. Prepend rules land before the home page
// (login comes first in a flow), append rules after it. The table is
// swappable configuration: the keyword sets are heuristic and not sacred.
type PlanRule struct {
	Keywords []string
	PageType string
	Prepend  bool
}

var defaultPlanRules = []PlanRule{
	{Keywords: []string{"login", "auth", "sign in", "account"}, PageType: PageLogin, Prepend: true},
	{Keywords: []string{"feature", "service", "product"}, PageType: PageFeatures},
	{Keywords: []string{"about", "team", "story"}, PageType: PageAbout},
	{Keywords: []string{"contact", "reach", "support"}, PageType: PageContact},
}

// PlanPages derives the default page sequence for a project description.
// A home page is always included; keyword rules add pages around it; the
// plan is padded with detail pages up to minPlannedPages.
func PlanPages(description string, rules []PlanRule) []string {
	if rules == nil {
		rules = defaultPlanRules
	}
	lowered := strings.ToLower(description)

	var before, after []string
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lowered, kw) {
				if rule.Prepend {
					before = append(before, rule.PageType)
				} else {
					after = append(after, rule.PageType)
				}
				break
			}
		}
	}

	plan := make([]string, 0, len(before)+1+len(after))
	plan = append(plan, before...)
	plan = append(plan, PageHome)
	plan = append(plan, after...)

	for len(plan) < minPlannedPages {
		plan = append(plan, PageDetail)
	}
	return plan
}
