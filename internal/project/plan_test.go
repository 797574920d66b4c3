package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanPages_NoKeywords(t *testing.T) {
	t.Run("starts with home and pads to the minimum", func(t *testing.T) {
		plan := PlanPages("an online store", nil)
		require.GreaterOrEqual(t, len(plan), minPlannedPages)
		assert.Equal(t, PageHome, plan[0])
		assert.NotContains(t, plan, PageLogin)
	})
}

func TestPlanPages_LoginPrepended(t *testing.T) {
	plan := PlanPages("a member portal with login and a contact form", nil)
	assert.Equal(t, PageLogin, plan[0])
	assert.Contains(t, plan, PageHome)
	assert.Contains(t, plan, PageContact)
}

func TestPlanPages_AppendedSections(t *testing.T) {
	plan := PlanPages("a startup site with a features overview and an about section", nil)
	require.GreaterOrEqual(t, len(plan), 3)
	assert.Equal(t, PageHome, plan[0])
	assert.Contains(t, plan, PageFeatures)
	assert.Contains(t, plan, PageAbout)
}

func TestPlanPages_CaseInsensitive(t *testing.T) {
	plan := PlanPages("Site With LOGIN and CONTACT sections", nil)
	assert.Equal(t, PageLogin, plan[0])
	assert.Contains(t, plan, PageContact)
}

func TestPlanPages_CustomRules(t *testing.T) {
	rules := []PlanRule{
		{Keywords: []string{"shop"}, PageType: "catalog"},
	}
	plan := PlanPages("a small shop", rules)
	assert.Equal(t, []string{PageHome, "catalog", PageDetail}, plan)
}
