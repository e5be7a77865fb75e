package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/finsight/cashflow_backend/internal/core/domain"
)

func TestDraftState(t *testing.T) {
	unsaved := domain.Draft{LocalID: "local-1", Scenario: domain.Scenario{Name: "Plan A"}, Dirty: true}
	assert.Equal(t, domain.DraftUnsaved, unsaved.State())

	clean := domain.Draft{LocalID: "local-2", Scenario: domain.Scenario{ScenarioID: "s-1", Name: "Plan A"}}
	assert.Equal(t, domain.DraftSavedClean, clean.State())

	dirty := clean
	dirty.Dirty = true
	assert.Equal(t, domain.DraftSavedDirty, dirty.State())
}

func TestScenarioLookupsAreTotal(t *testing.T) {
	scenario := domain.Scenario{
		Items:      []domain.FlowItem{{FlowItemID: "f-1", Name: "Rent"}},
		Categories: []domain.Category{{CategoryID: "c-1", Name: "Housing", Kind: domain.Outflow}},
	}

	item, ok := scenario.FindItem("f-1")
	assert.True(t, ok)
	assert.Equal(t, "Rent", item.Name)

	_, ok = scenario.FindItem("missing")
	assert.False(t, ok)

	category, ok := scenario.FindCategory("c-1")
	assert.True(t, ok)
	assert.Equal(t, "Housing", category.Name)

	// A dangling reference is an expected case, never a panic.
	_, ok = scenario.FindCategory("deleted-elsewhere")
	assert.False(t, ok)
}

func TestDefaultCategories(t *testing.T) {
	var next int
	newID := func() string {
		next++
		return string(rune('a' + next))
	}
	categories := domain.DefaultCategories(newID, domain.NewAuditFields(time.Now()))

	assert.NotEmpty(t, categories)
	seen := make(map[string]bool)
	for _, c := range categories {
		assert.False(t, c.IsCustom)
		assert.NotEmpty(t, c.Name)
		assert.False(t, seen[c.CategoryID], "category ids must be unique")
		seen[c.CategoryID] = true
	}

	inflows := domain.CategoriesForKind(categories, domain.Inflow)
	for _, c := range inflows {
		assert.Equal(t, domain.Inflow, c.Kind)
	}
	assert.Less(t, len(inflows), len(categories))
}
