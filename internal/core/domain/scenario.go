package domain

import "time"

// Scenario is a named collection of flow items and categories belonging to
// one portfolio. ScenarioID is empty until the scenario has been persisted.
type Scenario struct {
	ScenarioID   string     `json:"scenarioID"`
	PortfolioID  string     `json:"portfolioID"`
	Name         string     `json:"name"`
	BaseCurrency string     `json:"baseCurrency"`
	Items        []FlowItem `json:"items"`
	Categories   []Category `json:"categories"`
	AuditFields
}

// IsPersisted reports whether the scenario has a server-side identity.
func (s Scenario) IsPersisted() bool {
	return s.ScenarioID != ""
}

// FindItem returns the flow item with the given id, or false when absent.
func (s Scenario) FindItem(flowItemID string) (FlowItem, bool) {
	for _, item := range s.Items {
		if item.FlowItemID == flowItemID {
			return item, true
		}
	}
	return FlowItem{}, false
}

// FindCategory returns the category with the given id, or false when absent.
// Lookups are total: a dangling reference is an expected case, not an error.
func (s Scenario) FindCategory(categoryID string) (Category, bool) {
	for _, c := range s.Categories {
		if c.CategoryID == categoryID {
			return c, true
		}
	}
	return Category{}, false
}

// DraftState describes where a draft sits between local edits and the
// persisted copy of its scenario.
type DraftState string

const (
	// DraftUnsaved has no persisted identity; every field is local.
	DraftUnsaved DraftState = "UNSAVED"
	// DraftSavedClean has a persisted identity and no pending local edits.
	DraftSavedClean DraftState = "SAVED_CLEAN"
	// DraftSavedDirty has a persisted identity and local edits pending save.
	DraftSavedDirty DraftState = "SAVED_DIRTY"
)

// Draft is the unit of in-memory editing: a scenario plus a local-only
// identity and a dirty flag. Edits go through the scenario service, which
// stamps UpdatedAt and marks the draft dirty; an explicit save reconciles it
// with the persisted scenario.
type Draft struct {
	LocalID  string   `json:"localID"`
	Scenario Scenario `json:"scenario"`
	Dirty    bool     `json:"dirty"`
}

// State derives the draft's position in the unsaved/clean/dirty machine.
func (d Draft) State() DraftState {
	if !d.Scenario.IsPersisted() {
		return DraftUnsaved
	}
	if d.Dirty {
		return DraftSavedDirty
	}
	return DraftSavedClean
}

// ScenarioExportVersion is the current export envelope format version.
const ScenarioExportVersion = 1

// ScenarioExport is the self-describing snapshot used for import/export.
// On import all ids are regenerated and timestamps reset, so an exported
// scenario can be shared without colliding with the importer's data.
type ScenarioExport struct {
	FormatVersion int        `json:"formatVersion"`
	ExportedAt    time.Time  `json:"exportedAt"`
	Name          string     `json:"name"`
	BaseCurrency  string     `json:"baseCurrency"`
	Items         []FlowItem `json:"items"`
	Categories    []Category `json:"categories"`
}
