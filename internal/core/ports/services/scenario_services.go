package services

import (
	"context"

	"github.com/finsight/cashflow_backend/internal/core/domain"
)

// ScenarioEdit mutates a scenario in place as part of ApplyEdit. It runs
// against a private copy; returning an error discards the edit.
type ScenarioEdit func(*domain.Scenario) error

// ScenarioSvcFacade owns the draft state machine and mediates between local
// (unsaved) drafts and the persisted scenarios behind the repository.
type ScenarioSvcFacade interface {
	// NewDraft creates an unsaved draft seeded with the default categories.
	NewDraft(portfolioID, name, baseCurrency string) (*domain.Draft, error)

	// OpenDraft registers a persisted scenario for local editing; the
	// resulting draft starts saved-clean.
	OpenDraft(scenario domain.Scenario) *domain.Draft

	// GetDraft returns the current state of a registered draft.
	GetDraft(localID string) (*domain.Draft, error)

	// ApplyEdit applies an edit to a draft's scenario, stamps UpdatedAt and
	// marks the draft dirty.
	ApplyEdit(localID string, edit ScenarioEdit) (*domain.Draft, error)

	// SaveDraft persists a draft. Saves are single-flight per draft: a
	// second save while one is in flight fails with ErrConflict. A response
	// arriving after the draft was discarded or edited again does not
	// overwrite the newer local state.
	SaveDraft(ctx context.Context, localID string) (*domain.Draft, error)

	// DiscardDraft removes an unsaved or clean draft from the registry.
	// Discarding pending edits on a saved-dirty draft is unsupported; the
	// caller re-fetches from persistence instead.
	DiscardDraft(localID string) error

	// ListScenarios returns the persisted scenarios of a portfolio.
	ListScenarios(ctx context.Context, portfolioID string) ([]domain.Scenario, error)

	// GetScenario returns one persisted scenario.
	GetScenario(ctx context.Context, scenarioID string) (*domain.Scenario, error)

	// DeleteScenario removes a persisted scenario and drops any draft that
	// was tracking it.
	DeleteScenario(ctx context.Context, scenarioID string) error

	// ExportScenario produces the versioned snapshot envelope for a scenario.
	ExportScenario(scenario domain.Scenario) domain.ScenarioExport

	// ImportScenario rebuilds a scenario from an export envelope with all
	// ids regenerated and timestamps set to import time, returning it as an
	// unsaved draft.
	ImportScenario(export domain.ScenarioExport, portfolioID string) (*domain.Draft, error)
}
