package repositories

import (
	"context"

	"github.com/finsight/cashflow_backend/internal/core/domain"
)

// ScenarioReader defines read operations for persisted scenarios.
type ScenarioReader interface {
	// FindScenarioByID retrieves a scenario by its persisted identifier.
	FindScenarioByID(ctx context.Context, scenarioID string) (*domain.Scenario, error)

	// ListScenarios retrieves every scenario belonging to a portfolio.
	ListScenarios(ctx context.Context, portfolioID string) ([]domain.Scenario, error)
}

// ScenarioWriter defines write operations for persisted scenarios.
type ScenarioWriter interface {
	// CreateScenario persists a new scenario and returns it with its
	// assigned identity.
	CreateScenario(ctx context.Context, scenario domain.Scenario) (*domain.Scenario, error)

	// UpdateScenario replaces a persisted scenario's contents.
	UpdateScenario(ctx context.Context, scenarioID string, scenario domain.Scenario) (*domain.Scenario, error)

	// DeleteScenario removes a persisted scenario.
	DeleteScenario(ctx context.Context, scenarioID string) error
}

// ScenarioRepositoryFacade combines all scenario repository interfaces. This
// is the engine's contract with the external persistence API: transport
// retries and timeouts are the collaborator's concern, surfaced here as a
// returned error.
type ScenarioRepositoryFacade interface {
	ScenarioReader
	ScenarioWriter
}
