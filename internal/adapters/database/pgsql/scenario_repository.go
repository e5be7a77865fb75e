package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finsight/cashflow_backend/internal/apperrors"
	"github.com/finsight/cashflow_backend/internal/core/domain"
	portsrepo "github.com/finsight/cashflow_backend/internal/core/ports/repositories"
)

type scenarioRepository struct {
	pool *pgxpool.Pool
}

// NewScenarioRepository creates a new repository for scenario data.
func NewScenarioRepository(pool *pgxpool.Pool) portsrepo.ScenarioRepositoryFacade {
	return &scenarioRepository{pool: pool}
}

// Items and categories are stored as jsonb documents: the engine always
// reads and writes a scenario as a whole, so row-per-flow-item storage would
// only add join overhead here.
func marshalScenarioLists(scenario domain.Scenario) ([]byte, []byte, error) {
	items, err := json.Marshal(scenario.Items)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal scenario items: %w", err)
	}
	categories, err := json.Marshal(scenario.Categories)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal scenario categories: %w", err)
	}
	return items, categories, nil
}

func (r *scenarioRepository) scanScenario(row pgx.Row) (*domain.Scenario, error) {
	var scenario domain.Scenario
	var itemsJSON, categoriesJSON []byte

	err := row.Scan(
		&scenario.ScenarioID,
		&scenario.PortfolioID,
		&scenario.Name,
		&scenario.BaseCurrency,
		&itemsJSON,
		&categoriesJSON,
		&scenario.CreatedAt,
		&scenario.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &scenario.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario items: %w", err)
	}
	if err := json.Unmarshal(categoriesJSON, &scenario.Categories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario categories: %w", err)
	}
	return &scenario, nil
}

// CreateScenario persists a new scenario, assigning its identity.
func (r *scenarioRepository) CreateScenario(ctx context.Context, scenario domain.Scenario) (*domain.Scenario, error) {
	itemsJSON, categoriesJSON, err := marshalScenarioLists(scenario)
	if err != nil {
		return nil, err
	}

	scenario.ScenarioID = uuid.NewString()
	now := time.Now().UTC()
	if scenario.CreatedAt.IsZero() {
		scenario.CreatedAt = now
	}
	scenario.UpdatedAt = now

	query := `
		INSERT INTO scenarios (scenario_id, portfolio_id, name, base_currency, items, categories, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = r.pool.Exec(ctx, query,
		scenario.ScenarioID,
		scenario.PortfolioID,
		scenario.Name,
		scenario.BaseCurrency,
		itemsJSON,
		categoriesJSON,
		scenario.CreatedAt,
		scenario.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario %s: %w", scenario.ScenarioID, err)
	}
	return &scenario, nil
}

// UpdateScenario replaces a persisted scenario's contents.
func (r *scenarioRepository) UpdateScenario(ctx context.Context, scenarioID string, scenario domain.Scenario) (*domain.Scenario, error) {
	itemsJSON, categoriesJSON, err := marshalScenarioLists(scenario)
	if err != nil {
		return nil, err
	}

	scenario.ScenarioID = scenarioID
	scenario.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE scenarios
		SET name = $2, base_currency = $3, items = $4, categories = $5, updated_at = $6
		WHERE scenario_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		scenarioID,
		scenario.Name,
		scenario.BaseCurrency,
		itemsJSON,
		categoriesJSON,
		scenario.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update scenario %s: %w", scenarioID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: scenario %s", apperrors.ErrNotFound, scenarioID)
	}
	return &scenario, nil
}

// FindScenarioByID retrieves a scenario by its persisted identifier.
func (r *scenarioRepository) FindScenarioByID(ctx context.Context, scenarioID string) (*domain.Scenario, error) {
	query := `
		SELECT scenario_id, portfolio_id, name, base_currency, items, categories, created_at, updated_at
		FROM scenarios
		WHERE scenario_id = $1;
	`
	scenario, err := r.scanScenario(r.pool.QueryRow(ctx, query, scenarioID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: scenario %s", apperrors.ErrNotFound, scenarioID)
		}
		return nil, fmt.Errorf("failed to find scenario by ID %s: %w", scenarioID, err)
	}
	return scenario, nil
}

// ListScenarios retrieves every scenario belonging to a portfolio.
func (r *scenarioRepository) ListScenarios(ctx context.Context, portfolioID string) ([]domain.Scenario, error) {
	query := `
		SELECT scenario_id, portfolio_id, name, base_currency, items, categories, created_at, updated_at
		FROM scenarios
		WHERE portfolio_id = $1
		ORDER BY created_at;
	`
	rows, err := r.pool.Query(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios for portfolio %s: %w", portfolioID, err)
	}
	defer rows.Close()

	var scenarios []domain.Scenario
	for rows.Next() {
		scenario, err := r.scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenario row: %w", err)
		}
		scenarios = append(scenarios, *scenario)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while reading scenario rows: %w", err)
	}
	return scenarios, nil
}

// DeleteScenario removes a persisted scenario.
func (r *scenarioRepository) DeleteScenario(ctx context.Context, scenarioID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM scenarios WHERE scenario_id = $1;`, scenarioID)
	if err != nil {
		return fmt.Errorf("failed to delete scenario %s: %w", scenarioID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: scenario %s", apperrors.ErrNotFound, scenarioID)
	}
	return nil
}
