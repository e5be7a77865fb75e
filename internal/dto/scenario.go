package dto

import (
	"time"

	"github.com/finsight/cashflow_backend/internal/core/domain"
)

// CreateScenarioRequest defines the data needed to start a new draft.
type CreateScenarioRequest struct {
	PortfolioID  string `json:"portfolioID" binding:"required"`
	Name         string `json:"name" binding:"required"`
	BaseCurrency string `json:"baseCurrency" binding:"omitempty,oneof=USD EUR"`
}

// ScenarioResponse mirrors domain.Scenario.
type ScenarioResponse struct {
	ScenarioID   string            `json:"scenarioID"`
	PortfolioID  string            `json:"portfolioID"`
	Name         string            `json:"name"`
	BaseCurrency string            `json:"baseCurrency"`
	Items        []domain.FlowItem `json:"items"`
	Categories   []domain.Category `json:"categories"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// ToScenarioResponse converts a domain.Scenario to its response DTO.
func ToScenarioResponse(s *domain.Scenario) ScenarioResponse {
	return ScenarioResponse{
		ScenarioID:   s.ScenarioID,
		PortfolioID:  s.PortfolioID,
		Name:         s.Name,
		BaseCurrency: s.BaseCurrency,
		Items:        s.Items,
		Categories:   s.Categories,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// ToListScenarioResponse converts a slice of scenarios to response DTOs.
func ToListScenarioResponse(scenarios []domain.Scenario) []ScenarioResponse {
	res := make([]ScenarioResponse, len(scenarios))
	for i := range scenarios {
		res[i] = ToScenarioResponse(&scenarios[i])
	}
	return res
}

// DraftResponse exposes a draft's local identity and state alongside its
// scenario contents.
type DraftResponse struct {
	LocalID  string           `json:"localID"`
	State    domain.DraftState `json:"state"`
	Dirty    bool             `json:"dirty"`
	Scenario ScenarioResponse `json:"scenario"`
}

// ToDraftResponse converts a domain.Draft to its response DTO.
func ToDraftResponse(d *domain.Draft) DraftResponse {
	return DraftResponse{
		LocalID:  d.LocalID,
		State:    d.State(),
		Dirty:    d.Dirty,
		Scenario: ToScenarioResponse(&d.Scenario),
	}
}

// ImportScenarioRequest wraps an export envelope with the target portfolio.
type ImportScenarioRequest struct {
	PortfolioID string                `json:"portfolioID" binding:"required"`
	Export      domain.ScenarioExport `json:"export" binding:"required"`
}
