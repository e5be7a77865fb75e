package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finsight/cashflow_backend/internal/apperrors"
	"github.com/finsight/cashflow_backend/internal/core/domain"
	portsrepo "github.com/finsight/cashflow_backend/internal/core/ports/repositories"
	portssvc "github.com/finsight/cashflow_backend/internal/core/ports/services"
)

// draftEntry tracks one registered draft. The generation counter bumps on
// every edit and discard so an in-flight save response can detect that local
// state moved on and must not clobber it.
type draftEntry struct {
	draft      domain.Draft
	generation uint64
	saving     bool
}

// ScenarioService owns the in-memory draft registry and mediates between
// local edits and the persisted scenarios behind the repository. All draft
// bookkeeping happens under one mutex; the repository call itself runs
// outside it so a slow save never blocks edits to other drafts.
type ScenarioService struct {
	repo portsrepo.ScenarioRepositoryFacade

	mu     sync.Mutex
	drafts map[string]*draftEntry
}

// NewScenarioService creates a new ScenarioService.
func NewScenarioService(repo portsrepo.ScenarioRepositoryFacade) *ScenarioService {
	return &ScenarioService{
		repo:   repo,
		drafts: make(map[string]*draftEntry),
	}
}

// NewDraft creates an unsaved draft seeded with the default categories.
func (s *ScenarioService) NewDraft(portfolioID, name, baseCurrency string) (*domain.Draft, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: scenario name is required", apperrors.ErrValidation)
	}
	if baseCurrency == "" {
		baseCurrency = domain.CurrencyUSD
	}
	if !domain.IsSupportedCurrency(baseCurrency) {
		return nil, fmt.Errorf("%w: unsupported base currency '%s'", apperrors.ErrValidation, baseCurrency)
	}

	now := time.Now()
	draft := domain.Draft{
		LocalID: uuid.NewString(),
		Scenario: domain.Scenario{
			PortfolioID:  portfolioID,
			Name:         name,
			BaseCurrency: baseCurrency,
			Items:        []domain.FlowItem{},
			Categories:   domain.DefaultCategories(uuid.NewString, domain.NewAuditFields(now)),
			AuditFields:  domain.NewAuditFields(now),
		},
		Dirty: true,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.LocalID] = &draftEntry{draft: draft}
	return &draft, nil
}

// OpenDraft registers a persisted scenario for local editing. The resulting
// draft starts saved-clean.
func (s *ScenarioService) OpenDraft(scenario domain.Scenario) *domain.Draft {
	draft := domain.Draft{
		LocalID:  uuid.NewString(),
		Scenario: scenario,
		Dirty:    false,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.LocalID] = &draftEntry{draft: draft}
	return &draft
}

// GetDraft returns a copy of the current draft state.
func (s *ScenarioService) GetDraft(localID string) (*domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.drafts[localID]
	if !ok {
		return nil, fmt.Errorf("%w: draft %s", apperrors.ErrNotFound, localID)
	}
	draft := entry.draft
	return &draft, nil
}

// ApplyEdit runs an edit against a copy of the draft's scenario, stamps
// UpdatedAt and marks the draft dirty. A saved-clean draft becomes
// saved-dirty; an unsaved draft stays unsaved.
func (s *ScenarioService) ApplyEdit(localID string, edit portssvc.ScenarioEdit) (*domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.drafts[localID]
	if !ok {
		return nil, fmt.Errorf("%w: draft %s", apperrors.ErrNotFound, localID)
	}

	// The copy must not share backing arrays with the registry: edits write
	// elements in place, and a failed edit has to leave the stored draft and
	// any previously handed-out snapshots untouched.
	scenario := entry.draft.Scenario
	scenario.Items = append([]domain.FlowItem(nil), scenario.Items...)
	scenario.Categories = append([]domain.Category(nil), scenario.Categories...)
	if err := edit(&scenario); err != nil {
		return nil, err
	}
	scenario.UpdatedAt = time.Now()

	entry.draft.Scenario = scenario
	entry.draft.Dirty = true
	entry.generation++

	draft := entry.draft
	return &draft, nil
}

// SaveDraft persists a draft, creating the scenario when it has no persisted
// identity yet. Saves are single-flight per draft: a second save while one
// is in flight fails with ErrConflict. If the draft is edited or discarded
// while the save is in flight, the response does not overwrite the newer
// local state (beyond recording a freshly assigned identity, which later
// saves need to update rather than duplicate the scenario).
func (s *ScenarioService) SaveDraft(ctx context.Context, localID string) (*domain.Draft, error) {
	s.mu.Lock()
	entry, ok := s.drafts[localID]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: draft %s", apperrors.ErrNotFound, localID)
	}
	if entry.saving {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: a save for draft %s is already in flight", apperrors.ErrConflict, localID)
	}
	entry.saving = true
	generation := entry.generation
	snapshot := entry.draft.Scenario
	s.mu.Unlock()

	var persisted *domain.Scenario
	var err error
	if snapshot.IsPersisted() {
		persisted, err = s.repo.UpdateScenario(ctx, snapshot.ScenarioID, snapshot)
	} else {
		persisted, err = s.repo.CreateScenario(ctx, snapshot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok = s.drafts[localID]
	if !ok {
		// Draft was discarded while the save was in flight; drop the result.
		if err != nil {
			return nil, fmt.Errorf("failed to save scenario: %w", err)
		}
		return nil, fmt.Errorf("%w: draft %s", apperrors.ErrNotFound, localID)
	}
	entry.saving = false

	if err != nil {
		return nil, fmt.Errorf("failed to save scenario: %w", err)
	}

	if entry.generation != generation {
		// Edits landed after this save left; keep the draft dirty but adopt
		// the identity so the next save updates instead of creating twice.
		if !entry.draft.Scenario.IsPersisted() {
			entry.draft.Scenario.ScenarioID = persisted.ScenarioID
		}
		draft := entry.draft
		return &draft, nil
	}

	entry.draft.Scenario = *persisted
	entry.draft.Dirty = false
	draft := entry.draft
	return &draft, nil
}

// DiscardDraft removes an unsaved or saved-clean draft from the registry.
// Discarding pending edits on a saved-dirty draft is unsupported here; the
// caller re-fetches the persisted scenario instead.
func (s *ScenarioService) DiscardDraft(localID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.drafts[localID]
	if !ok {
		return fmt.Errorf("%w: draft %s", apperrors.ErrNotFound, localID)
	}
	if entry.draft.State() == domain.DraftSavedDirty {
		return fmt.Errorf("%w: discarding edits on a saved scenario is not supported", apperrors.ErrConflict)
	}
	delete(s.drafts, localID)
	return nil
}

// ListScenarios returns the persisted scenarios of a portfolio.
func (s *ScenarioService) ListScenarios(ctx context.Context, portfolioID string) ([]domain.Scenario, error) {
	scenarios, err := s.repo.ListScenarios(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	return scenarios, nil
}

// GetScenario returns one persisted scenario.
func (s *ScenarioService) GetScenario(ctx context.Context, scenarioID string) (*domain.Scenario, error) {
	scenario, err := s.repo.FindScenarioByID(ctx, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scenario %s: %w", scenarioID, err)
	}
	return scenario, nil
}

// DeleteScenario removes a persisted scenario and drops any draft tracking it.
func (s *ScenarioService) DeleteScenario(ctx context.Context, scenarioID string) error {
	if err := s.repo.DeleteScenario(ctx, scenarioID); err != nil {
		return fmt.Errorf("failed to delete scenario %s: %w", scenarioID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for localID, entry := range s.drafts {
		if entry.draft.Scenario.ScenarioID == scenarioID {
			delete(s.drafts, localID)
		}
	}
	return nil
}

// ExportScenario produces the versioned snapshot envelope for a scenario.
func (s *ScenarioService) ExportScenario(scenario domain.Scenario) domain.ScenarioExport {
	return domain.ScenarioExport{
		FormatVersion: domain.ScenarioExportVersion,
		ExportedAt:    time.Now(),
		Name:          scenario.Name,
		BaseCurrency:  scenario.BaseCurrency,
		Items:         scenario.Items,
		Categories:    scenario.Categories,
	}
}

// ImportScenario rebuilds a scenario from an export envelope as a new
// unsaved draft. Every id is regenerated, including the category references
// inside items, so imported data cannot collide with the importing user's
// existing scenarios; timestamps are set to import time.
func (s *ScenarioService) ImportScenario(export domain.ScenarioExport, portfolioID string) (*domain.Draft, error) {
	if export.FormatVersion != domain.ScenarioExportVersion {
		return nil, fmt.Errorf("%w: unsupported export format version %d", apperrors.ErrValidation, export.FormatVersion)
	}
	if export.Name == "" {
		return nil, fmt.Errorf("%w: exported scenario has no name", apperrors.ErrValidation)
	}
	if !domain.IsSupportedCurrency(export.BaseCurrency) {
		return nil, fmt.Errorf("%w: unsupported base currency '%s'", apperrors.ErrValidation, export.BaseCurrency)
	}

	now := time.Now()
	fields := domain.NewAuditFields(now)

	categoryIDs := make(map[string]string, len(export.Categories))
	categories := make([]domain.Category, 0, len(export.Categories))
	for _, c := range export.Categories {
		newID := uuid.NewString()
		categoryIDs[c.CategoryID] = newID
		c.CategoryID = newID
		c.AuditFields = fields
		categories = append(categories, c)
	}

	items := make([]domain.FlowItem, 0, len(export.Items))
	for _, item := range export.Items {
		item.FlowItemID = uuid.NewString()
		// A category reference missing from the export is dangling; detach
		// rather than carry an id that points nowhere.
		item.CategoryID = categoryIDs[item.CategoryID]
		item.AuditFields = fields
		items = append(items, item)
	}

	draft := domain.Draft{
		LocalID: uuid.NewString(),
		Scenario: domain.Scenario{
			PortfolioID:  portfolioID,
			Name:         export.Name,
			BaseCurrency: export.BaseCurrency,
			Items:        items,
			Categories:   categories,
			AuditFields:  fields,
		},
		Dirty: true,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.LocalID] = &draftEntry{draft: draft}
	return &draft, nil
}
