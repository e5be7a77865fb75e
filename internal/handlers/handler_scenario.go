package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finsight/cashflow_backend/internal/apperrors"
	"github.com/finsight/cashflow_backend/internal/core/domain"
	portssvc "github.com/finsight/cashflow_backend/internal/core/ports/services"
	"github.com/finsight/cashflow_backend/internal/dto"
	"github.com/finsight/cashflow_backend/internal/middleware"
	"github.com/finsight/cashflow_backend/pkg/config"
)

// scenarioHandler handles HTTP requests for scenarios, drafts and their
// structural edits.
type scenarioHandler struct {
	scenarioService     portssvc.ScenarioSvcFacade
	flowEditService     portssvc.FlowEditSvcFacade
	defaultBaseCurrency string
}

// newScenarioHandler creates a new scenarioHandler.
func newScenarioHandler(ss portssvc.ScenarioSvcFacade, fs portssvc.FlowEditSvcFacade, defaultBaseCurrency string) *scenarioHandler {
	return &scenarioHandler{
		scenarioService:     ss,
		flowEditService:     fs,
		defaultBaseCurrency: defaultBaseCurrency,
	}
}

// registerScenarioRoutes registers routes related to scenarios and drafts.
func registerScenarioRoutes(rg *gin.RouterGroup, cfg *config.Config, scenarioService portssvc.ScenarioSvcFacade, flowEditService portssvc.FlowEditSvcFacade) {
	h := newScenarioHandler(scenarioService, flowEditService, cfg.BaseCurrency)

	scenarios := rg.Group("/scenarios")
	{
		scenarios.GET("", h.listScenarios)
		scenarios.POST("", h.createDraft)
		scenarios.POST("/import", h.importScenario)
		scenarios.GET("/:id", h.getScenario)
		scenarios.DELETE("/:id", h.deleteScenario)
		scenarios.POST("/:id/open", h.openDraft)
		scenarios.GET("/:id/export", h.exportScenario)
	}

	drafts := rg.Group("/drafts")
	{
		drafts.GET("/:localID", h.getDraft)
		drafts.POST("/:localID/save", h.saveDraft)
		drafts.DELETE("/:localID", h.discardDraft)

		drafts.POST("/:localID/items", h.addFlowItem)
		drafts.PUT("/:localID/items/:itemID", h.updateFlowItem)
		drafts.DELETE("/:localID/items/:itemID", h.deleteFlowItem)
		drafts.POST("/:localID/items/:itemID/split", h.splitFlowItem)
		drafts.PUT("/:localID/items/:itemID/category", h.recategorizeFlowItem)

		drafts.POST("/:localID/categories", h.createCategory)
		drafts.DELETE("/:localID/categories/:categoryID", h.deleteCategory)
	}
}

// respondError maps service errors onto HTTP status codes.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflicting operation", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func (h *scenarioHandler) listScenarios(c *gin.Context) {
	portfolioID := c.Query("portfolioID")
	if portfolioID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "portfolioID query parameter is required"})
		return
	}

	scenarios, err := h.scenarioService.ListScenarios(c.Request.Context(), portfolioID)
	if err != nil {
		respondError(c, err, "Failed to list scenarios")
		return
	}
	c.JSON(http.StatusOK, gin.H{"scenarios": dto.ToListScenarioResponse(scenarios)})
}

func (h *scenarioHandler) createDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	baseCurrency := req.BaseCurrency
	if baseCurrency == "" {
		baseCurrency = h.defaultBaseCurrency
	}

	draft, err := h.scenarioService.NewDraft(req.PortfolioID, req.Name, baseCurrency)
	if err != nil {
		respondError(c, err, "Failed to create draft")
		return
	}

	logger.Info("Draft created", slog.String("local_id", draft.LocalID), slog.String("scenario_name", draft.Scenario.Name))
	c.JSON(http.StatusCreated, dto.ToDraftResponse(draft))
}

func (h *scenarioHandler) getScenario(c *gin.Context) {
	scenario, err := h.scenarioService.GetScenario(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve scenario")
		return
	}
	c.JSON(http.StatusOK, dto.ToScenarioResponse(scenario))
}

func (h *scenarioHandler) deleteScenario(c *gin.Context) {
	if err := h.scenarioService.DeleteScenario(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete scenario")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *scenarioHandler) openDraft(c *gin.Context) {
	scenario, err := h.scenarioService.GetScenario(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to open scenario for editing")
		return
	}
	draft := h.scenarioService.OpenDraft(*scenario)
	c.JSON(http.StatusCreated, dto.ToDraftResponse(draft))
}

func (h *scenarioHandler) exportScenario(c *gin.Context) {
	scenario, err := h.scenarioService.GetScenario(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to export scenario")
		return
	}
	c.JSON(http.StatusOK, h.scenarioService.ExportScenario(*scenario))
}

func (h *scenarioHandler) importScenario(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ImportScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for importScenario", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	draft, err := h.scenarioService.ImportScenario(req.Export, req.PortfolioID)
	if err != nil {
		respondError(c, err, "Failed to import scenario")
		return
	}
	logger.Info("Scenario imported", slog.String("local_id", draft.LocalID), slog.Int("item_count", len(draft.Scenario.Items)))
	c.JSON(http.StatusCreated, dto.ToDraftResponse(draft))
}

func (h *scenarioHandler) getDraft(c *gin.Context) {
	draft, err := h.scenarioService.GetDraft(c.Param("localID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve draft")
		return
	}
	c.JSON(http.StatusOK, dto.ToDraftResponse(draft))
}

func (h *scenarioHandler) saveDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	draft, err := h.scenarioService.SaveDraft(c.Request.Context(), c.Param("localID"))
	if err != nil {
		respondError(c, err, "Failed to save draft")
		return
	}
	logger.Info("Draft saved", slog.String("local_id", draft.LocalID), slog.String("scenario_id", draft.Scenario.ScenarioID))
	c.JSON(http.StatusOK, dto.ToDraftResponse(draft))
}

func (h *scenarioHandler) discardDraft(c *gin.Context) {
	if err := h.scenarioService.DiscardDraft(c.Param("localID")); err != nil {
		respondError(c, err, "Failed to discard draft")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *scenarioHandler) addFlowItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.FlowItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addFlowItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	item := req.ToFlowItem()
	if problems := h.flowEditService.ValidateFlowItem(item); len(problems) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": problems})
		return
	}

	draft, err := h.scenarioService.ApplyEdit(c.Param("localID"), func(s *domain.Scenario) error {
		s.Items = append(s.Items, item)
		return nil
	})
	if err != nil {
		respondError(c, err, "Failed to add flow item")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDraftResponse(draft))
}

func (h *scenarioHandler) updateFlowItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.FlowItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateFlowItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	itemID := c.Param("itemID")
	draft, err := h.scenarioService.ApplyEdit(c.Param("localID"), func(s *domain.Scenario) error {
		for i, existing := range s.Items {
			if existing.FlowItemID != itemID {
				continue
			}
			updated := req.ApplyTo(existing)
			if problems := h.flowEditService.ValidateFlowItem(updated); len(problems) > 0 {
				return fmt.Errorf("%w: %v", apperrors.ErrValidation, problems)
			}
			s.Items[i] = updated
			return nil
		}
		return fmt.Errorf("%w: flow item %s", apperrors.ErrNotFound, itemID)
	})
	if err != nil {
		respondError(c, err, "Failed to update flow item")
		return
	}
	c.JSON(http.StatusOK, dto.ToDraftResponse(draft))
}

func (h *scenarioHandler) deleteFlowItem(c *gin.Context) {
	itemID := c.Param("itemID")
	draft, err := h.scenarioService.ApplyEdit(c.Param("localID"), func(s *domain.Scenario) error {
		for i, existing := range s.Items {
			if existing.FlowItemID == itemID {
				s.Items = append(s.Items[:i:i], s.Items[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: flow item %s", apperrors.ErrNotFound, itemID)
	})
	if err != nil {
		respondError(c, err, "Failed to delete flow item")
		return
	}
	c.JSON(http.StatusOK, dto.ToDraftResponse(draft))
}

// splitFlowItem replaces one flow with the fragments of a split. The engine's
// split operations return new items without deleting the original, so the
// replacement happens here at the scenario level.
func (h *scenarioHandler) splitFlowItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SplitFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for splitFlowItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if len(req.Splits) == 0 && len(req.DestinationSplits) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one split is required"})
		return
	}

	itemID := c.Param("itemID")
	draft, err := h.scenarioService.ApplyEdit(c.Param("localID"), func(s *domain.Scenario) error {
		original, ok := s.FindItem(itemID)
		if !ok {
			return fmt.Errorf("%w: flow item %s", apperrors.ErrNotFound, itemID)
		}

		var fragments []domain.FlowItem
		var splitErr error
		if len(req.DestinationSplits) > 0 {
			fragments, splitErr = h.flowEditService.SplitFlowByDestination(original, req.ToDestinationSplits())
		} else {
			fragments, splitErr = h.flowEditService.SplitFlowByAmount(original, req.ToAmountSplits())
		}
		if splitErr != nil {
			return splitErr
		}

		items := make([]domain.FlowItem, 0, len(s.Items)-1+len(fragments))
		for _, existing := range s.Items {
			if existing.FlowItemID != itemID {
				items = append(items, existing)
			}
		}
		s.Items = append(items, fragments...)
		return nil
	})
	if err != nil {
		respondError(c, err, "Failed to split flow item")
		return
	}

	logger.Info("Flow item split", slog.String("item_id", itemID))
	c.JSON(http.StatusOK, dto.ToDraftResponse(draft))
}

func (h *scenarioHandler) recategorizeFlowItem(c *gin.Context) {
	var req struct {
		CategoryID string `json:"categoryID" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	itemID := c.Param("itemID")
	draft, err := h.scenarioService.ApplyEdit(c.Param("localID"), func(s *domain.Scenario) error {
		if _, ok := s.FindCategory(req.CategoryID); !ok {
			return fmt.Errorf("%w: category %s", apperrors.ErrNotFound, req.CategoryID)
		}
		for i, existing := range s.Items {
			if existing.FlowItemID == itemID {
				s.Items[i] = h.flowEditService.AddIntermediateCategory(existing, req.CategoryID)
				return nil
			}
		}
		return fmt.Errorf("%w: flow item %s", apperrors.ErrNotFound, itemID)
	})
	if err != nil {
		respondError(c, err, "Failed to recategorize flow item")
		return
	}
	c.JSON(http.StatusOK, dto.ToDraftResponse(draft))
}

func (h *scenarioHandler) createCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	category := h.flowEditService.CreateCustomCategory(req.Name, req.Kind, req.Icon)
	draft, err := h.scenarioService.ApplyEdit(c.Param("localID"), func(s *domain.Scenario) error {
		s.Categories = append(s.Categories, category)
		return nil
	})
	if err != nil {
		respondError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDraftResponse(draft))
}

// deleteCategory cascades at the scenario level: the category goes away and
// every item referencing it is detached, not deleted.
func (h *scenarioHandler) deleteCategory(c *gin.Context) {
	categoryID := c.Param("categoryID")
	draft, err := h.scenarioService.ApplyEdit(c.Param("localID"), func(s *domain.Scenario) error {
		if _, ok := s.FindCategory(categoryID); !ok {
			return fmt.Errorf("%w: category %s", apperrors.ErrNotFound, categoryID)
		}
		s.Items, s.Categories = h.flowEditService.RemoveCategory(s.Items, s.Categories, categoryID)
		return nil
	})
	if err != nil {
		respondError(c, err, "Failed to delete category")
		return
	}
	c.JSON(http.StatusOK, dto.ToDraftResponse(draft))
}
