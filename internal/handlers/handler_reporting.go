package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/finsight/cashflow_backend/internal/core/domain"
	portssvc "github.com/finsight/cashflow_backend/internal/core/ports/services"
	"github.com/finsight/cashflow_backend/internal/dto"
	"github.com/finsight/cashflow_backend/internal/middleware"
	"github.com/finsight/cashflow_backend/pkg/config"
)

// reportingHandler handles aggregation and graph queries over a draft. The
// caller ships a fresh account snapshot with every request; the engine never
// fetches balances itself.
type reportingHandler struct {
	scenarioService  portssvc.ScenarioSvcFacade
	reportingService portssvc.ReportingSvcFacade
	graphService     portssvc.GraphSvcFacade
	defaultRate      decimal.Decimal
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(ss portssvc.ScenarioSvcFacade, rs portssvc.ReportingSvcFacade, gs portssvc.GraphSvcFacade, defaultRate decimal.Decimal) *reportingHandler {
	return &reportingHandler{
		scenarioService:  ss,
		reportingService: rs,
		graphService:     gs,
		defaultRate:      defaultRate,
	}
}

// registerReportingRoutes registers aggregation and graph routes.
func registerReportingRoutes(rg *gin.RouterGroup, cfg *config.Config, scenarioService portssvc.ScenarioSvcFacade, reportingService portssvc.ReportingSvcFacade, graphService portssvc.GraphSvcFacade) {
	h := newReportingHandler(scenarioService, reportingService, graphService, cfg.DefaultUsdToEurRate)

	reports := rg.Group("/drafts/:localID/reports")
	{
		reports.POST("/totals", h.getTotals)
		reports.POST("/accounts", h.getAccountSummaries)
		reports.POST("/graph", h.getFlowGraph)
		reports.POST("/graph/nodes/:nodeName", h.getNodeContributors)
	}
}

// bindReportRequest binds the request body and resolves the draft it targets.
func (h *reportingHandler) bindReportRequest(c *gin.Context) (*domain.Draft, *dto.ReportRequest, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind report request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return nil, nil, false
	}

	draft, err := h.scenarioService.GetDraft(c.Param("localID"))
	if err != nil {
		respondError(c, err, "Failed to resolve draft for report")
		return nil, nil, false
	}
	return draft, &req, true
}

func (h *reportingHandler) rateFor(req *dto.ReportRequest) decimal.Decimal {
	if req.UsdToEurRate != nil {
		return *req.UsdToEurRate
	}
	return h.defaultRate
}

func (h *reportingHandler) getTotals(c *gin.Context) {
	draft, req, ok := h.bindReportRequest(c)
	if !ok {
		return
	}

	target := req.TargetCurrency
	if target == "" {
		target = draft.Scenario.BaseCurrency
	}

	totals, err := h.reportingService.AggregateTotals(draft.Scenario.Items, req.ToBalanceSnapshot(), target, h.rateFor(req))
	if err != nil {
		respondError(c, err, "Failed to aggregate totals")
		return
	}
	c.JSON(http.StatusOK, dto.ToTotalsResponse(totals))
}

func (h *reportingHandler) getAccountSummaries(c *gin.Context) {
	draft, req, ok := h.bindReportRequest(c)
	if !ok {
		return
	}

	summaries := h.reportingService.AggregateByAccount(draft.Scenario.Items, req.ToAccounts(), req.ToBalanceSnapshot())
	c.JSON(http.StatusOK, dto.AccountSummariesResponse{Accounts: summaries})
}

func (h *reportingHandler) getFlowGraph(c *gin.Context) {
	draft, req, ok := h.bindReportRequest(c)
	if !ok {
		return
	}

	target := req.TargetCurrency
	if target == "" {
		target = draft.Scenario.BaseCurrency
	}
	period := req.Period
	if period == "" {
		period = domain.PeriodMonthly
	}

	graph, err := h.graphService.BuildFlowGraph(
		draft.Scenario.Items,
		draft.Scenario.Categories,
		req.ToAccounts(),
		req.ToBalanceSnapshot(),
		target,
		h.rateFor(req),
		period,
	)
	if err != nil {
		respondError(c, err, "Failed to build flow graph")
		return
	}
	c.JSON(http.StatusOK, dto.ToGraphResponse(graph))
}

func (h *reportingHandler) getNodeContributors(c *gin.Context) {
	draft, req, ok := h.bindReportRequest(c)
	if !ok {
		return
	}

	flows := h.graphService.NodeContributors(
		draft.Scenario.Items,
		draft.Scenario.Categories,
		req.ToAccounts(),
		c.Param("nodeName"),
	)
	c.JSON(http.StatusOK, dto.NodeFlowsResponse{
		NodeName: flows.NodeName,
		Inflows:  flows.Inflows,
		Outflows: flows.Outflows,
	})
}
