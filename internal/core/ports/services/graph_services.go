package services

import (
	"github.com/shopspring/decimal"

	"github.com/finsight/cashflow_backend/internal/core/domain"
)

// GraphSvcFacade builds the weighted, aggregated source -> category ->
// destination graph consumed by the Sankey renderer, and answers node
// drill-down queries against the same derivation.
type GraphSvcFacade interface {
	// BuildFlowGraph derives the flow graph for a set of items. Weights are
	// resolved to monthly amounts, converted into displayCurrency and scaled
	// by the period multiplier; edges sharing a (from, to) pair collapse
	// into one with a combined weight.
	BuildFlowGraph(
		items []domain.FlowItem,
		categories []domain.Category,
		accounts []domain.AccountInfo,
		balances domain.BalanceSnapshot,
		displayCurrency string,
		usdToEurRate decimal.Decimal,
		period domain.GraphPeriod,
	) (*domain.FlowGraph, error)

	// NodeContributors reconstructs which flow items pass through the named
	// node, re-deriving the same edge endpoints used during aggregation.
	NodeContributors(
		items []domain.FlowItem,
		categories []domain.Category,
		accounts []domain.AccountInfo,
		nodeName string,
	) domain.NodeFlows
}
