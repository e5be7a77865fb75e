package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finsight/cashflow_backend/internal/core/domain"
)

// AccountInfoPayload describes one externally-owned account supplied with a
// reporting request. The engine never fetches accounts itself; the caller
// ships a snapshot alongside each resolution pass.
type AccountInfoPayload struct {
	AccountID    string             `json:"accountID" binding:"required"`
	Name         string             `json:"name" binding:"required"`
	Kind         domain.AccountKind `json:"kind"`
	Balance      decimal.Decimal    `json:"balance"`
	CurrencyCode string             `json:"currencyCode" binding:"omitempty,oneof=USD EUR"`
}

// ReportRequest carries the context of one aggregation pass: the account
// snapshot, the USD->EUR rate and the requested display currency/period.
type ReportRequest struct {
	Accounts       []AccountInfoPayload `json:"accounts" binding:"omitempty,dive"`
	TargetCurrency string               `json:"targetCurrency" binding:"omitempty,oneof=USD EUR"`
	// UsdToEurRate is how many EUR one USD buys; the config default applies
	// when omitted.
	UsdToEurRate *decimal.Decimal   `json:"usdToEurRate"`
	Period       domain.GraphPeriod `json:"period" binding:"omitempty,oneof=MONTHLY YEARLY"`
}

// ToAccounts converts the payload into domain snapshots.
func (r ReportRequest) ToAccounts() []domain.AccountInfo {
	accounts := make([]domain.AccountInfo, 0, len(r.Accounts))
	for _, a := range r.Accounts {
		accounts = append(accounts, domain.AccountInfo{
			AccountID:    a.AccountID,
			Name:         a.Name,
			Kind:         a.Kind,
			Balance:      a.Balance,
			CurrencyCode: a.CurrencyCode,
		})
	}
	return accounts
}

// ToBalanceSnapshot extracts the id -> balance map used by amount resolution.
func (r ReportRequest) ToBalanceSnapshot() domain.BalanceSnapshot {
	snapshot := make(domain.BalanceSnapshot, len(r.Accounts))
	for _, a := range r.Accounts {
		snapshot[a.AccountID] = a.Balance
	}
	return snapshot
}

// TotalsResponse mirrors domain.MonthlyTotals.
type TotalsResponse struct {
	CurrencyCode string          `json:"currencyCode"`
	Inflows      decimal.Decimal `json:"inflows"`
	Outflows     decimal.Decimal `json:"outflows"`
	Transfers    decimal.Decimal `json:"transfers"`
	Net          decimal.Decimal `json:"net"`
}

// ToTotalsResponse converts domain totals to the response DTO.
func ToTotalsResponse(t *domain.MonthlyTotals) TotalsResponse {
	return TotalsResponse{
		CurrencyCode: t.CurrencyCode,
		Inflows:      t.Inflows,
		Outflows:     t.Outflows,
		Transfers:    t.Transfers,
		Net:          t.Net,
	}
}

// AccountSummariesResponse wraps the per-account aggregation view.
type AccountSummariesResponse struct {
	Accounts []domain.AccountFlowSummary `json:"accounts"`
}

// GraphResponse mirrors domain.FlowGraph for the render target contract.
type GraphResponse struct {
	Nodes []domain.GraphNode `json:"nodes"`
	Edges []domain.GraphEdge `json:"edges"`
}

// ToGraphResponse converts a domain graph to the response DTO.
func ToGraphResponse(g *domain.FlowGraph) GraphResponse {
	return GraphResponse{Nodes: g.Nodes, Edges: g.Edges}
}

// NodeFlowsResponse mirrors domain.NodeFlows for node drill-down queries.
type NodeFlowsResponse struct {
	NodeName string            `json:"nodeName"`
	Inflows  []domain.FlowItem `json:"inflows"`
	Outflows []domain.FlowItem `json:"outflows"`
}
