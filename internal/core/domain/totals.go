package domain

import "github.com/shopspring/decimal"

// MonthlyTotals aggregates resolved, currency-normalized monthly amounts by
// flow kind. Net excludes transfers: they move money between tracked
// accounts rather than in or out of the system.
type MonthlyTotals struct {
	CurrencyCode string          `json:"currencyCode"`
	Inflows      decimal.Decimal `json:"inflows"`
	Outflows     decimal.Decimal `json:"outflows"`
	Transfers    decimal.Decimal `json:"transfers"`
	Net          decimal.Decimal `json:"net"`
}

// AccountFlowSummary is the per-account monthly view. Amounts stay in the
// item's own currency; this view deliberately skips fx normalization.
type AccountFlowSummary struct {
	AccountID        string          `json:"accountID"`
	Inflows          decimal.Decimal `json:"inflows"`
	Outflows         decimal.Decimal `json:"outflows"`
	NetChange        decimal.Decimal `json:"netChange"`
	ProjectedBalance decimal.Decimal `json:"projectedBalance"`
}
