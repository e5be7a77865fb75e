package services

import (
	"github.com/shopspring/decimal"

	"github.com/finsight/cashflow_backend/internal/core/domain"
)

// ReportingSvcFacade defines the aggregation operations over a scenario's
// flow items. All methods are pure computations over in-memory data; the
// balance snapshot is refreshed by the caller before each pass.
type ReportingSvcFacade interface {
	// ResolveMonthlyAmount resolves one item's effective monthly amount in
	// the item's own currency, applying the percentage-of-balance rule when
	// a positive source balance is available.
	ResolveMonthlyAmount(item domain.FlowItem, balances domain.BalanceSnapshot) decimal.Decimal

	// AggregateTotals sums resolved, currency-normalized monthly amounts
	// into totals by flow kind. Rate is the USD->EUR conversion rate.
	AggregateTotals(items []domain.FlowItem, balances domain.BalanceSnapshot, targetCurrency string, usdToEurRate decimal.Decimal) (*domain.MonthlyTotals, error)

	// AggregateByAccount sums resolved monthly amounts per account, in each
	// item's own currency, and projects the balance one month out.
	AggregateByAccount(items []domain.FlowItem, accounts []domain.AccountInfo, balances domain.BalanceSnapshot) []domain.AccountFlowSummary
}
