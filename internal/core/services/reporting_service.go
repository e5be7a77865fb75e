package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finsight/cashflow_backend/internal/apperrors"
	"github.com/finsight/cashflow_backend/internal/core/domain"
	"github.com/finsight/cashflow_backend/internal/utils/fx"
	"github.com/finsight/cashflow_backend/internal/utils/recurrence"
)

// ReportingService aggregates resolved monthly amounts into totals by flow
// kind and by account.
type ReportingService struct{}

// NewReportingService creates a new ReportingService.
func NewReportingService() *ReportingService {
	return &ReportingService{}
}

// ResolveMonthlyAmount resolves one item's effective monthly amount in the
// item's own currency. Percentage mode applies only when the item declares a
// positive percentage AND the snapshot holds a positive balance for its
// source account; anything else falls back to the fixed amount. This is a
// policy choice, not a failure: a percentage flow against an untracked or
// empty account must not degenerate into an error or a division artifact.
func (s *ReportingService) ResolveMonthlyAmount(item domain.FlowItem, balances domain.BalanceSnapshot) decimal.Decimal {
	if !item.IsActive {
		return decimal.Zero
	}

	if item.IsPercentageDriven() {
		balance, ok := balances.BalanceFor(item.SourceAccountID)
		if ok && balance.GreaterThan(decimal.Zero) {
			derived := balance.Mul(*item.Percentage).Div(decimal.NewFromInt(100))
			return recurrence.ToMonthly(derived, item.Frequency)
		}
	}

	return recurrence.ToMonthly(item.Amount, item.Frequency)
}

// AggregateTotals sums resolved, currency-normalized monthly amounts into
// totals by flow kind. Net is inflows minus outflows; transfers are excluded
// from net since they move money between tracked accounts rather than in or
// out of the system.
func (s *ReportingService) AggregateTotals(items []domain.FlowItem, balances domain.BalanceSnapshot, targetCurrency string, usdToEurRate decimal.Decimal) (*domain.MonthlyTotals, error) {
	if !domain.IsSupportedCurrency(targetCurrency) {
		return nil, fmt.Errorf("%w: unsupported target currency '%s'", apperrors.ErrValidation, targetCurrency)
	}

	totals := domain.MonthlyTotals{
		CurrencyCode: targetCurrency,
		Inflows:      decimal.Zero,
		Outflows:     decimal.Zero,
		Transfers:    decimal.Zero,
	}

	for _, item := range items {
		if !item.IsActive {
			continue
		}
		monthly := s.ResolveMonthlyAmount(item, balances)
		normalized, err := fx.Convert(monthly, item.CurrencyCode, targetCurrency, usdToEurRate)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize amount for flow item %s: %w", item.FlowItemID, err)
		}

		switch item.Kind {
		case domain.Inflow:
			totals.Inflows = totals.Inflows.Add(normalized)
		case domain.Outflow:
			totals.Outflows = totals.Outflows.Add(normalized)
		case domain.Transfer:
			totals.Transfers = totals.Transfers.Add(normalized)
		}
	}

	totals.Net = totals.Inflows.Sub(totals.Outflows)
	return &totals, nil
}

// AggregateByAccount sums each active item's resolved monthly amount into
// the destination account's inflow bucket and the source account's outflow
// bucket. Amounts stay in the item's own currency; this per-account view
// deliberately skips fx normalization. Every account in the snapshot list is
// represented, plus any account an item references.
func (s *ReportingService) AggregateByAccount(items []domain.FlowItem, accounts []domain.AccountInfo, balances domain.BalanceSnapshot) []domain.AccountFlowSummary {
	summaries := make(map[string]*domain.AccountFlowSummary)
	order := make([]string, 0, len(accounts))

	ensure := func(accountID string) *domain.AccountFlowSummary {
		if summary, ok := summaries[accountID]; ok {
			return summary
		}
		summary := &domain.AccountFlowSummary{
			AccountID: accountID,
			Inflows:   decimal.Zero,
			Outflows:  decimal.Zero,
		}
		summaries[accountID] = summary
		order = append(order, accountID)
		return summary
	}

	for _, account := range accounts {
		ensure(account.AccountID)
	}

	for _, item := range items {
		if !item.IsActive {
			continue
		}
		monthly := s.ResolveMonthlyAmount(item, balances)
		if item.DestinationAccountID != "" {
			dest := ensure(item.DestinationAccountID)
			dest.Inflows = dest.Inflows.Add(monthly)
		}
		if item.SourceAccountID != "" {
			source := ensure(item.SourceAccountID)
			source.Outflows = source.Outflows.Add(monthly)
		}
	}

	result := make([]domain.AccountFlowSummary, 0, len(order))
	for _, accountID := range order {
		summary := summaries[accountID]
		summary.NetChange = summary.Inflows.Sub(summary.Outflows)
		currentBalance, _ := balances.BalanceFor(accountID)
		summary.ProjectedBalance = currentBalance.Add(summary.NetChange)
		result = append(result, *summary)
	}
	return result
}
