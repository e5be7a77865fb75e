package services

import (
	"github.com/shopspring/decimal"

	"github.com/finsight/cashflow_backend/internal/core/domain"
)

// FlowEditSvcFacade defines the structural transformations on flow item and
// category lists. Every operation is pure: it returns new values and never
// mutates its inputs; the caller replaces the draft's slices with the result
// and marks it dirty.
type FlowEditSvcFacade interface {
	// ValidateFlowItem returns the list of user-correctable problems with an
	// item; an empty list means the item is valid.
	ValidateFlowItem(item domain.FlowItem) []string

	// SplitFlowByAmount produces independent new items inheriting the
	// original's kind, currency, frequency, accounts, category and active
	// flag. The original is not removed; the caller does that.
	SplitFlowByAmount(original domain.FlowItem, splits []domain.AmountSplit) ([]domain.FlowItem, error)

	// SplitFlowByDestination is SplitFlowByAmount with optional per-split
	// destination account and category overrides.
	SplitFlowByDestination(original domain.FlowItem, splits []domain.DestinationSplit) ([]domain.FlowItem, error)

	// ValidateSplitAmounts rejects over-allocation (sum of splits exceeding
	// the original amount) and non-positive split amounts. Under-allocation
	// is permitted.
	ValidateSplitAmounts(originalAmount decimal.Decimal, splitAmounts []decimal.Decimal) domain.SplitValidation

	// CalculateRemainingAmount reports the unallocated remainder of a split.
	CalculateRemainingAmount(originalAmount decimal.Decimal, splitAmounts []decimal.Decimal) decimal.Decimal

	// AddIntermediateCategory reassigns an item's category and stamps
	// UpdatedAt. Single-item update, not a split.
	AddIntermediateCategory(item domain.FlowItem, newCategoryID string) domain.FlowItem

	// CreateCustomCategory allocates a fresh user-defined category.
	CreateCustomCategory(name string, kind domain.FlowKind, icon string) domain.Category

	// RemoveCategory removes a category and detaches (never deletes) the
	// items referencing it.
	RemoveCategory(items []domain.FlowItem, categories []domain.Category, categoryID string) ([]domain.FlowItem, []domain.Category)
}
