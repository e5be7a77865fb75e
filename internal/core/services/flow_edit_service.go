package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/cashflow_backend/internal/apperrors"
	"github.com/finsight/cashflow_backend/internal/core/domain"
)

// FlowEditService implements the pure structural transformations on flow
// items and categories. It holds no state and never mutates its inputs; the
// caller replaces the draft's slices with the returned values.
type FlowEditService struct{}

// NewFlowEditService creates a new FlowEditService.
func NewFlowEditService() *FlowEditService {
	return &FlowEditService{}
}

// ValidateFlowItem returns the list of user-correctable problems with an
// item. An empty list means the item is valid.
func (s *FlowEditService) ValidateFlowItem(item domain.FlowItem) []string {
	var problems []string

	if item.Name == "" {
		problems = append(problems, "name is required")
	}

	if item.IsPercentageDriven() {
		if item.Percentage.GreaterThan(decimal.NewFromInt(100)) {
			problems = append(problems, "percentage must be between 0 and 100")
		}
	} else {
		if item.Percentage != nil && item.Percentage.LessThanOrEqual(decimal.Zero) {
			problems = append(problems, "percentage must be between 0 and 100")
		}
		if item.Amount.LessThanOrEqual(decimal.Zero) {
			problems = append(problems, "amount must be a positive number")
		}
	}

	switch item.Kind {
	case domain.Transfer:
		if item.SourceAccountID == "" || item.DestinationAccountID == "" {
			problems = append(problems, "transfer requires both a source and a destination account")
		} else if item.SourceAccountID == item.DestinationAccountID {
			problems = append(problems, "transfer source and destination accounts must be distinct")
		}
	case domain.Inflow:
		if item.SourceAccountID != "" {
			problems = append(problems, "inflow must not have a source account")
		}
	case domain.Outflow:
		if item.DestinationAccountID != "" {
			problems = append(problems, "outflow must not have a destination account")
		}
	}

	return problems
}

// ValidateSplitAmounts rejects non-positive split amounts and
// over-allocation. Under-allocation is permitted; the remainder is reported
// by CalculateRemainingAmount.
func (s *FlowEditService) ValidateSplitAmounts(originalAmount decimal.Decimal, splitAmounts []decimal.Decimal) domain.SplitValidation {
	sum := decimal.Zero
	for _, amount := range splitAmounts {
		if amount.LessThanOrEqual(decimal.Zero) {
			return domain.SplitValidation{Valid: false, Error: "every split amount must be positive"}
		}
		sum = sum.Add(amount)
	}
	if sum.GreaterThan(originalAmount) {
		return domain.SplitValidation{
			Valid: false,
			Error: fmt.Sprintf("split amounts total %s, exceeding the original amount %s", sum, originalAmount),
		}
	}
	return domain.SplitValidation{Valid: true}
}

// CalculateRemainingAmount reports the unallocated remainder of a split.
func (s *FlowEditService) CalculateRemainingAmount(originalAmount decimal.Decimal, splitAmounts []decimal.Decimal) decimal.Decimal {
	remaining := originalAmount
	for _, amount := range splitAmounts {
		remaining = remaining.Sub(amount)
	}
	return remaining
}

// inherit copies the fields every split fragment takes from its original.
// Splits are independent new items with fresh ids, not fragments referencing
// the original.
func inheritFrom(original domain.FlowItem, name string, amount decimal.Decimal, now time.Time) domain.FlowItem {
	return domain.FlowItem{
		FlowItemID:           uuid.NewString(),
		Name:                 name,
		Kind:                 original.Kind,
		Amount:               amount,
		CurrencyCode:         original.CurrencyCode,
		Frequency:            original.Frequency,
		SourceAccountID:      original.SourceAccountID,
		DestinationAccountID: original.DestinationAccountID,
		CategoryID:           original.CategoryID,
		IsActive:             original.IsActive,
		AuditFields:          domain.NewAuditFields(now),
	}
}

// SplitFlowByAmount splits one flow into several new items. The original is
// left untouched; the caller removes it once the splits are accepted.
func (s *FlowEditService) SplitFlowByAmount(original domain.FlowItem, splits []domain.AmountSplit) ([]domain.FlowItem, error) {
	if len(splits) == 0 {
		return nil, fmt.Errorf("%w: at least one split is required", apperrors.ErrValidation)
	}
	amounts := make([]decimal.Decimal, 0, len(splits))
	for _, split := range splits {
		amounts = append(amounts, split.Amount)
	}
	if validation := s.ValidateSplitAmounts(original.Amount, amounts); !validation.Valid {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, validation.Error)
	}

	now := time.Now()
	items := make([]domain.FlowItem, 0, len(splits))
	for _, split := range splits {
		items = append(items, inheritFrom(original, split.Name, split.Amount, now))
	}
	return items, nil
}

// SplitFlowByDestination splits one flow into several new items, letting
// each fragment override the destination account and/or category so one flow
// can fan out to multiple recipients.
func (s *FlowEditService) SplitFlowByDestination(original domain.FlowItem, splits []domain.DestinationSplit) ([]domain.FlowItem, error) {
	if len(splits) == 0 {
		return nil, fmt.Errorf("%w: at least one split is required", apperrors.ErrValidation)
	}
	amounts := make([]decimal.Decimal, 0, len(splits))
	for _, split := range splits {
		amounts = append(amounts, split.Amount)
	}
	if validation := s.ValidateSplitAmounts(original.Amount, amounts); !validation.Valid {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, validation.Error)
	}

	now := time.Now()
	items := make([]domain.FlowItem, 0, len(splits))
	for _, split := range splits {
		item := inheritFrom(original, split.Name, split.Amount, now)
		if split.DestinationAccountID != "" {
			item.DestinationAccountID = split.DestinationAccountID
		}
		if split.CategoryID != "" {
			item.CategoryID = split.CategoryID
		}
		items = append(items, item)
	}
	return items, nil
}

// AddIntermediateCategory reassigns an item's category and stamps UpdatedAt.
func (s *FlowEditService) AddIntermediateCategory(item domain.FlowItem, newCategoryID string) domain.FlowItem {
	item.CategoryID = newCategoryID
	item.UpdatedAt = time.Now()
	return item
}

// CreateCustomCategory allocates a fresh user-defined category.
func (s *FlowEditService) CreateCustomCategory(name string, kind domain.FlowKind, icon string) domain.Category {
	if icon == "" {
		icon = "tag"
	}
	return domain.Category{
		CategoryID:  uuid.NewString(),
		Name:        name,
		Kind:        kind,
		Icon:        icon,
		IsCustom:    true,
		AuditFields: domain.NewAuditFields(time.Now()),
	}
}

// RemoveCategory removes the category from the list and clears the category
// reference on every item pointing at it. Items are detached, never deleted.
func (s *FlowEditService) RemoveCategory(items []domain.FlowItem, categories []domain.Category, categoryID string) ([]domain.FlowItem, []domain.Category) {
	now := time.Now()

	newItems := make([]domain.FlowItem, 0, len(items))
	for _, item := range items {
		if item.CategoryID == categoryID {
			item.CategoryID = ""
			item.UpdatedAt = now
		}
		newItems = append(newItems, item)
	}

	newCategories := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		if c.CategoryID == categoryID {
			continue
		}
		newCategories = append(newCategories, c)
	}
	return newItems, newCategories
}
