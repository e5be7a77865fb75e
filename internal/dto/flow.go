package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/cashflow_backend/internal/core/domain"
)

// FlowItemRequest defines the data needed to create or replace a flow item.
type FlowItemRequest struct {
	Name                 string           `json:"name" binding:"required"`
	Kind                 domain.FlowKind  `json:"kind" binding:"required,oneof=INFLOW OUTFLOW TRANSFER"`
	Amount               decimal.Decimal  `json:"amount"`
	CurrencyCode         string           `json:"currencyCode" binding:"required,oneof=USD EUR"`
	Percentage           *decimal.Decimal `json:"percentage"`
	Frequency            domain.Frequency `json:"frequency" binding:"required,flowfrequency"`
	SourceAccountID      string           `json:"sourceAccountID"`
	DestinationAccountID string           `json:"destinationAccountID"`
	CategoryID           string           `json:"categoryID"`
	IsActive             *bool            `json:"isActive"` // Optional, defaults to true
	StartDate            *time.Time       `json:"startDate"`
	EndDate              *time.Time       `json:"endDate"`
	Notes                string           `json:"notes"`
}

// ToFlowItem converts a request into a fresh domain flow item.
func (r FlowItemRequest) ToFlowItem() domain.FlowItem {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return domain.FlowItem{
		FlowItemID:           uuid.NewString(),
		Name:                 r.Name,
		Kind:                 r.Kind,
		Amount:               r.Amount,
		CurrencyCode:         r.CurrencyCode,
		Percentage:           r.Percentage,
		Frequency:            r.Frequency,
		SourceAccountID:      r.SourceAccountID,
		DestinationAccountID: r.DestinationAccountID,
		CategoryID:           r.CategoryID,
		IsActive:             isActive,
		StartDate:            r.StartDate,
		EndDate:              r.EndDate,
		Notes:                r.Notes,
		AuditFields:          domain.NewAuditFields(time.Now()),
	}
}

// ApplyTo replaces an existing item's editable fields, preserving its
// identity and creation timestamp.
func (r FlowItemRequest) ApplyTo(item domain.FlowItem) domain.FlowItem {
	updated := r.ToFlowItem()
	updated.FlowItemID = item.FlowItemID
	updated.CreatedAt = item.CreatedAt
	return updated
}

// CategoryRequest defines the data needed to create a custom category.
type CategoryRequest struct {
	Name string          `json:"name" binding:"required"`
	Kind domain.FlowKind `json:"kind" binding:"required,oneof=INFLOW OUTFLOW TRANSFER"`
	Icon string          `json:"icon"`
}

// AmountSplitPayload is one fragment of a split-by-amount request.
type AmountSplitPayload struct {
	Name   string          `json:"name" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// DestinationSplitPayload is one fragment of a split-by-destination request.
type DestinationSplitPayload struct {
	Name                 string          `json:"name" binding:"required"`
	Amount               decimal.Decimal `json:"amount" binding:"required"`
	DestinationAccountID string          `json:"destinationAccountID"`
	CategoryID           string          `json:"categoryID"`
}

// SplitFlowRequest carries the fragments of a split operation. Exactly one
// of the two lists is used depending on the endpoint.
type SplitFlowRequest struct {
	Splits            []AmountSplitPayload      `json:"splits" binding:"omitempty,dive"`
	DestinationSplits []DestinationSplitPayload `json:"destinationSplits" binding:"omitempty,dive"`
}

// ToAmountSplits converts the payload into domain split specs.
func (r SplitFlowRequest) ToAmountSplits() []domain.AmountSplit {
	splits := make([]domain.AmountSplit, 0, len(r.Splits))
	for _, s := range r.Splits {
		splits = append(splits, domain.AmountSplit{Name: s.Name, Amount: s.Amount})
	}
	return splits
}

// ToDestinationSplits converts the payload into domain split specs.
func (r SplitFlowRequest) ToDestinationSplits() []domain.DestinationSplit {
	splits := make([]domain.DestinationSplit, 0, len(r.DestinationSplits))
	for _, s := range r.DestinationSplits {
		splits = append(splits, domain.DestinationSplit{
			Name:                 s.Name,
			Amount:               s.Amount,
			DestinationAccountID: s.DestinationAccountID,
			CategoryID:           s.CategoryID,
		})
	}
	return splits
}
