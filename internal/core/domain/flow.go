package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FlowKind is the directional classification of a flow item.
type FlowKind string

const (
	// Inflow moves money from outside the tracked account set into it.
	Inflow FlowKind = "INFLOW"
	// Outflow moves money from a tracked account out of the system.
	Outflow FlowKind = "OUTFLOW"
	// Transfer moves money between two tracked accounts.
	Transfer FlowKind = "TRANSFER"
)

// Frequency is the recurrence cadence of a flow item.
type Frequency string

const (
	Weekly    Frequency = "WEEKLY"
	BiWeekly  Frequency = "BIWEEKLY"
	Monthly   Frequency = "MONTHLY"
	Quarterly Frequency = "QUARTERLY"
	Yearly    Frequency = "YEARLY"
)

// Frequencies lists every supported recurrence cadence.
var Frequencies = []Frequency{Weekly, BiWeekly, Monthly, Quarterly, Yearly}

// IsValidFrequency reports whether f is a supported cadence.
func IsValidFrequency(f Frequency) bool {
	for _, known := range Frequencies {
		if f == known {
			return true
		}
	}
	return false
}

// FlowItem is a single recurring cash movement declared by the user.
// Source/destination/category references are opaque string ids; an empty
// string means "external" (or "uncategorized") rather than a broken link,
// since accounts and categories are edited independently of flows.
type FlowItem struct {
	FlowItemID string   `json:"flowItemID"`
	Name       string   `json:"name"`
	Kind       FlowKind `json:"kind"`
	// Amount is the fixed recurring amount, meaningful when the item is not
	// percentage-driven (or as the fallback when the percentage cannot resolve).
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	// Percentage, when set and in (0,100], derives the amount from the source
	// account balance instead of the Amount field.
	Percentage           *decimal.Decimal `json:"percentage,omitempty"`
	Frequency            Frequency        `json:"frequency"`
	SourceAccountID      string           `json:"sourceAccountID,omitempty"`
	DestinationAccountID string           `json:"destinationAccountID,omitempty"`
	CategoryID           string           `json:"categoryID,omitempty"`
	IsActive             bool             `json:"isActive"`
	// StartDate/EndDate bound the flow's effective window. Advisory metadata:
	// aggregation does not gate on them.
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	AuditFields
}

// IsPercentageDriven reports whether the item declares a positive percentage.
// A percentage-driven item still falls back to its fixed Amount when no
// positive source balance is resolvable.
func (f FlowItem) IsPercentageDriven() bool {
	return f.Percentage != nil && f.Percentage.GreaterThan(decimal.Zero)
}
