package domain

import "github.com/shopspring/decimal"

// AmountSplit describes one fragment of a split-by-amount operation.
type AmountSplit struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// DestinationSplit describes one fragment of a split-by-destination
// operation. Destination account and category default to the original
// item's when left empty, so a single flow can fan out to multiple
// recipients or categories.
type DestinationSplit struct {
	Name                 string          `json:"name"`
	Amount               decimal.Decimal `json:"amount"`
	DestinationAccountID string          `json:"destinationAccountID,omitempty"`
	CategoryID           string          `json:"categoryID,omitempty"`
}

// SplitValidation is the structured outcome of validating split amounts.
// Operations return it rather than an error because an invalid split is a
// user-correctable condition the caller re-prompts on.
type SplitValidation struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}
