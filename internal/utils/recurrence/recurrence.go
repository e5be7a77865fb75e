// Package recurrence converts amounts between a recurrence cadence and its
// canonical monthly equivalent.
package recurrence

import (
	"github.com/shopspring/decimal"

	"github.com/finsight/cashflow_backend/internal/core/domain"
)

// Each cadence maps to a fixed rational multiplier expressed as num/den so
// round trips stay precise: weekly 52/12, bi-weekly 26/12, monthly 1,
// quarterly 1/3, yearly 1/12.
type ratio struct {
	num decimal.Decimal
	den decimal.Decimal
}

var multipliers = map[domain.Frequency]ratio{
	domain.Weekly:    {decimal.NewFromInt(52), decimal.NewFromInt(12)},
	domain.BiWeekly:  {decimal.NewFromInt(26), decimal.NewFromInt(12)},
	domain.Monthly:   {decimal.NewFromInt(1), decimal.NewFromInt(1)},
	domain.Quarterly: {decimal.NewFromInt(1), decimal.NewFromInt(3)},
	domain.Yearly:    {decimal.NewFromInt(1), decimal.NewFromInt(12)},
}

func ratioFor(freq domain.Frequency) ratio {
	if r, ok := multipliers[freq]; ok {
		return r
	}
	// Unknown cadences are treated as monthly. Any numeric input is valid,
	// including negative magnitudes.
	return ratio{decimal.NewFromInt(1), decimal.NewFromInt(1)}
}

// ToMonthly converts an amount recurring at freq into its monthly equivalent.
func ToMonthly(amount decimal.Decimal, freq domain.Frequency) decimal.Decimal {
	r := ratioFor(freq)
	return amount.Mul(r.num).Div(r.den)
}

// FromMonthly is the inverse of ToMonthly: it converts a monthly amount back
// into the per-occurrence amount at freq.
func FromMonthly(amount decimal.Decimal, freq domain.Frequency) decimal.Decimal {
	r := ratioFor(freq)
	return amount.Mul(r.den).Div(r.num)
}
