package recurrence_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight/cashflow_backend/internal/core/domain"
	"github.com/finsight/cashflow_backend/internal/utils/recurrence"
)

func TestToMonthly(t *testing.T) {
	testCases := []struct {
		name     string
		amount   string
		freq     domain.Frequency
		expected string
	}{
		{"monthly is identity", "1200", domain.Monthly, "1200"},
		{"yearly divides by twelve", "1200", domain.Yearly, "100"},
		{"quarterly divides by three", "300", domain.Quarterly, "100"},
		{"weekly multiplies by 52/12", "12", domain.Weekly, "52"},
		{"biweekly multiplies by 26/12", "12", domain.BiWeekly, "26"},
		{"negative magnitudes pass through", "-300", domain.Quarterly, "-100"},
		{"zero stays zero", "0", domain.Weekly, "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tc.amount)
			expected := decimal.RequireFromString(tc.expected)
			got := recurrence.ToMonthly(amount, tc.freq)
			assert.True(t, expected.Equal(got), "expected %s, got %s", expected, got)
		})
	}
}

func TestToMonthly_UnknownFrequencyIsIdentity(t *testing.T) {
	amount := decimal.RequireFromString("123.45")
	got := recurrence.ToMonthly(amount, domain.Frequency("FORTNIGHTLY-ISH"))
	assert.True(t, amount.Equal(got))
}

func TestRoundTrip(t *testing.T) {
	// FromMonthly(ToMonthly(x, f), f) must approximate x for every cadence.
	tolerance := decimal.RequireFromString("0.0000000001")
	amounts := []string{"1", "2500", "17.39", "-840.5", "0.01"}

	for _, freq := range domain.Frequencies {
		for _, raw := range amounts {
			amount := decimal.RequireFromString(raw)
			roundTripped := recurrence.FromMonthly(recurrence.ToMonthly(amount, freq), freq)
			diff := roundTripped.Sub(amount).Abs()
			require.True(t, diff.LessThan(tolerance),
				"round trip for %s at %s drifted by %s", raw, freq, diff)
		}
	}
}
