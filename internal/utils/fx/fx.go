// Package fx converts monetary amounts between the supported currencies
// using a caller-supplied linear exchange rate. Rate sourcing is external to
// the engine; no rounding happens here, rounding belongs to display
// formatting.
package fx

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finsight/cashflow_backend/internal/apperrors"
	"github.com/finsight/cashflow_backend/internal/core/domain"
)

// Convert converts amount from one supported currency to another. The rate
// is expressed for the fixed pair direction USD -> EUR, i.e. how many EUR one
// USD buys; the reverse direction inverts it. Same-currency conversion is
// the identity and ignores the rate entirely.
func Convert(amount decimal.Decimal, fromCode, toCode string, usdToEurRate decimal.Decimal) (decimal.Decimal, error) {
	if fromCode == toCode {
		return amount, nil
	}
	if !domain.IsSupportedCurrency(fromCode) {
		return decimal.Zero, fmt.Errorf("%w: unsupported currency code '%s'", apperrors.ErrValidation, fromCode)
	}
	if !domain.IsSupportedCurrency(toCode) {
		return decimal.Zero, fmt.Errorf("%w: unsupported currency code '%s'", apperrors.ErrValidation, toCode)
	}
	if usdToEurRate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: exchange rate must be positive, got %s", apperrors.ErrValidation, usdToEurRate)
	}

	if fromCode == domain.CurrencyUSD && toCode == domain.CurrencyEUR {
		return amount.Mul(usdToEurRate), nil
	}
	// EUR -> USD inverts the canonical rate.
	return amount.Div(usdToEurRate), nil
}
