package domain

// Currency codes supported by the engine. The dashboard tracks exactly two;
// every amount, balance and rate is denominated in one of these.
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
)

// SupportedCurrencies lists the currency codes the engine accepts.
var SupportedCurrencies = []string{CurrencyUSD, CurrencyEUR}

// IsSupportedCurrency reports whether code is one of the supported currencies.
func IsSupportedCurrency(code string) bool {
	for _, c := range SupportedCurrencies {
		if c == code {
			return true
		}
	}
	return false
}
