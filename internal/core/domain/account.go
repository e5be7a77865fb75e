package domain

import "github.com/shopspring/decimal"

// AccountKind is the coarse classification of an externally-owned account.
type AccountKind string

const (
	AccountChecking   AccountKind = "CHECKING"
	AccountSavings    AccountKind = "SAVINGS"
	AccountBrokerage  AccountKind = "BROKERAGE"
	AccountCreditCard AccountKind = "CREDIT_CARD"
)

// AccountInfo is a read-only snapshot of an externally-owned account. The
// engine never mutates accounts; it only references them by id from flow
// items and reads their balances during a resolution pass.
type AccountInfo struct {
	AccountID    string          `json:"accountID"`
	Name         string          `json:"name"`
	Kind         AccountKind     `json:"kind"`
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode"`
}

// BalanceSnapshot maps account id to current balance in that account's own
// currency. It is supplied by the caller before each resolution pass.
type BalanceSnapshot map[string]decimal.Decimal

// BalanceFor looks up an account balance. The second return value is false
// when the account is not part of the snapshot; callers treat that as "no
// resolvable balance", never as an error.
func (s BalanceSnapshot) BalanceFor(accountID string) (decimal.Decimal, bool) {
	if accountID == "" {
		return decimal.Zero, false
	}
	balance, ok := s[accountID]
	return balance, ok
}
