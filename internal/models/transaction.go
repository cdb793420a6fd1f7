package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account identifies the source a transaction originated from.
type Account string

const (
	AccountAmex      Account = "AMEX"
	AccountMonzo     Account = "MONZO"
	AccountSplitwise Account = "SPLITWISE"
)

// Transaction is the canonical, source-agnostic representation of a single
// financial event. It is a pure projection of a raw record and is never
// persisted: re-reading the raw store always reproduces it.
//
// Sign convention: negative amounts are money leaving the user, positive
// amounts are money received.
type Transaction struct {
	ID          string          `json:"transaction_id"`
	Timestamp   int64           `json:"timestamp"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Address     string          `json:"address,omitempty"`
	Account     Account         `json:"account"`
}

// Time returns the transaction timestamp as a UTC time.Time.
func (t Transaction) Time() time.Time {
	return time.Unix(t.Timestamp, 0).UTC()
}

// Date returns the ISO date (YYYY-MM-DD) of the transaction in UTC.
func (t Transaction) Date() string {
	return t.Time().Format("2006-01-02")
}

// Month returns the year-month (YYYY-MM) of the transaction in UTC.
func (t Transaction) Month() string {
	return t.Time().Format("2006-01")
}
