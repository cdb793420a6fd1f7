package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Raw records keep every source-native field verbatim, as strings where the
// source delivers text. Amounts and dates are only parsed during
// normalization so that a malformed value fails that one record instead of
// the whole ingestion run.

// AmexRecord is one row of an Amex card statement export.
// Reference is the source-native primary key.
type AmexRecord struct {
	Date                 string `db:"date"`
	Description          string `db:"description"`
	Amount               string `db:"amount"`
	ExtendedDetails      string `db:"extended_details"`
	AppearsOnStatementAs string `db:"appears_on_statement_as"`
	Address              string `db:"address"`
	TownCity             string `db:"town_city"`
	Postcode             string `db:"postcode"`
	Country              string `db:"country"`
	Reference            string `db:"reference"`
	Category             string `db:"category"`
}

// MonzoRecord is one row of the Monzo banking spreadsheet export.
// TransactionID is the source-native primary key.
type MonzoRecord struct {
	TransactionID string `db:"transaction_id"`
	Date          string `db:"date"`
	Time          string `db:"time"`
	Type          string `db:"trans_type"`
	Name          string `db:"name"`
	Emoji         string `db:"emoji"`
	Category      string `db:"category"`
	Amount        string `db:"amount"`
	Currency      string `db:"currency"`
	LocalAmount   string `db:"local_amount"`
	LocalCurrency string `db:"local_currency"`
	NotesAndTags  string `db:"notes_and_tags"`
	Address       string `db:"address"`
	Receipt       string `db:"receipt"`
	Description   string `db:"description"`
	CategorySplit string `db:"category_split"`
}

// UserShare is one entry of a Splitwise expense's per-user breakdown.
type UserShare struct {
	UserID     int64  `json:"user_id"`
	PaidShare  string `json:"paid_share"`
	OwedShare  string `json:"owed_share"`
	NetBalance string `json:"net_balance"`
}

// UserShares is stored verbatim as a JSON text column in the raw table.
type UserShares []UserShare

// Value implements driver.Valuer, serializing the shares to JSON text.
func (u UserShares) Value() (driver.Value, error) {
	data, err := json.Marshal([]UserShare(u))
	if err != nil {
		return nil, fmt.Errorf("encoding user shares: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner, decoding the JSON text column.
func (u *UserShares) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*u = nil
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into UserShares", src)
	}
	if len(data) == 0 {
		*u = nil
		return nil
	}
	var shares []UserShare
	if err := json.Unmarshal(data, &shares); err != nil {
		return fmt.Errorf("decoding user shares: %w", err)
	}
	*u = shares
	return nil
}

// SplitwiseRecord is one expense from the Splitwise API. ID is the
// source-native primary key. A non-nil DeletedAt marks the expense as
// soft-deleted upstream; it stays in the raw store but must never surface
// in the canonical stream.
type SplitwiseRecord struct {
	ID           int64      `db:"id" json:"id"`
	GroupID      *int64     `db:"group_id" json:"group_id"`
	Description  string     `db:"description" json:"description"`
	Payment      bool       `db:"payment" json:"payment"`
	Cost         string     `db:"cost" json:"cost"`
	CurrencyCode string     `db:"currency_code" json:"currency_code"`
	Date         string     `db:"date" json:"date"`
	CreatedAt    string     `db:"created_at" json:"created_at"`
	UpdatedAt    *string    `db:"updated_at" json:"updated_at"`
	DeletedAt    *string    `db:"deleted_at" json:"deleted_at"`
	Category     string     `db:"category" json:"-"`
	Users        UserShares `db:"users" json:"users"`
}

// Deleted reports whether the expense was soft-deleted upstream.
func (r SplitwiseRecord) Deleted() bool {
	return r.DeletedAt != nil && *r.DeletedAt != ""
}

// CategoryAssignment holds the independently settable category fields for
// one transaction, keyed by transaction ID. Rows are created lazily on the
// first write of either kind; a transaction without a row is simply
// uncategorized. ModelCategory and ModelConfidence are always written as a
// pair.
type CategoryAssignment struct {
	TransactionID   string    `db:"transaction_id"`
	UserCategory    *Category `db:"user_category"`
	ModelCategory   *Category `db:"model_category"`
	ModelConfidence *float64  `db:"model_confidence"`
	UpdateTimestamp string    `db:"update_timestamp"`
}

// EffectiveCategory applies the precedence rule: a user category wins
// unconditionally over a model category; absence of both is unknown.
// Confidence is informational only and never consulted here.
func (a CategoryAssignment) EffectiveCategory() Category {
	if a.UserCategory != nil {
		return ParseCategory(string(*a.UserCategory))
	}
	if a.ModelCategory != nil {
		return ParseCategory(string(*a.ModelCategory))
	}
	return CategoryUnknown
}
