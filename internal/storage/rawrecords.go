package storage

import (
	"context"
	"fmt"

	"mcoudert/budget-engine/internal/models"
)

const upsertAmexQuery = `
INSERT INTO amex_raw (
    date, description, amount, extended_details, appears_on_statement_as,
    address, town_city, postcode, country, reference, category, ingestion_timestamp
) VALUES (
    :date, :description, :amount, :extended_details, :appears_on_statement_as,
    :address, :town_city, :postcode, :country, :reference, :category, CURRENT_TIMESTAMP
)
ON CONFLICT(reference) DO UPDATE SET
    date = excluded.date,
    description = excluded.description,
    amount = excluded.amount,
    extended_details = excluded.extended_details,
    appears_on_statement_as = excluded.appears_on_statement_as,
    address = excluded.address,
    town_city = excluded.town_city,
    postcode = excluded.postcode,
    country = excluded.country,
    category = excluded.category,
    ingestion_timestamp = CURRENT_TIMESTAMP`

const upsertMonzoQuery = `
INSERT INTO monzo_raw (
    transaction_id, date, time, trans_type, name, emoji, category, amount,
    currency, local_amount, local_currency, notes_and_tags, address, receipt,
    description, category_split, ingestion_timestamp
) VALUES (
    :transaction_id, :date, :time, :trans_type, :name, :emoji, :category, :amount,
    :currency, :local_amount, :local_currency, :notes_and_tags, :address, :receipt,
    :description, :category_split, CURRENT_TIMESTAMP
)
ON CONFLICT(transaction_id) DO UPDATE SET
    date = excluded.date,
    time = excluded.time,
    trans_type = excluded.trans_type,
    name = excluded.name,
    emoji = excluded.emoji,
    category = excluded.category,
    amount = excluded.amount,
    currency = excluded.currency,
    local_amount = excluded.local_amount,
    local_currency = excluded.local_currency,
    notes_and_tags = excluded.notes_and_tags,
    address = excluded.address,
    receipt = excluded.receipt,
    description = excluded.description,
    category_split = excluded.category_split,
    ingestion_timestamp = CURRENT_TIMESTAMP`

const upsertSplitwiseQuery = `
INSERT INTO splitwise_raw (
    id, group_id, description, payment, cost, currency_code, date,
    created_at, updated_at, deleted_at, category, users, ingestion_timestamp
) VALUES (
    :id, :group_id, :description, :payment, :cost, :currency_code, :date,
    :created_at, :updated_at, :deleted_at, :category, :users, CURRENT_TIMESTAMP
)
ON CONFLICT(id) DO UPDATE SET
    group_id = excluded.group_id,
    description = excluded.description,
    payment = excluded.payment,
    cost = excluded.cost,
    currency_code = excluded.currency_code,
    date = excluded.date,
    created_at = excluded.created_at,
    updated_at = excluded.updated_at,
    deleted_at = excluded.deleted_at,
    category = excluded.category,
    users = excluded.users,
    ingestion_timestamp = CURRENT_TIMESTAMP`

// UpsertAmex inserts or fully overwrites one card statement row.
func (t *Tx) UpsertAmex(ctx context.Context, rec models.AmexRecord) error {
	if _, err := t.tx.NamedExecContext(ctx, upsertAmexQuery, rec); err != nil {
		return fmt.Errorf("upserting amex record %s: %w", rec.Reference, err)
	}
	return nil
}

// UpsertMonzo inserts or fully overwrites one spreadsheet row.
func (t *Tx) UpsertMonzo(ctx context.Context, rec models.MonzoRecord) error {
	if _, err := t.tx.NamedExecContext(ctx, upsertMonzoQuery, rec); err != nil {
		return fmt.Errorf("upserting monzo record %s: %w", rec.TransactionID, err)
	}
	return nil
}

// UpsertSplitwise inserts or fully overwrites one shared-expense record.
func (t *Tx) UpsertSplitwise(ctx context.Context, rec models.SplitwiseRecord) error {
	if _, err := t.tx.NamedExecContext(ctx, upsertSplitwiseQuery, rec); err != nil {
		return fmt.Errorf("upserting splitwise record %d: %w", rec.ID, err)
	}
	return nil
}

// ListAmex returns every raw card statement row.
func (s *Storage) ListAmex(ctx context.Context) ([]models.AmexRecord, error) {
	const query = `
SELECT date, description, amount, extended_details, appears_on_statement_as,
       address, town_city, postcode, country, reference, category
FROM amex_raw`

	var recs []models.AmexRecord
	if err := s.db.SelectContext(ctx, &recs, query); err != nil {
		return nil, fmt.Errorf("listing amex records: %w", err)
	}
	return recs, nil
}

// ListMonzo returns every raw spreadsheet row.
func (s *Storage) ListMonzo(ctx context.Context) ([]models.MonzoRecord, error) {
	const query = `
SELECT transaction_id, date, time, trans_type, name, emoji, category, amount,
       currency, local_amount, local_currency, notes_and_tags, address,
       receipt, description, category_split
FROM monzo_raw`

	var recs []models.MonzoRecord
	if err := s.db.SelectContext(ctx, &recs, query); err != nil {
		return nil, fmt.Errorf("listing monzo records: %w", err)
	}
	return recs, nil
}

// ListSplitwise returns every raw shared-expense record, soft-deleted rows
// included. Filtering them out is the unified view's job.
func (s *Storage) ListSplitwise(ctx context.Context) ([]models.SplitwiseRecord, error) {
	const query = `
SELECT id, group_id, description, payment, cost, currency_code, date,
       created_at, updated_at, deleted_at, category, users
FROM splitwise_raw`

	var recs []models.SplitwiseRecord
	if err := s.db.SelectContext(ctx, &recs, query); err != nil {
		return nil, fmt.Errorf("listing splitwise records: %w", err)
	}
	return recs, nil
}
