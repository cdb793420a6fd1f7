package storage

import (
	"context"
	"fmt"

	"mcoudert/budget-engine/internal/models"
)

// SetUserCategory upserts the user-set category for one transaction,
// leaving the model fields untouched. No existence check is made against
// the transaction stream: ingestion order is not guaranteed, so assignments
// for identifiers not yet seen in the unified view are allowed.
func (t *Tx) SetUserCategory(ctx context.Context, transactionID string, category models.Category) error {
	const query = `
INSERT INTO categories (transaction_id, user_category)
VALUES (?, ?)
ON CONFLICT(transaction_id) DO UPDATE SET
    user_category = excluded.user_category,
    update_timestamp = CURRENT_TIMESTAMP`

	if _, err := t.tx.ExecContext(ctx, query, transactionID, category); err != nil {
		return fmt.Errorf("setting user category for %s: %w", transactionID, err)
	}
	return nil
}

// SetModelCategory upserts the model category and confidence pair for one
// transaction, leaving the user category untouched. The pair is always
// written together; the service layer rejects half-populated requests
// before they get here.
func (t *Tx) SetModelCategory(ctx context.Context, transactionID string, category models.Category, confidence float64) error {
	const query = `
INSERT INTO categories (transaction_id, model_category, model_confidence)
VALUES (?, ?, ?)
ON CONFLICT(transaction_id) DO UPDATE SET
    model_category = excluded.model_category,
    model_confidence = excluded.model_confidence,
    update_timestamp = CURRENT_TIMESTAMP`

	if _, err := t.tx.ExecContext(ctx, query, transactionID, category, confidence); err != nil {
		return fmt.Errorf("setting model category for %s: %w", transactionID, err)
	}
	return nil
}

// ListAssignments returns all category assignment rows keyed by
// transaction ID, for joining against the unified view.
func (s *Storage) ListAssignments(ctx context.Context) (map[string]models.CategoryAssignment, error) {
	const query = `
SELECT transaction_id, user_category, model_category, model_confidence, update_timestamp
FROM categories`

	var rows []models.CategoryAssignment
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("listing category assignments: %w", err)
	}

	assignments := make(map[string]models.CategoryAssignment, len(rows))
	for _, row := range rows {
		assignments[row.TransactionID] = row
	}
	return assignments, nil
}
