package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"mcoudert/budget-engine/internal/categorizer"
	"mcoudert/budget-engine/internal/models"
)

// reportingEpoch is the fixed lower boundary of the query surface; nothing
// older is reported even if it exists in the raw store.
var reportingEpoch = time.Date(2022, time.September, 1, 0, 0, 0, 0, time.UTC).Unix()

// TransactionRow is one entry of the query surface: a canonical transaction
// joined with its resolved category.
type TransactionRow struct {
	TransactionID string          `json:"transaction_id"`
	Date          string          `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Account       models.Account  `json:"account"`
	Category      models.Category `json:"category"`
}

// resolvedTx pairs a canonical transaction with its effective category.
type resolvedTx struct {
	models.Transaction
	Category models.Category
}

// resolvedStream joins the unified view against the category store and
// resolves each transaction's effective category. Per-record normalization
// failures are logged and skipped; only a storage-level failure aborts.
func (s *Service) resolvedStream(ctx context.Context) ([]resolvedTx, error) {
	txs, recordErrs, err := s.view.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, recordErr := range recordErrs {
		log.WithError(recordErr).Warn("Record excluded from unified stream")
	}

	assignments, err := s.store.ListAssignments(ctx)
	if err != nil {
		return nil, err
	}

	resolved := make([]resolvedTx, 0, len(txs))
	for _, tx := range txs {
		var assignment *models.CategoryAssignment
		if a, ok := assignments[tx.ID]; ok {
			assignment = &a
		}
		resolved = append(resolved, resolvedTx{
			Transaction: tx,
			Category:    categorizer.Resolve(assignment),
		})
	}
	return resolved, nil
}

// Transactions returns the unified, categorized stream ordered by timestamp
// descending. month, when non-empty, restricts to transactions whose
// canonical timestamp falls in that YYYY-MM month (boundary seconds
// included). uncategorizedOnly restricts to transactions whose effective
// category is UNKNOWN.
func (s *Service) Transactions(ctx context.Context, month string, uncategorizedOnly bool) ([]TransactionRow, error) {
	resolved, err := s.resolvedStream(ctx)
	if err != nil {
		return nil, err
	}

	kept := make([]resolvedTx, 0, len(resolved))
	for _, tx := range resolved {
		if tx.Timestamp < reportingEpoch {
			continue
		}
		if month != "" && tx.Month() != month {
			continue
		}
		if uncategorizedOnly && tx.Category != models.CategoryUnknown {
			continue
		}
		kept = append(kept, tx)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Timestamp > kept[j].Timestamp
	})

	rows := make([]TransactionRow, 0, len(kept))
	for _, tx := range kept {
		rows = append(rows, TransactionRow{
			TransactionID: tx.ID,
			Date:          tx.Date(),
			Description:   tx.Description,
			Amount:        tx.Amount,
			Account:       tx.Account,
			Category:      tx.Category,
		})
	}
	return rows, nil
}
