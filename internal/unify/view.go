// Package unify composes the canonical transaction stream: the union of
// all normalized source streams, each tagged with its originating account.
// The stream is recomputed from the raw store on every read; there is no
// cached or persisted form of it.
package unify

import (
	"context"

	"github.com/sirupsen/logrus"

	"mcoudert/budget-engine/internal/models"
	"mcoudert/budget-engine/internal/normalize"
	"mcoudert/budget-engine/internal/storage"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// View materializes the unified transaction stream on demand.
type View struct {
	store           *storage.Storage
	splitwiseUserID int64
}

// NewView creates a view over the raw store. splitwiseUserID selects whose
// net balance a shared expense contributes.
func NewView(store *storage.Storage, splitwiseUserID int64) *View {
	return &View{store: store, splitwiseUserID: splitwiseUserID}
}

// List returns the union of the three normalized streams. Records that fail
// normalization are skipped and reported in the second return value; one
// malformed record never blocks the rest, and a store where every record is
// malformed yields an empty stream, not a failure. The final error is fatal
// and only set when the store itself could not be read. Soft-deleted shared
// expenses are excluded entirely. No ordering is guaranteed; callers sort.
func (v *View) List(ctx context.Context) ([]models.Transaction, []error, error) {
	var (
		txs     []models.Transaction
		badRecs []error
	)

	amex, err := v.store.ListAmex(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, rec := range amex {
		tx, err := normalize.Amex(rec)
		if err != nil {
			badRecs = append(badRecs, err)
			continue
		}
		txs = append(txs, tx)
	}

	monzo, err := v.store.ListMonzo(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, rec := range monzo {
		tx, err := normalize.Monzo(rec)
		if err != nil {
			badRecs = append(badRecs, err)
			continue
		}
		txs = append(txs, tx)
	}

	splitwise, err := v.store.ListSplitwise(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, rec := range splitwise {
		if rec.Deleted() {
			continue
		}
		tx, err := normalize.Splitwise(rec, v.splitwiseUserID)
		if err != nil {
			badRecs = append(badRecs, err)
			continue
		}
		txs = append(txs, tx)
	}

	if len(badRecs) > 0 {
		log.WithField("count", len(badRecs)).Warn("Skipped records that failed normalization")
	}
	return txs, badRecs, nil
}
