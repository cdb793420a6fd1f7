// Package service orchestrates ingestion, categorization and the query
// surface over the raw store, the unified view and the classifier. Each
// exported operation is synchronous, opens its own transaction for writes
// and commits once at the end.
package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"mcoudert/budget-engine/internal/categorizer"
	"mcoudert/budget-engine/internal/models"
	"mcoudert/budget-engine/internal/storage"
	"mcoudert/budget-engine/internal/unify"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Service exposes the operations consumed by the CLI and the HTTP API.
type Service struct {
	store      *storage.Storage
	view       *unify.View
	classifier *categorizer.Classifier
}

// NewService wires a Service over an open store. splitwiseUserID selects
// whose net balance shared expenses contribute to the unified stream.
func NewService(store *storage.Storage, classifier *categorizer.Classifier, splitwiseUserID int64) *Service {
	return &Service{
		store:      store,
		view:       unify.NewView(store, splitwiseUserID),
		classifier: classifier,
	}
}

// RecordFailure names one record of a batch that could not be ingested.
type RecordFailure struct {
	RecordID string `json:"record_id"`
	Reason   string `json:"reason"`
}

// BatchResult reports the outcome of one ingestion batch. Re-running the
// same batch is safe: every record is an upsert keyed by its source-native
// identifier.
type BatchResult struct {
	Upserted int             `json:"upserted"`
	Failures []RecordFailure `json:"failures,omitempty"`
}

// IngestAmex upserts a batch of card statement rows in one transaction.
func (s *Service) IngestAmex(ctx context.Context, recs []models.AmexRecord) (BatchResult, error) {
	var result BatchResult
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return result, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, rec := range recs {
		if err := tx.UpsertAmex(ctx, rec); err != nil {
			result.Failures = append(result.Failures, RecordFailure{RecordID: rec.Reference, Reason: err.Error()})
			continue
		}
		result.Upserted++
	}

	if err := tx.Commit(); err != nil {
		return BatchResult{}, fmt.Errorf("committing amex batch: %w", err)
	}
	log.WithFields(logrus.Fields{"upserted": result.Upserted, "failed": len(result.Failures)}).Info("Ingested amex batch")
	return result, nil
}

// IngestMonzo upserts a batch of spreadsheet rows in one transaction.
func (s *Service) IngestMonzo(ctx context.Context, recs []models.MonzoRecord) (BatchResult, error) {
	var result BatchResult
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return result, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, rec := range recs {
		if err := tx.UpsertMonzo(ctx, rec); err != nil {
			result.Failures = append(result.Failures, RecordFailure{RecordID: rec.TransactionID, Reason: err.Error()})
			continue
		}
		result.Upserted++
	}

	if err := tx.Commit(); err != nil {
		return BatchResult{}, fmt.Errorf("committing monzo batch: %w", err)
	}
	log.WithFields(logrus.Fields{"upserted": result.Upserted, "failed": len(result.Failures)}).Info("Ingested monzo batch")
	return result, nil
}

// IngestSplitwise upserts a batch of shared-expense records in one
// transaction. Soft-deleted records are stored too; they are filtered from
// the canonical stream, not from the raw store.
func (s *Service) IngestSplitwise(ctx context.Context, recs []models.SplitwiseRecord) (BatchResult, error) {
	var result BatchResult
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return result, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, rec := range recs {
		if err := tx.UpsertSplitwise(ctx, rec); err != nil {
			result.Failures = append(result.Failures, RecordFailure{RecordID: fmt.Sprintf("%d", rec.ID), Reason: err.Error()})
			continue
		}
		result.Upserted++
	}

	if err := tx.Commit(); err != nil {
		return BatchResult{}, fmt.Errorf("committing splitwise batch: %w", err)
	}
	log.WithFields(logrus.Fields{"upserted": result.Upserted, "failed": len(result.Failures)}).Info("Ingested splitwise batch")
	return result, nil
}

// Connectors bundles the per-source fetch functions for a full load. A nil
// function means the source is not configured and is skipped.
type Connectors struct {
	Amex      func(ctx context.Context) ([]models.AmexRecord, error)
	Monzo     func(ctx context.Context) ([]models.MonzoRecord, error)
	Splitwise func(ctx context.Context) ([]models.SplitwiseRecord, error)
}

// SourceResult is the outcome of one source during a full load.
type SourceResult struct {
	Account  models.Account `json:"account"`
	Error    string         `json:"error,omitempty"`
	Upserted int            `json:"upserted"`
	Failures []RecordFailure `json:"failures,omitempty"`
}

// FullLoad fetches and ingests every configured source. A source that is
// unreachable is reported in its result and does not abort the others.
func (s *Service) FullLoad(ctx context.Context, c Connectors) []SourceResult {
	var results []SourceResult

	if c.Amex != nil {
		results = append(results, s.loadSource(models.AccountAmex, func() (BatchResult, error) {
			recs, err := c.Amex(ctx)
			if err != nil {
				return BatchResult{}, err
			}
			return s.IngestAmex(ctx, recs)
		}))
	}
	if c.Monzo != nil {
		results = append(results, s.loadSource(models.AccountMonzo, func() (BatchResult, error) {
			recs, err := c.Monzo(ctx)
			if err != nil {
				return BatchResult{}, err
			}
			return s.IngestMonzo(ctx, recs)
		}))
	}
	if c.Splitwise != nil {
		results = append(results, s.loadSource(models.AccountSplitwise, func() (BatchResult, error) {
			recs, err := c.Splitwise(ctx)
			if err != nil {
				return BatchResult{}, err
			}
			return s.IngestSplitwise(ctx, recs)
		}))
	}

	return results
}

func (s *Service) loadSource(account models.Account, run func() (BatchResult, error)) SourceResult {
	result := SourceResult{Account: account}
	batch, err := run()
	if err != nil {
		log.WithError(err).WithField("source", account).Error("Source load failed")
		result.Error = err.Error()
		return result
	}
	result.Upserted = batch.Upserted
	result.Failures = batch.Failures
	return result
}
