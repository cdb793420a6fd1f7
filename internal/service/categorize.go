package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"mcoudert/budget-engine/internal/categorizer"
	"mcoudert/budget-engine/internal/errs"
	"mcoudert/budget-engine/internal/models"
	"mcoudert/budget-engine/internal/storage"
)

// SetUserCategory records an explicit user categorization for one
// transaction. The assignment row is created lazily if it does not exist.
func (s *Service) SetUserCategory(ctx context.Context, transactionID string, category models.Category) error {
	count, err := s.SetUserCategories(ctx, []string{transactionID}, category)
	if err != nil {
		return err
	}
	if count != 1 {
		return errs.NewInvalidArgument("no transaction id provided")
	}
	return nil
}

// SetUserCategories records the same user category for many transactions in
// one transaction, returning the number of rows affected.
func (s *Service) SetUserCategories(ctx context.Context, transactionIDs []string, category models.Category) (int, error) {
	if category == "" {
		return 0, errs.NewInvalidArgument("no category provided")
	}
	if !category.Valid() {
		return 0, errs.NewInvalidArgument("category %q is not in the enumeration", category)
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	affected := 0
	for _, id := range transactionIDs {
		if id == "" {
			continue
		}
		if err := tx.SetUserCategory(ctx, id, category); err != nil {
			return 0, err
		}
		affected++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	log.WithFields(logrus.Fields{"category": category, "affected": affected}).Info("Set user category")
	return affected, nil
}

// setModelCategory validates the both-or-neither rule before writing the
// model pair; the invariant lives in one place.
func setModelCategory(ctx context.Context, tx *storage.Tx, transactionID string, category models.Category, confidence float64) error {
	if category == "" {
		return errs.NewInvalidArgument("model category requires a value")
	}
	if confidence <= 0 {
		return errs.NewInvalidArgument("model category requires model confidence")
	}
	return tx.SetModelCategory(ctx, transactionID, category, confidence)
}

// AutoCategorizeResult reports one classifier batch pass.
type AutoCategorizeResult struct {
	Categorized   int `json:"categorized"`
	Uncategorized int `json:"uncategorized"`
}

// AutoCategorize runs the keyword classifier over every transaction whose
// effective category is currently UNKNOWN. Matches are written as the model
// pair at fixed confidence; UNKNOWN results are not written at all, so a
// later pass or the user can still claim them. Transactions that already
// carry any effective category are skipped entirely; a user override is
// never clobbered by an auto-categorization run.
func (s *Service) AutoCategorize(ctx context.Context) (AutoCategorizeResult, error) {
	var result AutoCategorizeResult

	resolved, err := s.resolvedStream(ctx)
	if err != nil {
		return result, err
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return result, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, candidate := range resolved {
		if candidate.Category != models.CategoryUnknown {
			continue
		}

		category, confidence := s.classifier.Classify(candidate.Description)
		if category == models.CategoryUnknown {
			result.Uncategorized++
			continue
		}

		if err := setModelCategory(ctx, tx, candidate.ID, category, confidence); err != nil {
			return AutoCategorizeResult{}, err
		}
		result.Categorized++
	}

	if err := tx.Commit(); err != nil {
		return AutoCategorizeResult{}, err
	}

	log.WithFields(logrus.Fields{
		"categorized":   result.Categorized,
		"uncategorized": result.Uncategorized,
	}).Info("Auto-categorization pass finished")
	return result, nil
}

// Classifier exposes the service's classifier, for the interactive review
// loop to show what the model would have guessed.
func (s *Service) Classifier() *categorizer.Classifier {
	return s.classifier
}
