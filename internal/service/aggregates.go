package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"mcoudert/budget-engine/internal/models"
)

// Aggregates are pure functions of the canonical, resolved stream. They
// recompute from scratch on every call; there is no incremental state to
// keep consistent.

// pivotEpoch is the lower boundary of the pivot view.
var pivotEpoch = time.Date(2022, time.August, 1, 0, 0, 0, 0, time.UTC).Unix()

// categorySpendFirstYear is the first year reported by CategorySpend.
const categorySpendFirstYear = 2023

// MonthCategoryTotal is one cell of the month × category pivot.
type MonthCategoryTotal struct {
	Month    string          `json:"month"`
	Category models.Category `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// PivotData returns total spend per month and category, newest month
// first, categories in lexical order within a month.
func (s *Service) PivotData(ctx context.Context) ([]MonthCategoryTotal, error) {
	resolved, err := s.resolvedStream(ctx)
	if err != nil {
		return nil, err
	}

	type key struct {
		month    string
		category models.Category
	}
	totals := make(map[key]decimal.Decimal)
	for _, tx := range resolved {
		if tx.Timestamp < pivotEpoch {
			continue
		}
		k := key{month: tx.Month(), category: tx.Category}
		totals[k] = totals[k].Add(tx.Amount)
	}

	out := make([]MonthCategoryTotal, 0, len(totals))
	for k, amount := range totals {
		out = append(out, MonthCategoryTotal{Month: k.month, Category: k.category, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month > out[j].Month
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

// Total returns the grand total over the whole stream, optionally
// restricted to one category.
func (s *Service) Total(ctx context.Context, category models.Category) (decimal.Decimal, error) {
	resolved, err := s.resolvedStream(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, tx := range resolved {
		if category != "" && tx.Category != category {
			continue
		}
		total = total.Add(tx.Amount)
	}
	return total, nil
}

// MonthlySpend is one month of a per-category spend series.
type MonthlySpend struct {
	Year   int             `json:"year"`
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// CategorySpend returns the monthly spend series for one category from
// categorySpendFirstYear onward, in chronological order. Month names are
// short English names (Jan, Feb, ...).
func (s *Service) CategorySpend(ctx context.Context, category models.Category) ([]MonthlySpend, error) {
	resolved, err := s.resolvedStream(ctx)
	if err != nil {
		return nil, err
	}

	type key struct {
		year  int
		month time.Month
	}
	totals := make(map[key]decimal.Decimal)
	for _, tx := range resolved {
		if tx.Category != category {
			continue
		}
		when := tx.Time()
		if when.Year() < categorySpendFirstYear {
			continue
		}
		k := key{year: when.Year(), month: when.Month()}
		totals[k] = totals[k].Add(tx.Amount)
	}

	keys := make([]key, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	out := make([]MonthlySpend, 0, len(keys))
	for _, k := range keys {
		out = append(out, MonthlySpend{
			Year:   k.year,
			Month:  k.month.String()[:3],
			Amount: totals[k],
		})
	}
	return out, nil
}
