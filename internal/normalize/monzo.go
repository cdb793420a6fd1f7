package normalize

import (
	"time"

	"github.com/shopspring/decimal"

	"mcoudert/budget-engine/internal/errs"
	"mcoudert/budget-engine/internal/models"
)

// Monzo maps a banking spreadsheet row onto the canonical shape. Date and
// time arrive as two separate text fields and are combined before parsing;
// the amount sign is already canonical (spend negative).
func Monzo(rec models.MonzoRecord) (models.Transaction, error) {
	combined := rec.Date + " " + rec.Time
	ts, err := time.ParseInLocation(layoutSheetDate, combined, time.UTC)
	if err != nil {
		return models.Transaction{}, errs.NewRecordError(string(models.AccountMonzo), rec.TransactionID, "date", combined, err)
	}

	amount, err := decimal.NewFromString(rec.Amount)
	if err != nil {
		return models.Transaction{}, errs.NewRecordError(string(models.AccountMonzo), rec.TransactionID, "amount", rec.Amount, err)
	}

	return models.Transaction{
		ID:          rec.TransactionID,
		Timestamp:   ts.Unix(),
		Description: joinNonEmpty(rec.Name, rec.Description, rec.NotesAndTags),
		Amount:      amount,
		Address:     rec.Address,
		Account:     models.AccountMonzo,
	}, nil
}
