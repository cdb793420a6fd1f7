package normalize

import (
	"time"

	"github.com/shopspring/decimal"

	"mcoudert/budget-engine/internal/errs"
	"mcoudert/budget-engine/internal/models"
)

// Amex maps a card statement row onto the canonical shape. The source
// reports purchases as positive amounts, so the sign is flipped: canonical
// spend is negative. The statement date carries no time component and is
// pinned to UTC midnight.
func Amex(rec models.AmexRecord) (models.Transaction, error) {
	date, err := time.ParseInLocation(layoutCardDate, rec.Date, time.UTC)
	if err != nil {
		return models.Transaction{}, errs.NewRecordError(string(models.AccountAmex), rec.Reference, "date", rec.Date, err)
	}

	amount, err := decimal.NewFromString(rec.Amount)
	if err != nil {
		return models.Transaction{}, errs.NewRecordError(string(models.AccountAmex), rec.Reference, "amount", rec.Amount, err)
	}

	return models.Transaction{
		ID:          rec.Reference,
		Timestamp:   date.Unix(),
		Description: rec.Description,
		Amount:      amount.Neg(),
		Address:     joinNonEmpty(rec.Address, rec.TownCity, rec.Postcode, rec.Country),
		Account:     models.AccountAmex,
	}, nil
}
