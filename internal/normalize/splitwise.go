package normalize

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"mcoudert/budget-engine/internal/errs"
	"mcoudert/budget-engine/internal/models"
)

// Splitwise maps a shared-expense record onto the canonical shape. The
// canonical amount is not the expense's total cost: it is the net balance
// belonging to the configured user, extracted from the per-user breakdown.
// A record without a share for that user is malformed. Soft-deleted records
// are filtered by the unified view, not here.
func Splitwise(rec models.SplitwiseRecord, userID int64) (models.Transaction, error) {
	id := strconv.FormatInt(rec.ID, 10)

	ts, err := parseISOTimestamp(rec.Date)
	if err != nil {
		return models.Transaction{}, errs.NewRecordError(string(models.AccountSplitwise), id, "date", rec.Date, err)
	}

	share, ok := findUserShare(rec.Users, userID)
	if !ok {
		return models.Transaction{}, errs.NewRecordError(string(models.AccountSplitwise), id, "users", "",
			fmt.Errorf("no share for user %d", userID))
	}

	amount, err := decimal.NewFromString(share.NetBalance)
	if err != nil {
		return models.Transaction{}, errs.NewRecordError(string(models.AccountSplitwise), id, "net_balance", share.NetBalance, err)
	}

	return models.Transaction{
		ID:          id,
		Timestamp:   ts.Unix(),
		Description: rec.Description,
		Amount:      amount,
		Account:     models.AccountSplitwise,
	}, nil
}

// parseISOTimestamp accepts the full ISO timestamp the API delivers and
// falls back to a bare ISO date.
func parseISOTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(layoutISOTimestamp, s); err == nil {
		return t.UTC(), nil
	}
	return time.ParseInLocation(layoutISODate, s, time.UTC)
}

func findUserShare(shares models.UserShares, userID int64) (models.UserShare, bool) {
	for _, share := range shares {
		if share.UserID == userID {
			return share, true
		}
	}
	return models.UserShare{}, false
}
