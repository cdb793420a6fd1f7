package normalize_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcoudert/budget-engine/internal/errs"
	"mcoudert/budget-engine/internal/models"
	"mcoudert/budget-engine/internal/normalize"
)

const testUserID int64 = 51056312

func splitwiseFixture() models.SplitwiseRecord {
	return models.SplitwiseRecord{
		ID:          1234567890,
		Description: "Flat expenses",
		Cost:        "60.00",
		Date:        "2023-03-05T12:30:00Z",
		Users: models.UserShares{
			{UserID: testUserID, PaidShare: "60.00", OwedShare: "30.00", NetBalance: "30.00"},
			{UserID: 999, PaidShare: "0.00", OwedShare: "30.00", NetBalance: "-30.00"},
		},
	}
}

func TestSplitwise(t *testing.T) {
	tx, err := normalize.Splitwise(splitwiseFixture(), testUserID)
	require.NoError(t, err)

	assert.Equal(t, "1234567890", tx.ID)
	assert.Equal(t, models.AccountSplitwise, tx.Account)
	assert.Equal(t, "Flat expenses", tx.Description)
	assert.Equal(t, "30", tx.Amount.String(), "amount is the user's net balance, not the cost")

	expected := time.Date(2023, time.March, 5, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, expected.Unix(), tx.Timestamp)
}

func TestSplitwiseOtherUserPerspective(t *testing.T) {
	tx, err := normalize.Splitwise(splitwiseFixture(), 999)
	require.NoError(t, err)
	assert.Equal(t, "-30", tx.Amount.String())
}

func TestSplitwiseBareDateFallback(t *testing.T) {
	rec := splitwiseFixture()
	rec.Date = "2023-03-05"

	tx, err := normalize.Splitwise(rec, testUserID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, time.March, 5, 0, 0, 0, 0, time.UTC).Unix(), tx.Timestamp)
}

func TestSplitwiseNoShareForUser(t *testing.T) {
	_, err := normalize.Splitwise(splitwiseFixture(), 42)
	require.Error(t, err)

	var recordErr *errs.RecordError
	require.ErrorAs(t, err, &recordErr)
	assert.Equal(t, "1234567890", recordErr.RecordID)
	assert.Equal(t, "users", recordErr.Field)
}

func TestSplitwiseMalformedFields(t *testing.T) {
	t.Run("bad date", func(t *testing.T) {
		rec := splitwiseFixture()
		rec.Date = "05/03/2023"

		_, err := normalize.Splitwise(rec, testUserID)
		var recordErr *errs.RecordError
		require.ErrorAs(t, err, &recordErr)
		assert.Equal(t, "date", recordErr.Field)
	})

	t.Run("bad net balance", func(t *testing.T) {
		rec := splitwiseFixture()
		rec.Users[0].NetBalance = "thirty"

		_, err := normalize.Splitwise(rec, testUserID)
		var recordErr *errs.RecordError
		require.ErrorAs(t, err, &recordErr)
		assert.Equal(t, "net_balance", recordErr.Field)
	})
}
