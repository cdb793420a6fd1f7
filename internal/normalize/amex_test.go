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

func TestAmex(t *testing.T) {
	rec := models.AmexRecord{
		Date:        "01/03/2023",
		Description: "TESCO STORES 2043",
		Amount:      "42.50",
		Address:     "12 High Road",
		TownCity:    "LONDON",
		Postcode:    "N8 7PB",
		Country:     "UNITED KINGDOM",
		Reference:   "AT230600040000011111111",
	}

	tx, err := normalize.Amex(rec)
	require.NoError(t, err)

	assert.Equal(t, "AT230600040000011111111", tx.ID)
	assert.Equal(t, models.AccountAmex, tx.Account)
	assert.Equal(t, "TESCO STORES 2043", tx.Description)
	assert.Equal(t, "-42.5", tx.Amount.String(), "card spend is flipped negative")
	assert.Equal(t, "12 High Road LONDON N8 7PB UNITED KINGDOM", tx.Address)

	expected := time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, expected.Unix(), tx.Timestamp, "statement dates pin to UTC midnight")
	assert.Equal(t, "2023-03-01", tx.Date())
	assert.Equal(t, "2023-03", tx.Month())
}

func TestAmexRefundStaysPositive(t *testing.T) {
	rec := models.AmexRecord{
		Date:      "15/04/2023",
		Amount:    "-12.00",
		Reference: "AT230600040000022222222",
	}

	tx, err := normalize.Amex(rec)
	require.NoError(t, err)
	assert.Equal(t, "12", tx.Amount.String(), "a source-negative refund flips positive")
}

func TestAmexAddressSkipsEmptyParts(t *testing.T) {
	rec := models.AmexRecord{
		Date:      "01/03/2023",
		Amount:    "1.00",
		Reference: "AT1",
		TownCity:  "LONDON",
		Country:   "UNITED KINGDOM",
	}

	tx, err := normalize.Amex(rec)
	require.NoError(t, err)
	assert.Equal(t, "LONDON UNITED KINGDOM", tx.Address)
}

func TestAmexMalformedFields(t *testing.T) {
	tests := []struct {
		name  string
		rec   models.AmexRecord
		field string
	}{
		{
			name:  "bad date",
			rec:   models.AmexRecord{Date: "2023-03-01", Amount: "1.00", Reference: "AT1"},
			field: "date",
		},
		{
			name:  "bad amount",
			rec:   models.AmexRecord{Date: "01/03/2023", Amount: "forty", Reference: "AT1"},
			field: "amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := normalize.Amex(tt.rec)
			require.Error(t, err)

			var recordErr *errs.RecordError
			require.ErrorAs(t, err, &recordErr)
			assert.Equal(t, "AT1", recordErr.RecordID)
			assert.Equal(t, tt.field, recordErr.Field)
		})
	}
}
