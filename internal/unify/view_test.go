package unify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcoudert/budget-engine/internal/errs"
	"mcoudert/budget-engine/internal/models"
	"mcoudert/budget-engine/internal/storage"
	"mcoudert/budget-engine/internal/unify"
)

const testUserID int64 = 51056312

func seedStore(t *testing.T) *storage.Storage {
	t.Helper()
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestListUnionsAllSources(t *testing.T) {
	store := seedStore(t)
	ctx := context.Background()

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UpsertAmex(ctx, models.AmexRecord{
		Date: "01/03/2023", Description: "TESCO STORES", Amount: "10.00", Reference: "AT1",
	}))
	require.NoError(t, tx.UpsertMonzo(ctx, models.MonzoRecord{
		TransactionID: "tx_1", Date: "03/03/2023", Time: "09:00:00", Name: "Lidl", Amount: "-5.00",
	}))
	require.NoError(t, tx.UpsertSplitwise(ctx, models.SplitwiseRecord{
		ID: 7, Description: "Flat expenses", Date: "2023-03-05T12:30:00Z",
		Users: models.UserShares{{UserID: testUserID, NetBalance: "30.00"}},
	}))
	require.NoError(t, tx.Commit())

	view := unify.NewView(store, testUserID)
	txs, recordErrs, err := view.List(ctx)
	require.NoError(t, err)
	require.Empty(t, recordErrs)
	require.Len(t, txs, 3)

	byID := make(map[string]models.Transaction, len(txs))
	for _, transaction := range txs {
		byID[transaction.ID] = transaction
	}

	assert.Equal(t, models.AccountAmex, byID["AT1"].Account)
	assert.Equal(t, "-10", byID["AT1"].Amount.String())
	assert.Equal(t, models.AccountMonzo, byID["tx_1"].Account)
	assert.Equal(t, models.AccountSplitwise, byID["7"].Account)
	assert.Equal(t, "30", byID["7"].Amount.String())
}

func TestListSkipsMalformedRecords(t *testing.T) {
	store := seedStore(t)
	ctx := context.Background()

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UpsertAmex(ctx, models.AmexRecord{
		Date: "01/03/2023", Amount: "10.00", Reference: "AT-good",
	}))
	require.NoError(t, tx.UpsertAmex(ctx, models.AmexRecord{
		Date: "not-a-date", Amount: "10.00", Reference: "AT-bad",
	}))
	require.NoError(t, tx.Commit())

	view := unify.NewView(store, testUserID)
	txs, recordErrs, err := view.List(ctx)
	require.NoError(t, err)

	require.Len(t, txs, 1, "one malformed record must not block the batch")
	assert.Equal(t, "AT-good", txs[0].ID)

	require.Len(t, recordErrs, 1)
	var recordErr *errs.RecordError
	require.ErrorAs(t, recordErrs[0], &recordErr)
	assert.Equal(t, "AT-bad", recordErr.RecordID)
}

func TestListWithOnlyMalformedRecords(t *testing.T) {
	store := seedStore(t)
	ctx := context.Background()

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UpsertAmex(ctx, models.AmexRecord{
		Date: "not-a-date", Amount: "10.00", Reference: "AT-bad",
	}))
	require.NoError(t, tx.Commit())

	view := unify.NewView(store, testUserID)
	txs, recordErrs, err := view.List(ctx)
	require.NoError(t, err, "malformed records are noise, not a storage failure")
	assert.Empty(t, txs)
	assert.Len(t, recordErrs, 1)
}

func TestListExcludesSoftDeletedExpenses(t *testing.T) {
	store := seedStore(t)
	ctx := context.Background()

	deletedAt := "2023-04-01T10:00:00Z"
	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UpsertSplitwise(ctx, models.SplitwiseRecord{
		ID: 1, Description: "kept", Date: "2023-03-05T12:30:00Z",
		Users: models.UserShares{{UserID: testUserID, NetBalance: "1.00"}},
	}))
	require.NoError(t, tx.UpsertSplitwise(ctx, models.SplitwiseRecord{
		ID: 2, Description: "deleted upstream", Date: "2023-03-06T12:30:00Z", DeletedAt: &deletedAt,
		Users: models.UserShares{{UserID: testUserID, NetBalance: "2.00"}},
	}))
	require.NoError(t, tx.Commit())

	view := unify.NewView(store, testUserID)
	txs, recordErrs, err := view.List(ctx)
	require.NoError(t, err)
	require.Empty(t, recordErrs)
	require.Len(t, txs, 1)
	assert.Equal(t, "1", txs[0].ID)

	// The raw store still holds both.
	recs, err := store.ListSplitwise(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}
