package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcoudert/budget-engine/internal/models"
)

func TestPivotData(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.IngestAmex(ctx, []models.AmexRecord{
		amexFixture("R1", "01/03/2023", "TESCO", "10.00"),
		amexFixture("R2", "15/03/2023", "TESCO EXPRESS", "5.00"),
		amexFixture("R3", "01/02/2023", "MYSTERY", "3.00"),
		amexFixture("R4", "01/06/2021", "TOO OLD", "99.00"),
	})
	require.NoError(t, err)

	_, err = svc.AutoCategorize(ctx)
	require.NoError(t, err)

	cells, err := svc.PivotData(ctx)
	require.NoError(t, err)
	require.Len(t, cells, 2)

	// Newest month first, categories lexical within a month.
	assert.Equal(t, "2023-03", cells[0].Month)
	assert.Equal(t, models.CategoryGroceries, cells[0].Category)
	assert.Equal(t, "-15", cells[0].Amount.String())

	assert.Equal(t, "2023-02", cells[1].Month)
	assert.Equal(t, models.CategoryUnknown, cells[1].Category)
	assert.Equal(t, "-3", cells[1].Amount.String())
}

func TestTotal(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.IngestAmex(ctx, []models.AmexRecord{
		amexFixture("R1", "01/03/2023", "TESCO", "10.00"),
		amexFixture("R2", "02/03/2023", "MYSTERY", "4.00"),
	})
	require.NoError(t, err)
	_, err = svc.AutoCategorize(ctx)
	require.NoError(t, err)

	total, err := svc.Total(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "-14", total.String())

	total, err = svc.Total(ctx, models.CategoryGroceries)
	require.NoError(t, err)
	assert.Equal(t, "-10", total.String())

	total, err = svc.Total(ctx, models.CategoryBills)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestCategorySpend(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.IngestAmex(ctx, []models.AmexRecord{
		amexFixture("R1", "10/01/2023", "TESCO", "10.00"),
		amexFixture("R2", "20/01/2023", "LIDL GB", "5.00"),
		amexFixture("R3", "05/03/2023", "SAINSBURYS", "7.00"),
		amexFixture("R4", "05/03/2022", "TESCO METRO", "9.00"),
	})
	require.NoError(t, err)
	_, err = svc.AutoCategorize(ctx)
	require.NoError(t, err)

	series, err := svc.CategorySpend(ctx, models.CategoryGroceries)
	require.NoError(t, err)
	require.Len(t, series, 2, "2022 spend is outside the reporting window")

	assert.Equal(t, 2023, series[0].Year)
	assert.Equal(t, "Jan", series[0].Month)
	assert.Equal(t, "-15", series[0].Amount.String())

	assert.Equal(t, 2023, series[1].Year)
	assert.Equal(t, "Mar", series[1].Month)
	assert.Equal(t, "-7", series[1].Amount.String())
}
