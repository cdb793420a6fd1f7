package categorizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mcoudert/budget-engine/internal/categorizer"
	"mcoudert/budget-engine/internal/models"
)

func TestResolve(t *testing.T) {
	user := models.CategoryBills
	model := models.CategoryTravel
	lowConfidence := 0.1

	tests := []struct {
		name       string
		assignment *models.CategoryAssignment
		expected   models.Category
	}{
		{"nil assignment", nil, models.CategoryUnknown},
		{"empty row", &models.CategoryAssignment{TransactionID: "tx-1"}, models.CategoryUnknown},
		{
			name: "model category applies",
			assignment: &models.CategoryAssignment{
				TransactionID:   "tx-1",
				ModelCategory:   &model,
				ModelConfidence: &lowConfidence,
			},
			expected: models.CategoryTravel,
		},
		{
			name: "user overrides model regardless of confidence",
			assignment: &models.CategoryAssignment{
				TransactionID:   "tx-1",
				UserCategory:    &user,
				ModelCategory:   &model,
				ModelConfidence: &lowConfidence,
			},
			expected: models.CategoryBills,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, categorizer.Resolve(tt.assignment))
		})
	}
}

func TestIsUncategorized(t *testing.T) {
	model := models.CategoryTravel
	confidence := 1.0

	assert.True(t, categorizer.IsUncategorized(nil))
	assert.True(t, categorizer.IsUncategorized(&models.CategoryAssignment{TransactionID: "tx-1"}))
	assert.False(t, categorizer.IsUncategorized(&models.CategoryAssignment{
		TransactionID:   "tx-1",
		ModelCategory:   &model,
		ModelConfidence: &confidence,
	}))
}
