package categorizer

import "mcoudert/budget-engine/internal/models"

// Resolve computes the effective category for a transaction's assignment
// row. A nil assignment means no row exists yet, which is simply
// uncategorized. The user category wins unconditionally over the model
// category; model confidence is never an override trigger.
func Resolve(assignment *models.CategoryAssignment) models.Category {
	if assignment == nil {
		return models.CategoryUnknown
	}
	return assignment.EffectiveCategory()
}

// IsUncategorized reports whether the assignment resolves to UNKNOWN,
// which includes the no-row case.
func IsUncategorized(assignment *models.CategoryAssignment) bool {
	return Resolve(assignment) == models.CategoryUnknown
}
