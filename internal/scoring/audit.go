package scoring

import (
	"math"

	"grupoandino/supplier-evaluator/internal/models"
)

// The audit carries two deliberately different formulas. The preview shown
// while the auditor works weighs every question the same; the persisted
// finalization reuses the questionnaire's real point values. Keep them
// separate: unifying them would change observable behavior.

// AuditPreviewScore is the live, uniform-weight score for one category:
// 100 * valid / total questions in the category, ignoring section weights
// and the supplier's original points. Display only, never persisted.
func AuditPreviewScore(sections []models.Section, validations map[string]models.AuditValidation) float64 {
	total := 0
	valid := 0
	for _, s := range sections {
		for _, q := range s.Questions {
			total++
			if v, ok := validations[q.ID]; ok && v.Status == models.AuditValid {
				valid++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return 100 * float64(valid) / float64(total)
}

// AuditDelta is the rounded difference the auditor sees between the running
// preview and the supplier's original category score.
func AuditDelta(preview, original float64) int {
	return int(math.Round(preview - original))
}

// AuditFinalCategoryScore is the persisted formula: the questionnaire's
// per-question point value summed over valid items only, divided by the
// category's total possible points.
func AuditFinalCategoryScore(sections []models.Section, validations map[string]models.AuditValidation) float64 {
	earned := 0.0
	possible := 0.0
	for _, s := range sections {
		pointValue := QuestionPointValue(s)
		possible += s.Weight
		for _, q := range s.Questions {
			if v, ok := validations[q.ID]; ok && v.Status == models.AuditValid {
				earned += pointValue
			}
		}
	}
	if possible == 0 {
		return 0
	}
	return 100 * earned / possible
}

// AuditFinalScore rounds the mean of the two finalized category scores.
func AuditFinalScore(calidad, abastecimiento float64) float64 {
	return math.Round(GlobalScore(calidad, abastecimiento))
}
