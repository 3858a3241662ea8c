package services

import (
	"errors"
	"fmt"
	"strings"

	"grupoandino/supplier-evaluator/internal/models"
)

// IncompleteEvaluationError is returned by Submit when one or both
// categories still have unanswered questions. The caller prompts the user
// to finish; nothing is retried.
type IncompleteEvaluationError struct {
	CalidadAnswered         int
	CalidadQuestions        int
	AbastecimientoAnswered  int
	AbastecimientoQuestions int
}

func (e *IncompleteEvaluationError) Error() string {
	return fmt.Sprintf(
		"evaluation incomplete: calidad %d/%d, abastecimiento %d/%d questions answered",
		e.CalidadAnswered, e.CalidadQuestions,
		e.AbastecimientoAnswered, e.AbastecimientoQuestions,
	)
}

// IncompleteAuditError is returned by SaveAudit while any question is still
// pending.
type IncompleteAuditError struct {
	Pending int
}

func (e *IncompleteAuditError) Error() string {
	return fmt.Sprintf("audit incomplete: %d questions still pending", e.Pending)
}

// MissingFindingError is returned by SaveAudit when an invalid item has no
// finding recorded.
type MissingFindingError struct {
	QuestionIDs []string
}

func (e *MissingFindingError) Error() string {
	return fmt.Sprintf(
		"invalid items missing a finding: %s",
		strings.Join(e.QuestionIDs, ", "),
	)
}

// ConfigValidationError blocks saving a questionnaire whose section weights
// do not sum to 100 for a category. It never blocks scoring of an already
// stored configuration.
type ConfigValidationError struct {
	Category models.Category
	Sum      float64
}

func (e *ConfigValidationError) Error() string {
	return fmt.Sprintf(
		"section weights for %s sum to %.2f, expected 100",
		e.Category, e.Sum,
	)
}

// ErrAuditCurrent is returned when a recalibration is attempted while the
// previous approval is still current (expiresAt in the future).
var ErrAuditCurrent = errors.New("approval still current, recalibration not yet allowed")
