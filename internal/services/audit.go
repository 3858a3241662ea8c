package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"grupoandino/supplier-evaluator/internal/models"
	"grupoandino/supplier-evaluator/internal/repositories"
	"grupoandino/supplier-evaluator/internal/scoring"
)

// AuditService re-validates each answered question of a submission and
// recomputes an authoritative final score independent of the supplier's
// self-assessment.
type AuditService interface {
	GetAudit(submissionID uuid.UUID) (*models.AuditView, error)
	SaveAudit(submissionID uuid.UUID, req models.SaveAuditRequest) (*models.AuditResult, error)
}

type auditService struct {
	subRepo     repositories.SubmissionRepository
	config      ConfigurationService
	submissions SubmissionService
}

func NewAuditService(
	subRepo repositories.SubmissionRepository,
	config ConfigurationService,
	submissions SubmissionService,
) AuditService {
	return &auditService{
		subRepo:     subRepo,
		config:      config,
		submissions: submissions,
	}
}

// GetAudit returns the working state for a submission: a saved validation
// map is resumed as-is, otherwise every answered question starts pending.
// The preview scores weigh every question the same; they exist only to show
// the auditor a running delta and are never persisted.
func (s *auditService) GetAudit(submissionID uuid.UUID) (*models.AuditView, error) {
	sub, err := s.subRepo.FindByID(submissionID)
	if err != nil {
		return nil, err
	}

	snap, err := models.ParseSnapshot(sub.Snapshot)
	if err != nil {
		return nil, err
	}

	validations := sub.AuditValidations.Data()
	if len(validations) == 0 {
		validations = make(map[string]models.AuditValidation, len(snap.Responses))
		for _, r := range snap.Responses {
			validations[r.QuestionID] = models.AuditValidation{Status: models.AuditPending}
		}
	}

	q := s.config.Get()
	calPreview := scoring.AuditPreviewScore(q.Calidad.Sections, validations)
	abaPreview := scoring.AuditPreviewScore(q.Abastecimiento.Sections, validations)

	return &models.AuditView{
		SubmissionID:           sub.ID.String(),
		SupplierID:             sub.SupplierID,
		Status:                 sub.Status,
		Validations:            validations,
		CalidadOriginal:        snap.CalidadScore,
		AbastecimientoOriginal: snap.AbastecimientoScore,
		CalidadPreview:         calPreview,
		AbastecimientoPreview:  abaPreview,
		CalidadDelta:           scoring.AuditDelta(calPreview, snap.CalidadScore),
		AbastecimientoDelta:    scoring.AuditDelta(abaPreview, snap.AbastecimientoScore),
		CanRecalibrate:         canRecalibrate(sub, time.Now()),
		ExpiresAt:              sub.ExpiresAt,
	}, nil
}

// SaveAudit finalizes the audit. Unlike the preview, the persisted score
// reuses the questionnaire's real per-question point values, summed over
// valid items only. SALIR rejects the submission, anything else approves it
// with the recomputed score and classification.
func (s *auditService) SaveAudit(submissionID uuid.UUID, req models.SaveAuditRequest) (*models.AuditResult, error) {
	sub, err := s.subRepo.FindByID(submissionID)
	if err != nil {
		return nil, err
	}
	if !canRecalibrate(sub, time.Now()) {
		return nil, ErrAuditCurrent
	}

	snap, err := models.ParseSnapshot(sub.Snapshot)
	if err != nil {
		return nil, err
	}

	// Start from the full working map (every answered question, previously
	// saved state resumed) and overlay the request on top, so a request that
	// omits questions cannot shrink the audit: omitted items stay pending.
	validations := make(map[string]models.AuditValidation, len(snap.Responses))
	for _, r := range snap.Responses {
		validations[r.QuestionID] = models.AuditValidation{Status: models.AuditPending}
	}
	for id, v := range sub.AuditValidations.Data() {
		validations[id] = v
	}
	for id, v := range req.Validations {
		validations[id] = models.AuditValidation{
			Status:      models.AuditStatus(v.Status),
			Finding:     v.Finding,
			EvidenceURL: v.EvidenceURL,
		}
	}

	pending := 0
	var missingFindings []string
	for id, v := range validations {
		if v.Status == models.AuditPending {
			pending++
		}
		if v.Status == models.AuditInvalid && v.Finding == "" {
			missingFindings = append(missingFindings, id)
		}
	}
	if pending > 0 {
		return nil, &IncompleteAuditError{Pending: pending}
	}
	if len(missingFindings) > 0 {
		return nil, &MissingFindingError{QuestionIDs: missingFindings}
	}

	q := s.config.Get()
	calFinal := scoring.AuditFinalCategoryScore(q.Calidad.Sections, validations)
	abaFinal := scoring.AuditFinalCategoryScore(q.Abastecimiento.Sections, validations)
	finalScore := scoring.AuditFinalScore(calFinal, abaFinal)
	classification := scoring.Classify(finalScore)

	review := models.ReviewRequest{
		SupplierID:             sub.SupplierID,
		AuditorID:              req.AuditorID,
		Comments:               "audit recalibration",
		ExpiresAt:              req.ExpiresAt,
		OverrideScore:          &finalScore,
		OverrideClassification: (*string)(&classification),
	}

	var newStatus models.EvaluationStatus
	if classification == models.ClassificationSalir {
		newStatus = models.StatusRejected
		err = s.submissions.Reject(submissionID, review)
	} else {
		newStatus = models.StatusApproved
		err = s.submissions.Approve(submissionID, review)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.subRepo.Patch(submissionID, map[string]interface{}{
		"audit_validations": datatypes.NewJSONType(validations),
		"audited_at":        now,
		"audited_by":        req.AuditorID,
	}); err != nil {
		return nil, err
	}

	return &models.AuditResult{
		SubmissionID:        sub.ID.String(),
		FinalScore:          finalScore,
		FinalClassification: classification,
		Status:              newStatus,
		CalidadScore:        calFinal,
		AbastecimientoScore: abaFinal,
	}, nil
}

// canRecalibrate implements the cooldown: an approval with a future expiry
// keeps the audit surface read-only ("vigente") until it lapses.
func canRecalibrate(sub *models.Submission, now time.Time) bool {
	if sub.Status != models.StatusApproved {
		return true
	}
	if sub.ExpiresAt == nil {
		return true
	}
	return !sub.ExpiresAt.After(now)
}
