package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"grupoandino/supplier-evaluator/internal/models"
	"grupoandino/supplier-evaluator/internal/repositories"
)

// SubmissionService is the lifecycle state machine: it decides when the
// supplier may edit, freezes submissions into snapshots, and applies the
// auditor's decision.
type SubmissionService interface {
	Submit(supplierID string) (*models.Submission, error)
	CanEdit(supplierID string) (bool, error)
	Approve(submissionID uuid.UUID, req models.ReviewRequest) error
	Reject(submissionID uuid.UUID, req models.ReviewRequest) error
	RequestRevision(submissionID uuid.UUID, req models.ReviewRequest) error
	ListBySupplier(supplierID string) ([]models.Submission, error)
}

type submissionService struct {
	evalRepo     repositories.EvaluationRepository
	subRepo      repositories.SubmissionRepository
	supplierRepo repositories.SupplierRepository
}

func NewSubmissionService(
	evalRepo repositories.EvaluationRepository,
	subRepo repositories.SubmissionRepository,
	supplierRepo repositories.SupplierRepository,
) SubmissionService {
	return &submissionService{
		evalRepo:     evalRepo,
		subRepo:      subRepo,
		supplierRepo: supplierRepo,
	}
}

// Submit freezes the supplier's evaluation into a new submission.
// Completeness is checked against the progress figures last stored on the
// aggregate, not a fresh recount against the live questionnaire.
func (s *submissionService) Submit(supplierID string) (*models.Submission, error) {
	eval, err := s.evalRepo.Get(supplierID)
	if err != nil {
		return nil, err
	}
	if eval == nil {
		return nil, fmt.Errorf("no evaluation exists for supplier %s", supplierID)
	}

	p := eval.Progress.Data()
	if p.CalidadAnswered != p.CalidadQuestions || p.AbastecimientoAnswered != p.AbastecimientoQuestions {
		return nil, &IncompleteEvaluationError{
			CalidadAnswered:         p.CalidadAnswered,
			CalidadQuestions:        p.CalidadQuestions,
			AbastecimientoAnswered:  p.AbastecimientoAnswered,
			AbastecimientoQuestions: p.AbastecimientoQuestions,
		}
	}

	snapshot, err := models.NewSnapshot(eval)
	if err != nil {
		return nil, err
	}

	sub := &models.Submission{
		ID:         uuid.New(),
		SupplierID: supplierID,
		Status:     models.StatusSubmitted,
		CanEdit:    false,
		Snapshot:   snapshot,
		CreatedAt:  time.Now(),
	}
	if err := s.subRepo.Create(sub); err != nil {
		return nil, err
	}

	if err := s.evalRepo.Patch(supplierID, map[string]interface{}{
		"status": models.StatusSubmitted,
	}); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.UpdateStatusFlags(supplierID, map[string]interface{}{
		"supplier_status": string(models.StatusSubmitted),
	}); err != nil {
		return nil, err
	}

	return sub, nil
}

// CanEdit resolves editability purely from the latest submission. The live
// aggregate is never consulted. RecordAnswer does not call this; handlers
// must, before accepting a write.
func (s *submissionService) CanEdit(supplierID string) (bool, error) {
	sub, err := s.subRepo.LatestBySupplier(supplierID)
	if err != nil {
		return false, err
	}
	if sub == nil {
		return true, nil
	}

	switch sub.Status {
	case models.StatusDraft:
		return true, nil
	case models.StatusSubmitted:
		return sub.CanEdit, nil
	case models.StatusRevisionRequested:
		return true, nil
	default:
		return false, nil
	}
}

// Approve marks the submission approved and flips the supplier profile's
// approval flags, with the optional expiry.
func (s *submissionService) Approve(submissionID uuid.UUID, req models.ReviewRequest) error {
	now := time.Now()

	fields := map[string]interface{}{
		"status":          models.StatusApproved,
		"can_edit":        false,
		"reviewed_by":     req.AuditorID,
		"review_comments": req.Comments,
		"reviewed_at":     now,
	}
	if req.ExpiresAt != nil {
		fields["expires_at"] = *req.ExpiresAt
	}
	if req.OverrideScore != nil {
		fields["final_score"] = *req.OverrideScore
	}
	if req.OverrideClassification != nil {
		fields["final_classification"] = *req.OverrideClassification
	}
	if err := s.subRepo.Patch(submissionID, fields); err != nil {
		return err
	}

	if err := s.evalRepo.Patch(req.SupplierID, map[string]interface{}{
		"status": models.StatusApproved,
	}); err != nil {
		return err
	}

	profile := map[string]interface{}{
		"supplier_status": string(models.StatusApproved),
		"approved":        true,
		"epi_approved_at": now,
	}
	if req.ExpiresAt != nil {
		profile["epi_expires_at"] = *req.ExpiresAt
	}
	return s.supplierRepo.UpdateStatusFlags(req.SupplierID, profile)
}

// Reject is symmetric to Approve.
func (s *submissionService) Reject(submissionID uuid.UUID, req models.ReviewRequest) error {
	now := time.Now()

	fields := map[string]interface{}{
		"status":          models.StatusRejected,
		"can_edit":        false,
		"reviewed_by":     req.AuditorID,
		"review_comments": req.Comments,
		"reviewed_at":     now,
	}
	if req.OverrideScore != nil {
		fields["final_score"] = *req.OverrideScore
	}
	if req.OverrideClassification != nil {
		fields["final_classification"] = *req.OverrideClassification
	}
	if err := s.subRepo.Patch(submissionID, fields); err != nil {
		return err
	}

	if err := s.evalRepo.Patch(req.SupplierID, map[string]interface{}{
		"status": models.StatusRejected,
	}); err != nil {
		return err
	}

	return s.supplierRepo.UpdateStatusFlags(req.SupplierID, map[string]interface{}{
		"supplier_status": string(models.StatusRejected),
		"approved":        false,
	})
}

// RequestRevision is the only transition with a back-edge: it re-opens
// editing on the submission and moves the aggregate back to in_progress.
func (s *submissionService) RequestRevision(submissionID uuid.UUID, req models.ReviewRequest) error {
	if err := s.subRepo.Patch(submissionID, map[string]interface{}{
		"status":          models.StatusRevisionRequested,
		"can_edit":        true,
		"reviewed_by":     req.AuditorID,
		"review_comments": req.Comments,
		"reviewed_at":     time.Now(),
	}); err != nil {
		return err
	}

	if err := s.evalRepo.Patch(req.SupplierID, map[string]interface{}{
		"status": models.StatusInProgress,
	}); err != nil {
		return err
	}

	return s.supplierRepo.UpdateStatusFlags(req.SupplierID, map[string]interface{}{
		"supplier_status": string(models.StatusRevisionRequested),
	})
}

func (s *submissionService) ListBySupplier(supplierID string) ([]models.Submission, error) {
	return s.subRepo.ListBySupplier(supplierID)
}
