package models

import "time"

type AnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	SectionID  string `json:"section_id" validate:"required"`
	Category   string `json:"category" validate:"required,oneof=calidad abastecimiento"`
	Answer     string `json:"answer" validate:"required,oneof=cumple no_cumple"`
}

type NoteRequest struct {
	Text string `json:"text" validate:"required"`
}

type EvidenceRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type ReviewRequest struct {
	SupplierID             string     `json:"supplier_id" validate:"required"`
	AuditorID              string     `json:"auditor_id" validate:"required"`
	Comments               string     `json:"comments"`
	ExpiresAt              *time.Time `json:"expires_at,omitempty"`
	OverrideScore          *float64   `json:"override_score,omitempty"`
	OverrideClassification *string    `json:"override_classification,omitempty"`
}

type AuditValidationInput struct {
	Status      string `json:"status" validate:"required,oneof=pending valid invalid"`
	Finding     string `json:"finding"`
	EvidenceURL string `json:"evidence_url" validate:"omitempty,url"`
}

type SaveAuditRequest struct {
	AuditorID   string                          `json:"auditor_id" validate:"required"`
	Validations map[string]AuditValidationInput `json:"validations" validate:"required,dive"`
	ExpiresAt   *time.Time                      `json:"expires_at,omitempty"`
}

// AuditView is the auditor's working state for one submission: the current
// validation map plus the running uniform-weight preview scores and their
// deltas against the supplier's original self-assessment.
type AuditView struct {
	SubmissionID           string                     `json:"submissionId"`
	SupplierID             string                     `json:"supplierId"`
	Status                 EvaluationStatus           `json:"status"`
	Validations            map[string]AuditValidation `json:"validations"`
	CalidadOriginal        float64                    `json:"calidadOriginal"`
	AbastecimientoOriginal float64                    `json:"abastecimientoOriginal"`
	CalidadPreview         float64                    `json:"calidadPreview"`
	AbastecimientoPreview  float64                    `json:"abastecimientoPreview"`
	CalidadDelta           int                        `json:"calidadDelta"`
	AbastecimientoDelta    int                        `json:"abastecimientoDelta"`
	CanRecalibrate         bool                       `json:"canRecalibrate"`
	ExpiresAt              *time.Time                 `json:"expiresAt,omitempty"`
}

// AuditResult is the persisted outcome of a finalized audit.
type AuditResult struct {
	SubmissionID        string           `json:"submissionId"`
	FinalScore          float64          `json:"finalScore"`
	FinalClassification Classification   `json:"finalClassification"`
	Status              EvaluationStatus `json:"status"`
	CalidadScore        float64          `json:"calidadScore"`
	AbastecimientoScore float64          `json:"abastecimientoScore"`
}
