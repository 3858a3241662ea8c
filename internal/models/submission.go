package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditStatus string

const (
	AuditPending AuditStatus = "pending"
	AuditValid   AuditStatus = "valid"
	AuditInvalid AuditStatus = "invalid"
)

func (s AuditStatus) IsValid() bool {
	return s == AuditPending || s == AuditValid || s == AuditInvalid
}

// AuditValidation is the auditor's judgment on one answered question,
// independent of the supplier's original answer.
type AuditValidation struct {
	Status      AuditStatus `json:"status"`
	Finding     string      `json:"finding,omitempty"`
	EvidenceURL string      `json:"evidenceUrl,omitempty"`
}

// Submission is an immutable point-in-time copy of an evaluation taken at
// submit time. Rows are append-only per supplier; the latest by creation
// time is authoritative. Audits mutate fields on the same row, they never
// re-snapshot.
type Submission struct {
	ID                  uuid.UUID                                      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SupplierID          string                                         `gorm:"type:text;not null;index" json:"supplierId"`
	Status              EvaluationStatus                               `gorm:"not null;default:'submitted'" json:"status"`
	CanEdit             bool                                           `gorm:"not null;default:false" json:"canEdit"`
	ExpiresAt           *time.Time                                     `gorm:"type:timestamp" json:"expiresAt,omitempty"`
	Snapshot            datatypes.JSON                                 `gorm:"type:jsonb;not null" json:"snapshot"`
	AuditValidations    datatypes.JSONType[map[string]AuditValidation] `gorm:"type:jsonb" json:"auditValidations"`
	ReviewedBy          *string                                        `gorm:"type:text" json:"reviewedBy,omitempty"`
	ReviewComments      *string                                        `gorm:"type:text" json:"reviewComments,omitempty"`
	ReviewedAt          *time.Time                                     `gorm:"type:timestamp" json:"reviewedAt,omitempty"`
	AuditedBy           *string                                        `gorm:"type:text" json:"auditedBy,omitempty"`
	AuditedAt           *time.Time                                     `gorm:"type:timestamp" json:"auditedAt,omitempty"`
	FinalScore          *float64                                       `gorm:"type:numeric(5,2)" json:"finalScore,omitempty"`
	FinalClassification *Classification                                `gorm:"type:text" json:"finalClassification,omitempty"`
	CreatedAt           time.Time                                      `gorm:"type:timestamp;default:now()" json:"createdAt"`
}

func (Submission) TableName() string {
	return "submissions"
}

// SnapshotDoc is the frozen copy of the evaluation carried inside a
// submission. NewSnapshot copies the live aggregate verbatim.
type SnapshotDoc struct {
	Responses           []Response     `json:"responses"`
	CalidadScore        float64        `json:"calidadScore"`
	AbastecimientoScore float64        `json:"abastecimientoScore"`
	GlobalScore         float64        `json:"globalScore"`
	Classification      Classification `json:"classification"`
	Progress            Progress       `json:"progress"`
}

func NewSnapshot(eval *Evaluation) (datatypes.JSON, error) {
	doc := SnapshotDoc{
		Responses:           eval.Responses.Data(),
		CalidadScore:        eval.CalidadScore,
		AbastecimientoScore: eval.AbastecimientoScore,
		GlobalScore:         eval.GlobalScore,
		Classification:      eval.Classification,
		Progress:            eval.Progress.Data(),
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// ParseSnapshot decodes a stored snapshot into the canonical shape,
// reconciling the field-name variants older documents were written with
// (calculatedScore for globalScore, qualityScore for calidadScore,
// supplyScore for abastecimientoScore, respuestas for responses).
func ParseSnapshot(raw datatypes.JSON) (*SnapshotDoc, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	doc := &SnapshotDoc{}
	doc.GlobalScore = firstNumber(fields, "globalScore", "calculatedScore")
	doc.CalidadScore = firstNumber(fields, "calidadScore", "qualityScore")
	doc.AbastecimientoScore = firstNumber(fields, "abastecimientoScore", "supplyScore")

	if v, ok := firstRaw(fields, "classification", "clasificacion"); ok {
		var c Classification
		if err := json.Unmarshal(v, &c); err == nil {
			doc.Classification = c
		}
	}
	if v, ok := firstRaw(fields, "responses", "respuestas"); ok {
		if err := json.Unmarshal(v, &doc.Responses); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot responses: %w", err)
		}
	}
	if v, ok := fields["progress"]; ok {
		if err := json.Unmarshal(v, &doc.Progress); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot progress: %w", err)
		}
	}
	return doc, nil
}

func firstRaw(fields map[string]json.RawMessage, keys ...string) (json.RawMessage, bool) {
	for _, k := range keys {
		if v, ok := fields[k]; ok && string(v) != "null" {
			return v, true
		}
	}
	return nil, false
}

func firstNumber(fields map[string]json.RawMessage, keys ...string) float64 {
	if v, ok := firstRaw(fields, keys...); ok {
		var f float64
		if err := json.Unmarshal(v, &f); err == nil {
			return f
		}
	}
	return 0
}
