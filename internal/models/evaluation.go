package models

import (
	"time"

	"gorm.io/datatypes"
)

type EvaluationStatus string

const (
	StatusDraft             EvaluationStatus = "draft"
	StatusInProgress        EvaluationStatus = "in_progress"
	StatusSubmitted         EvaluationStatus = "submitted"
	StatusApproved          EvaluationStatus = "approved"
	StatusRejected          EvaluationStatus = "rejected"
	StatusRevisionRequested EvaluationStatus = "revision_requested"
)

func (s EvaluationStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusInProgress, StatusSubmitted,
		StatusApproved, StatusRejected, StatusRevisionRequested:
		return true
	}
	return false
}

// Response is one supplier answer to one question. Immutable once created
// except for Note and EvidenceURL, which are patched in place by QuestionID.
type Response struct {
	QuestionID     string    `json:"questionId"`
	SectionID      string    `json:"sectionId"`
	Category       Category  `json:"category"`
	Answer         Answer    `json:"answer"`
	PointsEarned   float64   `json:"pointsEarned"`
	PointsPossible float64   `json:"pointsPossible"`
	Timestamp      time.Time `json:"timestamp"`
	EvidenceURL    string    `json:"evidenceUrl,omitempty"`
	Note           string    `json:"note,omitempty"`
}

// Progress is the answered/total count per category as last computed.
// Submit validates completeness against these stored figures, not against a
// fresh recount of the live questionnaire.
type Progress struct {
	CalidadAnswered         int     `json:"calidadAnswered"`
	CalidadQuestions        int     `json:"calidadQuestions"`
	AbastecimientoAnswered  int     `json:"abastecimientoAnswered"`
	AbastecimientoQuestions int     `json:"abastecimientoQuestions"`
	OverallPercent          float64 `json:"overallPercent"`
}

// Evaluation is the live, mutable record of one supplier's answers and
// scores, keyed by supplier id. Every answer write replaces the whole
// document (read-modify-write, last write wins).
type Evaluation struct {
	SupplierID          string                         `gorm:"column:supplier_id;type:text;primaryKey" json:"supplierId"`
	Responses           datatypes.JSONType[[]Response] `gorm:"type:jsonb" json:"responses"`
	CalidadScore        float64                        `gorm:"type:numeric(5,2)" json:"calidadScore"`
	AbastecimientoScore float64                        `gorm:"type:numeric(5,2)" json:"abastecimientoScore"`
	GlobalScore         float64                        `gorm:"type:numeric(5,2)" json:"globalScore"`
	Classification      Classification                 `gorm:"type:text" json:"classification"`
	Progress            datatypes.JSONType[Progress]   `gorm:"type:jsonb" json:"progress"`
	Status              EvaluationStatus               `gorm:"not null;default:'draft'" json:"status"`
	CreatedAt           time.Time                      `gorm:"type:timestamp;default:now()" json:"createdAt"`
	UpdatedAt           time.Time                      `gorm:"type:timestamp;default:now()" json:"updatedAt"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}

// FindResponse returns the index of the response for a question, or -1.
func FindResponse(responses []Response, questionID string) int {
	for i := range responses {
		if responses[i].QuestionID == questionID {
			return i
		}
	}
	return -1
}

// EvaluationView is the canonical read shape. Once a submission exists,
// reads are served from its frozen snapshot rather than the live draft;
// Frozen reports which source produced the view.
type EvaluationView struct {
	SupplierID          string           `json:"supplierId"`
	Responses           []Response       `json:"responses"`
	CalidadScore        float64          `json:"calidadScore"`
	AbastecimientoScore float64          `json:"abastecimientoScore"`
	GlobalScore         float64          `json:"globalScore"`
	Classification      Classification   `json:"classification"`
	Progress            Progress         `json:"progress"`
	Status              EvaluationStatus `json:"status"`
	Frozen              bool             `json:"frozen"`
}
