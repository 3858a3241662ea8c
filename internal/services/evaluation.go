package services

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"grupoandino/supplier-evaluator/internal/models"
	"grupoandino/supplier-evaluator/internal/repositories"
	"grupoandino/supplier-evaluator/internal/scoring"
)

// EvaluationService is the response ledger over the evaluation store. It
// does not gate writes on the submission lock: callers must consult
// SubmissionService.CanEdit before accepting an answer.
type EvaluationService interface {
	RecordAnswer(supplierID string, req models.AnswerRequest) (*models.Evaluation, error)
	RecordObservation(supplierID, questionID, text string) error
	AttachEvidence(supplierID, questionID, url string) error
	LoadEvaluation(supplierID string) (*models.EvaluationView, error)
}

type evaluationService struct {
	evalRepo repositories.EvaluationRepository
	subRepo  repositories.SubmissionRepository
	config   ConfigurationService
}

func NewEvaluationService(
	evalRepo repositories.EvaluationRepository,
	subRepo repositories.SubmissionRepository,
	config ConfigurationService,
) EvaluationService {
	return &evaluationService{
		evalRepo: evalRepo,
		subRepo:  subRepo,
		config:   config,
	}
}

// RecordAnswer creates or replaces the response for a question, recomputes
// every score and the progress, and writes the whole aggregate back. The
// status is set to in_progress unconditionally on any write.
func (s *evaluationService) RecordAnswer(supplierID string, req models.AnswerRequest) (*models.Evaluation, error) {
	q := s.config.Get()

	category := models.Category(req.Category)
	section, err := findSection(q.Sections(category), req.SectionID)
	if err != nil {
		return nil, err
	}
	if _, err := findQuestion(section, req.QuestionID); err != nil {
		return nil, err
	}

	now := time.Now()

	eval, err := s.evalRepo.Get(supplierID)
	if err != nil {
		return nil, err
	}
	if eval == nil {
		eval = &models.Evaluation{
			SupplierID: supplierID,
			Status:     models.StatusDraft,
			CreatedAt:  now,
		}
	}

	pointValue := scoring.QuestionPointValue(*section)
	answer := models.Answer(req.Answer)

	response := models.Response{
		QuestionID:     req.QuestionID,
		SectionID:      req.SectionID,
		Category:       category,
		Answer:         answer,
		PointsPossible: pointValue,
		Timestamp:      now,
	}
	if answer == models.AnswerCumple {
		response.PointsEarned = pointValue
	}

	responses := eval.Responses.Data()
	if i := models.FindResponse(responses, req.QuestionID); i >= 0 {
		// Note and evidence survive a re-answer; they are patched by
		// identity and the replacement is otherwise wholesale.
		response.Note = responses[i].Note
		response.EvidenceURL = responses[i].EvidenceURL
		responses[i] = response
	} else {
		responses = append(responses, response)
	}

	s.rescore(eval, q, responses)
	eval.Status = models.StatusInProgress
	eval.UpdatedAt = now

	if err := s.evalRepo.Put(eval); err != nil {
		return nil, err
	}
	return eval, nil
}

// RecordObservation patches the note on an existing response. A question
// with no response yet is a silent no-op: a bare observation never creates
// a response.
func (s *evaluationService) RecordObservation(supplierID, questionID, text string) error {
	return s.patchResponse(supplierID, questionID, func(r *models.Response) {
		r.Note = text
	})
}

// AttachEvidence patches the evidence URL with the same semantics as
// RecordObservation.
func (s *evaluationService) AttachEvidence(supplierID, questionID, url string) error {
	return s.patchResponse(supplierID, questionID, func(r *models.Response) {
		r.EvidenceURL = url
	})
}

func (s *evaluationService) patchResponse(supplierID, questionID string, apply func(*models.Response)) error {
	eval, err := s.evalRepo.Get(supplierID)
	if err != nil {
		return err
	}
	if eval == nil {
		return nil
	}

	responses := eval.Responses.Data()
	i := models.FindResponse(responses, questionID)
	if i < 0 {
		return nil
	}

	apply(&responses[i])
	eval.Responses = datatypes.NewJSONType(responses)
	eval.UpdatedAt = time.Now()
	return s.evalRepo.Put(eval)
}

// LoadEvaluation prefers the latest submission snapshot over the live
// aggregate: once a supplier has submitted, reads are served from the
// frozen copy even when the draft document is newer. Returns (nil, nil)
// when the supplier has neither.
func (s *evaluationService) LoadEvaluation(supplierID string) (*models.EvaluationView, error) {
	sub, err := s.subRepo.LatestBySupplier(supplierID)
	if err != nil {
		return nil, err
	}
	if sub != nil {
		snap, err := models.ParseSnapshot(sub.Snapshot)
		if err != nil {
			return nil, err
		}
		return &models.EvaluationView{
			SupplierID:          supplierID,
			Responses:           snap.Responses,
			CalidadScore:        snap.CalidadScore,
			AbastecimientoScore: snap.AbastecimientoScore,
			GlobalScore:         snap.GlobalScore,
			Classification:      snap.Classification,
			Progress:            snap.Progress,
			Status:              sub.Status,
			Frozen:              true,
		}, nil
	}

	eval, err := s.evalRepo.Get(supplierID)
	if err != nil {
		return nil, err
	}
	if eval == nil {
		return nil, nil
	}
	return &models.EvaluationView{
		SupplierID:          supplierID,
		Responses:           eval.Responses.Data(),
		CalidadScore:        eval.CalidadScore,
		AbastecimientoScore: eval.AbastecimientoScore,
		GlobalScore:         eval.GlobalScore,
		Classification:      eval.Classification,
		Progress:            eval.Progress.Data(),
		Status:              eval.Status,
	}, nil
}

func (s *evaluationService) rescore(eval *models.Evaluation, q *models.Questionnaire, responses []models.Response) {
	eval.Responses = datatypes.NewJSONType(responses)
	eval.CalidadScore = scoring.CategoryScore(q.Calidad.Sections, responses)
	eval.AbastecimientoScore = scoring.CategoryScore(q.Abastecimiento.Sections, responses)
	eval.GlobalScore = scoring.GlobalScore(eval.CalidadScore, eval.AbastecimientoScore)
	eval.Classification = scoring.Classify(eval.GlobalScore)
	eval.Progress = datatypes.NewJSONType(scoring.ComputeProgress(q, responses))
}

func findSection(sections []models.Section, sectionID string) (*models.Section, error) {
	for i := range sections {
		if sections[i].ID == sectionID {
			return &sections[i], nil
		}
	}
	return nil, fmt.Errorf("section %s not found in questionnaire", sectionID)
}

func findQuestion(section *models.Section, questionID string) (*models.Question, error) {
	for i := range section.Questions {
		if section.Questions[i].ID == questionID {
			return &section.Questions[i], nil
		}
	}
	return nil, fmt.Errorf("question %s not found in section %s", questionID, section.ID)
}
