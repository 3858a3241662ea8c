package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"grupoandino/supplier-evaluator/internal/models"
	"grupoandino/supplier-evaluator/internal/repositories"
)

type fakeQuestionnaireRepo struct {
	stored *models.Questionnaire
	getErr error
	putErr error
	puts   int
}

func (f *fakeQuestionnaireRepo) Get() (*models.Questionnaire, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.stored == nil {
		return nil, fmt.Errorf("failed to load questionnaire: not stored")
	}
	return f.stored, nil
}

func (f *fakeQuestionnaireRepo) Put(q *models.Questionnaire) error {
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	f.stored = q
	return nil
}

type fakeEvaluationRepo struct {
	evals map[string]*models.Evaluation
}

func newFakeEvaluationRepo() *fakeEvaluationRepo {
	return &fakeEvaluationRepo{evals: make(map[string]*models.Evaluation)}
}

func (f *fakeEvaluationRepo) Get(supplierID string) (*models.Evaluation, error) {
	eval, ok := f.evals[supplierID]
	if !ok {
		return nil, nil
	}
	cp := *eval
	return &cp, nil
}

func (f *fakeEvaluationRepo) Put(eval *models.Evaluation) error {
	cp := *eval
	f.evals[eval.SupplierID] = &cp
	return nil
}

func (f *fakeEvaluationRepo) Patch(supplierID string, fields map[string]interface{}) error {
	eval, ok := f.evals[supplierID]
	if !ok {
		return fmt.Errorf("evaluation not found")
	}
	if v, ok := fields["status"]; ok {
		eval.Status = v.(models.EvaluationStatus)
	}
	eval.UpdatedAt = time.Now()
	return nil
}

type fakeSubmissionRepo struct {
	subs []*models.Submission
}

func (f *fakeSubmissionRepo) Create(sub *models.Submission) error {
	cp := *sub
	f.subs = append(f.subs, &cp)
	return nil
}

func (f *fakeSubmissionRepo) FindByID(id uuid.UUID) (*models.Submission, error) {
	for _, s := range f.subs {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repositories.ErrSubmissionNotFound
}

func (f *fakeSubmissionRepo) ListBySupplier(supplierID string) ([]models.Submission, error) {
	var out []models.Submission
	for _, s := range f.subs {
		if s.SupplierID == supplierID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeSubmissionRepo) LatestBySupplier(supplierID string) (*models.Submission, error) {
	subs, err := f.ListBySupplier(supplierID)
	if err != nil || len(subs) == 0 {
		return nil, err
	}
	return &subs[0], nil
}

func (f *fakeSubmissionRepo) Patch(id uuid.UUID, fields map[string]interface{}) error {
	var target *models.Submission
	for _, s := range f.subs {
		if s.ID == id {
			target = s
			break
		}
	}
	if target == nil {
		return repositories.ErrSubmissionNotFound
	}

	for k, v := range fields {
		switch k {
		case "status":
			target.Status = v.(models.EvaluationStatus)
		case "can_edit":
			target.CanEdit = v.(bool)
		case "expires_at":
			tv := v.(time.Time)
			target.ExpiresAt = &tv
		case "reviewed_by":
			sv := v.(string)
			target.ReviewedBy = &sv
		case "review_comments":
			sv := v.(string)
			target.ReviewComments = &sv
		case "reviewed_at":
			tv := v.(time.Time)
			target.ReviewedAt = &tv
		case "final_score":
			fv := v.(float64)
			target.FinalScore = &fv
		case "final_classification":
			cv := models.Classification(v.(string))
			target.FinalClassification = &cv
		case "audit_validations":
			target.AuditValidations = v.(datatypes.JSONType[map[string]models.AuditValidation])
		case "audited_at":
			tv := v.(time.Time)
			target.AuditedAt = &tv
		case "audited_by":
			sv := v.(string)
			target.AuditedBy = &sv
		default:
			return fmt.Errorf("fake submission patch: unexpected field %s", k)
		}
	}
	return nil
}

type fakeSupplierRepo struct {
	flags map[string]map[string]interface{}
}

func newFakeSupplierRepo() *fakeSupplierRepo {
	return &fakeSupplierRepo{flags: make(map[string]map[string]interface{})}
}

func (f *fakeSupplierRepo) UpdateStatusFlags(supplierID string, fields map[string]interface{}) error {
	current, ok := f.flags[supplierID]
	if !ok {
		current = make(map[string]interface{})
		f.flags[supplierID] = current
	}
	for k, v := range fields {
		current[k] = v
	}
	return nil
}

// testQuestionnaire is small enough to reason about by hand: calidad has two
// sections of weight 50 with two questions each, abastecimiento one section
// of weight 100 with two questions.
func testQuestionnaire() *models.Questionnaire {
	return &models.Questionnaire{
		Calidad: models.CategoryQuestionnaire{
			TotalWeight: 100,
			Sections: []models.Section{
				{
					ID: "c1", Title: "Gestión", Weight: 50,
					Questions: []models.Question{
						{ID: "c1q1", Text: "c1q1", Weight: 10},
						{ID: "c1q2", Text: "c1q2", Weight: 10},
					},
				},
				{
					ID: "c2", Title: "Producto", Weight: 50,
					Questions: []models.Question{
						{ID: "c2q1", Text: "c2q1", Weight: 10},
						{ID: "c2q2", Text: "c2q2", Weight: 10},
					},
				},
			},
		},
		Abastecimiento: models.CategoryQuestionnaire{
			TotalWeight: 100,
			Sections: []models.Section{
				{
					ID: "a1", Title: "Suministro", Weight: 100,
					Questions: []models.Question{
						{ID: "a1q1", Text: "a1q1", Weight: 10},
						{ID: "a1q2", Text: "a1q2", Weight: 10},
					},
				},
			},
		},
	}
}

// newTestServices wires the full service graph over fakes with the test
// questionnaire pre-stored.
func newTestServices() (EvaluationService, SubmissionService, AuditService, *fakeEvaluationRepo, *fakeSubmissionRepo, *fakeSupplierRepo) {
	qRepo := &fakeQuestionnaireRepo{stored: testQuestionnaire()}
	evalRepo := newFakeEvaluationRepo()
	subRepo := &fakeSubmissionRepo{}
	supplierRepo := newFakeSupplierRepo()

	config := NewConfigurationService(qRepo)
	evalService := NewEvaluationService(evalRepo, subRepo, config)
	subService := NewSubmissionService(evalRepo, subRepo, supplierRepo)
	auditService := NewAuditService(subRepo, config, subService)

	return evalService, subService, auditService, evalRepo, subRepo, supplierRepo
}

func answer(questionID, sectionID string, category models.Category, a models.Answer) models.AnswerRequest {
	return models.AnswerRequest{
		QuestionID: questionID,
		SectionID:  sectionID,
		Category:   string(category),
		Answer:     string(a),
	}
}

// answerAll records a compliant answer for every question in the test
// questionnaire.
func answerAll(evalService EvaluationService, supplierID string) error {
	q := testQuestionnaire()
	for _, category := range []models.Category{models.CategoryCalidad, models.CategoryAbastecimiento} {
		for _, s := range q.Sections(category) {
			for _, question := range s.Questions {
				if _, err := evalService.RecordAnswer(supplierID, answer(question.ID, s.ID, category, models.AnswerCumple)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
