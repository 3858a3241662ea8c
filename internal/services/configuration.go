package services

import (
	"log"
	"math"

	"grupoandino/supplier-evaluator/internal/models"
	"grupoandino/supplier-evaluator/internal/repositories"
)

// ConfigurationService serves the weighted questionnaire. Reads never fail:
// a missing or unreadable stored questionnaire falls back to the built-in
// default.
type ConfigurationService interface {
	Get() *models.Questionnaire
	Save(q *models.Questionnaire) error
}

type configurationService struct {
	repo repositories.QuestionnaireRepository
}

func NewConfigurationService(repo repositories.QuestionnaireRepository) ConfigurationService {
	return &configurationService{repo: repo}
}

// Get implements ConfigurationService. Store read failures are logged and
// masked by the default; the first-time write of that default is best
// effort and its failure is tolerated too.
func (s *configurationService) Get() *models.Questionnaire {
	q, err := s.repo.Get()
	if err == nil {
		return q
	}

	log.Printf("⚠️  Questionnaire store read failed, serving built-in default: %v\n", err)

	def := models.DefaultQuestionnaire()
	if putErr := s.repo.Put(def); putErr != nil {
		log.Printf("⚠️  Could not persist default questionnaire: %v\n", putErr)
	}
	return def
}

// Save implements ConfigurationService. Per category, section weights must
// sum to 100; the check is save-time only and structurally nothing prevents
// a stored config from violating it.
func (s *configurationService) Save(q *models.Questionnaire) error {
	if err := validateWeights(models.CategoryCalidad, q.Calidad.Sections); err != nil {
		return err
	}
	if err := validateWeights(models.CategoryAbastecimiento, q.Abastecimiento.Sections); err != nil {
		return err
	}
	return s.repo.Put(q)
}

func validateWeights(category models.Category, sections []models.Section) error {
	sum := 0.0
	for _, s := range sections {
		sum += s.Weight
	}
	if math.Abs(sum-100) > 0.01 {
		return &ConfigValidationError{Category: category, Sum: sum}
	}
	return nil
}
