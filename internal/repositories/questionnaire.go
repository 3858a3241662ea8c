package repositories

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"grupoandino/supplier-evaluator/internal/models"
)

// QuestionnaireRepository is the configuration store. Get returns
// gorm.ErrRecordNotFound (wrapped) when no questionnaire has been stored;
// the default fallback lives in the configuration service, not here.
type QuestionnaireRepository interface {
	Get() (*models.Questionnaire, error)
	Put(q *models.Questionnaire) error
}

type questionnaireRepository struct {
	db *gorm.DB
}

func NewQuestionnaireRepository(db *gorm.DB) QuestionnaireRepository {
	return &questionnaireRepository{db: db}
}

// Get implements QuestionnaireRepository.
func (r *questionnaireRepository) Get() (*models.Questionnaire, error) {
	var cfg models.QuestionnaireConfig
	if err := r.db.Where("key = ?", models.QuestionnaireConfigKey).First(&cfg).Error; err != nil {
		return nil, fmt.Errorf("failed to load questionnaire: %w", err)
	}

	q := cfg.Payload.Data()
	return &q, nil
}

// Put implements QuestionnaireRepository.
func (r *questionnaireRepository) Put(q *models.Questionnaire) error {
	cfg := models.QuestionnaireConfig{
		Key:       models.QuestionnaireConfigKey,
		Payload:   datatypes.NewJSONType(*q),
		UpdatedAt: time.Now(),
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&cfg).Error
	if err != nil {
		return fmt.Errorf("failed to store questionnaire: %w", err)
	}

	return nil
}
