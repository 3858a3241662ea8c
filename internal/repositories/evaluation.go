package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"grupoandino/supplier-evaluator/internal/models"
)

// EvaluationRepository is the evaluation store: one mutable document per
// supplier. Put writes the whole document back (last write wins); there is
// no version token. Get returns (nil, nil) when no evaluation exists yet.
type EvaluationRepository interface {
	Get(supplierID string) (*models.Evaluation, error)
	Put(eval *models.Evaluation) error
	Patch(supplierID string, fields map[string]interface{}) error
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

// withUpdatedAt returns a copy of fields with updated_at stamped, leaving
// the caller's map untouched.
func withUpdatedAt(fields map[string]interface{}) map[string]interface{} {
	updates := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["updated_at"] = time.Now()
	return updates
}

func (r *evaluationRepository) Get(supplierID string) (*models.Evaluation, error) {
	var eval models.Evaluation
	if err := r.db.Where("supplier_id = ?", supplierID).First(&eval).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load evaluation: %w", err)
	}
	return &eval, nil
}

func (r *evaluationRepository) Put(eval *models.Evaluation) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "supplier_id"}},
		UpdateAll: true,
	}).Create(eval).Error
	if err != nil {
		return fmt.Errorf("failed to store evaluation: %w", err)
	}
	return nil
}

func (r *evaluationRepository) Patch(supplierID string, fields map[string]interface{}) error {
	result := r.db.Model(&models.Evaluation{}).
		Where("supplier_id = ?", supplierID).
		Updates(withUpdatedAt(fields))

	if result.Error != nil {
		return fmt.Errorf("failed to patch evaluation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("evaluation not found")
	}
	return nil
}
