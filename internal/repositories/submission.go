package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"grupoandino/supplier-evaluator/internal/models"
)

// SubmissionRepository is the submission store. Rows are append-only per
// supplier: Create never overwrites, and callers treat the most recently
// created row as authoritative. Audit and review writes go through Patch on
// the same row.
// ErrSubmissionNotFound is returned by FindByID when no row matches the id.
var ErrSubmissionNotFound = errors.New("submission not found")

type SubmissionRepository interface {
	Create(sub *models.Submission) error
	FindByID(id uuid.UUID) (*models.Submission, error)
	ListBySupplier(supplierID string) ([]models.Submission, error)
	LatestBySupplier(supplierID string) (*models.Submission, error)
	Patch(id uuid.UUID, fields map[string]interface{}) error
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(sub *models.Submission) error {
	if err := r.db.Create(sub).Error; err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

func (r *submissionRepository) FindByID(id uuid.UUID) (*models.Submission, error) {
	var sub models.Submission
	if err := r.db.Where("id = ?", id).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	return &sub, nil
}

func (r *submissionRepository) ListBySupplier(supplierID string) ([]models.Submission, error) {
	var subs []models.Submission
	err := r.db.
		Where("supplier_id = ?", supplierID).
		Order("created_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return subs, nil
}

// LatestBySupplier returns (nil, nil) when the supplier has never submitted.
func (r *submissionRepository) LatestBySupplier(supplierID string) (*models.Submission, error) {
	var sub models.Submission
	err := r.db.
		Where("supplier_id = ?", supplierID).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest submission: %w", err)
	}
	return &sub, nil
}

func (r *submissionRepository) Patch(id uuid.UUID, fields map[string]interface{}) error {
	result := r.db.Model(&models.Submission{}).
		Where("id = ?", id).
		Updates(fields)

	if result.Error != nil {
		return fmt.Errorf("failed to patch submission: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}
