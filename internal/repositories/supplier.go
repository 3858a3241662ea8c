package repositories

import (
	"fmt"

	"gorm.io/gorm"
)

// SupplierRepository is the write-only collaborator for the supplier
// profile. The suppliers table is owned by the supplier directory; this
// core only flips status flags on it (supplier_status, approved,
// epi_approved_at, epi_expires_at) on submit/approve/reject.
type SupplierRepository interface {
	UpdateStatusFlags(supplierID string, fields map[string]interface{}) error
}

type supplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) UpdateStatusFlags(supplierID string, fields map[string]interface{}) error {
	result := r.db.Table("suppliers").
		Where("id = ?", supplierID).
		Updates(fields)

	if result.Error != nil {
		return fmt.Errorf("failed to update supplier flags: %w", result.Error)
	}
	// A missing profile row is not this core's problem; the flags are
	// advisory for the directory service.
	return nil
}
