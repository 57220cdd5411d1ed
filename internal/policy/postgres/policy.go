package postgres

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	policyDatamodel "github.com/hasanuzzaman/attendance-core/internal/core/datamodel/policy"
	"github.com/hasanuzzaman/attendance-core/internal/policy"
)

// PolicyRepository implements policy.Repository using GORM.
type PolicyRepository struct {
	db *gorm.DB
}

func NewPolicyRepository(db *gorm.DB) policy.Repository {
	return &PolicyRepository{db: db}
}

func (r *PolicyRepository) FindActiveForShift(shiftID uuid.UUID) (*policy.AttendancePolicy, error) {
	var row policyDatamodel.AttendancePolicy
	err := r.db.Where("shift_id = ? AND is_active = true", shiftID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return policy.FromDataModel(&row), nil
}

func (r *PolicyRepository) FindActiveDefault() (*policy.AttendancePolicy, error) {
	var row policyDatamodel.AttendancePolicy
	err := r.db.Where("is_default = true AND is_active = true").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return policy.FromDataModel(&row), nil
}
