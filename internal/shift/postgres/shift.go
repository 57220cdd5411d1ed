package postgres

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/hasanuzzaman/attendance-core/internal"
	shiftDatamodel "github.com/hasanuzzaman/attendance-core/internal/core/datamodel/shift"
	"github.com/hasanuzzaman/attendance-core/internal/shift"
)

// ShiftRepository implements shift.Repository using GORM.
type ShiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) shift.Repository {
	return &ShiftRepository{db: db}
}

func (r *ShiftRepository) FindByID(id uuid.UUID) (*shift.Shift, error) {
	var row shiftDatamodel.Shift
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrShiftNotFound
		}
		return nil, err
	}
	return shift.FromDataModel(&row), nil
}
