package postgres

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/hasanuzzaman/attendance-core/internal"
	deviceDatamodel "github.com/hasanuzzaman/attendance-core/internal/core/datamodel/device"
	"github.com/hasanuzzaman/attendance-core/internal/device"
)

// DeviceRepository implements device.Repository using GORM.
type DeviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) device.Repository {
	return &DeviceRepository{db: db}
}

func (r *DeviceRepository) FindByID(id uuid.UUID) (*device.Device, error) {
	var row deviceDatamodel.Device
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDeviceNotFound
		}
		return nil, err
	}
	return device.FromDataModel(&row), nil
}
