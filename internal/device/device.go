// Package device holds the Device entity — the edge camera that captured
// a recognition event.
package device

import (
	"time"

	"github.com/google/uuid"

	deviceDatamodel "github.com/hasanuzzaman/attendance-core/internal/core/datamodel/device"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Device is the edge camera/terminal a RecognitionEvent was captured on.
type Device struct {
	ID         uuid.UUID
	DeviceCode string
	Status     string
	LastSeen   *time.Time
}

// Repository resolves devices by id. A missing device is tolerated by the
// ingestion pipeline — it does not abort ingestion, it only means the
// persisted event carries a null device reference.
type Repository interface {
	FindByID(id uuid.UUID) (*Device, error)
}

// ToDataModel converts a Device to its GORM row representation.
func ToDataModel(d *Device) *deviceDatamodel.Device {
	return &deviceDatamodel.Device{
		ID:         d.ID,
		DeviceCode: d.DeviceCode,
		Status:     d.Status,
		LastSeen:   d.LastSeen,
	}
}

// FromDataModel converts a GORM row back to a Device.
func FromDataModel(d *deviceDatamodel.Device) *Device {
	return &Device{
		ID:         d.ID,
		DeviceCode: d.DeviceCode,
		Status:     d.Status,
		LastSeen:   d.LastSeen,
	}
}
