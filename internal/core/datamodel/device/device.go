package device

import (
	"time"

	"github.com/google/uuid"
)

type Device struct {
	ID         uuid.UUID  `gorm:"column:id;primaryKey;type:uuid"`
	DeviceCode string     `gorm:"column:device_code;uniqueIndex;not null"`
	Status     string     `gorm:"column:status;not null;default:ACTIVE"`
	LastSeen   *time.Time `gorm:"column:last_seen"`
}

func (Device) TableName() string { return "devices" }
