package postgres

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hasanuzzaman/attendance-core/internal/attendance"
	"github.com/hasanuzzaman/attendance-core/internal/core/clock"
	attendanceDatamodel "github.com/hasanuzzaman/attendance-core/internal/core/datamodel/attendance"
	"github.com/hasanuzzaman/attendance-core/internal/policy"
)

// LedgerRepository implements attendance.Ledger using GORM.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) attendance.Ledger {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) LastFor(employeeID uuid.UUID) (*attendance.Record, error) {
	var row attendanceDatamodel.Record
	err := r.db.Where("employee_id = ?", employeeID).Order("event_time DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return attendance.FromDataModel(&row), nil
}

func (r *LedgerRepository) LastInFor(employeeID uuid.UUID, businessDate clock.Date) (*attendance.Record, error) {
	dayStart := time.Date(businessDate.Year, businessDate.Month, businessDate.Day, 0, 0, 0, 0, time.UTC)
	var row attendanceDatamodel.Record
	err := r.db.Where("employee_id = ? AND attendance_date = ? AND event_type = ?", employeeID, dayStart, string(policy.EventTypeIn)).
		Order("event_time DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return attendance.FromDataModel(&row), nil
}

func (r *LedgerRepository) Append(record *attendance.Record) error {
	row := attendance.ToDataModel(record)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	record.ID = row.ID
	return nil
}
