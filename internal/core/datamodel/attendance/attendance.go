package attendance

import (
	"time"

	"github.com/google/uuid"
)

type Record struct {
	ID                 uuid.UUID  `gorm:"column:id;primaryKey;type:uuid"`
	EmployeeID         uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index:idx_attendance_records_employee,priority:1"`
	DeviceID           uuid.UUID  `gorm:"column:device_id;type:uuid;not null"`
	RecognitionEventID *uuid.UUID `gorm:"column:recognition_event_id;type:uuid;uniqueIndex:idx_attendance_records_event"`
	ShiftID            *uuid.UUID `gorm:"column:shift_id;type:uuid"`

	AttendanceDate time.Time `gorm:"column:attendance_date;type:date;not null;index:idx_attendance_records_employee,priority:2"`
	EventTime      time.Time `gorm:"column:event_time;not null"`
	EventType      string    `gorm:"column:event_type;not null"`

	IsLate      bool `gorm:"column:is_late;not null;default:false"`
	IsEarlyOut  bool `gorm:"column:is_early_leave;not null;default:false"`
	IsOvertime  bool `gorm:"column:is_overtime;not null;default:false"`
	DurationMin *int `gorm:"column:duration_minutes"`

	Notes  string `gorm:"column:notes"`
	Status string `gorm:"column:status;not null;default:VALID"`
}

func (Record) TableName() string { return "attendance_records" }
