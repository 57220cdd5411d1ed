// Package attendance holds the AttendanceRecord entity and the Ledger port
// the ingestion pipeline appends to once a recognition event clears policy
// evaluation.
package attendance

import (
	"time"

	"github.com/google/uuid"

	"github.com/hasanuzzaman/attendance-core/internal/core/clock"
	attendanceDatamodel "github.com/hasanuzzaman/attendance-core/internal/core/datamodel/attendance"
	"github.com/hasanuzzaman/attendance-core/internal/policy"
)

const (
	StatusValid    = "VALID"
	StatusInvalid  = "INVALID"
	StatusAdjusted = "ADJUSTED"
	StatusDisputed = "DISPUTED"
)

// Record is one admitted IN/OUT punch, derived from an approved policy
// Evaluation and linked back to the RecognitionEvent that triggered it.
type Record struct {
	ID                 uuid.UUID
	EmployeeID         uuid.UUID
	DeviceID           uuid.UUID
	RecognitionEventID *uuid.UUID
	ShiftID            *uuid.UUID

	AttendanceDate clock.Date
	EventTime      time.Time
	EventType      policy.EventType

	IsLate      bool
	IsEarlyOut  bool
	IsOvertime  bool
	DurationMin *int

	Notes  string
	Status string
}

// AsLastRecord projects a Record down to the minimal view the policy
// evaluator needs to determine the next expected event type and cooldown.
func (r *Record) AsLastRecord() policy.LastRecord {
	return policy.LastRecord{EventType: r.EventType, EventTime: r.EventTime}
}

// Ledger is the append-only per-employee sequence of attendance records.
type Ledger interface {
	LastFor(employeeID uuid.UUID) (*Record, error)
	LastInFor(employeeID uuid.UUID, businessDate clock.Date) (*Record, error)
	Append(record *Record) error
}

// ToDataModel converts a Record to its GORM row representation. The
// business date, which carries no zone of its own, is stored as a UTC
// civil midnight so date-only SQL comparisons stay index-friendly.
func ToDataModel(r *Record) *attendanceDatamodel.Record {
	return &attendanceDatamodel.Record{
		ID:                 r.ID,
		EmployeeID:         r.EmployeeID,
		DeviceID:           r.DeviceID,
		RecognitionEventID: r.RecognitionEventID,
		ShiftID:            r.ShiftID,
		AttendanceDate:     time.Date(r.AttendanceDate.Year, r.AttendanceDate.Month, r.AttendanceDate.Day, 0, 0, 0, 0, time.UTC),
		EventTime:          r.EventTime,
		EventType:          string(r.EventType),
		IsLate:             r.IsLate,
		IsEarlyOut:         r.IsEarlyOut,
		IsOvertime:         r.IsOvertime,
		DurationMin:        r.DurationMin,
		Notes:              r.Notes,
		Status:             r.Status,
	}
}

// FromDataModel converts a GORM row back to a Record.
func FromDataModel(row *attendanceDatamodel.Record) *Record {
	return &Record{
		ID:                 row.ID,
		EmployeeID:         row.EmployeeID,
		DeviceID:           row.DeviceID,
		RecognitionEventID: row.RecognitionEventID,
		ShiftID:            row.ShiftID,
		AttendanceDate:     clock.Date{Year: row.AttendanceDate.Year(), Month: row.AttendanceDate.Month(), Day: row.AttendanceDate.Day()},
		EventTime:          row.EventTime,
		EventType:          policy.EventType(row.EventType),
		IsLate:             row.IsLate,
		IsEarlyOut:         row.IsEarlyOut,
		IsOvertime:         row.IsOvertime,
		DurationMin:        row.DurationMin,
		Notes:              row.Notes,
		Status:             row.Status,
	}
}
