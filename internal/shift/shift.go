// Package shift holds the Shift entity: the named start/end window a
// policy anchors its admission windows and grace periods to.
package shift

import (
	"github.com/google/uuid"

	"github.com/hasanuzzaman/attendance-core/internal/core/clock"
	shiftDatamodel "github.com/hasanuzzaman/attendance-core/internal/core/datamodel/shift"
)

// Shift is a named daily work window, possibly spanning midnight.
type Shift struct {
	ID                 uuid.UUID
	Name               string
	StartTime          clock.TimeOfDay
	EndTime            clock.TimeOfDay
	IsOvernight        bool
	Timezone           string
	GracePeriodMinutes int
}

// New builds a Shift, deriving IsOvernight from the start/end pair per the
// data-model invariant: is_overnight iff end_time <= start_time.
func New(id uuid.UUID, name string, start, end clock.TimeOfDay, timezone string, gracePeriodMinutes int) Shift {
	return Shift{
		ID:                 id,
		Name:               name,
		StartTime:          start,
		EndTime:            end,
		IsOvernight:        end <= start,
		Timezone:           timezone,
		GracePeriodMinutes: gracePeriodMinutes,
	}
}

// Repository resolves shifts by id.
type Repository interface {
	FindByID(id uuid.UUID) (*Shift, error)
}

// ToDataModel converts a Shift to its GORM row representation.
func ToDataModel(s *Shift) *shiftDatamodel.Shift {
	return &shiftDatamodel.Shift{
		ID:                 s.ID,
		Name:               s.Name,
		StartTimeSeconds:   int(s.StartTime),
		EndTimeSeconds:     int(s.EndTime),
		IsOvernight:        s.IsOvernight,
		Timezone:           s.Timezone,
		GracePeriodMinutes: s.GracePeriodMinutes,
	}
}

// FromDataModel converts a GORM row back to a Shift.
func FromDataModel(s *shiftDatamodel.Shift) *Shift {
	return &Shift{
		ID:                 s.ID,
		Name:               s.Name,
		StartTime:          clock.TimeOfDay(s.StartTimeSeconds),
		EndTime:            clock.TimeOfDay(s.EndTimeSeconds),
		IsOvernight:        s.IsOvernight,
		Timezone:           s.Timezone,
		GracePeriodMinutes: s.GracePeriodMinutes,
	}
}
