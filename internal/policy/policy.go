// Package policy holds the AttendancePolicy entity and the evaluator that
// turns a recognition event plus an employee's last attendance record into
// an approved or rejected Evaluation.
package policy

import (
	"github.com/google/uuid"

	"github.com/hasanuzzaman/attendance-core/internal/core/clock"
	policyDatamodel "github.com/hasanuzzaman/attendance-core/internal/core/datamodel/policy"
	"github.com/hasanuzzaman/attendance-core/internal/shift"
)

// AttendancePolicy configures the admission windows, grace periods,
// cooldowns and weekend/holiday gates applied to a shift's employees, or —
// when IsDefault — to any employee whose own shift has no active policy.
type AttendancePolicy struct {
	ID          uuid.UUID
	Name        string
	Description string
	ShiftID     uuid.UUID

	EntryWindowStartMinutes int // minutes before shift start the IN window opens
	EntryWindowEndMinutes   int // minutes after shift start the IN window closes
	ExitWindowStartMinutes  int // minutes before shift end the OUT window opens
	ExitWindowEndMinutes    int // minutes after shift end the OUT window closes

	EarlyArrivalGraceMinutes   int
	LateArrivalGraceMinutes    int
	EarlyDepartureGraceMinutes int
	OvertimeThresholdMinutes   int

	InToOutCooldownMinutes int
	OutToInCooldownMinutes int

	BreakStart        *clock.TimeOfDay
	BreakEnd          *clock.TimeOfDay
	BreakDurationMins int

	AllowWeekendAttendance bool
	AllowHolidayAttendance bool
	RequireBothInOut       bool

	AutoClockOutEnabled bool
	AutoClockOutTime    *clock.TimeOfDay

	IsActive  bool
	IsDefault bool
}

// EntryWindow returns the closed [start, end] admission window for IN events,
// anchored to the shift's start time.
func (p *AttendancePolicy) EntryWindow(s *shift.Shift) (start, end clock.TimeOfDay) {
	return s.StartTime.AddMinutes(-p.EntryWindowStartMinutes), s.StartTime.AddMinutes(p.EntryWindowEndMinutes)
}

// ExitWindow returns the admission window for OUT events, anchored to the
// shift's end time.
func (p *AttendancePolicy) ExitWindow(s *shift.Shift) (start, end clock.TimeOfDay) {
	return s.EndTime.AddMinutes(-p.ExitWindowStartMinutes), s.EndTime.AddMinutes(p.ExitWindowEndMinutes)
}

// WithinEntryWindow reports whether businessTime falls inside the IN
// admission window, honoring the shift's overnight wraparound.
func (p *AttendancePolicy) WithinEntryWindow(s *shift.Shift, businessTime clock.TimeOfDay) bool {
	start, end := p.EntryWindow(s)
	return clock.InTimeRange(businessTime, start, end, s.IsOvernight)
}

// WithinExitWindow reports whether businessTime falls inside the OUT
// admission window, honoring the shift's overnight wraparound.
func (p *AttendancePolicy) WithinExitWindow(s *shift.Shift, businessTime clock.TimeOfDay) bool {
	start, end := p.ExitWindow(s)
	return clock.InTimeRange(businessTime, start, end, s.IsOvernight)
}

// WithinBreakWindow reports whether businessTime falls inside the
// configured break window. A policy with no break configured never matches.
func (p *AttendancePolicy) WithinBreakWindow(s *shift.Shift, businessTime clock.TimeOfDay) bool {
	if p.BreakStart == nil || p.BreakEnd == nil {
		return false
	}
	return clock.InTimeRange(businessTime, *p.BreakStart, *p.BreakEnd, s.IsOvernight)
}

// ArrivalStatus classifies an IN event by how far businessTime sits from
// the shift start, relative to the early/late arrival grace periods.
func (p *AttendancePolicy) ArrivalStatus(s *shift.Shift, businessTime clock.TimeOfDay) Status {
	minutesFromStart := clock.DurationMinutesOfDay(s.StartTime, businessTime, s.IsOvernight)
	switch {
	case minutesFromStart < -p.EarlyArrivalGraceMinutes:
		return StatusEarlyIn
	case minutesFromStart > p.LateArrivalGraceMinutes:
		return StatusLateIn
	default:
		return StatusOnTimeIn
	}
}

// DepartureStatus classifies an OUT event by how far businessTime sits from
// the shift end, relative to the early-departure grace and overtime
// thresholds.
func (p *AttendancePolicy) DepartureStatus(s *shift.Shift, businessTime clock.TimeOfDay) Status {
	minutesFromEnd := clock.DurationMinutesOfDay(s.EndTime, businessTime, s.IsOvernight)
	switch {
	case minutesFromEnd < -p.EarlyDepartureGraceMinutes:
		return StatusEarlyOut
	case minutesFromEnd > p.OvertimeThresholdMinutes:
		return StatusOvertime
	default:
		return StatusOnTimeOut
	}
}

// Repository resolves the applicable policy for an employee's shift, or the
// singleton default policy when the shift has none. Both methods return a
// nil policy (not an error) when no active row matches.
type Repository interface {
	FindActiveForShift(shiftID uuid.UUID) (*AttendancePolicy, error)
	FindActiveDefault() (*AttendancePolicy, error)
}

func secondsPtr(t *clock.TimeOfDay) *int {
	if t == nil {
		return nil
	}
	v := int(*t)
	return &v
}

func timeOfDayPtr(v *int) *clock.TimeOfDay {
	if v == nil {
		return nil
	}
	t := clock.TimeOfDay(*v)
	return &t
}

// ToDataModel converts an AttendancePolicy to its GORM row representation.
func ToDataModel(p *AttendancePolicy) *policyDatamodel.AttendancePolicy {
	return &policyDatamodel.AttendancePolicy{
		ID:                         p.ID,
		Name:                       p.Name,
		Description:                p.Description,
		ShiftID:                    p.ShiftID,
		EntryWindowStartMinutes:    p.EntryWindowStartMinutes,
		EntryWindowEndMinutes:      p.EntryWindowEndMinutes,
		ExitWindowStartMinutes:     p.ExitWindowStartMinutes,
		ExitWindowEndMinutes:       p.ExitWindowEndMinutes,
		EarlyArrivalGraceMinutes:   p.EarlyArrivalGraceMinutes,
		LateArrivalGraceMinutes:    p.LateArrivalGraceMinutes,
		EarlyDepartureGraceMinutes: p.EarlyDepartureGraceMinutes,
		OvertimeThresholdMinutes:   p.OvertimeThresholdMinutes,
		InToOutCooldownMinutes:     p.InToOutCooldownMinutes,
		OutToInCooldownMinutes:     p.OutToInCooldownMinutes,
		BreakStartSeconds:          secondsPtr(p.BreakStart),
		BreakEndSeconds:            secondsPtr(p.BreakEnd),
		BreakDurationMins:          p.BreakDurationMins,
		AllowWeekendAttendance:     p.AllowWeekendAttendance,
		AllowHolidayAttendance:     p.AllowHolidayAttendance,
		RequireBothInOut:           p.RequireBothInOut,
		AutoClockOutEnabled:        p.AutoClockOutEnabled,
		AutoClockOutSeconds:        secondsPtr(p.AutoClockOutTime),
		IsActive:                   p.IsActive,
		IsDefault:                  p.IsDefault,
	}
}

// FromDataModel converts a GORM row back to an AttendancePolicy.
func FromDataModel(p *policyDatamodel.AttendancePolicy) *AttendancePolicy {
	return &AttendancePolicy{
		ID:                         p.ID,
		Name:                       p.Name,
		Description:                p.Description,
		ShiftID:                    p.ShiftID,
		EntryWindowStartMinutes:    p.EntryWindowStartMinutes,
		EntryWindowEndMinutes:      p.EntryWindowEndMinutes,
		ExitWindowStartMinutes:     p.ExitWindowStartMinutes,
		ExitWindowEndMinutes:       p.ExitWindowEndMinutes,
		EarlyArrivalGraceMinutes:   p.EarlyArrivalGraceMinutes,
		LateArrivalGraceMinutes:    p.LateArrivalGraceMinutes,
		EarlyDepartureGraceMinutes: p.EarlyDepartureGraceMinutes,
		OvertimeThresholdMinutes:   p.OvertimeThresholdMinutes,
		InToOutCooldownMinutes:     p.InToOutCooldownMinutes,
		OutToInCooldownMinutes:     p.OutToInCooldownMinutes,
		BreakStart:                 timeOfDayPtr(p.BreakStartSeconds),
		BreakEnd:                   timeOfDayPtr(p.BreakEndSeconds),
		BreakDurationMins:          p.BreakDurationMins,
		AllowWeekendAttendance:     p.AllowWeekendAttendance,
		AllowHolidayAttendance:     p.AllowHolidayAttendance,
		RequireBothInOut:           p.RequireBothInOut,
		AutoClockOutEnabled:        p.AutoClockOutEnabled,
		AutoClockOutTime:           timeOfDayPtr(p.AutoClockOutSeconds),
		IsActive:                   p.IsActive,
		IsDefault:                  p.IsDefault,
	}
}
