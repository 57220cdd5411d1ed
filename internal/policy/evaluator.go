package policy

import (
	"fmt"
	"time"

	"github.com/hasanuzzaman/attendance-core/internal/core/clock"
	"github.com/hasanuzzaman/attendance-core/internal/employee"
	"github.com/hasanuzzaman/attendance-core/internal/shift"
)

// LastRecord is the minimal view of an employee's most recent attendance
// record the evaluator needs — just enough to determine the expected next
// EventType and to measure the cooldown gap. The attendance ledger builds
// one of these from its own, richer record type.
type LastRecord struct {
	EventType EventType
	EventTime time.Time
}

// HolidayChecker reports whether a business date is a company holiday. The
// evaluator treats a nil checker as "never a holiday" — holiday calendars
// are an optional integration point, not a hard dependency.
type HolidayChecker interface {
	IsHoliday(d clock.Date) bool
}

// Evaluator evaluates recognition events against the policy resolved for
// the event's employee, producing an Evaluation.
type Evaluator struct {
	registry *Registry
	shifts   shift.Repository
	zone     clock.Zone
	holidays HolidayChecker
}

func NewEvaluator(registry *Registry, shifts shift.Repository, zone clock.Zone, holidays HolidayChecker) *Evaluator {
	return &Evaluator{registry: registry, shifts: shifts, zone: zone, holidays: holidays}
}

// Evaluate implements the admission-window, cooldown and classification
// pipeline: resolve the policy, pick the expected event type from
// lastRecord, check the admission window, check the cooldown, then classify
// and compute compliance metrics for the approved event.
func (e *Evaluator) Evaluate(emp *employee.Employee, capturedAt time.Time, lastRecord *LastRecord) (Evaluation, error) {
	p, err := e.registry.Resolve(emp)
	if err != nil {
		return Evaluation{}, fmt.Errorf("resolving policy: %w", err)
	}
	if p == nil {
		return rejected("No attendance policy configured"), nil
	}

	s, err := e.shifts.FindByID(p.ShiftID)
	if err != nil {
		return Evaluation{}, fmt.Errorf("resolving shift %s: %w", p.ShiftID, err)
	}

	businessTime := e.zone.BusinessTime(capturedAt)
	expected := expectedEventType(lastRecord)

	if !e.withinWindow(p, s, businessTime, expected) {
		return rejected(fmt.Sprintf("Outside %s window. Expected window: %s", expected, e.windowDescription(p, s, expected))), nil
	}

	if lastRecord != nil {
		minutesSince := clock.DurationMinutes(lastRecord.EventTime, capturedAt)
		if reason := cooldownViolation(p, lastRecord.EventType, expected, minutesSince); reason != "" {
			return rejected(reason), nil
		}
	}

	status := e.classify(p, s, businessTime, expected)
	compliance := e.compliance(p, s, businessTime, expected)

	return approved(expected, status, compliance), nil
}

// AttendanceAllowed reports whether a recognition event may be admitted at
// all on businessDate, independent of the admission window — the weekend
// and holiday gates. It is a separate query: Evaluate does not call it, and
// neither does the ingestion pipeline.
func (e *Evaluator) AttendanceAllowed(emp *employee.Employee, businessDate clock.Date) (bool, error) {
	p, err := e.registry.Resolve(emp)
	if err != nil {
		return false, fmt.Errorf("resolving policy: %w", err)
	}
	if p == nil {
		return false, nil
	}

	weekday := businessDate.Weekday()
	if (weekday == time.Saturday || weekday == time.Sunday) && !p.AllowWeekendAttendance {
		return false, nil
	}
	if e.holidays != nil && e.holidays.IsHoliday(businessDate) && !p.AllowHolidayAttendance {
		return false, nil
	}
	return true, nil
}

// AutoClockOutDue reports whether nowBusinessTime has reached or passed the
// employee's policy-configured auto clock-out time.
func (e *Evaluator) AutoClockOutDue(emp *employee.Employee, nowBusinessTime clock.TimeOfDay) (bool, error) {
	p, err := e.registry.Resolve(emp)
	if err != nil {
		return false, fmt.Errorf("resolving policy: %w", err)
	}
	if p == nil || !p.AutoClockOutEnabled || p.AutoClockOutTime == nil {
		return false, nil
	}
	return nowBusinessTime >= *p.AutoClockOutTime, nil
}

func expectedEventType(lastRecord *LastRecord) EventType {
	if lastRecord == nil || lastRecord.EventType == EventTypeOut {
		return EventTypeIn
	}
	return EventTypeOut
}

func (e *Evaluator) withinWindow(p *AttendancePolicy, s *shift.Shift, businessTime clock.TimeOfDay, eventType EventType) bool {
	if eventType == EventTypeIn {
		return p.WithinEntryWindow(s, businessTime)
	}
	return p.WithinExitWindow(s, businessTime)
}

func (e *Evaluator) windowDescription(p *AttendancePolicy, s *shift.Shift, eventType EventType) string {
	var start, end clock.TimeOfDay
	if eventType == EventTypeIn {
		start, end = p.EntryWindow(s)
	} else {
		start, end = p.ExitWindow(s)
	}
	return fmt.Sprintf("%s to %s", start, end)
}

func (e *Evaluator) classify(p *AttendancePolicy, s *shift.Shift, businessTime clock.TimeOfDay, eventType EventType) Status {
	if eventType == EventTypeIn {
		return p.ArrivalStatus(s, businessTime)
	}
	return p.DepartureStatus(s, businessTime)
}

// cooldownViolation mirrors the original service's rule: IN->OUT and
// OUT->IN each carry their own configured minimum gap, while two
// consecutive events of the same type always require the larger of the two
// cooldowns — there is no dedicated "same type" configuration knob.
func cooldownViolation(p *AttendancePolicy, lastType, currentType EventType, minutesSinceLastEvent int) string {
	var required int
	var label string

	switch {
	case lastType == EventTypeIn && currentType == EventTypeOut:
		required, label = p.InToOutCooldownMinutes, "IN to OUT"
	case lastType == EventTypeOut && currentType == EventTypeIn:
		required, label = p.OutToInCooldownMinutes, "OUT to IN"
	default:
		required = p.InToOutCooldownMinutes
		if p.OutToInCooldownMinutes > required {
			required = p.OutToInCooldownMinutes
		}
		label = fmt.Sprintf("duplicate %s", currentType)
	}

	if minutesSinceLastEvent < required {
		return fmt.Sprintf("%s cooldown violation. Required: %d minutes, Actual: %d minutes", label, required, minutesSinceLastEvent)
	}
	return ""
}

func (e *Evaluator) compliance(p *AttendancePolicy, s *shift.Shift, businessTime clock.TimeOfDay, eventType EventType) Compliance {
	var c Compliance
	c.WithinBreakWindow = p.WithinBreakWindow(s, businessTime)

	switch eventType {
	case EventTypeIn:
		minutesFromStart := clock.DurationMinutesOfDay(s.StartTime, businessTime, s.IsOvernight)
		c.IsEarlyArrival = minutesFromStart < -p.EarlyArrivalGraceMinutes
		c.IsLateArrival = minutesFromStart > p.LateArrivalGraceMinutes
		c.IsOnTime = !c.IsEarlyArrival && !c.IsLateArrival
		if c.IsLateArrival {
			c.LateMinutes = maxInt(0, minutesFromStart)
		}
	case EventTypeOut:
		minutesFromEnd := clock.DurationMinutesOfDay(s.EndTime, businessTime, s.IsOvernight)
		c.IsEarlyDeparture = minutesFromEnd < -p.EarlyDepartureGraceMinutes
		c.IsOvertime = minutesFromEnd > p.OvertimeThresholdMinutes
		if c.IsOvertime {
			c.OvertimeMinutes = maxInt(0, minutesFromEnd)
		}
		if c.IsEarlyDeparture {
			c.EarlyDepartureMins = maxInt(0, -minutesFromEnd)
		}
	}
	return c
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
