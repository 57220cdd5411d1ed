package clock

import (
	"fmt"
	"time"

	// pulls in the embedded IANA tzdata so time.LoadLocation resolves zone
	// names like "Asia/Dhaka" even on minimal container images that ship
	// without /usr/share/zoneinfo.
	_ "time/tzdata"
)

// Date is a civil (year, month, day) calendar date with no time-of-day or
// zone attached to it — the result of projecting a UTC instant into a
// business zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Equal reports whether two dates name the same day.
func (d Date) Equal(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month && d.Day == other.Day
}

// Weekday returns the day of week this date falls on, computed against an
// arbitrary reference location since Date carries no zone of its own.
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// TimeOfDay is the number of seconds elapsed since local midnight,
// [0, 86400).
type TimeOfDay int

const secondsPerDay = 24 * 60 * 60

// NewTimeOfDay builds a TimeOfDay from hour/minute/second components.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

func (t TimeOfDay) Hour() int   { return int(t) / 3600 }
func (t TimeOfDay) Minute() int { return (int(t) % 3600) / 60 }
func (t TimeOfDay) Second() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// AddMinutes shifts a time-of-day by signed minutes, wrapping around the
// 24-hour clock. Use the *_min policy offsets with this.
func (t TimeOfDay) AddMinutes(minutes int) TimeOfDay {
	total := (int(t) + minutes*60) % secondsPerDay
	if total < 0 {
		total += secondsPerDay
	}
	return TimeOfDay(total)
}

// ParseTimeOfDay parses an "HH:MM:SS" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04:05", s)
	if err != nil {
		return 0, fmt.Errorf("bad input: invalid time %q: %w", s, err)
	}
	return NewTimeOfDay(parsed.Hour(), parsed.Minute(), parsed.Second()), nil
}

// Zone wraps an IANA timezone used for every civil-calendar computation the
// core performs. Never store offsets — persist UTC instants and compute
// civil values from a Zone on demand.
type Zone struct {
	loc *time.Location
}

// DefaultBusinessZone is the zone id spec.md designates as the default.
const DefaultBusinessZone = "Asia/Dhaka"

// NewZone loads the named IANA zone.
func NewZone(name string) (Zone, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Zone{}, fmt.Errorf("bad input: unknown timezone %q: %w", name, err)
	}
	return Zone{loc: loc}, nil
}

// MustZone loads the named zone, panicking on failure. Intended for
// package-level defaults and tests, not for handling configuration input.
func MustZone(name string) Zone {
	z, err := NewZone(name)
	if err != nil {
		panic(err)
	}
	return z
}

// BusinessDate projects a UTC instant into this zone's calendar date.
func (z Zone) BusinessDate(utc time.Time) Date {
	local := utc.In(z.loc)
	return Date{Year: local.Year(), Month: local.Month(), Day: local.Day()}
}

// BusinessTime projects a UTC instant into this zone's time-of-day.
func (z Zone) BusinessTime(utc time.Time) TimeOfDay {
	local := utc.In(z.loc)
	return NewTimeOfDay(local.Hour(), local.Minute(), local.Second())
}

// BusinessDayStart returns the UTC instant corresponding to 00:00:00 on the
// given business date in this zone.
func (z Zone) BusinessDayStart(d Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, z.loc).UTC()
}

// DurationMinutes returns the signed number of minutes from a to b.
func DurationMinutes(a, b time.Time) int {
	return int(b.Sub(a).Minutes())
}

// DurationMinutesOfDay returns the signed minutes from tFrom to tTo on the
// same logical shift. When isOvernight and tTo is numerically before
// tFrom, tTo is treated as falling on the following day (i.e. 1440 minutes
// are added before subtracting).
func DurationMinutesOfDay(tFrom, tTo TimeOfDay, isOvernight bool) int {
	diff := (int(tTo) - int(tFrom)) / 60
	if isOvernight && tTo < tFrom {
		diff += 24 * 60
	}
	return diff
}

// InTimeRange reports whether t falls in the closed interval [start, end].
// When isOvernight, the range wraps midnight and is treated as the union
// [start, 24:00) ∪ [00:00, end].
func InTimeRange(t, start, end TimeOfDay, isOvernight bool) bool {
	if !isOvernight {
		return t >= start && t <= end
	}
	return t >= start || t <= end
}
