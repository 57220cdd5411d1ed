package policy

import "github.com/google/uuid"

type AttendancePolicy struct {
	ID          uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description"`
	ShiftID     uuid.UUID `gorm:"column:shift_id;type:uuid;not null"`

	EntryWindowStartMinutes int `gorm:"column:entry_window_start_minutes;not null;default:30"`
	EntryWindowEndMinutes   int `gorm:"column:entry_window_end_minutes;not null;default:120"`
	ExitWindowStartMinutes  int `gorm:"column:exit_window_start_minutes;not null;default:30"`
	ExitWindowEndMinutes    int `gorm:"column:exit_window_end_minutes;not null;default:120"`

	EarlyArrivalGraceMinutes   int `gorm:"column:early_arrival_grace_minutes;not null;default:15"`
	LateArrivalGraceMinutes    int `gorm:"column:late_arrival_grace_minutes;not null;default:10"`
	EarlyDepartureGraceMinutes int `gorm:"column:early_departure_grace_minutes;not null;default:15"`
	OvertimeThresholdMinutes   int `gorm:"column:overtime_threshold_minutes;not null;default:30"`

	InToOutCooldownMinutes int `gorm:"column:in_to_out_cooldown_minutes;not null;default:30"`
	OutToInCooldownMinutes int `gorm:"column:out_to_in_cooldown_minutes;not null;default:15"`

	BreakStartSeconds *int `gorm:"column:break_start_seconds"`
	BreakEndSeconds   *int `gorm:"column:break_end_seconds"`
	BreakDurationMins int  `gorm:"column:break_duration_minutes"`

	AllowWeekendAttendance bool `gorm:"column:allow_weekend_attendance;not null;default:false"`
	AllowHolidayAttendance bool `gorm:"column:allow_holiday_attendance;not null;default:false"`
	RequireBothInOut       bool `gorm:"column:require_both_in_out;not null;default:true"`

	AutoClockOutEnabled bool `gorm:"column:auto_clock_out_enabled;not null;default:false"`
	AutoClockOutSeconds *int `gorm:"column:auto_clock_out_seconds"`

	IsActive  bool `gorm:"column:is_active;not null;default:true"`
	IsDefault bool `gorm:"column:is_default;not null;default:false"`
}

func (AttendancePolicy) TableName() string { return "attendance_policies" }
