package shift

import "github.com/google/uuid"

type Shift struct {
	ID                 uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	Name               string    `gorm:"column:name;not null"`
	StartTimeSeconds   int       `gorm:"column:start_time_seconds;not null"`
	EndTimeSeconds     int       `gorm:"column:end_time_seconds;not null"`
	IsOvernight        bool      `gorm:"column:is_overnight;not null"`
	Timezone           string    `gorm:"column:timezone;not null"`
	GracePeriodMinutes int       `gorm:"column:grace_period_minutes;not null;default:0"`
}

func (Shift) TableName() string { return "shifts" }
