package employee

import "github.com/google/uuid"

type Employee struct {
	ID           uuid.UUID  `gorm:"column:id;primaryKey;type:uuid"`
	EmployeeCode string     `gorm:"column:employee_code;uniqueIndex;not null"`
	Name         string     `gorm:"column:name;not null"`
	Status       string     `gorm:"column:status;not null;default:ACTIVE"`
	ShiftID      *uuid.UUID `gorm:"column:shift_id;type:uuid"`
}

func (Employee) TableName() string { return "employees" }
