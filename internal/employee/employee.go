// Package employee holds the Employee entity referenced by recognition
// events and attendance records.
package employee

import (
	"github.com/google/uuid"

	employeeDatamodel "github.com/hasanuzzaman/attendance-core/internal/core/datamodel/employee"
)

const (
	StatusActive    = "ACTIVE"
	StatusInactive  = "INACTIVE"
	StatusSuspended = "SUSPENDED"
)

// Employee is the person a recognition event may be matched against.
type Employee struct {
	ID           uuid.UUID
	EmployeeCode string
	Name         string
	Status       string
	ShiftID      *uuid.UUID
}

// IsActive reports whether the employee may clock in/out at all.
func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}

// Deactivate logically deletes the employee — employee_code stays unique
// and referenced rows stay intact, per the data-model invariant that
// employees are never hard-deleted once referenced.
func (e *Employee) Deactivate() {
	e.Status = StatusInactive
}

// Repository resolves employees for the ingestion pipeline and policy
// evaluator.
type Repository interface {
	FindByID(id uuid.UUID) (*Employee, error)
	FindByCode(code string) (*Employee, error)
}

// ToDataModel converts an Employee to its GORM row representation.
func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		Name:         e.Name,
		Status:       e.Status,
		ShiftID:      e.ShiftID,
	}
}

// FromDataModel converts a GORM row back to an Employee.
func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		Name:         e.Name,
		Status:       e.Status,
		ShiftID:      e.ShiftID,
	}
}
