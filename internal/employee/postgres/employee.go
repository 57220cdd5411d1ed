package postgres

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/hasanuzzaman/attendance-core/internal"
	employeeDatamodel "github.com/hasanuzzaman/attendance-core/internal/core/datamodel/employee"
	"github.com/hasanuzzaman/attendance-core/internal/employee"
)

// EmployeeRepository implements employee.Repository using GORM.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) FindByID(id uuid.UUID) (*employee.Employee, error) {
	var row employeeDatamodel.Employee
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee.FromDataModel(&row), nil
}

func (r *EmployeeRepository) FindByCode(code string) (*employee.Employee, error) {
	var row employeeDatamodel.Employee
	if err := r.db.Where("employee_code = ?", code).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee.FromDataModel(&row), nil
}
