package policy

import (
	"fmt"

	"github.com/hasanuzzaman/attendance-core/internal/employee"
)

// Registry resolves the single policy that applies to an employee: the
// active policy on the employee's own shift if one exists, else the
// singleton active default policy, else none.
type Registry struct {
	repo Repository
}

func NewRegistry(repo Repository) *Registry {
	return &Registry{repo: repo}
}

// Resolve returns the applicable policy for emp, or nil if neither the
// shift nor a default policy is configured and active.
func (r *Registry) Resolve(emp *employee.Employee) (*AttendancePolicy, error) {
	if emp.ShiftID != nil {
		p, err := r.repo.FindActiveForShift(*emp.ShiftID)
		if err != nil {
			return nil, fmt.Errorf("resolving shift policy: %w", err)
		}
		if p != nil {
			return p, nil
		}
	}

	p, err := r.repo.FindActiveDefault()
	if err != nil {
		return nil, fmt.Errorf("resolving default policy: %w", err)
	}
	return p, nil
}
