package employee_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/google/uuid"

	"github.com/hasanuzzaman/attendance-core/internal/employee"
)

func TestEmployee(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "employee suite")
}

var _ = Describe("Employee", func() {
	It("is active only in StatusActive", func() {
		e := &employee.Employee{ID: uuid.New(), Status: employee.StatusActive}
		Expect(e.IsActive()).To(BeTrue())

		e.Status = employee.StatusSuspended
		Expect(e.IsActive()).To(BeFalse())
	})

	It("deactivates without touching identity fields", func() {
		id := uuid.New()
		e := &employee.Employee{ID: id, EmployeeCode: "E001", Status: employee.StatusActive}
		e.Deactivate()

		Expect(e.Status).To(Equal(employee.StatusInactive))
		Expect(e.ID).To(Equal(id))
		Expect(e.EmployeeCode).To(Equal("E001"))
	})

	It("round-trips through its data model", func() {
		shiftID := uuid.New()
		e := &employee.Employee{ID: uuid.New(), EmployeeCode: "E002", Name: "Jane", Status: employee.StatusActive, ShiftID: &shiftID}

		row := employee.ToDataModel(e)
		back := employee.FromDataModel(row)

		Expect(back).To(Equal(e))
	})
})
