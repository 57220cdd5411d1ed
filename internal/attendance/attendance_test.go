package attendance_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/google/uuid"

	"github.com/hasanuzzaman/attendance-core/internal/attendance"
	"github.com/hasanuzzaman/attendance-core/internal/core/clock"
	"github.com/hasanuzzaman/attendance-core/internal/policy"
)

func TestAttendance(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "attendance suite")
}

var _ = Describe("Record.AsLastRecord", func() {
	It("projects only the event type and time the evaluator needs", func() {
		eventTime := time.Date(2026, 8, 3, 9, 5, 0, 0, time.UTC)
		r := &attendance.Record{
			ID:         uuid.New(),
			EmployeeID: uuid.New(),
			EventType:  policy.EventTypeIn,
			EventTime:  eventTime,
			IsLate:     true,
		}

		last := r.AsLastRecord()
		Expect(last.EventType).To(Equal(policy.EventTypeIn))
		Expect(last.EventTime).To(Equal(eventTime))
	})
})

var _ = Describe("ToDataModel/FromDataModel", func() {
	It("stores the business date as a UTC civil midnight and recovers it unchanged", func() {
		r := &attendance.Record{
			ID:             uuid.New(),
			EmployeeID:     uuid.New(),
			DeviceID:       uuid.New(),
			AttendanceDate: clock.Date{Year: 2026, Month: time.August, Day: 3},
			EventTime:      time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC),
			EventType:      policy.EventTypeIn,
			Status:         attendance.StatusValid,
		}

		row := attendance.ToDataModel(r)
		Expect(row.AttendanceDate).To(Equal(time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)))

		back := attendance.FromDataModel(row)
		Expect(back.AttendanceDate).To(Equal(r.AttendanceDate))
	})
})
