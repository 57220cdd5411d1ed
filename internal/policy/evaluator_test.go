package policy_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/google/uuid"

	"github.com/hasanuzzaman/attendance-core/internal/core/clock"
	"github.com/hasanuzzaman/attendance-core/internal/employee"
	"github.com/hasanuzzaman/attendance-core/internal/policy"
	"github.com/hasanuzzaman/attendance-core/internal/shift"
)

func TestPolicy(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "policy suite")
}

type mockPolicyRepository struct {
	byShift map[uuid.UUID]*policy.AttendancePolicy
	def     *policy.AttendancePolicy
}

func (m *mockPolicyRepository) FindActiveForShift(shiftID uuid.UUID) (*policy.AttendancePolicy, error) {
	return m.byShift[shiftID], nil
}

func (m *mockPolicyRepository) FindActiveDefault() (*policy.AttendancePolicy, error) {
	return m.def, nil
}

type mockShiftRepository struct {
	shifts map[uuid.UUID]*shift.Shift
}

func (m *mockShiftRepository) FindByID(id uuid.UUID) (*shift.Shift, error) {
	return m.shifts[id], nil
}

var _ = Describe("Evaluator", func() {
	var (
		nineToFive = shift.New(uuid.New(), "9-5", clock.NewTimeOfDay(9, 0, 0), clock.NewTimeOfDay(17, 0, 0), clock.DefaultBusinessZone, 10)
		zone       = clock.MustZone(clock.DefaultBusinessZone)
		emp        employee.Employee
		pol        policy.AttendancePolicy
		evaluator  *policy.Evaluator
	)

	BeforeEach(func() {
		emp = employee.Employee{ID: uuid.New(), EmployeeCode: "E001", Status: employee.StatusActive, ShiftID: &nineToFive.ID}
		pol = policy.AttendancePolicy{
			ID:                         uuid.New(),
			ShiftID:                    nineToFive.ID,
			EntryWindowStartMinutes:    30,
			EntryWindowEndMinutes:      120,
			ExitWindowStartMinutes:     30,
			ExitWindowEndMinutes:       120,
			EarlyArrivalGraceMinutes:   15,
			LateArrivalGraceMinutes:    10,
			EarlyDepartureGraceMinutes: 15,
			OvertimeThresholdMinutes:   30,
			InToOutCooldownMinutes:     30,
			OutToInCooldownMinutes:     15,
			AllowWeekendAttendance:     false,
			IsActive:                   true,
		}
		shifts := &mockShiftRepository{shifts: map[uuid.UUID]*shift.Shift{nineToFive.ID: &nineToFive}}
		policies := &mockPolicyRepository{byShift: map[uuid.UUID]*policy.AttendancePolicy{nineToFive.ID: &pol}}
		evaluator = policy.NewEvaluator(policy.NewRegistry(policies), shifts, zone, nil)
	})

	businessInstant := func(h, m, s int) time.Time {
		return zone.BusinessDayStart(clock.Date{Year: 2026, Month: time.August, Day: 3}).Add(
			time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second)
	}

	It("approves an on-time IN within grace", func() {
		eval, err := evaluator.Evaluate(&emp, businessInstant(9, 5, 0), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(eval.Approved).To(BeTrue())
		Expect(eval.EventType).To(Equal(policy.EventTypeIn))
		Expect(eval.Status).To(Equal(policy.StatusOnTimeIn))
		Expect(eval.Compliance.IsOnTime).To(BeTrue())
	})

	It("classifies a late IN beyond the grace period", func() {
		eval, err := evaluator.Evaluate(&emp, businessInstant(9, 25, 0), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(eval.Approved).To(BeTrue())
		Expect(eval.Status).To(Equal(policy.StatusLateIn))
		Expect(eval.Compliance.IsLateArrival).To(BeTrue())
		Expect(eval.Compliance.LateMinutes).To(Equal(25))
	})

	It("rejects an IN outside the admission window", func() {
		eval, err := evaluator.Evaluate(&emp, businessInstant(6, 0, 0), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(eval.Approved).To(BeFalse())
		Expect(eval.RejectionReason).To(ContainSubstring("Outside IN window"))
		Expect(eval.RejectionReason).To(ContainSubstring("08:30:00 to 11:00:00"))
	})

	It("rejects an OUT that violates the in-to-out cooldown", func() {
		last := &policy.LastRecord{EventType: policy.EventTypeIn, EventTime: businessInstant(16, 35, 0)}
		eval, err := evaluator.Evaluate(&emp, businessInstant(16, 40, 0), last)
		Expect(err).NotTo(HaveOccurred())
		Expect(eval.Approved).To(BeFalse())
		Expect(eval.RejectionReason).To(Equal("IN to OUT cooldown violation. Required: 30 minutes, Actual: 5 minutes"))
	})

	It("rejects an IN that violates the out-to-in cooldown", func() {
		last := &policy.LastRecord{EventType: policy.EventTypeOut, EventTime: businessInstant(8, 35, 0)}
		eval, err := evaluator.Evaluate(&emp, businessInstant(8, 40, 0), last)
		Expect(err).NotTo(HaveOccurred())
		Expect(eval.Approved).To(BeFalse())
		Expect(eval.RejectionReason).To(Equal("OUT to IN cooldown violation. Required: 15 minutes, Actual: 5 minutes"))
	})

	It("classifies an OUT past the overtime threshold", func() {
		last := &policy.LastRecord{EventType: policy.EventTypeIn, EventTime: businessInstant(9, 0, 0)}
		eval, err := evaluator.Evaluate(&emp, businessInstant(17, 45, 0), last)
		Expect(err).NotTo(HaveOccurred())
		Expect(eval.Approved).To(BeTrue())
		Expect(eval.Status).To(Equal(policy.StatusOvertime))
		Expect(eval.Compliance.IsOvertime).To(BeTrue())
		Expect(eval.Compliance.OvertimeMinutes).To(Equal(45))
	})

	It("rejects when no policy is configured for the employee", func() {
		shifts := &mockShiftRepository{shifts: map[uuid.UUID]*shift.Shift{}}
		policies := &mockPolicyRepository{}
		evaluator = policy.NewEvaluator(policy.NewRegistry(policies), shifts, zone, nil)
		eval, err := evaluator.Evaluate(&emp, businessInstant(9, 0, 0), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(eval.Approved).To(BeFalse())
		Expect(eval.RejectionReason).To(Equal("No attendance policy configured"))
	})

	It("gates weekend attendance when the policy disallows it", func() {
		saturday := clock.Date{Year: 2026, Month: time.August, Day: 8}
		allowed, err := evaluator.AttendanceAllowed(&emp, saturday)
		Expect(err).NotTo(HaveOccurred())
		Expect(allowed).To(BeFalse())
	})

	It("allows weekday attendance", func() {
		monday := clock.Date{Year: 2026, Month: time.August, Day: 3}
		allowed, err := evaluator.AttendanceAllowed(&emp, monday)
		Expect(err).NotTo(HaveOccurred())
		Expect(allowed).To(BeTrue())
	})
})
