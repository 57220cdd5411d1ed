package shift_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/google/uuid"

	"github.com/hasanuzzaman/attendance-core/internal/core/clock"
	"github.com/hasanuzzaman/attendance-core/internal/shift"
)

func TestShift(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "shift suite")
}

var _ = Describe("New", func() {
	It("is not overnight when end strictly follows start", func() {
		s := shift.New(uuid.New(), "9-5", clock.NewTimeOfDay(9, 0, 0), clock.NewTimeOfDay(17, 0, 0), "Asia/Dhaka", 10)
		Expect(s.IsOvernight).To(BeFalse())
	})

	It("is overnight when end is before start", func() {
		s := shift.New(uuid.New(), "night", clock.NewTimeOfDay(22, 0, 0), clock.NewTimeOfDay(6, 0, 0), "Asia/Dhaka", 10)
		Expect(s.IsOvernight).To(BeTrue())
	})

	It("treats an equal end/start as overnight, per the <=start invariant", func() {
		midnight := clock.NewTimeOfDay(0, 0, 0)
		s := shift.New(uuid.New(), "full-day", midnight, midnight, "Asia/Dhaka", 0)
		Expect(s.IsOvernight).To(BeTrue())
	})
})

var _ = Describe("ToDataModel/FromDataModel", func() {
	It("preserves the start/end seconds and overnight flag", func() {
		s := shift.New(uuid.New(), "night", clock.NewTimeOfDay(22, 0, 0), clock.NewTimeOfDay(6, 0, 0), "Asia/Dhaka", 15)
		back := shift.FromDataModel(shift.ToDataModel(&s))
		Expect(*back).To(Equal(s))
	})
})
