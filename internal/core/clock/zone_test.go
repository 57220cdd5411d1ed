package clock_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hasanuzzaman/attendance-core/internal/core/clock"
)

func TestClock(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "clock suite")
}

var _ = Describe("Zone", func() {
	var zone clock.Zone

	BeforeEach(func() {
		zone = clock.MustZone("Asia/Dhaka")
	})

	Describe("BusinessDate and BusinessTime", func() {
		It("projects a UTC instant into the business zone calendar", func() {
			instant := time.Date(2024, 1, 15, 3, 5, 0, 0, time.UTC) // 09:05 Dhaka
			Expect(zone.BusinessDate(instant).String()).To(Equal("2024-01-15"))
			Expect(zone.BusinessTime(instant)).To(Equal(clock.NewTimeOfDay(9, 5, 0)))
		})
	})

	Describe("round-trip business time", func() {
		It("maps BusinessDayStart back to midnight of the same date", func() {
			d := clock.Date{Year: 2024, Month: time.March, Day: 1}
			start := zone.BusinessDayStart(d)
			Expect(zone.BusinessDate(start)).To(Equal(d))
			Expect(zone.BusinessTime(start)).To(Equal(clock.TimeOfDay(0)))
		})
	})

	Describe("DurationMinutesOfDay", func() {
		It("computes a plain same-day difference", func() {
			from := clock.NewTimeOfDay(9, 0, 0)
			to := clock.NewTimeOfDay(9, 15, 0)
			Expect(clock.DurationMinutesOfDay(from, to, false)).To(Equal(15))
		})

		It("wraps past midnight for overnight shifts", func() {
			start := clock.NewTimeOfDay(22, 0, 0)
			end := clock.NewTimeOfDay(6, 30, 0)
			Expect(clock.DurationMinutesOfDay(start, end, true)).To(Equal(510))
		})

		It("does not wrap for non-overnight shifts even if negative", func() {
			from := clock.NewTimeOfDay(9, 0, 0)
			to := clock.NewTimeOfDay(8, 0, 0)
			Expect(clock.DurationMinutesOfDay(from, to, false)).To(Equal(-60))
		})
	})

	Describe("InTimeRange", func() {
		It("treats the window as a closed interval", func() {
			start := clock.NewTimeOfDay(8, 30, 0)
			end := clock.NewTimeOfDay(11, 0, 0)
			Expect(clock.InTimeRange(start, start, end, false)).To(BeTrue())
			Expect(clock.InTimeRange(end, start, end, false)).To(BeTrue())
			Expect(clock.InTimeRange(clock.NewTimeOfDay(11, 1, 0), start, end, false)).To(BeFalse())
		})

		It("unions across midnight for overnight ranges", func() {
			start := clock.NewTimeOfDay(22, 0, 0)
			end := clock.NewTimeOfDay(6, 0, 0)
			Expect(clock.InTimeRange(clock.NewTimeOfDay(23, 0, 0), start, end, true)).To(BeTrue())
			Expect(clock.InTimeRange(clock.NewTimeOfDay(2, 0, 0), start, end, true)).To(BeTrue())
			Expect(clock.InTimeRange(clock.NewTimeOfDay(12, 0, 0), start, end, true)).To(BeFalse())
		})
	})

	Describe("DurationMinutes", func() {
		It("is signed", func() {
			a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			b := a.Add(10 * time.Minute)
			Expect(clock.DurationMinutes(a, b)).To(Equal(10))
			Expect(clock.DurationMinutes(b, a)).To(Equal(-10))
		})
	})
})
