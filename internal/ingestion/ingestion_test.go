package ingestion_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apperrors "github.com/hasanuzzaman/attendance-core/internal"
	"github.com/hasanuzzaman/attendance-core/internal/attendance"
	attendancepg "github.com/hasanuzzaman/attendance-core/internal/attendance/postgres"
	"github.com/hasanuzzaman/attendance-core/internal/core/clock"
	attendanceDatamodel "github.com/hasanuzzaman/attendance-core/internal/core/datamodel/attendance"
	deviceDatamodel "github.com/hasanuzzaman/attendance-core/internal/core/datamodel/device"
	employeeDatamodel "github.com/hasanuzzaman/attendance-core/internal/core/datamodel/employee"
	recognitionDatamodel "github.com/hasanuzzaman/attendance-core/internal/core/datamodel/recognition"
	"github.com/hasanuzzaman/attendance-core/internal/core/events"
	"github.com/hasanuzzaman/attendance-core/internal/device"
	"github.com/hasanuzzaman/attendance-core/internal/employee"
	"github.com/hasanuzzaman/attendance-core/internal/ingestion"
	"github.com/hasanuzzaman/attendance-core/internal/policy"
	recognitionpg "github.com/hasanuzzaman/attendance-core/internal/recognition/postgres"
	"github.com/hasanuzzaman/attendance-core/internal/shift"
)

func TestIngestion(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ingestion suite")
}

type fakeEmployeeRepository struct {
	byID map[uuid.UUID]*employee.Employee
}

func (f *fakeEmployeeRepository) FindByID(id uuid.UUID) (*employee.Employee, error) {
	if emp, ok := f.byID[id]; ok {
		return emp, nil
	}
	return nil, apperrors.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepository) FindByCode(code string) (*employee.Employee, error) {
	for _, emp := range f.byID {
		if emp.EmployeeCode == code {
			return emp, nil
		}
	}
	return nil, apperrors.ErrEmployeeNotFound
}

type fakeDeviceRepository struct {
	byID map[uuid.UUID]*device.Device
}

func (f *fakeDeviceRepository) FindByID(id uuid.UUID) (*device.Device, error) {
	if dev, ok := f.byID[id]; ok {
		return dev, nil
	}
	return nil, apperrors.ErrDeviceNotFound
}

type fakePolicyRepository struct {
	byShift map[uuid.UUID]*policy.AttendancePolicy
}

func (f *fakePolicyRepository) FindActiveForShift(shiftID uuid.UUID) (*policy.AttendancePolicy, error) {
	return f.byShift[shiftID], nil
}

func (f *fakePolicyRepository) FindActiveDefault() (*policy.AttendancePolicy, error) {
	return nil, nil
}

type fakeShiftRepository struct {
	byID map[uuid.UUID]*shift.Shift
}

func (f *fakeShiftRepository) FindByID(id uuid.UUID) (*shift.Shift, error) {
	return f.byID[id], nil
}

type nullSnapshotReader struct{}

func (nullSnapshotReader) ReadIfLocal(string) ([]byte, bool) { return nil, false }

var _ = Describe("Pipeline", func() {
	var (
		db          *gorm.DB
		pipeline    *ingestion.Pipeline
		emp         employee.Employee
		dev         device.Device
		nineToFive  shift.Shift
		zone        = clock.MustZone(clock.DefaultBusinessZone)
		businessDay = clock.Date{Year: 2026, Month: time.August, Day: 3} // Monday
	)

	businessInstant := func(h, m, s int) time.Time {
		return zone.BusinessDayStart(businessDay).Add(
			time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second)
	}

	validEmbedding := func() []float32 {
		e := make([]float32, 512)
		e[0] = 1
		return e
	}

	similarity := func(v float64) *float64 { return &v }
	livenessOK := func() *bool { v := true; return &v }

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(
			&recognitionDatamodel.RecognitionEvent{},
			&attendanceDatamodel.Record{},
			&employeeDatamodel.Employee{},
			&deviceDatamodel.Device{},
		)).NotTo(HaveOccurred())

		nineToFive = shift.New(uuid.New(), "9-5", clock.NewTimeOfDay(9, 0, 0), clock.NewTimeOfDay(17, 0, 0), clock.DefaultBusinessZone, 10)
		emp = employee.Employee{ID: uuid.New(), EmployeeCode: "E001", Status: employee.StatusActive, ShiftID: &nineToFive.ID}
		dev = device.Device{ID: uuid.New(), DeviceCode: "DOOR-1", Status: device.StatusActive}

		pol := &policy.AttendancePolicy{
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

		evaluator := policy.NewEvaluator(
			policy.NewRegistry(&fakePolicyRepository{byShift: map[uuid.UUID]*policy.AttendancePolicy{nineToFive.ID: pol}}),
			&fakeShiftRepository{byID: map[uuid.UUID]*shift.Shift{nineToFive.ID: &nineToFive}},
			zone,
			nil,
		)

		config := apperrors.DefaultCoreConfig()
		config.MinSimilarity = 0.6
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))

		pipeline = ingestion.NewPipeline(
			db,
			&fakeEmployeeRepository{byID: map[uuid.UUID]*employee.Employee{emp.ID: &emp}},
			&fakeDeviceRepository{byID: map[uuid.UUID]*device.Device{dev.ID: &dev}},
			evaluator,
			recognitionpg.NewRecognitionRepository,
			attendancepg.NewLedgerRepository,
			clock.SystemClock{},
			zone,
			nullSnapshotReader{},
			config,
			logger,
			events.NewEventBus(logger),
		)
	})

	newIngress := func(capturedAt time.Time, simScore float64) *ingestion.RecognitionIngress {
		return &ingestion.RecognitionIngress{
			DeviceID:               dev.ID,
			CapturedAt:             capturedAt,
			Embedding:              validEmbedding(),
			TopCandidateEmployeeID: &emp.ID,
			SimilarityScore:        similarity(simScore),
			LivenessPassed:         livenessOK(),
			SnapshotURL:            "",
		}
	}

	It("records an on-time IN", func() {
		outcome, err := pipeline.Ingest(context.Background(), newIngress(businessInstant(9, 5, 0), 0.9))
		Expect(err).NotTo(HaveOccurred())
		Expect(outcome.Kind).To(Equal(ingestion.OutcomeRecorded))
		Expect(outcome.Record.EventType).To(Equal(policy.EventTypeIn))
		Expect(outcome.Record.IsLate).To(BeFalse())
	})

	It("records a late IN with the lateness flag set", func() {
		outcome, err := pipeline.Ingest(context.Background(), newIngress(businessInstant(9, 25, 0), 0.9))
		Expect(err).NotTo(HaveOccurred())
		Expect(outcome.Kind).To(Equal(ingestion.OutcomeRecorded))
		Expect(outcome.Record.IsLate).To(BeTrue())
	})

	It("rejects a recognition event outside the admission window", func() {
		outcome, err := pipeline.Ingest(context.Background(), newIngress(businessInstant(6, 0, 0), 0.9))
		Expect(err).NotTo(HaveOccurred())
		Expect(outcome.Kind).To(Equal(ingestion.OutcomeRejected))
		Expect(outcome.Reason).To(ContainSubstring("Outside IN window"))
	})

	It("rejects an OUT that violates the cooldown", func() {
		// Seed the ledger directly with the prior IN punch: at 16:35 it lies
		// outside the 08:30-11:00 entry window, so the pipeline would reject
		// it. The evaluator checks only the *current* event's window, so the
		// seeded IN still drives the expected OUT and its cooldown.
		ledger := attendancepg.NewLedgerRepository(db)
		Expect(ledger.Append(&attendance.Record{
			ID:             uuid.New(),
			EmployeeID:     emp.ID,
			DeviceID:       dev.ID,
			ShiftID:        &nineToFive.ID,
			AttendanceDate: businessDay,
			EventTime:      businessInstant(16, 35, 0),
			EventType:      policy.EventTypeIn,
			Status:         attendance.StatusValid,
		})).NotTo(HaveOccurred())

		outcome, err := pipeline.Ingest(context.Background(), newIngress(businessInstant(16, 40, 0), 0.9))
		Expect(err).NotTo(HaveOccurred())
		Expect(outcome.Kind).To(Equal(ingestion.OutcomeRejected))
		Expect(outcome.Reason).To(ContainSubstring("cooldown violation"))
	})

	It("treats a resubmitted fingerprint as a duplicate", func() {
		ctx := context.Background()
		capturedAt := businessInstant(9, 5, 0)

		first, err := pipeline.Ingest(ctx, newIngress(capturedAt, 0.9))
		Expect(err).NotTo(HaveOccurred())
		Expect(first.Kind).To(Equal(ingestion.OutcomeRecorded))

		second, err := pipeline.Ingest(ctx, newIngress(capturedAt, 0.9))
		Expect(err).NotTo(HaveOccurred())
		Expect(second.Kind).To(Equal(ingestion.OutcomeDuplicate))
	})

	It("stores but does not admit a below-threshold similarity match", func() {
		outcome, err := pipeline.Ingest(context.Background(), newIngress(businessInstant(9, 5, 0), 0.3))
		Expect(err).NotTo(HaveOccurred())
		Expect(outcome.Kind).To(Equal(ingestion.OutcomeStored))
	})

	It("stores but does not admit an event with no resolvable employee", func() {
		ingress := newIngress(businessInstant(9, 5, 0), 0.9)
		ingress.TopCandidateEmployeeID = nil
		outcome, err := pipeline.Ingest(context.Background(), ingress)
		Expect(err).NotTo(HaveOccurred())
		Expect(outcome.Kind).To(Equal(ingestion.OutcomeStored))
	})

	It("records an overtime OUT with a computed duration", func() {
		ctx := context.Background()
		_, err := pipeline.Ingest(ctx, newIngress(businessInstant(9, 0, 0), 0.9))
		Expect(err).NotTo(HaveOccurred())

		outcome, err := pipeline.Ingest(ctx, newIngress(businessInstant(17, 45, 0), 0.9))
		Expect(err).NotTo(HaveOccurred())
		Expect(outcome.Kind).To(Equal(ingestion.OutcomeRecorded))
		Expect(outcome.Record.IsOvertime).To(BeTrue())
		Expect(outcome.Record.DurationMin).NotTo(BeNil())
		Expect(*outcome.Record.DurationMin).To(Equal(525))
	})

	It("rejects a malformed ingress before touching storage", func() {
		ingress := newIngress(businessInstant(9, 5, 0), 0.9)
		ingress.Embedding = ingress.Embedding[:10]
		_, err := pipeline.Ingest(context.Background(), ingress)
		Expect(err).To(HaveOccurred())

		var count int64
		db.Model(&recognitionDatamodel.RecognitionEvent{}).Count(&count)
		Expect(count).To(BeZero())
	})
})
