package ingestion

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/hasanuzzaman/attendance-core/internal"
	"github.com/hasanuzzaman/attendance-core/internal/attendance"
	"github.com/hasanuzzaman/attendance-core/internal/core/clock"
	"github.com/hasanuzzaman/attendance-core/internal/core/events"
	"github.com/hasanuzzaman/attendance-core/internal/device"
	"github.com/hasanuzzaman/attendance-core/internal/employee"
	"github.com/hasanuzzaman/attendance-core/internal/fingerprint"
	"github.com/hasanuzzaman/attendance-core/internal/policy"
	"github.com/hasanuzzaman/attendance-core/internal/recognition"
)

// RecognitionRepoFactory and LedgerFactory bind a fresh repository instance
// to a *gorm.DB — the plain handle outside a transaction, or a *gorm.DB tx
// inside one. The pipeline uses these to run steps 3-7 of an ingest in a
// single transactional scope per spec.
type RecognitionRepoFactory func(*gorm.DB) recognition.Repository
type LedgerFactory func(*gorm.DB) attendance.Ledger

// Pipeline orchestrates one recognition ingress through fingerprinting,
// dedup, persistence, policy evaluation and ledger append.
type Pipeline struct {
	db *gorm.DB

	employees employee.Repository
	devices   device.Repository
	evaluator *policy.Evaluator

	newEventRepo RecognitionRepoFactory
	newLedger    LedgerFactory

	clock          clock.Clock
	zone           clock.Zone
	snapshotReader fingerprint.SnapshotReader

	config apperrors.CoreConfig
	logger *slog.Logger
	bus    *events.EventBus
	locker *EmployeeLocker
}

func NewPipeline(
	db *gorm.DB,
	employees employee.Repository,
	devices device.Repository,
	evaluator *policy.Evaluator,
	newEventRepo RecognitionRepoFactory,
	newLedger LedgerFactory,
	clk clock.Clock,
	zone clock.Zone,
	snapshotReader fingerprint.SnapshotReader,
	config apperrors.CoreConfig,
	logger *slog.Logger,
	bus *events.EventBus,
) *Pipeline {
	return &Pipeline{
		db:             db,
		employees:      employees,
		devices:        devices,
		evaluator:      evaluator,
		newEventRepo:   newEventRepo,
		newLedger:      newLedger,
		clock:          clk,
		zone:           zone,
		snapshotReader: snapshotReader,
		config:         config,
		logger:         logger,
		bus:            bus,
		locker:         NewEmployeeLocker(config.ShardCount),
	}
}

// Ingest runs the full pipeline for one ingress. Steps 1-2 (resolving
// device/employee and computing the fingerprint) run outside any
// transaction since they're side-effect free; steps 3-7 run inside one.
func (p *Pipeline) Ingest(ctx context.Context, ingress *RecognitionIngress) (*Outcome, error) {
	if err := ingress.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := apperrors.WithTimeout(ctx, p.config.IngestDeadline)
	defer cancel()

	var emp *employee.Employee
	if ingress.TopCandidateEmployeeID != nil {
		resolved, err := p.employees.FindByID(*ingress.TopCandidateEmployeeID)
		if err == nil {
			emp = resolved
		}
	}

	if _, err := p.devices.FindByID(ingress.DeviceID); err != nil {
		p.logger.Warn("device not found, proceeding with null device reference", "device_id", ingress.DeviceID, "error", err)
	}

	employeeCode := fingerprint.UnknownEmployeeCode
	if emp != nil {
		employeeCode = emp.EmployeeCode
	}

	hash := fingerprint.Fingerprint(p.snapshotReader, ingress.SnapshotURL, employeeCode, ingress.DeviceID.String(), ingress.CapturedAt)

	if p.config.CooldownSerialization == apperrors.CooldownSerializationPerEmployeeLock && emp != nil {
		unlock := p.locker.Lock(emp.ID)
		defer unlock()
	}

	var outcome *Outcome
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result, txErr := p.ingestWithinTx(tx, ingress, emp, hash)
		if txErr != nil {
			return txErr
		}
		outcome = result
		return nil
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &Outcome{Kind: OutcomeTimeout}, nil
		}
		return nil, err
	}

	p.publish(ctx, outcome, emp, hash)
	return outcome, nil
}

func (p *Pipeline) ingestWithinTx(tx *gorm.DB, ingress *RecognitionIngress, emp *employee.Employee, hash string) (*Outcome, error) {
	eventRepo := p.newEventRepo(tx)
	ledger := p.newLedger(tx)

	exists, err := eventRepo.ExistsByFingerprint(hash)
	if err != nil {
		return nil, err
	}

	event := p.buildEvent(ingress, emp, hash)
	if exists {
		// dedup_hash is unique over non-null values and the PROCESSED row
		// already owns this hash — the duplicate row is persisted without
		// it rather than racing the constraint a second time.
		event.Status = recognition.StatusDuplicate
		event.DedupHash = nil
		if err := eventRepo.Insert(event); err != nil {
			return nil, err
		}
		return &Outcome{Kind: OutcomeDuplicate, Event: event}, nil
	}

	event.Status = recognition.StatusProcessed
	if err := eventRepo.Insert(event); err != nil {
		if errors.Is(err, recognition.ErrDuplicateHash) {
			event.Status = recognition.StatusDuplicate
			event.DedupHash = nil
			if err := eventRepo.Insert(event); err != nil {
				return nil, err
			}
			return &Outcome{Kind: OutcomeDuplicate, Event: event}, nil
		}
		return nil, err
	}

	if !event.ValidMatch(p.config.MinSimilarity) {
		return &Outcome{Kind: OutcomeStored, Event: event}, nil
	}

	last, err := ledger.LastFor(emp.ID)
	if err != nil {
		return &Outcome{Kind: OutcomeEvaluationError, Event: event, Err: err}, nil
	}
	var lastRecord *policy.LastRecord
	if last != nil {
		r := last.AsLastRecord()
		lastRecord = &r
	}

	eval, err := p.evaluator.Evaluate(emp, ingress.CapturedAt, lastRecord)
	if err != nil {
		return &Outcome{Kind: OutcomeEvaluationError, Event: event, Err: err}, nil
	}

	if !eval.Approved {
		return &Outcome{Kind: OutcomeRejected, Event: event, Reason: eval.RejectionReason}, nil
	}

	record := p.buildRecord(event, emp, ingress, eval)
	if eval.EventType == policy.EventTypeOut {
		businessDate := p.zone.BusinessDate(ingress.CapturedAt)
		if lastIn, err := ledger.LastInFor(emp.ID, businessDate); err == nil && lastIn != nil {
			d := clock.DurationMinutes(lastIn.EventTime, ingress.CapturedAt)
			record.DurationMin = &d
		}
	}

	if err := ledger.Append(record); err != nil {
		return nil, err
	}

	return &Outcome{Kind: OutcomeRecorded, Event: event, Record: record}, nil
}

func (p *Pipeline) buildEvent(ingress *RecognitionIngress, emp *employee.Employee, hash string) *recognition.RecognitionEvent {
	var employeeID *uuid.UUID
	if emp != nil {
		employeeID = &emp.ID
	}

	return &recognition.RecognitionEvent{
		ID:                   uuid.New(),
		DeviceID:             ingress.DeviceID,
		EmployeeID:           employeeID,
		CapturedAt:           ingress.CapturedAt,
		Embedding:            ingress.embeddingArray(),
		SimilarityScore:      ingress.SimilarityScore,
		LivenessScore:        ingress.LivenessScore,
		LivenessPassed:       ingress.LivenessPassed,
		FaceBox:              ingress.faceBox(),
		SnapshotURL:          ingress.SnapshotURL,
		ProcessingDurationMs: ingress.ProcessingDurationMs,
		DedupHash:            &hash,
	}
}

func (p *Pipeline) buildRecord(event *recognition.RecognitionEvent, emp *employee.Employee, ingress *RecognitionIngress, eval policy.Evaluation) *attendance.Record {
	return &attendance.Record{
		ID:                 uuid.New(),
		EmployeeID:         emp.ID,
		DeviceID:           ingress.DeviceID,
		RecognitionEventID: &event.ID,
		ShiftID:            emp.ShiftID,
		AttendanceDate:     p.zone.BusinessDate(ingress.CapturedAt),
		EventTime:          ingress.CapturedAt,
		EventType:          eval.EventType,
		IsLate:             eval.Status == policy.StatusLateIn,
		IsEarlyOut:         eval.Status == policy.StatusEarlyOut,
		IsOvertime:         eval.Status == policy.StatusOvertime,
		Status:             attendance.StatusValid,
	}
}

func (p *Pipeline) publish(ctx context.Context, outcome *Outcome, emp *employee.Employee, hash string) {
	if p.bus == nil || outcome == nil {
		return
	}
	switch outcome.Kind {
	case OutcomeDuplicate:
		p.bus.Publish(ctx, events.NewRecognitionDuplicateEvent(outcome.Event.ID, outcome.Event.DeviceID, hash))
	case OutcomeRecorded:
		p.bus.Publish(ctx, events.NewAttendanceRecordedEvent(outcome.Record.ID, outcome.Record.EmployeeID, string(outcome.Record.EventType), ""))
	case OutcomeRejected:
		if emp != nil {
			p.bus.Publish(ctx, events.NewAttendanceRejectedEvent(outcome.Event.ID, emp.ID, outcome.Reason))
		}
	}
}
