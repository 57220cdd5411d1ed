package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/hasanuzzaman/attendance-core/internal"
	attendancepg "github.com/hasanuzzaman/attendance-core/internal/attendance/postgres"
	"github.com/hasanuzzaman/attendance-core/internal/core/clock"
	"github.com/hasanuzzaman/attendance-core/internal/core/events"
	devicepg "github.com/hasanuzzaman/attendance-core/internal/device/postgres"
	employeepg "github.com/hasanuzzaman/attendance-core/internal/employee/postgres"
	"github.com/hasanuzzaman/attendance-core/internal/fingerprint"
	"github.com/hasanuzzaman/attendance-core/internal/ingestion"
	"github.com/hasanuzzaman/attendance-core/internal/policy"
	policypg "github.com/hasanuzzaman/attendance-core/internal/policy/postgres"
	recognitionpg "github.com/hasanuzzaman/attendance-core/internal/recognition/postgres"
	shiftpg "github.com/hasanuzzaman/attendance-core/internal/shift/postgres"
)

// buildPipeline wires the ingestion core the way startHTTPServer and the
// ingest command both need it: postgres adapters over db, the policy
// evaluator over the configured business zone, and an event bus any future
// subscriber (reporting, notifications) can attach handlers to.
func buildPipeline(db *gorm.DB, cfg *internal.Config, logger *slog.Logger) *ingestion.Pipeline {
	zone := clock.MustZone(cfg.Core.BusinessZone)

	registry := policy.NewRegistry(policypg.NewPolicyRepository(db))
	evaluator := policy.NewEvaluator(registry, shiftpg.NewShiftRepository(db), zone, nil)

	return ingestion.NewPipeline(
		db,
		employeepg.NewEmployeeRepository(db),
		devicepg.NewDeviceRepository(db),
		evaluator,
		recognitionpg.NewRecognitionRepository,
		attendancepg.NewLedgerRepository,
		clock.SystemClock{},
		zone,
		fingerprint.LocalFileSnapshotReader{},
		cfg.Core,
		logger,
		events.NewEventBus(logger),
	)
}
