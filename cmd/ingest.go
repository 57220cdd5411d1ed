package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hasanuzzaman/attendance-core/internal/ingestion"
	"github.com/hasanuzzaman/attendance-core/pkg/logger"
)

var (
	ingestDeviceCode string
	ingestEmployeeID string
	ingestSimilarity float64
	ingestLiveness   bool
)

// ingestCmd posts one synthetic RecognitionIngress through the pipeline
// from the command line, for operational poking without standing up the
// HTTP server — the analogue of the teacher's `event publish` command for
// the event bus.
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run one recognition ingress through the pipeline",
	RunE:  runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestDeviceCode, "device", "DOOR-1", "device_code of the capturing device")
	ingestCmd.Flags().StringVar(&ingestEmployeeID, "employee-id", "", "uuid of the top-candidate employee (blank for no match)")
	ingestCmd.Flags().Float64Var(&ingestSimilarity, "similarity", 0.9, "similarity_score to report")
	ingestCmd.Flags().BoolVar(&ingestLiveness, "liveness", true, "liveness_passed to report")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.Source), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("ingest: opening db: %w", err)
	}

	var deviceRow struct{ ID uuid.UUID }
	if err := db.Table("devices").Select("id").Where("device_code = ?", ingestDeviceCode).Scan(&deviceRow).Error; err != nil {
		return fmt.Errorf("ingest: resolving device %q: %w", ingestDeviceCode, err)
	}
	if deviceRow.ID == uuid.Nil {
		return fmt.Errorf("ingest: no device with device_code %q", ingestDeviceCode)
	}

	embedding := make([]float32, 512)
	embedding[0] = 1

	ingress := &ingestion.RecognitionIngress{
		DeviceID:        deviceRow.ID,
		CapturedAt:      time.Now().UTC(),
		Embedding:       embedding,
		SimilarityScore: &ingestSimilarity,
		LivenessPassed:  &ingestLiveness,
	}
	if ingestEmployeeID != "" {
		id, err := uuid.Parse(ingestEmployeeID)
		if err != nil {
			return fmt.Errorf("ingest: invalid --employee-id: %w", err)
		}
		ingress.TopCandidateEmployeeID = &id
	}

	pipeline := buildPipeline(db, cfg, logger.LoggerWrapper())
	outcome, err := pipeline.Ingest(context.Background(), ingress)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	fmt.Printf("outcome=%s", outcome.Kind)
	if outcome.Reason != "" {
		fmt.Printf(" reason=%q", outcome.Reason)
	}
	if outcome.Record != nil {
		fmt.Printf(" record_id=%s event_type=%s", outcome.Record.ID, outcome.Record.EventType)
	}
	fmt.Println()
	return nil
}
