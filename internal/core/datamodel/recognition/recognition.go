package recognition

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Embedding is a 512-float face embedding, marshaled to JSON for storage —
// the retrieval pack carries no vector-column driver, so a portable JSON
// array column is the grounded fallback (see the dedicated standard-library
// justification in DESIGN.md).
type Embedding [512]float32

func (e Embedding) Value() (driver.Value, error) {
	return json.Marshal(e)
}

func (e *Embedding) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		if s, ok := src.(string); ok {
			b = []byte(s)
		} else {
			return fmt.Errorf("embedding: unsupported scan type %T", src)
		}
	}
	return json.Unmarshal(b, e)
}

type RecognitionEvent struct {
	ID         uuid.UUID  `gorm:"column:id;primaryKey;type:uuid"`
	DeviceID   uuid.UUID  `gorm:"column:device_id;type:uuid;not null"`
	EmployeeID *uuid.UUID `gorm:"column:employee_id;type:uuid"`

	CapturedAt time.Time `gorm:"column:captured_at;not null;index:idx_recognition_events_recent,priority:3"`
	Embedding  Embedding `gorm:"column:embedding;type:jsonb"`

	SimilarityScore *float64 `gorm:"column:similarity_score"`
	LivenessScore   *float64 `gorm:"column:liveness_score"`
	LivenessPassed  *bool    `gorm:"column:liveness_passed"`

	FaceBoxX *int `gorm:"column:face_box_x"`
	FaceBoxY *int `gorm:"column:face_box_y"`
	FaceBoxW *int `gorm:"column:face_box_w"`
	FaceBoxH *int `gorm:"column:face_box_h"`

	SnapshotURL          string `gorm:"column:snapshot_url"`
	ProcessingDurationMs *int   `gorm:"column:processing_duration_ms"`

	DedupHash *string `gorm:"column:dedup_hash;uniqueIndex:idx_recognition_events_dedup_hash,where:dedup_hash IS NOT NULL"`
	Status    string  `gorm:"column:status;not null;default:PENDING"`
}

func (RecognitionEvent) TableName() string { return "recognition_events" }
