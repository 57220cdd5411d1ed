// Package recognition holds the RecognitionEvent entity — the durable,
// append-only record of a single edge-camera recognition attempt — and the
// Event Store port the ingestion pipeline dedups and persists against.
package recognition

import (
	"time"

	"github.com/google/uuid"

	recognitionDatamodel "github.com/hasanuzzaman/attendance-core/internal/core/datamodel/recognition"
)

const (
	StatusPending   = "PENDING"
	StatusProcessed = "PROCESSED"
	StatusFailed    = "FAILED"
	StatusDuplicate = "DUPLICATE"
)

// FaceBox is the bounding box of the detected face within the snapshot, in
// pixel coordinates.
type FaceBox struct {
	X, Y, W, H int
}

// RecognitionEvent is one edge-camera capture, written exactly once and
// never updated thereafter.
type RecognitionEvent struct {
	ID         uuid.UUID
	DeviceID   uuid.UUID
	EmployeeID *uuid.UUID

	CapturedAt time.Time
	Embedding  [512]float32

	SimilarityScore *float64
	LivenessScore   *float64
	LivenessPassed  *bool

	FaceBox *FaceBox

	SnapshotURL          string
	ProcessingDurationMs *int

	DedupHash *string
	Status    string
}

// ValidMatch reports whether this event is confident enough to drive
// attendance: an employee was resolved, similarity clears minSimilarity,
// and liveness — when reported at all — passed.
func (e *RecognitionEvent) ValidMatch(minSimilarity float64) bool {
	if e.EmployeeID == nil {
		return false
	}
	if e.SimilarityScore == nil || *e.SimilarityScore < minSimilarity {
		return false
	}
	if e.LivenessPassed != nil && !*e.LivenessPassed {
		return false
	}
	return true
}

// Repository is the Event Store port: dedup lookups and inserts for the
// ingestion pipeline, plus the audit queries reporting consumes.
type Repository interface {
	ExistsByFingerprint(hash string) (bool, error)
	Insert(event *RecognitionEvent) error
	RecentFor(employeeID, deviceID uuid.UUID, since time.Time) ([]*RecognitionEvent, error)
	PurgeOlderThan(cutoff time.Time) (int64, error)
	ListByDateRange(from, to time.Time) ([]*RecognitionEvent, error)
}

// ErrDuplicateHash is returned by Insert when the store's uniqueness
// invariant on dedup_hash rejects the row — the definitive dedup signal a
// concurrent race can still produce after an exists_by_fingerprint miss.
var ErrDuplicateHash = duplicateHashError{}

type duplicateHashError struct{}

func (duplicateHashError) Error() string { return "recognition event: duplicate dedup hash" }

// ToDataModel converts a RecognitionEvent to its GORM row representation.
func ToDataModel(e *RecognitionEvent) *recognitionDatamodel.RecognitionEvent {
	row := &recognitionDatamodel.RecognitionEvent{
		ID:                   e.ID,
		DeviceID:             e.DeviceID,
		EmployeeID:           e.EmployeeID,
		CapturedAt:           e.CapturedAt,
		Embedding:            recognitionDatamodel.Embedding(e.Embedding),
		SimilarityScore:      e.SimilarityScore,
		LivenessScore:        e.LivenessScore,
		LivenessPassed:       e.LivenessPassed,
		SnapshotURL:          e.SnapshotURL,
		ProcessingDurationMs: e.ProcessingDurationMs,
		DedupHash:            e.DedupHash,
		Status:               e.Status,
	}
	if e.FaceBox != nil {
		row.FaceBoxX, row.FaceBoxY, row.FaceBoxW, row.FaceBoxH = &e.FaceBox.X, &e.FaceBox.Y, &e.FaceBox.W, &e.FaceBox.H
	}
	return row
}

// FromDataModel converts a GORM row back to a RecognitionEvent.
func FromDataModel(row *recognitionDatamodel.RecognitionEvent) *RecognitionEvent {
	e := &RecognitionEvent{
		ID:                   row.ID,
		DeviceID:             row.DeviceID,
		EmployeeID:           row.EmployeeID,
		CapturedAt:           row.CapturedAt,
		Embedding:            [512]float32(row.Embedding),
		SimilarityScore:      row.SimilarityScore,
		LivenessScore:        row.LivenessScore,
		LivenessPassed:       row.LivenessPassed,
		SnapshotURL:          row.SnapshotURL,
		ProcessingDurationMs: row.ProcessingDurationMs,
		DedupHash:            row.DedupHash,
		Status:               row.Status,
	}
	if row.FaceBoxX != nil && row.FaceBoxY != nil && row.FaceBoxW != nil && row.FaceBoxH != nil {
		e.FaceBox = &FaceBox{X: *row.FaceBoxX, Y: *row.FaceBoxY, W: *row.FaceBoxW, H: *row.FaceBoxH}
	}
	return e
}
