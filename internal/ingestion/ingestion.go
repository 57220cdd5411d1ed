// Package ingestion implements the recognition-to-attendance pipeline: it
// takes one edge-camera RecognitionIngress and turns it into a dedup check,
// a durable RecognitionEvent, a policy evaluation, and — when admitted — an
// appended AttendanceRecord.
package ingestion

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/hasanuzzaman/attendance-core/internal"
	"github.com/hasanuzzaman/attendance-core/internal/attendance"
	"github.com/hasanuzzaman/attendance-core/internal/recognition"
)

const embeddingDimension = 512

// FaceBoxIngress is the face-detection bounding box as reported by the edge
// device, before it's accepted into a recognition.FaceBox.
type FaceBoxIngress struct {
	X, Y, W, H int
}

// RecognitionIngress is the inbound payload from an edge device — the wire
// shape an (out of scope) HTTP adapter decodes into before handing it to
// the pipeline.
type RecognitionIngress struct {
	DeviceID               uuid.UUID
	CapturedAt             time.Time
	Embedding              []float32
	TopCandidateEmployeeID *uuid.UUID
	SimilarityScore        *float64
	LivenessScore          *float64
	LivenessPassed         *bool
	FaceBox                *FaceBoxIngress
	SnapshotURL            string
	ProcessingDurationMs   *int
}

// Validate enforces the structural/range checks spec'd for the ingress
// envelope. A validation failure means nothing is persisted — the caller
// gets BadInput back and resubmits.
func (r *RecognitionIngress) Validate() error {
	if r.DeviceID == uuid.Nil {
		return badInput("device_id is required")
	}
	if r.CapturedAt.IsZero() {
		return badInput("captured_at is required")
	}
	if len(r.Embedding) != embeddingDimension {
		return badInput(fmt.Sprintf("embedding must have exactly %d elements, got %d", embeddingDimension, len(r.Embedding)))
	}
	if r.SimilarityScore != nil && (*r.SimilarityScore < 0 || *r.SimilarityScore > 1) {
		return badInput("similarity_score must be within [0, 1]")
	}
	if r.LivenessScore != nil && (*r.LivenessScore < 0 || *r.LivenessScore > 1) {
		return badInput("liveness_score must be within [0, 1]")
	}
	if r.FaceBox != nil {
		if r.FaceBox.X < 0 || r.FaceBox.Y < 0 {
			return badInput("face_box.x and face_box.y must be >= 0")
		}
		if r.FaceBox.W < 1 || r.FaceBox.H < 1 {
			return badInput("face_box.w and face_box.h must be >= 1")
		}
	}
	if r.SnapshotURL != "" {
		u, err := url.Parse(r.SnapshotURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return badInput("snapshot_url must be a valid http(s) URL")
		}
	}
	if r.ProcessingDurationMs != nil && *r.ProcessingDurationMs < 0 {
		return badInput("processing_duration_ms must be >= 0")
	}
	return nil
}

// embeddingArray converts the validated slice into the fixed-size array
// the domain entity stores. Callers must Validate first.
func (r *RecognitionIngress) embeddingArray() [embeddingDimension]float32 {
	var arr [embeddingDimension]float32
	copy(arr[:], r.Embedding)
	return arr
}

func (r *RecognitionIngress) faceBox() *recognition.FaceBox {
	if r.FaceBox == nil {
		return nil
	}
	return &recognition.FaceBox{X: r.FaceBox.X, Y: r.FaceBox.Y, W: r.FaceBox.W, H: r.FaceBox.H}
}

func badInput(message string) error {
	return apperrors.NewValidationError(message, apperrors.ErrCodeBadInput)
}

// OutcomeKind tags the disjoint cases ingest() can resolve to.
type OutcomeKind string

const (
	OutcomeDuplicate       OutcomeKind = "DUPLICATE"
	OutcomeStored          OutcomeKind = "STORED"
	OutcomeRecorded        OutcomeKind = "RECORDED"
	OutcomeRejected        OutcomeKind = "REJECTED"
	OutcomeEvaluationError OutcomeKind = "EVALUATION_ERROR"
	OutcomeTimeout         OutcomeKind = "TIMEOUT"
)

// Outcome is the tagged union ingest() returns in place of throwing:
// rejections, duplicates and evaluator failures are all data, not errors.
type Outcome struct {
	Kind   OutcomeKind
	Event  *recognition.RecognitionEvent
	Record *attendance.Record
	Reason string
	Err    error
}
