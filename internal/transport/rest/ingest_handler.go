package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hasanuzzaman/attendance-core/internal/ingestion"
	"github.com/hasanuzzaman/attendance-core/internal/transport"
)

// ingressDTO is the wire shape of POST /api/v1/recognitions:ingest, per
// spec.md §6 — the payload an edge device's recognition pipeline posts
// once it has a precomputed embedding, similarity score and liveness
// verdict for a captured face.
type ingressDTO struct {
	DeviceID               uuid.UUID   `json:"device_id"`
	CapturedAt             time.Time   `json:"captured_at"`
	Embedding              []float32   `json:"embedding"`
	TopCandidateEmployeeID *uuid.UUID  `json:"top_candidate_employee_id,omitempty"`
	SimilarityScore        *float64    `json:"similarity_score,omitempty"`
	LivenessScore          *float64    `json:"liveness_score,omitempty"`
	LivenessPassed         *bool       `json:"liveness_passed,omitempty"`
	FaceBox                *faceBoxDTO `json:"face_box,omitempty"`
	SnapshotURL            string      `json:"snapshot_url,omitempty"`
	ProcessingDurationMs   *int        `json:"processing_duration_ms,omitempty"`
}

type faceBoxDTO struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

func (d *ingressDTO) toIngress() *ingestion.RecognitionIngress {
	ingress := &ingestion.RecognitionIngress{
		DeviceID:               d.DeviceID,
		CapturedAt:             d.CapturedAt,
		Embedding:              d.Embedding,
		TopCandidateEmployeeID: d.TopCandidateEmployeeID,
		SimilarityScore:        d.SimilarityScore,
		LivenessScore:          d.LivenessScore,
		LivenessPassed:         d.LivenessPassed,
		SnapshotURL:            d.SnapshotURL,
		ProcessingDurationMs:   d.ProcessingDurationMs,
	}
	if d.FaceBox != nil {
		ingress.FaceBox = &ingestion.FaceBoxIngress{X: d.FaceBox.X, Y: d.FaceBox.Y, W: d.FaceBox.W, H: d.FaceBox.H}
	}
	return ingress
}

// outcomeDTO is the JSON projection of ingestion.Outcome returned to the
// caller — the tagged union of spec.md §6, minus the Go error value on
// EvaluationError which doesn't marshal meaningfully.
type outcomeDTO struct {
	Kind   string `json:"kind"`
	Reason string `json:"reason,omitempty"`

	RecognitionEventID *uuid.UUID `json:"recognition_event_id,omitempty"`
	RecordID           *uuid.UUID `json:"record_id,omitempty"`
	EventType          string     `json:"event_type,omitempty"`
}

// IngestHandler adapts one HTTP POST onto the ingestion pipeline.
type IngestHandler struct {
	*transport.BaseHandler
	pipeline *ingestion.Pipeline
}

func NewIngestHandler(pipeline *ingestion.Pipeline) *IngestHandler {
	return &IngestHandler{
		BaseHandler: transport.NewBaseHandler(nil),
		pipeline:    pipeline,
	}
}

func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var dto ingressDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome, err := h.pipeline.Ingest(r.Context(), dto.toIngress())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, toOutcomeDTO(outcome))
}

func toOutcomeDTO(outcome *ingestion.Outcome) outcomeDTO {
	dto := outcomeDTO{Kind: string(outcome.Kind), Reason: outcome.Reason}
	if outcome.Event != nil {
		dto.RecognitionEventID = &outcome.Event.ID
	}
	if outcome.Record != nil {
		dto.RecordID = &outcome.Record.ID
		dto.EventType = string(outcome.Record.EventType)
	}
	return dto
}
