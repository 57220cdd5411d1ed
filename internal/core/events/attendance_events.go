package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeRecognitionDuplicate = "recognition.duplicate"
	EventTypeAttendanceRecorded   = "attendance.recorded"
	EventTypeAttendanceRejected   = "attendance.rejected"
)

// RecognitionDuplicateEvent fires when an ingress resolves to a dedup hash
// already present in the Event Store.
type RecognitionDuplicateEvent struct {
	BaseEvent
	RecognitionEventID uuid.UUID `json:"recognition_event_id"`
	DeviceID           uuid.UUID `json:"device_id"`
	DedupHash          string    `json:"dedup_hash"`
}

func NewRecognitionDuplicateEvent(recognitionEventID, deviceID uuid.UUID, dedupHash string) *RecognitionDuplicateEvent {
	return &RecognitionDuplicateEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeRecognitionDuplicate,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"recognition_event_id": recognitionEventID,
				"device_id":            deviceID,
				"dedup_hash":           dedupHash,
			},
		},
		RecognitionEventID: recognitionEventID,
		DeviceID:           deviceID,
		DedupHash:          dedupHash,
	}
}

// AttendanceRecordedEvent fires once an admitted recognition event has been
// appended to the ledger.
type AttendanceRecordedEvent struct {
	BaseEvent
	RecordID            uuid.UUID `json:"record_id"`
	EmployeeID          uuid.UUID `json:"employee_id"`
	AttendanceEventType string    `json:"event_type"`
	Status              string    `json:"status"`
}

func NewAttendanceRecordedEvent(recordID, employeeID uuid.UUID, eventType, status string) *AttendanceRecordedEvent {
	return &AttendanceRecordedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAttendanceRecorded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"record_id":   recordID,
				"employee_id": employeeID,
				"event_type":  eventType,
				"status":      status,
			},
		},
		RecordID:            recordID,
		EmployeeID:          employeeID,
		AttendanceEventType: eventType,
		Status:              status,
	}
}

// AttendanceRejectedEvent fires when policy evaluation rejects an otherwise
// valid-match recognition event — a window, cooldown, or policy-missing
// outcome an operator dashboard would want to surface.
type AttendanceRejectedEvent struct {
	BaseEvent
	RecognitionEventID uuid.UUID `json:"recognition_event_id"`
	EmployeeID         uuid.UUID `json:"employee_id"`
	Reason             string    `json:"reason"`
}

func NewAttendanceRejectedEvent(recognitionEventID, employeeID uuid.UUID, reason string) *AttendanceRejectedEvent {
	return &AttendanceRejectedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAttendanceRejected,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"recognition_event_id": recognitionEventID,
				"employee_id":          employeeID,
				"reason":               reason,
			},
		},
		RecognitionEventID: recognitionEventID,
		EmployeeID:         employeeID,
		Reason:             reason,
	}
}
