package policy

// EventType is the direction of a recognition-triggered attendance event.
type EventType string

const (
	EventTypeIn  EventType = "IN"
	EventTypeOut EventType = "OUT"
)

// Status is the timing classification attached to an approved event.
type Status string

const (
	StatusOnTimeIn  Status = "ON_TIME_IN"
	StatusLateIn    Status = "LATE_IN"
	StatusEarlyIn   Status = "EARLY_IN"
	StatusOnTimeOut Status = "ON_TIME_OUT"
	StatusEarlyOut  Status = "EARLY_OUT"
	StatusOvertime  Status = "OVERTIME_OUT"
)

// Compliance carries the timing metrics computed alongside Status. A field
// holds a defined value only when it applies to the event's EventType — the
// arrival fields are set for IN, the departure fields for OUT.
type Compliance struct {
	IsOnTime           bool
	IsEarlyArrival     bool
	IsLateArrival      bool
	IsEarlyDeparture   bool
	IsOvertime         bool
	WithinBreakWindow  bool
	LateMinutes        int
	OvertimeMinutes    int
	EarlyDepartureMins int
}

// Evaluation is the result of evaluating a recognition event against an
// employee's policy. Approved evaluations carry EventType/Status/Compliance;
// rejected ones carry only a human-readable RejectionReason.
type Evaluation struct {
	Approved        bool
	RejectionReason string
	EventType       EventType
	Status          Status
	Compliance      Compliance
}

func approved(eventType EventType, status Status, compliance Compliance) Evaluation {
	return Evaluation{Approved: true, EventType: eventType, Status: status, Compliance: compliance}
}

func rejected(reason string) Evaluation {
	return Evaluation{Approved: false, RejectionReason: reason}
}
