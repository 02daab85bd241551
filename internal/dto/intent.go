package dto

// Intent kinds emitted by the free-text parser.
const (
	IntentCreateSession    = "create_session"
	IntentCreateConstraint = "create_constraint"
	IntentUnknown          = "unknown"
)

// SessionDraft is a parsed but not yet persisted session. The course is
// referenced by name; the caller resolves it to an id before creation.
type SessionDraft struct {
	CourseName string `json:"course_name"`
	Type       string `json:"type"`
	DayOfWeek  *int   `json:"day_of_week"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

// ParseIntentResponse is the structured reading of one free-text instruction.
// Missing lists the fields the text did not pin down.
type ParseIntentResponse struct {
	Intent     string                   `json:"intent"`
	Session    *SessionDraft            `json:"session,omitempty"`
	Constraint *CreateConstraintRequest `json:"constraint,omitempty"`
	Missing    []string                 `json:"missing"`
}
