package models

import "time"

// Constraint types. Only ConstraintUnavailable gates slot feasibility; the
// remaining types surface through suggestions.
const (
	ConstraintUnavailable  = "unavailable"
	ConstraintPreferred    = "preferred"
	ConstraintBreak        = "break"
	ConstraintNoBackToBack = "no_back_to_back"
)

// Constraint restricts or favours certain times for a user. A nil DayOfWeek
// applies to every day; nil times make the constraint all-day.
type Constraint struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Type      string    `db:"type" json:"type"`
	DayOfWeek *int      `db:"day_of_week" json:"day_of_week"`
	StartTime *string   `db:"start_time" json:"start_time"`
	EndTime   *string   `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
