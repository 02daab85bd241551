package models

import "time"

// Session types, ordered here by how hard they are to reschedule.
const (
	SessionLecture  = "lecture"
	SessionLab      = "lab"
	SessionTutorial = "tutorial"
	SessionSeminar  = "seminar"
)

// Session is a recurring weekly meeting belonging to a course. DayOfWeek and
// the time range express the requested slot; the generated plan may place the
// session elsewhere.
type Session struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	CourseID   string    `db:"course_id" json:"course_id"`
	Type       string    `db:"type" json:"type"`
	DayOfWeek  int       `db:"day_of_week" json:"day_of_week"`
	StartTime  string    `db:"start_time" json:"start_time"`
	EndTime    string    `db:"end_time" json:"end_time"`
	Location   string    `db:"location" json:"location"`
	Instructor string    `db:"instructor" json:"instructor"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
