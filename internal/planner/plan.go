package planner

import "github.com/campusplan/planner-api/internal/models"

// Input is the snapshot of one user's records the engine works from. The
// engine never reads from storage or cache itself.
type Input struct {
	Sessions    []models.Session
	Courses     []models.Course
	Constraints []models.Constraint
}

// Placement binds a session to the concrete day and time range it was
// scheduled at. Flags record how far it moved from the requested slot.
type Placement struct {
	Session        models.Session `json:"session"`
	DayOfWeek      int            `json:"day_of_week"`
	StartTime      string         `json:"start_time"`
	EndTime        string         `json:"end_time"`
	IsAlternative  bool           `json:"is_alternative"`
	IsDifferentDay bool           `json:"is_different_day"`
}

// Day holds the placements for one weekday sorted by start time plus the
// scheduled hour total.
type Day struct {
	Placements []Placement `json:"placements"`
	Hours      float64     `json:"hours"`
}

// Week maps day-of-week (0=Sunday .. 6=Saturday) to its day bucket.
type Week [7]Day

// Conflict records a session no feasible slot was found for.
type Conflict struct {
	Session     models.Session `json:"session"`
	Reason      string         `json:"reason"`
	Suggestions []string       `json:"suggestions"`
}

// Stats summarises the assembled week.
type Stats struct {
	TotalSessions  int            `json:"total_sessions"`
	TotalHours     float64        `json:"total_hours"`
	WorkingDays    int            `json:"working_days"`
	SessionsByType map[string]int `json:"sessions_by_type"`
	SessionsByDay  [7]int         `json:"sessions_by_day"`
}

// Result is the complete outcome of one generation pass.
type Result struct {
	Week        Week       `json:"week"`
	Conflicts   []Conflict `json:"conflicts"`
	Suggestions []string   `json:"suggestions"`
	Score       float64    `json:"score"`
	Stats       Stats      `json:"stats"`
}

func newWeek() Week {
	var week Week
	for i := range week {
		week[i].Placements = []Placement{}
	}
	return week
}
