// Package planner implements the weekly timetable generation engine: a pure,
// deterministic, single-pass computation over one user's sessions, courses
// and constraints. Placement is a greedy first-fit by priority order; it is
// deliberately not an exhaustive solver and may fail to place a session a
// different ordering would have fit.
package planner

import "github.com/campusplan/planner-api/internal/models"

const (
	reasonInvalidSession = "invalid session data"

	emptyInputSuggestion = "Add courses and sessions to generate a weekly plan"
)

// Build runs the full generation pass: validation, prioritisation, placement,
// scoring and suggestions. It never fails; unplaceable or malformed sessions
// become conflicts and generation continues.
func Build(input Input) Result {
	result := Result{
		Week:        newWeek(),
		Conflicts:   []Conflict{},
		Suggestions: []string{},
	}

	if len(input.Sessions) == 0 {
		result.Suggestions = append(result.Suggestions, emptyInputSuggestion)
		result.Stats = computeStats(&result.Week)
		return result
	}

	valid := make([]models.Session, 0, len(input.Sessions))
	for _, session := range input.Sessions {
		if err := validateSession(session); err != "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Session:     session,
				Reason:      err,
				Suggestions: []string{},
			})
			continue
		}
		valid = append(valid, session)
	}

	searcher := newPlacer(input.Constraints)
	for _, session := range prioritize(valid, input.Courses) {
		placement, ok := searcher.place(&result.Week, session)
		if !ok {
			result.Conflicts = append(result.Conflicts, Conflict{
				Session:     session,
				Reason:      reasonNoSlot,
				Suggestions: conflictSuggestions(),
			})
			continue
		}
		result.Week.insert(placement)
	}

	result.Score = scoreWeek(&result.Week, result.Conflicts)
	result.Suggestions = suggest(&result.Week, result.Conflicts)
	result.Stats = computeStats(&result.Week)
	return result
}

// Optimize re-sorts each day of a previous result by start time and
// recomputes the derived fields. It is a local tidy, not a re-solve: no
// placement search is rerun and conflicts carry over unchanged.
func Optimize(previous Result) Result {
	result := previous
	for day := range result.Week {
		placements := make([]Placement, len(previous.Week[day].Placements))
		copy(placements, previous.Week[day].Placements)
		result.Week[day].Placements = placements
		sortDay(&result.Week[day])
	}
	result.Score = scoreWeek(&result.Week, result.Conflicts)
	result.Suggestions = suggest(&result.Week, result.Conflicts)
	result.Stats = computeStats(&result.Week)
	return result
}

// validateSession guards against records that slipped past upstream
// validation. It returns a conflict reason or empty when the session is fine.
func validateSession(session models.Session) string {
	if session.Type == "" {
		return reasonInvalidSession
	}
	if session.DayOfWeek < 0 || session.DayOfWeek > 6 {
		return reasonInvalidSession
	}
	start, okStart := parseClock(session.StartTime)
	end, okEnd := parseClock(session.EndTime)
	if !okStart || !okEnd || start >= end {
		return reasonInvalidSession
	}
	return ""
}

func computeStats(week *Week) Stats {
	stats := Stats{SessionsByType: map[string]int{}}
	for day, bucket := range week {
		stats.SessionsByDay[day] = len(bucket.Placements)
		if len(bucket.Placements) > 0 {
			stats.WorkingDays++
		}
		stats.TotalSessions += len(bucket.Placements)
		stats.TotalHours += bucket.Hours
		for _, pl := range bucket.Placements {
			stats.SessionsByType[pl.Session.Type]++
		}
	}
	return stats
}
