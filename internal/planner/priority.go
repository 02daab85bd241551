package planner

import (
	"sort"

	"github.com/campusplan/planner-api/internal/models"
)

// Lower rigidity is placed first: labs have the fewest viable rooms and
// times, seminars the most flexibility.
var typeRigidity = map[string]int{
	models.SessionLab:      1,
	models.SessionTutorial: 2,
	models.SessionLecture:  3,
	models.SessionSeminar:  4,
}

func rigidity(sessionType string) int {
	if r, ok := typeRigidity[sessionType]; ok {
		return r
	}
	return 5
}

// prioritize orders sessions for placement: course priority ascending, type
// rigidity ascending, then duration descending. The sort is stable so ties
// keep their input order.
func prioritize(sessions []models.Session, courses []models.Course) []models.Session {
	priorities := make(map[string]int, len(courses))
	for _, course := range courses {
		priorities[course.ID] = course.Priority
	}

	ordered := make([]models.Session, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		pi := coursePriority(priorities, ordered[i].CourseID)
		pj := coursePriority(priorities, ordered[j].CourseID)
		if pi != pj {
			return pi < pj
		}
		ri := rigidity(ordered[i].Type)
		rj := rigidity(ordered[j].Type)
		if ri != rj {
			return ri < rj
		}
		return durationMinutes(ordered[i].StartTime, ordered[i].EndTime) >
			durationMinutes(ordered[j].StartTime, ordered[j].EndTime)
	})
	return ordered
}

func coursePriority(priorities map[string]int, courseID string) int {
	if p, ok := priorities[courseID]; ok && p >= models.PriorityHigh && p <= models.PriorityLow {
		return p
	}
	return models.PriorityMedium
}
