package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusplan/planner-api/internal/models"
)

func TestPrioritizeOrdersByCourseThenRigidityThenDuration(t *testing.T) {
	courses := []models.Course{
		{ID: "high", Priority: models.PriorityHigh},
		{ID: "low", Priority: models.PriorityLow},
	}
	sessions := []models.Session{
		makeSession("low-lecture", "low", models.SessionLecture, 1, "09:00", "10:00"),
		makeSession("high-seminar", "high", models.SessionSeminar, 1, "09:00", "10:00"),
		makeSession("high-lab", "high", models.SessionLab, 1, "09:00", "10:00"),
		makeSession("high-lecture-long", "high", models.SessionLecture, 1, "09:00", "12:00"),
		makeSession("high-lecture-short", "high", models.SessionLecture, 1, "09:00", "10:00"),
	}

	ordered := prioritize(sessions, courses)
	ids := make([]string, 0, len(ordered))
	for _, s := range ordered {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{
		"high-lab",
		"high-lecture-long",
		"high-lecture-short",
		"high-seminar",
		"low-lecture",
	}, ids)
}

func TestPrioritizeIsStableOnTies(t *testing.T) {
	courses := []models.Course{{ID: "c1", Priority: models.PriorityMedium}}
	sessions := []models.Session{
		makeSession("first", "c1", models.SessionLecture, 1, "09:00", "10:00"),
		makeSession("second", "c1", models.SessionLecture, 2, "09:00", "10:00"),
		makeSession("third", "c1", models.SessionLecture, 3, "09:00", "10:00"),
	}

	ordered := prioritize(sessions, courses)
	require.Len(t, ordered, 3)
	assert.Equal(t, "first", ordered[0].ID)
	assert.Equal(t, "second", ordered[1].ID)
	assert.Equal(t, "third", ordered[2].ID)
}

func TestPrioritizeDoesNotMutateInput(t *testing.T) {
	courses := []models.Course{
		{ID: "high", Priority: models.PriorityHigh},
		{ID: "low", Priority: models.PriorityLow},
	}
	sessions := []models.Session{
		makeSession("a", "low", models.SessionLecture, 1, "09:00", "10:00"),
		makeSession("b", "high", models.SessionLecture, 1, "09:00", "10:00"),
	}

	prioritize(sessions, courses)
	assert.Equal(t, "a", sessions[0].ID)
	assert.Equal(t, "b", sessions[1].ID)
}

func TestCoursePriorityFallsBackToMedium(t *testing.T) {
	priorities := map[string]int{"known": models.PriorityHigh, "zero": 0, "wild": 42}
	assert.Equal(t, models.PriorityHigh, coursePriority(priorities, "known"))
	assert.Equal(t, models.PriorityMedium, coursePriority(priorities, "missing"))
	assert.Equal(t, models.PriorityMedium, coursePriority(priorities, "zero"))
	assert.Equal(t, models.PriorityMedium, coursePriority(priorities, "wild"))
}

func TestUnknownSessionTypePlacesLast(t *testing.T) {
	courses := []models.Course{{ID: "c1", Priority: models.PriorityHigh}}
	sessions := []models.Session{
		makeSession("mystery", "c1", "workshop", 1, "09:00", "10:00"),
		makeSession("seminar", "c1", models.SessionSeminar, 1, "09:00", "10:00"),
	}

	ordered := prioritize(sessions, courses)
	assert.Equal(t, "seminar", ordered[0].ID)
	assert.Equal(t, "mystery", ordered[1].ID)
}
