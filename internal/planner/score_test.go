package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusplan/planner-api/internal/models"
)

func buildWeek(placements ...Placement) Week {
	week := newWeek()
	for _, pl := range placements {
		week.insert(pl)
	}
	return week
}

func makePlacement(day int, start, end string) Placement {
	return Placement{
		Session:   models.Session{Type: models.SessionLecture},
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
	}
}

func TestScoreWeekEmptyWeek(t *testing.T) {
	week := newWeek()
	assert.Equal(t, 100.0, scoreWeek(&week, nil))
}

func TestScoreWeekConflictPenalty(t *testing.T) {
	week := newWeek()
	conflicts := []Conflict{{}, {}}
	assert.Equal(t, 60.0, scoreWeek(&week, conflicts))
}

func TestScoreWeekImbalancePenalty(t *testing.T) {
	// Four hours on Monday against an empty rest of the week, offset by the
	// daytime bonus for the 09:00 start.
	week := buildWeek(makePlacement(1, "09:00", "13:00"))
	assert.InDelta(t, 82.0, scoreWeek(&week, nil), 0.001)
}

func TestScoreWeekGapPenalties(t *testing.T) {
	// A 150 minute gap costs 5; a 240 minute gap costs 5 and 10 more.
	long := buildWeek(
		makePlacement(1, "09:00", "10:00"),
		makePlacement(1, "12:30", "13:30"),
	)
	huge := buildWeek(
		makePlacement(2, "09:00", "10:00"),
		makePlacement(2, "14:00", "15:00"),
	)

	longScore := scoreWeek(&long, nil)
	hugeScore := scoreWeek(&huge, nil)
	assert.InDelta(t, 10.0, longScore-hugeScore, 0.001)
}

func TestScoreWeekDaytimeBonus(t *testing.T) {
	early := buildWeek(makePlacement(1, "08:00", "09:00"))
	daytime := buildWeek(makePlacement(1, "09:00", "10:00"))
	late := buildWeek(makePlacement(1, "18:00", "19:00"))

	assert.InDelta(t, 2.0, scoreWeek(&daytime, nil)-scoreWeek(&early, nil), 0.001)
	assert.InDelta(t, scoreWeek(&early, nil), scoreWeek(&late, nil), 0.001)
}

func TestScoreWeekClampsToRange(t *testing.T) {
	week := newWeek()
	conflicts := make([]Conflict, 10)
	assert.Equal(t, 0.0, scoreWeek(&week, conflicts))

	full := newWeek()
	for day := 0; day <= 6; day++ {
		full.insert(makePlacement(day, "09:00", "10:00"))
		full.insert(makePlacement(day, "10:00", "11:00"))
	}
	assert.Equal(t, 100.0, scoreWeek(&full, nil))
}
