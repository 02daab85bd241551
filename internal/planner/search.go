package planner

import "github.com/campusplan/planner-api/internal/models"

const reasonNoSlot = "No available time slots found"

func conflictSuggestions() []string {
	return []string{
		"Try adjusting the session timing",
		"Check your availability constraints",
		"Review other sessions scheduled on this day",
	}
}

// block is a parsed unavailable window. A nil day applies to every day;
// missing times expand to the whole day.
type block struct {
	day   *int
	start int
	end   int
}

// placer runs the greedy first-fit slot search against the week built so far.
type placer struct {
	blocks []block
}

func newPlacer(constraints []models.Constraint) *placer {
	p := &placer{}
	for _, c := range constraints {
		if c.Type != models.ConstraintUnavailable {
			continue
		}
		b := block{day: c.DayOfWeek, start: 0, end: minutesPerDay}
		if c.StartTime != nil && c.EndTime != nil {
			start, okStart := parseClock(*c.StartTime)
			end, okEnd := parseClock(*c.EndTime)
			if okStart && okEnd {
				b.start = start
				b.end = end
			}
		}
		p.blocks = append(p.blocks, b)
	}
	return p
}

// place finds a slot for the session: the requested slot first, then
// same-day alternatives, then Monday through Friday in order. It reports
// false when no feasible slot exists anywhere.
func (p *placer) place(week *Week, session models.Session) (Placement, bool) {
	start, _ := parseClock(session.StartTime)
	end, _ := parseClock(session.EndTime)
	duration := end - start

	if p.available(week, session.DayOfWeek, start, end) {
		return Placement{
			Session:   session,
			DayOfWeek: session.DayOfWeek,
			StartTime: session.StartTime,
			EndTime:   session.EndTime,
		}, true
	}

	if altStart, altEnd, ok := p.scanDay(week, session.DayOfWeek, start, duration); ok {
		return Placement{
			Session:       session,
			DayOfWeek:     session.DayOfWeek,
			StartTime:     formatClock(altStart),
			EndTime:       formatClock(altEnd),
			IsAlternative: true,
		}, true
	}

	for day := 1; day <= 5; day++ {
		if day == session.DayOfWeek {
			continue
		}
		if altStart, altEnd, ok := p.scanDay(week, day, start, duration); ok {
			return Placement{
				Session:        session,
				DayOfWeek:      day,
				StartTime:      formatClock(altStart),
				EndTime:        formatClock(altEnd),
				IsDifferentDay: true,
			}, true
		}
	}

	return Placement{}, false
}

// scanDay walks the candidate slots from the first mark at or after the
// requested start, looking for a window of the session's duration. Earlier
// marks are not revisited: a session asked for at 09:00 should not drift to
// 08:00 just because the morning is empty.
func (p *placer) scanDay(week *Week, day, requestedStart, duration int) (int, int, bool) {
	for _, slot := range slotTimes() {
		if slot < requestedStart {
			continue
		}
		end, ok := addMinutes(slot, duration)
		if !ok {
			continue
		}
		if p.available(week, day, slot, end) {
			return slot, end, true
		}
	}
	return 0, 0, false
}

// available reports whether the range is free of existing placements and
// unavailable windows on the given day.
func (p *placer) available(week *Week, day, start, end int) bool {
	if day < 0 || day > 6 {
		return false
	}
	for _, placed := range week[day].Placements {
		ps, _ := parseClock(placed.StartTime)
		pe, _ := parseClock(placed.EndTime)
		if overlaps(start, end, ps, pe) {
			return false
		}
	}
	for _, b := range p.blocks {
		if b.day != nil && *b.day != day {
			continue
		}
		if overlaps(start, end, b.start, b.end) {
			return false
		}
	}
	return true
}
