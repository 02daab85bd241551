package planner

import "sort"

// insert appends the placement to its day bucket, keeps the bucket sorted by
// start time and accumulates the day's hour total. Placements are never
// removed: a regeneration replaces the whole week.
func (w *Week) insert(pl Placement) {
	day := &w[pl.DayOfWeek]
	day.Placements = append(day.Placements, pl)
	sortDay(day)
	day.Hours += float64(durationMinutes(pl.StartTime, pl.EndTime)) / 60
}

func sortDay(day *Day) {
	sort.SliceStable(day.Placements, func(i, j int) bool {
		a, _ := parseClock(day.Placements[i].StartTime)
		b, _ := parseClock(day.Placements[j].StartTime)
		return a < b
	})
}

// gaps returns the idle minutes between consecutive placements of a day.
func (d Day) gaps() []int {
	if len(d.Placements) < 2 {
		return nil
	}
	gaps := make([]int, 0, len(d.Placements)-1)
	for i := 0; i < len(d.Placements)-1; i++ {
		end, _ := parseClock(d.Placements[i].EndTime)
		next, _ := parseClock(d.Placements[i+1].StartTime)
		gaps = append(gaps, next-end)
	}
	return gaps
}

// backToBackPairs counts consecutive placements where one ends exactly when
// the next begins.
func (d Day) backToBackPairs() int {
	count := 0
	for _, gap := range d.gaps() {
		if gap == 0 {
			count++
		}
	}
	return count
}

func (w *Week) hourSpread() (min, max float64) {
	min = w[0].Hours
	max = w[0].Hours
	for _, day := range w[1:] {
		if day.Hours < min {
			min = day.Hours
		}
		if day.Hours > max {
			max = day.Hours
		}
	}
	return min, max
}
