package planner

// Scoring weights. The score starts at 100 and is clamped to [0, 100].
const (
	conflictPenalty  = 20.0
	imbalanceWeight  = 5.0
	longGapPenalty   = 5.0
	hugeGapPenalty   = 10.0
	longGapMinutes   = 120
	hugeGapMinutes   = 180
	daytimeBonus     = 2.0
	daytimeStartHour = 9
	daytimeEndHour   = 17
)

// scoreWeek computes the plan quality score. Empty days count as zero hours
// in the imbalance term, so a single loaded day is penalised.
func scoreWeek(week *Week, conflicts []Conflict) float64 {
	score := 100.0

	score -= conflictPenalty * float64(len(conflicts))

	minHours, maxHours := week.hourSpread()
	score -= imbalanceWeight * (maxHours - minHours)

	for _, day := range week {
		if len(day.Placements) < 2 {
			continue
		}
		for _, gap := range day.gaps() {
			if gap > longGapMinutes {
				score -= longGapPenalty
			}
			if gap > hugeGapMinutes {
				score -= hugeGapPenalty
			}
		}
	}

	for _, day := range week {
		for _, pl := range day.Placements {
			start, _ := parseClock(pl.StartTime)
			hour := start / 60
			if hour >= daytimeStartHour && hour <= daytimeEndHour {
				score += daytimeBonus
			}
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
