package planner

import "fmt"

var dayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

const (
	imbalanceThresholdHours = 3.0
	backToBackThreshold     = 2
)

// suggest runs the rule-based improvement checks. Rules are independent and
// append in a fixed order; when none triggers a single affirmation is
// returned.
func suggest(week *Week, conflicts []Conflict) []string {
	suggestions := []string{}

	minHours, maxHours := week.hourSpread()
	if maxHours-minHours > imbalanceThresholdHours {
		suggestions = append(suggestions, "Consider redistributing sessions to balance your daily workload")
	}

	for day, bucket := range week {
		for _, gap := range bucket.gaps() {
			if gap > longGapMinutes {
				suggestions = append(suggestions, fmt.Sprintf("You have long gaps on %s; consider filling them with study time", dayNames[day]))
				break
			}
		}
	}

	if len(conflicts) == 1 {
		suggestions = append(suggestions, "Resolve 1 scheduling conflict")
	} else if len(conflicts) > 1 {
		suggestions = append(suggestions, fmt.Sprintf("Resolve %d scheduling conflicts", len(conflicts)))
	}

	for day, bucket := range week {
		if bucket.backToBackPairs() > backToBackThreshold {
			suggestions = append(suggestions, fmt.Sprintf("Consider adding breaks between back-to-back sessions on %s", dayNames[day]))
		}
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, "Your schedule looks well balanced")
	}
	return suggestions
}
