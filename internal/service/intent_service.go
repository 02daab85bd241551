package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusplan/planner-api/internal/dto"
	"github.com/campusplan/planner-api/internal/models"
	appErrors "github.com/campusplan/planner-api/pkg/errors"
)

var dayKeywords = map[string]int{
	"sunday": 0, "sun": 0,
	"monday": 1, "mon": 1,
	"tuesday": 2, "tue": 2, "tues": 2,
	"wednesday": 3, "wed": 3,
	"thursday": 4, "thu": 4, "thurs": 4,
	"friday": 5, "fri": 5,
	"saturday": 6, "sat": 6,
}

var sessionKeywords = []struct {
	keyword     string
	sessionType string
}{
	{"lecture", models.SessionLecture},
	{"tutorial", models.SessionTutorial},
	{"seminar", models.SessionSeminar},
	{"lab", models.SessionLab},
	{"class", models.SessionLecture},
}

var constraintKeywords = []struct {
	phrase string
	kind   string
}{
	{"back to back", models.ConstraintNoBackToBack},
	{"back-to-back", models.ConstraintNoBackToBack},
	{"unavailable", models.ConstraintUnavailable},
	{"not available", models.ConstraintUnavailable},
	{"can't", models.ConstraintUnavailable},
	{"cannot", models.ConstraintUnavailable},
	{"busy", models.ConstraintUnavailable},
	{"block", models.ConstraintUnavailable},
	{"break", models.ConstraintBreak},
	{"prefer", models.ConstraintPreferred},
}

// timeRangePattern matches "9:00-11:00", "09:00 to 11:30" and bare-hour
// forms like "9 to 11".
var timeRangePattern = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\s*(?:-|–|to|until)\s*(\d{1,2})(?::(\d{2}))?\b`)

// courseNamePattern captures a quoted subject or one following "for".
var courseNamePattern = regexp.MustCompile(`"([^"]+)"|for ([a-zA-Z][a-zA-Z0-9 ]{1,60}?)(?:\son\b|\sat\b|\sfrom\b|$|[,.])`)

// IntentService turns free-text scheduling instructions into validated
// session or constraint drafts. It is a producer for the record stores and
// never calls the generation engine.
type IntentService struct {
	validator *validator.Validate
	logger    *zap.Logger
}

// NewIntentService constructs an IntentService.
func NewIntentService(validate *validator.Validate, logger *zap.Logger) *IntentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntentService{validator: validate, logger: logger}
}

// Parse extracts day, time range, subject and type keywords from the text
// and classifies the instruction.
func (s *IntentService) Parse(req dto.ParseIntentRequest) (*dto.ParseIntentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid intent payload")
	}

	text := strings.ToLower(strings.TrimSpace(req.Text))
	day := findDay(text)
	start, end, hasRange := findTimeRange(text)

	if kind, ok := findConstraintKind(text); ok {
		constraint := &dto.CreateConstraintRequest{Type: kind, DayOfWeek: day}
		missing := []string{}
		if hasRange {
			constraint.StartTime = &start
			constraint.EndTime = &end
		} else if kind == models.ConstraintUnavailable || kind == models.ConstraintBreak {
			missing = append(missing, "time_range")
		}
		if day == nil {
			missing = append(missing, "day_of_week")
		}
		return &dto.ParseIntentResponse{
			Intent:     dto.IntentCreateConstraint,
			Constraint: constraint,
			Missing:    missing,
		}, nil
	}

	if sessionType, ok := findSessionType(text); ok {
		draft := &dto.SessionDraft{
			CourseName: findCourseName(req.Text),
			Type:       sessionType,
			DayOfWeek:  day,
		}
		missing := []string{}
		if hasRange {
			draft.StartTime = start
			draft.EndTime = end
		} else {
			missing = append(missing, "time_range")
		}
		if day == nil {
			missing = append(missing, "day_of_week")
		}
		if draft.CourseName == "" {
			missing = append(missing, "course_name")
		}
		return &dto.ParseIntentResponse{
			Intent:  dto.IntentCreateSession,
			Session: draft,
			Missing: missing,
		}, nil
	}

	return &dto.ParseIntentResponse{Intent: dto.IntentUnknown, Missing: []string{"intent"}}, nil
}

func findDay(text string) *int {
	for _, word := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '!' || r == '?'
	}) {
		if day, ok := dayKeywords[word]; ok {
			d := day
			return &d
		}
	}
	return nil
}

func findTimeRange(text string) (string, string, bool) {
	match := timeRangePattern.FindStringSubmatch(text)
	if match == nil {
		return "", "", false
	}
	startHour, _ := strconv.Atoi(match[1])
	endHour, _ := strconv.Atoi(match[3])
	startMinute := 0
	if match[2] != "" {
		startMinute, _ = strconv.Atoi(match[2])
	}
	endMinute := 0
	if match[4] != "" {
		endMinute, _ = strconv.Atoi(match[4])
	}

	// Bare hours in everyday speech are ambiguous; "2 to 4" means afternoon.
	if match[2] == "" && startHour >= 1 && startHour <= 7 {
		startHour += 12
	}
	if match[4] == "" && endHour >= 1 && endHour <= 7 {
		endHour += 12
	}
	if strings.Contains(text, "pm") {
		if startHour < 12 {
			startHour += 12
		}
		if endHour < 12 {
			endHour += 12
		}
	}

	if startHour > 23 || endHour > 23 || startMinute > 59 || endMinute > 59 {
		return "", "", false
	}
	start := fmt.Sprintf("%02d:%02d", startHour, startMinute)
	end := fmt.Sprintf("%02d:%02d", endHour, endMinute)
	if startHour*60+startMinute >= endHour*60+endMinute {
		return "", "", false
	}
	return start, end, true
}

func findSessionType(text string) (string, bool) {
	for _, entry := range sessionKeywords {
		if strings.Contains(text, entry.keyword) {
			return entry.sessionType, true
		}
	}
	return "", false
}

func findConstraintKind(text string) (string, bool) {
	for _, entry := range constraintKeywords {
		if strings.Contains(text, entry.phrase) {
			return entry.kind, true
		}
	}
	return "", false
}

func findCourseName(text string) string {
	match := courseNamePattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	if match[1] != "" {
		return strings.TrimSpace(match[1])
	}
	return strings.TrimSpace(match[2])
}
