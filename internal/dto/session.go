package dto

import "github.com/campusplan/planner-api/internal/models"

// CreateSessionRequest creates a weekly session under a course.
type CreateSessionRequest struct {
	CourseID   string `json:"course_id" validate:"required"`
	Type       string `json:"type" validate:"required,oneof=lecture lab tutorial seminar"`
	DayOfWeek  int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime  string `json:"start_time" validate:"required,len=5"`
	EndTime    string `json:"end_time" validate:"required,len=5"`
	Location   string `json:"location" validate:"max=200"`
	Instructor string `json:"instructor" validate:"max=200"`
}

// UpdateSessionRequest replaces mutable session fields.
type UpdateSessionRequest struct {
	CourseID   string `json:"course_id" validate:"required"`
	Type       string `json:"type" validate:"required,oneof=lecture lab tutorial seminar"`
	DayOfWeek  int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime  string `json:"start_time" validate:"required,len=5"`
	EndTime    string `json:"end_time" validate:"required,len=5"`
	Location   string `json:"location" validate:"max=200"`
	Instructor string `json:"instructor" validate:"max=200"`
}

// ToModel maps the request to a session owned by the user.
func (r CreateSessionRequest) ToModel(userID string) *models.Session {
	return &models.Session{
		UserID:     userID,
		CourseID:   r.CourseID,
		Type:       r.Type,
		DayOfWeek:  r.DayOfWeek,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Location:   r.Location,
		Instructor: r.Instructor,
	}
}
