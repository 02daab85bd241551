package dto

import "github.com/campusplan/planner-api/internal/models"

// CreateCourseRequest creates a course for the authenticated user.
type CreateCourseRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Code     string `json:"code" validate:"max=50"`
	Priority int    `json:"priority" validate:"required,min=1,max=3"`
}

// UpdateCourseRequest replaces mutable course fields.
type UpdateCourseRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Code     string `json:"code" validate:"max=50"`
	Priority int    `json:"priority" validate:"required,min=1,max=3"`
}

// ToModel maps the request to a course owned by the user.
func (r CreateCourseRequest) ToModel(userID string) *models.Course {
	return &models.Course{
		UserID:   userID,
		Name:     r.Name,
		Code:     r.Code,
		Priority: r.Priority,
	}
}
