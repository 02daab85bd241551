package dto

import "github.com/campusplan/planner-api/internal/models"

// CreateConstraintRequest creates an availability constraint. Day and times
// are optional: nil day means every day, nil times mean all day.
type CreateConstraintRequest struct {
	Type      string  `json:"type" validate:"required,oneof=unavailable preferred break no_back_to_back"`
	DayOfWeek *int    `json:"day_of_week" validate:"omitempty,min=0,max=6"`
	StartTime *string `json:"start_time" validate:"omitempty,len=5"`
	EndTime   *string `json:"end_time" validate:"omitempty,len=5"`
}

// UpdateConstraintRequest replaces mutable constraint fields.
type UpdateConstraintRequest struct {
	Type      string  `json:"type" validate:"required,oneof=unavailable preferred break no_back_to_back"`
	DayOfWeek *int    `json:"day_of_week" validate:"omitempty,min=0,max=6"`
	StartTime *string `json:"start_time" validate:"omitempty,len=5"`
	EndTime   *string `json:"end_time" validate:"omitempty,len=5"`
}

// ToModel maps the request to a constraint owned by the user.
func (r CreateConstraintRequest) ToModel(userID string) *models.Constraint {
	return &models.Constraint{
		UserID:    userID,
		Type:      r.Type,
		DayOfWeek: r.DayOfWeek,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}
