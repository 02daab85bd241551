package dto

// GeneratePlanRequest tunes one generation call.
type GeneratePlanRequest struct {
	Force bool `json:"force"`
}

// ParseIntentRequest carries a free-text scheduling instruction.
type ParseIntentRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}
