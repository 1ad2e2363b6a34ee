package models

import "time"

// Outcome records a measured result attributed to an action. Value is free
// text ("8 of 12 schools improved"), not a number. The intervention reference
// is derived from the linked action at write time.
type Outcome struct {
	ID             string    `json:"id" db:"id"`
	ActionID       string    `json:"action_id" db:"action_id"`
	InterventionID string    `json:"intervention_id" db:"intervention_id"`
	Description    string    `json:"description" db:"description"`
	Evidence       string    `json:"evidence" db:"evidence"`
	Metric         string    `json:"metric" db:"metric"`
	Value          string    `json:"value" db:"value"`
	Date           string    `json:"date" db:"date"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// CreateOutcomeRequest is the request body for recording an outcome
type CreateOutcomeRequest struct {
	ID          string `json:"id"`
	ActionID    string `json:"action_id" validate:"required"`
	Description string `json:"description" validate:"required"`
	Evidence    string `json:"evidence"`
	Metric      string `json:"metric"`
	Value       string `json:"value"`
	Date        string `json:"date"`
}

// OutcomeResponse is the API response for outcome operations
type OutcomeResponse struct {
	Outcome
}

// OutcomeListResponse is the API response for listing outcomes
type OutcomeListResponse struct {
	Items      []Outcome `json:"items"`
	TotalCount int       `json:"total_count"`
}
