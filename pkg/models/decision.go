package models

import "time"

// Decision records a choice made after reviewing DDD data, linked to exactly
// one intervention. Decisions are append-only: there is no update or delete.
type Decision struct {
	ID             string    `json:"id" db:"id"`
	InterventionID string    `json:"intervention_id" db:"intervention_id"`
	DDDTool        string    `json:"ddd_tool" db:"ddd_tool"`
	DataViewed     string    `json:"data_viewed" db:"data_viewed"`
	Insight        string    `json:"insight" db:"insight"`
	DecisionMade   string    `json:"decision_made" db:"decision_made"`
	MadeBy         string    `json:"made_by" db:"made_by"`
	Date           string    `json:"date" db:"date"`
	Notes          string    `json:"notes" db:"notes"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// CreateDecisionRequest is the request body for logging a decision
type CreateDecisionRequest struct {
	ID             string `json:"id"`
	InterventionID string `json:"intervention_id" validate:"required"`
	DDDTool        string `json:"ddd_tool"`
	DataViewed     string `json:"data_viewed"`
	Insight        string `json:"insight"`
	DecisionMade   string `json:"decision_made" validate:"required"`
	MadeBy         string `json:"made_by"`
	Date           string `json:"date"`
	Notes          string `json:"notes"`
}

// DecisionResponse is the API response for decision operations
type DecisionResponse struct {
	Decision
}

// DecisionListResponse is the API response for listing decisions
type DecisionListResponse struct {
	Items      []Decision `json:"items"`
	TotalCount int        `json:"total_count"`
}
