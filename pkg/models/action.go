package models

import "time"

// Action records a concrete step taken as a result of a decision. The
// intervention reference is always derived from the linked decision at write
// time, never chosen independently.
type Action struct {
	ID             string    `json:"id" db:"id"`
	DecisionID     string    `json:"decision_id" db:"decision_id"`
	InterventionID string    `json:"intervention_id" db:"intervention_id"`
	ActionTaken    string    `json:"action_taken" db:"action_taken"`
	Responsible    string    `json:"responsible" db:"responsible"`
	Status         string    `json:"status" db:"status"`
	TargetDate     string    `json:"target_date" db:"target_date"`
	CompletedDate  string    `json:"completed_date" db:"completed_date"`
	Notes          string    `json:"notes" db:"notes"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// CreateActionRequest is the request body for logging an action. The
// intervention reference is not accepted here; it is copied from the decision.
type CreateActionRequest struct {
	ID            string `json:"id"`
	DecisionID    string `json:"decision_id" validate:"required"`
	ActionTaken   string `json:"action_taken" validate:"required"`
	Responsible   string `json:"responsible"`
	Status        string `json:"status"`
	TargetDate    string `json:"target_date"`
	CompletedDate string `json:"completed_date"`
	Notes         string `json:"notes"`
}

// UpdateActionStatusRequest is the request body for moving an action through
// its status lifecycle (Planned / In Progress / Completed / Blocked).
type UpdateActionStatusRequest struct {
	Status        string `json:"status" validate:"required"`
	CompletedDate string `json:"completed_date"`
}

// ActionResponse is the API response for action operations
type ActionResponse struct {
	Action
}

// ActionListResponse is the API response for listing actions
type ActionListResponse struct {
	Items      []Action `json:"items"`
	TotalCount int      `json:"total_count"`
}
