package models

import "time"

// Intervention is the root record of a contribution chain: a tracked
// education-support programme at school, circuit, district or province level.
type Intervention struct {
	ID          string    `json:"id" db:"id"`
	Province    string    `json:"province" db:"province"`
	District    string    `json:"district" db:"district"`
	PM          string    `json:"pm" db:"pm"`
	OwnerTitle  string    `json:"owner_title" db:"owner_title"`
	OwnerName   string    `json:"owner_name" db:"owner_name"`
	Team        string    `json:"team" db:"team"`
	Type        string    `json:"type" db:"type"`
	Grade       string    `json:"grade" db:"grade"`
	Subject     string    `json:"subject" db:"subject"`
	Focus       string    `json:"focus" db:"focus"`
	Level       string    `json:"level" db:"level"`
	EntityName  string    `json:"entity_name" db:"entity_name"`
	Stage       string    `json:"stage" db:"stage"`
	Phase       string    `json:"phase" db:"phase"`
	Description string    `json:"description" db:"description"`
	StartDate   string    `json:"start_date" db:"start_date"`
	EndDate     string    `json:"end_date" db:"end_date"`
	Schools     int       `json:"schools" db:"schools"`
	Learners    int       `json:"learners" db:"learners"`
	Confidence  string    `json:"confidence" db:"confidence"`
	Risks       string    `json:"risks" db:"risks"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// UpsertInterventionRequest is the request body for registering or editing an
// intervention. Writes are insert-or-replace keyed by ID; an empty ID gets a
// generated one. Schools and learners tolerate non-numeric input, which is
// coerced to zero the way the capture forms always have.
type UpsertInterventionRequest struct {
	ID          string  `json:"id"`
	Province    string  `json:"province" validate:"required"`
	District    string  `json:"district"`
	PM          string  `json:"pm"`
	OwnerTitle  string  `json:"owner_title"`
	OwnerName   string  `json:"owner_name"`
	Team        string  `json:"team"`
	Type        string  `json:"type" validate:"required"`
	Grade       string  `json:"grade"`
	Subject     string  `json:"subject"`
	Focus       string  `json:"focus"`
	Level       string  `json:"level"`
	EntityName  string  `json:"entity_name" validate:"required"`
	Stage       string  `json:"stage"`
	Phase       string  `json:"phase"`
	Description string  `json:"description"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Schools     FlexInt `json:"schools"`
	Learners    FlexInt `json:"learners"`
	Confidence  string  `json:"confidence"`
	Risks       string  `json:"risks"`
}

// InterventionResponse is the API response for single intervention operations
type InterventionResponse struct {
	Intervention
}

// InterventionListResponse is the API response for listing interventions.
// Shown is the post-filter count; TotalCount is the full collection size.
type InterventionListResponse struct {
	Items      []Intervention `json:"items"`
	Shown      int            `json:"shown"`
	TotalCount int            `json:"total_count"`
}
