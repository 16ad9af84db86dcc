package model

import "time"

// LeadStatus tracks a stored lead through the advisory funnel.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusArchived  LeadStatus = "archived"
)

// Lead is the CRM record persisted for a completed intake: the validated
// intake plus the engine outputs at submission time. The engine itself
// never reads leads back; they exist for the admin console.
type Lead struct {
	ID        string           `json:"id"`
	Intake    CompanyIntake    `json:"intake"`
	Valuation *ValuationResult `json:"valuation,omitempty"`
	Scenarios []ScenarioResult `json:"scenarios,omitempty"`
	Status    LeadStatus       `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
