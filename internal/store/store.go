package store

import (
	"context"

	"github.com/sells-group/valuation-cli/internal/model"
)

// LeadFilter specifies criteria for listing leads.
type LeadFilter struct {
	Status model.LeadStatus `json:"status,omitempty"`
	Sector string           `json:"sector,omitempty"`
	Limit  int              `json:"limit,omitempty"`
	Offset int              `json:"offset,omitempty"`
}

// Store defines the persistence interface for intake leads. The
// calculation engine never touches it; only the CLI and the API do.
type Store interface {
	SaveLead(ctx context.Context, intake model.CompanyIntake, valuation *model.ValuationResult, scenarios []model.ScenarioResult) (*model.Lead, error)
	GetLead(ctx context.Context, id string) (*model.Lead, error)
	ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, error)
	UpdateLeadStatus(ctx context.Context, id string, status model.LeadStatus) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
