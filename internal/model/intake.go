package model

// EmployeeBand is the company-size band captured during intake.
type EmployeeBand string

const (
	EmployeeBand1to10    EmployeeBand = "1-10"
	EmployeeBand11to50   EmployeeBand = "11-50"
	EmployeeBand51to200  EmployeeBand = "51-200"
	EmployeeBand201to500 EmployeeBand = "201-500"
	EmployeeBandOver500  EmployeeBand = "500+"
)

// CompanyIntake holds the raw fields entered during the intake funnel.
// It is a value type: updates go through the With* helpers, which return
// a modified copy, so an intake handed downstream can never change under
// the engine.
type CompanyIntake struct {
	ContactName          string       `json:"contact_name" yaml:"contact_name"`
	CompanyName          string       `json:"company_name" yaml:"company_name"`
	TaxID                string       `json:"tax_id" yaml:"tax_id"`
	Email                string       `json:"email" yaml:"email"`
	Phone                string       `json:"phone" yaml:"phone"`
	Sector               string       `json:"sector" yaml:"sector"`
	EmployeeBand         EmployeeBand `json:"employee_band" yaml:"employee_band"`
	Revenue              float64      `json:"revenue" yaml:"revenue"`
	EBITDA               float64      `json:"ebitda" yaml:"ebitda"`
	HasAdjustments       bool         `json:"has_adjustments" yaml:"has_adjustments"`
	AdjustmentAmount     float64      `json:"adjustment_amount" yaml:"adjustment_amount"`
	OwnershipPct         float64      `json:"ownership_pct" yaml:"ownership_pct"`
	Location             string       `json:"location" yaml:"location"`
	CompetitiveAdvantage string       `json:"competitive_advantage" yaml:"competitive_advantage"`
}

// WithField returns a copy of the intake with the named field replaced.
// Unknown field names return the intake unchanged.
func (c CompanyIntake) WithField(name string, value any) CompanyIntake {
	switch name {
	case FieldContactName:
		if v, ok := value.(string); ok {
			c.ContactName = v
		}
	case FieldCompanyName:
		if v, ok := value.(string); ok {
			c.CompanyName = v
		}
	case FieldTaxID:
		if v, ok := value.(string); ok {
			c.TaxID = v
		}
	case FieldEmail:
		if v, ok := value.(string); ok {
			c.Email = v
		}
	case FieldPhone:
		if v, ok := value.(string); ok {
			c.Phone = v
		}
	case FieldSector:
		if v, ok := value.(string); ok {
			c.Sector = v
		}
	case FieldEmployeeBand:
		if v, ok := value.(string); ok {
			c.EmployeeBand = EmployeeBand(v)
		}
	case FieldRevenue:
		if v, ok := toFloat(value); ok {
			c.Revenue = v
		}
	case FieldEBITDA:
		if v, ok := toFloat(value); ok {
			c.EBITDA = v
		}
	case FieldAdjustmentAmount:
		if v, ok := toFloat(value); ok {
			c.AdjustmentAmount = v
			c.HasAdjustments = v != 0
		}
	case FieldOwnershipPct:
		if v, ok := toFloat(value); ok {
			c.OwnershipPct = v
		}
	case FieldLocation:
		if v, ok := value.(string); ok {
			c.Location = v
		}
	case FieldCompetitiveAdvantage:
		if v, ok := value.(string); ok {
			c.CompetitiveAdvantage = v
		}
	}
	return c
}

// EffectiveEBITDA is the earnings base used for valuation: reported
// EBITDA plus the normalization adjustment when one was declared.
func (c CompanyIntake) EffectiveEBITDA() float64 {
	if c.HasAdjustments {
		return c.EBITDA + c.AdjustmentAmount
	}
	return c.EBITDA
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Field names used by the step validator and WithField.
const (
	FieldContactName          = "contact_name"
	FieldCompanyName          = "company_name"
	FieldTaxID                = "tax_id"
	FieldEmail                = "email"
	FieldPhone                = "phone"
	FieldSector               = "sector"
	FieldEmployeeBand         = "employee_band"
	FieldRevenue              = "revenue"
	FieldEBITDA               = "ebitda"
	FieldAdjustmentAmount     = "adjustment_amount"
	FieldOwnershipPct         = "ownership_pct"
	FieldLocation             = "location"
	FieldCompetitiveAdvantage = "competitive_advantage"
)
