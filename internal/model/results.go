package model

// ValidationResult is the outcome of validating a single intake field.
type ValidationResult struct {
	Valid   bool   `json:"is_valid"`
	Message string `json:"message,omitempty"`
	Touched bool   `json:"is_touched"`
}

// ValuationResult is the enterprise valuation derived from effective
// EBITDA and the sector multiple band. RangeLow <= PointEstimate <= RangeHigh.
type ValuationResult struct {
	PointEstimate float64 `json:"point_estimate"`
	RangeLow      float64 `json:"range_low"`
	RangeHigh     float64 `json:"range_high"`
	EBITDAUsed    float64 `json:"ebitda_used"`
	Sector        string  `json:"sector"`
	MultipleLow   float64 `json:"multiple_low"`
	MultipleHigh  float64 `json:"multiple_high"`
	UsedFallback  bool    `json:"used_fallback"` // sector missing from the table, default band applied
}

// BreakdownLine is one audit line of a tax calculation: a bracket's base
// amount and its nominal rate, or an applied exemption.
type BreakdownLine struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Rate        float64 `json:"rate"`
}

// TaxCalculationResult is the full after-tax picture of a sale.
//
// TaxRate is the blended rate actually paid over the taxable gain before
// any exemption; EffectiveTaxRate is total tax over the capital gain
// after exemptions. Both are kept so the summary and the audit breakdown
// never disagree.
type TaxCalculationResult struct {
	SalePrice           float64         `json:"sale_price"`
	AcquisitionValue    float64         `json:"acquisition_value"`
	DeductibleExpenses  float64         `json:"deductible_expenses"`
	CapitalGain         float64         `json:"capital_gain"`
	TaxableGain         float64         `json:"taxable_gain"`
	TaxRate             float64         `json:"tax_rate"`
	TotalTax            float64         `json:"total_tax"`
	ReinvestmentBenefit float64         `json:"reinvestment_benefit"`
	NetAfterTax         float64         `json:"net_after_tax"`
	EffectiveTaxRate    float64         `json:"effective_tax_rate"`
	Breakdown           []BreakdownLine `json:"breakdown"`
}

// ScenarioType names the built-in sale-price hypotheses.
type ScenarioType string

const (
	ScenarioConservative ScenarioType = "conservative"
	ScenarioBase         ScenarioType = "base"
	ScenarioOptimistic   ScenarioType = "optimistic"
	ScenarioCustom       ScenarioType = "custom"
)

// Scenario is a named sale-price hypothesis. Non-custom scenarios scale
// the base valuation by Multiplier; a custom scenario carries an explicit
// Override used verbatim.
type Scenario struct {
	Name        string       `json:"name"`
	Type        ScenarioType `json:"type"`
	Multiplier  float64      `json:"multiplier"`
	Override    *float64     `json:"override,omitempty"`
	Color       string       `json:"color"`
	Description string       `json:"description"`
}

// ScenarioResult combines a scenario's valuation with its tax impact.
type ScenarioResult struct {
	Scenario  Scenario             `json:"scenario"`
	Valuation float64              `json:"valuation"`
	Tax       TaxCalculationResult `json:"tax_calculation"`
	NetReturn float64              `json:"net_return"`
	ROI       float64              `json:"roi"`
}
