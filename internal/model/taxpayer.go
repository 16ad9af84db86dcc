package model

// TaxpayerKind discriminates the two taxpayer regimes.
type TaxpayerKind string

const (
	TaxpayerIndividual TaxpayerKind = "individual"
	TaxpayerCompany    TaxpayerKind = "company"
)

// TaxpayerProfile is a tagged union over the two regimes. CurrentTaxBase
// is only meaningful for companies, where it decides between the PYME
// split and the flat corporate rate.
type TaxpayerProfile struct {
	Kind           TaxpayerKind `json:"kind"`
	CurrentTaxBase float64      `json:"current_tax_base,omitempty"`
}

// Individual returns the profile for a natural-person seller.
func Individual() TaxpayerProfile {
	return TaxpayerProfile{Kind: TaxpayerIndividual}
}

// Company returns the profile for a corporate seller with the given
// current corporate tax base.
func Company(currentTaxBase float64) TaxpayerProfile {
	return TaxpayerProfile{Kind: TaxpayerCompany, CurrentTaxBase: currentTaxBase}
}

// Reinvestment declares a corporate reinvestment plan for the sale
// proceeds. The exemption only applies when the plan qualifies under the
// applicable rule and Amount covers enough of the capital gain.
type Reinvestment struct {
	Planned   bool    `json:"planned"`
	Qualifies bool    `json:"qualifies"`
	Amount    float64 `json:"amount"`
}
