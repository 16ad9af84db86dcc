package tax

import (
	"github.com/sells-group/valuation-cli/internal/model"
)

// CalculateImpact computes the full after-tax picture of selling a stake.
//
// salePrice and acquisitionValue describe the whole company; both are
// pro-rated by salePct (a percentage, 100 = full sale). reinvestment may
// be nil and only affects corporate sellers.
//
// A non-positive capital gain short-circuits to an all-zero tax result;
// tax is never negative.
func CalculateImpact(profile model.TaxpayerProfile, salePrice, acquisitionValue, salePct float64, reinvestment *model.Reinvestment) *model.TaxCalculationResult {
	factor := salePct / 100
	actualSalePrice := salePrice * factor
	actualAcquisition := acquisitionValue * factor

	deductible := actualSalePrice * DeductibleExpenseRate
	capitalGain := actualSalePrice - actualAcquisition - deductible

	res := &model.TaxCalculationResult{
		SalePrice:          actualSalePrice,
		AcquisitionValue:   actualAcquisition,
		DeductibleExpenses: deductible,
		CapitalGain:        capitalGain,
		NetAfterTax:        actualSalePrice,
	}

	if capitalGain <= 0 {
		return res
	}
	res.TaxableGain = capitalGain

	grossTax, breakdown := applyBrackets(capitalGain, bracketsFor(profile))
	res.Breakdown = breakdown
	res.TaxRate = grossTax / capitalGain
	res.TotalTax = grossTax

	if exemptionApplies(profile, capitalGain, reinvestment) {
		// All-or-nothing: the entire tax is waived, never prorated.
		res.ReinvestmentBenefit = grossTax
		res.TotalTax = 0
	}

	res.NetAfterTax = actualSalePrice - res.TotalTax
	res.EffectiveTaxRate = res.TotalTax / capitalGain

	return res
}

// exemptionApplies checks the corporate reinvestment exemption: a
// declared, qualifying plan covering at least ReinvestmentThreshold of
// the capital gain.
func exemptionApplies(profile model.TaxpayerProfile, capitalGain float64, r *model.Reinvestment) bool {
	if profile.Kind != model.TaxpayerCompany || r == nil {
		return false
	}
	return r.Planned && r.Qualifies && r.Amount >= ReinvestmentThreshold*capitalGain
}
