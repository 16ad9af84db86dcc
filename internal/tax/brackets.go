// Package tax computes the after-tax proceeds of a sale under the
// individual and corporate Spanish regimes. Every function is pure and
// deterministic; the package never logs and never retries.
package tax

import (
	"math"

	"github.com/sells-group/valuation-cli/internal/model"
)

// Policy constants. Centralized so a jurisdiction or tax-year change
// never touches the calculation logic.
const (
	// DeductibleExpenseRate estimates transaction costs as a flat share
	// of the actual sale price.
	DeductibleExpenseRate = 0.01

	// ReinvestmentThreshold is the minimum share of the capital gain
	// that must be reinvested for the corporate exemption to apply.
	ReinvestmentThreshold = 0.70

	// PYMETaxBaseCeiling is the corporate tax base up to which (inclusive)
	// the reduced PYME split applies.
	PYMETaxBaseCeiling = 1_000_000
)

// bracket is one tier of a progressive schedule. Tiers are ordered and
// partition [0, inf): each taxes the gain portion between the previous
// tier's ceiling and upTo.
type bracket struct {
	upTo float64
	rate float64
	desc string
}

var individualBrackets = []bracket{
	{upTo: 6_000, rate: 0.19, desc: "Hasta 6.000 € (19 %)"},
	{upTo: 50_000, rate: 0.21, desc: "De 6.000 € a 50.000 € (21 %)"},
	{upTo: math.Inf(1), rate: 0.23, desc: "Más de 50.000 € (23 %)"},
}

var pymeBrackets = []bracket{
	{upTo: 300_000, rate: 0.15, desc: "Hasta 300.000 € (15 %)"},
	{upTo: math.Inf(1), rate: 0.25, desc: "Más de 300.000 € (25 %)"},
}

var flatCorporateBrackets = []bracket{
	{upTo: math.Inf(1), rate: 0.25, desc: "Tipo general (25 %)"},
}

// bracketsFor selects the schedule for a taxpayer profile. The PYME
// ceiling is inclusive: a tax base of exactly 1,000,000 still qualifies.
func bracketsFor(profile model.TaxpayerProfile) []bracket {
	if profile.Kind == model.TaxpayerIndividual {
		return individualBrackets
	}
	if profile.CurrentTaxBase <= PYMETaxBaseCeiling {
		return pymeBrackets
	}
	return flatCorporateBrackets
}

// applyBrackets taxes gain through the schedule, returning the total tax
// and one audit line per tier reached. Lower bounds are exclusive: a
// gain of exactly 6,000 stays entirely in the first tier. Tiers the gain
// never reaches are omitted, not zeroed.
func applyBrackets(gain float64, schedule []bracket) (float64, []model.BreakdownLine) {
	var total float64
	var lines []model.BreakdownLine

	lower := 0.0
	for _, b := range schedule {
		if gain <= lower {
			break
		}
		amount := math.Min(gain, b.upTo) - lower
		total += amount * b.rate
		lines = append(lines, model.BreakdownLine{
			Description: b.desc,
			Amount:      amount,
			Rate:        b.rate,
		})
		lower = b.upTo
	}

	return total, lines
}
