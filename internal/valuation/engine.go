// Package valuation derives an enterprise valuation from validated
// intake financials and the sector multiple table. Pure computation; all
// I/O and logging stay with the callers.
package valuation

import (
	"errors"
	"fmt"

	"github.com/sells-group/valuation-cli/internal/model"
	"github.com/sells-group/valuation-cli/internal/sector"
)

// InvalidInputError signals a degenerate input the user can correct,
// as opposed to a system failure.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("valuation: invalid %s: %s", e.Field, e.Reason)
}

// IsInvalidInput reports whether err is (or wraps) an InvalidInputError.
func IsInvalidInput(err error) bool {
	var iie *InvalidInputError
	return errors.As(err, &iie)
}

// Compute derives the valuation range from the intake's effective EBITDA
// and the sector's multiple band. A sector missing from the table uses
// the fallback band and flags the result. Non-positive effective EBITDA
// is rejected: a valuation cannot be computed from non-positive earnings.
func Compute(intake model.CompanyIntake, table *sector.Table) (*model.ValuationResult, error) {
	ebitda := intake.EffectiveEBITDA()
	if ebitda <= 0 {
		return nil, &InvalidInputError{
			Field:  "ebitda",
			Reason: fmt.Sprintf("effective EBITDA must be positive, got %.2f", ebitda),
		}
	}

	m, found := table.Lookup(intake.Sector)

	return &model.ValuationResult{
		PointEstimate: ebitda * (m.Low + m.High) / 2,
		RangeLow:      ebitda * m.Low,
		RangeHigh:     ebitda * m.High,
		EBITDAUsed:    ebitda,
		Sector:        intake.Sector,
		MultipleLow:   m.Low,
		MultipleHigh:  m.High,
		UsedFallback:  !found,
	}, nil
}
