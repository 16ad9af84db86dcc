package validate

import (
	"github.com/sells-group/valuation-cli/internal/model"
)

// StepCount is the number of intake steps in the funnel.
const StepCount = 3

// stepFields assigns each field to its intake step.
var stepFields = map[int][]string{
	1: {
		model.FieldContactName,
		model.FieldCompanyName,
		model.FieldTaxID,
		model.FieldEmail,
		model.FieldPhone,
		model.FieldSector,
		model.FieldEmployeeBand,
	},
	2: {
		model.FieldRevenue,
		model.FieldEBITDA,
	},
	3: {
		model.FieldLocation,
		model.FieldOwnershipPct,
		model.FieldCompetitiveAdvantage,
	},
}

// StepFields returns the field names required by a step.
func StepFields(step int) []string {
	return stepFields[step]
}

// FieldState is the per-field view the UI renders from.
type FieldState struct {
	Touched  bool   `json:"is_touched"`
	HasError bool   `json:"has_error"`
	Valid    bool   `json:"is_valid"`
	Message  string `json:"error_message,omitempty"`
}

// StepValidator holds the per-session validation state: which fields the
// user has touched and the latest validation result per field. The
// intake itself stays outside; every call re-validates against the
// intake passed in, never a cached copy.
//
// Not safe for concurrent use; one instance per intake session.
type StepValidator struct {
	touched map[string]bool
	results map[string]model.ValidationResult
}

// NewStepValidator creates an empty validation state.
func NewStepValidator() *StepValidator {
	return &StepValidator{
		touched: make(map[string]bool),
		results: make(map[string]model.ValidationResult),
	}
}

// Touch marks a field as touched (typically on blur). Touching is
// deliberately separate from validating so the UI can defer error
// display without blocking computation.
func (v *StepValidator) Touch(field string) {
	v.touched[field] = true
}

// ValidateField runs the validator for a single field against the intake
// and records the result.
func (v *StepValidator) ValidateField(field string, intake model.CompanyIntake) model.ValidationResult {
	res := validateField(field, intake)
	res.Touched = v.touched[field]
	v.results[field] = res
	return res
}

// ValidateStep re-validates every field assigned to the step and reports
// whether all of them pass. Unknown step numbers validate nothing and
// return false.
func (v *StepValidator) ValidateStep(step int, intake model.CompanyIntake) bool {
	fields, ok := stepFields[step]
	if !ok {
		return false
	}
	allValid := true
	for _, f := range fields {
		if !v.ValidateField(f, intake).Valid {
			allValid = false
		}
	}
	return allValid
}

// CanAdvance reports whether the session may move to the given step:
// every preceding step must validate against the current intake. Results
// are recomputed, not cached, because the intake stays mutable until the
// transition commits.
func (v *StepValidator) CanAdvance(toStep int, intake model.CompanyIntake) bool {
	if toStep < 1 || toStep > StepCount+1 {
		return false
	}
	for s := 1; s < toStep; s++ {
		if !v.ValidateStep(s, intake) {
			return false
		}
	}
	return true
}

// FieldState returns the render state for a field. Errors only surface
// once the field has been touched.
func (v *StepValidator) FieldState(field string) FieldState {
	res, seen := v.results[field]
	touched := v.touched[field]
	if !seen {
		return FieldState{Touched: touched}
	}
	return FieldState{
		Touched:  touched,
		Valid:    res.Valid,
		HasError: touched && !res.Valid,
		Message:  res.Message,
	}
}

func validateField(field string, intake model.CompanyIntake) model.ValidationResult {
	switch field {
	case model.FieldContactName:
		return NonEmpty(intake.ContactName)
	case model.FieldCompanyName:
		return NonEmpty(intake.CompanyName)
	case model.FieldTaxID:
		return TaxID(intake.TaxID)
	case model.FieldEmail:
		return Email(intake.Email)
	case model.FieldPhone:
		return Phone(intake.Phone)
	case model.FieldSector:
		return NonEmpty(intake.Sector)
	case model.FieldEmployeeBand:
		return NonEmpty(string(intake.EmployeeBand))
	case model.FieldRevenue:
		return Positive(intake.Revenue)
	case model.FieldEBITDA:
		return Positive(intake.EBITDA)
	case model.FieldLocation:
		return NonEmpty(intake.Location)
	case model.FieldOwnershipPct:
		return Percentage(intake.OwnershipPct)
	case model.FieldCompetitiveAdvantage:
		return NonEmpty(intake.CompetitiveAdvantage)
	}
	return model.ValidationResult{Valid: false, Message: msgRequired}
}
