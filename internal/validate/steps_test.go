package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/valuation-cli/internal/model"
)

func fullIntake() model.CompanyIntake {
	return model.CompanyIntake{
		ContactName:          "Ana García",
		CompanyName:          "Talleres Gómez SL",
		TaxID:                "B65410011",
		Email:                "ana@talleresgomez.es",
		Phone:                "+34 912 345 678",
		Sector:               "Industrial",
		EmployeeBand:         model.EmployeeBand11to50,
		Revenue:              4_200_000,
		EBITDA:               600_000,
		OwnershipPct:         100,
		Location:             "Zaragoza",
		CompetitiveAdvantage: "Cartera de clientes recurrentes y maquinaria propia",
	}
}

func TestValidateStep(t *testing.T) {
	t.Parallel()

	v := NewStepValidator()
	intake := fullIntake()

	assert.True(t, v.ValidateStep(1, intake))
	assert.True(t, v.ValidateStep(2, intake))
	assert.True(t, v.ValidateStep(3, intake))

	// A broken field fails only its own step.
	broken := intake.WithField(model.FieldEmail, "not-an-email")
	assert.False(t, v.ValidateStep(1, broken))
	assert.True(t, v.ValidateStep(2, broken))

	// Unknown steps never validate.
	assert.False(t, v.ValidateStep(0, intake))
	assert.False(t, v.ValidateStep(4, intake))
}

func TestCanAdvanceRechecksEarlierSteps(t *testing.T) {
	t.Parallel()

	v := NewStepValidator()
	intake := fullIntake()

	require.True(t, v.CanAdvance(2, intake))
	require.True(t, v.CanAdvance(3, intake))

	// Mutating the intake after a successful check must be caught on the
	// next advance; nothing is cached.
	broken := intake.WithField(model.FieldTaxID, "B65410012")
	assert.False(t, v.CanAdvance(2, broken))
	assert.False(t, v.CanAdvance(3, broken))

	// Step 1 is always reachable.
	assert.True(t, v.CanAdvance(1, broken))
	assert.False(t, v.CanAdvance(0, intake))
	assert.False(t, v.CanAdvance(StepCount+2, intake))
}

func TestFieldStateDefersErrorsUntilTouched(t *testing.T) {
	t.Parallel()

	v := NewStepValidator()
	intake := fullIntake().WithField(model.FieldEmail, "broken")

	v.ValidateStep(1, intake)
	st := v.FieldState(model.FieldEmail)
	assert.False(t, st.Valid)
	assert.False(t, st.HasError, "untouched fields do not surface errors")

	v.Touch(model.FieldEmail)
	v.ValidateStep(1, intake)
	st = v.FieldState(model.FieldEmail)
	assert.False(t, st.Valid)
	assert.True(t, st.HasError)
	assert.NotEmpty(t, st.Message)

	// Unvalidated field reports only touch state.
	fresh := NewStepValidator()
	fresh.Touch(model.FieldPhone)
	st = fresh.FieldState(model.FieldPhone)
	assert.True(t, st.Touched)
	assert.False(t, st.Valid)
	assert.False(t, st.HasError)
}

func TestStepFieldsPartition(t *testing.T) {
	t.Parallel()

	seen := map[string]int{}
	for step := 1; step <= StepCount; step++ {
		for _, f := range StepFields(step) {
			seen[f]++
		}
	}
	// Every field belongs to exactly one step.
	for f, n := range seen {
		assert.Equal(t, 1, n, "field %s assigned to %d steps", f, n)
	}
	assert.Len(t, seen, 12)
}
