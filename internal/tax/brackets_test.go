package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/valuation-cli/internal/model"
)

func TestApplyBracketsIndividualBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		gain      float64
		wantTotal float64
		wantLines int
	}{
		{
			name:      "exactly 6000 stays in first tier",
			gain:      6_000,
			wantTotal: 6_000 * 0.19,
			wantLines: 1,
		},
		{
			name:      "6000.01 spills one cent into second tier",
			gain:      6_000.01,
			wantTotal: 6_000*0.19 + 0.01*0.21,
			wantLines: 2,
		},
		{
			name:      "exactly 50000 stays within two tiers",
			gain:      50_000,
			wantTotal: 6_000*0.19 + 44_000*0.21,
			wantLines: 2,
		},
		{
			name:      "50000.01 reaches the top tier",
			gain:      50_000.01,
			wantTotal: 6_000*0.19 + 44_000*0.21 + 0.01*0.23,
			wantLines: 3,
		},
		{
			name:      "small gain",
			gain:      1_000,
			wantTotal: 190,
			wantLines: 1,
		},
		{
			name:      "zero gain yields nothing",
			gain:      0,
			wantTotal: 0,
			wantLines: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			total, lines := applyBrackets(tt.gain, individualBrackets)
			assert.InDelta(t, tt.wantTotal, total, 0.0001)
			assert.Len(t, lines, tt.wantLines)
		})
	}
}

func TestApplyBracketsBreakdownAmounts(t *testing.T) {
	t.Parallel()

	total, lines := applyBrackets(790_000, individualBrackets)
	require.Len(t, lines, 3)

	assert.InDelta(t, 6_000, lines[0].Amount, 0.0001)
	assert.Equal(t, 0.19, lines[0].Rate)
	assert.InDelta(t, 44_000, lines[1].Amount, 0.0001)
	assert.Equal(t, 0.21, lines[1].Rate)
	assert.InDelta(t, 740_000, lines[2].Amount, 0.0001)
	assert.Equal(t, 0.23, lines[2].Rate)

	assert.InDelta(t, 180_580, total, 0.0001)

	// Line amounts partition the gain.
	var sum float64
	for _, l := range lines {
		sum += l.Amount
	}
	assert.InDelta(t, 790_000, sum, 0.0001)
}

func TestBracketsForPYMECeiling(t *testing.T) {
	t.Parallel()

	// The ceiling is inclusive.
	assert.Equal(t, pymeBrackets[0].rate, bracketsFor(model.Company(1_000_000))[0].rate)
	assert.Len(t, bracketsFor(model.Company(1_000_000)), 2)

	flat := bracketsFor(model.Company(1_000_000.01))
	require.Len(t, flat, 1)
	assert.Equal(t, 0.25, flat[0].rate)

	assert.Len(t, bracketsFor(model.Individual()), 3)
}

func TestApplyBracketsPYMESplit(t *testing.T) {
	t.Parallel()

	total, lines := applyBrackets(790_000, pymeBrackets)
	require.Len(t, lines, 2)
	assert.InDelta(t, 300_000, lines[0].Amount, 0.0001)
	assert.Equal(t, 0.15, lines[0].Rate)
	assert.InDelta(t, 490_000, lines[1].Amount, 0.0001)
	assert.Equal(t, 0.25, lines[1].Rate)
	assert.InDelta(t, 167_500, total, 0.0001)
}
