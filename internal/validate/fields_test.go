package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"plain address", "ana@empresa.es", true},
		{"subdomain", "ana.garcia@mail.empresa.es", true},
		{"missing at", "ana.empresa.es", false},
		{"missing tld", "ana@empresa", false},
		{"embedded space", "ana garcia@empresa.es", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := Email(tt.input)
			assert.Equal(t, tt.valid, res.Valid)
			if !tt.valid {
				assert.NotEmpty(t, res.Message)
			}
		})
	}
}

func TestPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"national", "912345678", true},
		{"international prefix", "+34912345678", true},
		{"spaced groups", "+34 912 345 678", true},
		{"too short", "91234", false},
		{"letters", "91234567a", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.valid, Phone(tt.input).Valid)
		})
	}
}

func TestNonEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, NonEmpty("Talleres Gómez SL").Valid)
	assert.False(t, NonEmpty("").Valid)
	assert.False(t, NonEmpty("   ").Valid)
	assert.Equal(t, msgRequired, NonEmpty("").Message)
}

func TestPositive(t *testing.T) {
	t.Parallel()

	assert.True(t, Positive(0.01).Valid)
	assert.True(t, Positive(1_500_000).Valid)
	assert.False(t, Positive(0).Valid)
	assert.False(t, Positive(-250000).Valid)
}

func TestPercentage(t *testing.T) {
	t.Parallel()

	assert.True(t, Percentage(100).Valid)
	assert.True(t, Percentage(51).Valid)
	assert.False(t, Percentage(0).Valid)
	assert.False(t, Percentage(100.5).Valid)
	assert.False(t, Percentage(-10).Valid)
}

func TestTaxIDField(t *testing.T) {
	t.Parallel()

	assert.True(t, TaxID("B65410011").Valid)
	assert.Equal(t, msgInvalidTaxID, TaxID("B65410012").Message)
	assert.Equal(t, msgRequired, TaxID("").Message)
}
