package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/valuation-cli/internal/model"
)

func TestWriteWorkbook(t *testing.T) {
	t.Parallel()

	intake := model.CompanyIntake{
		CompanyName:  "Talleres Gómez SL",
		TaxID:        "B65410011",
		ContactName:  "Ana García",
		Sector:       "Industrial",
		EmployeeBand: model.EmployeeBand11to50,
		Location:     "Zaragoza",
		Revenue:      4_200_000,
		EBITDA:       600_000,
	}
	valuation := &model.ValuationResult{
		PointEstimate: 3_150_000,
		RangeLow:      2_400_000,
		RangeHigh:     3_900_000,
		EBITDAUsed:    600_000,
		Sector:        "Industrial",
		MultipleLow:   4.0,
		MultipleHigh:  6.5,
	}
	scenarios := []model.ScenarioResult{
		{
			Scenario:  model.Scenario{Name: "Base", Type: model.ScenarioBase, Multiplier: 1},
			Valuation: 3_150_000,
			Tax: model.TaxCalculationResult{
				CapitalGain: 2_500_000,
				TotalTax:    500_000,
				Breakdown: []model.BreakdownLine{
					{Description: "Hasta 6.000 € (19 %)", Amount: 6_000, Rate: 0.19},
				},
			},
			NetReturn: 2_650_000,
			ROI:       430,
		},
	}

	path := filepath.Join(t.TempDir(), "informe.xlsx")
	require.NoError(t, WriteWorkbook(path, intake, valuation, scenarios))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 2)
	assert.Equal(t, "Resumen", f.Sheets[0].Name)
	assert.Equal(t, "Escenarios", f.Sheets[1].Name)

	// Summary carries the company name; scenarios sheet has header + data.
	assert.Equal(t, "Empresa", f.Sheets[0].Rows[0].Cells[0].Value)
	assert.Equal(t, "Talleres Gómez SL", f.Sheets[0].Rows[0].Cells[1].Value)
	assert.Equal(t, "Escenario", f.Sheets[1].Rows[0].Cells[0].Value)
	assert.Equal(t, "Base", f.Sheets[1].Rows[1].Cells[0].Value)
}

func TestWriteWorkbookFlagsFallback(t *testing.T) {
	t.Parallel()

	valuation := &model.ValuationResult{
		PointEstimate: 400_000, RangeLow: 300_000, RangeHigh: 500_000,
		EBITDAUsed: 100_000, Sector: "Pesca", MultipleLow: 3, MultipleHigh: 5,
		UsedFallback: true,
	}

	path := filepath.Join(t.TempDir(), "informe.xlsx")
	require.NoError(t, WriteWorkbook(path, model.CompanyIntake{CompanyName: "X"}, valuation, nil))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)

	var found bool
	for _, row := range f.Sheets[0].Rows {
		if len(row.Cells) > 0 && row.Cells[0].Value == "Aviso" {
			found = true
		}
	}
	assert.True(t, found, "fallback warning row present")
}
