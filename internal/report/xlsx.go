// Package report renders engine outputs into an XLSX workbook for the
// advisory team. It only formats; it never recomputes.
package report

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/valuation-cli/internal/model"
)

const moneyFormat = "#,##0.00 €"

// WriteWorkbook writes a two-sheet workbook: an intake/valuation summary
// and one row per scenario with its tax detail.
func WriteWorkbook(path string, intake model.CompanyIntake, valuation *model.ValuationResult, scenarios []model.ScenarioResult) error {
	f := xlsx.NewFile()

	if err := addSummarySheet(f, intake, valuation); err != nil {
		return err
	}
	if err := addScenarioSheet(f, scenarios); err != nil {
		return err
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}
	return nil
}

func addSummarySheet(f *xlsx.File, intake model.CompanyIntake, valuation *model.ValuationResult) error {
	sheet, err := f.AddSheet("Resumen")
	if err != nil {
		return eris.Wrap(err, "report: add summary sheet")
	}

	addPair := func(label, value string) {
		row := sheet.AddRow()
		row.AddCell().Value = label
		row.AddCell().Value = value
	}
	addMoney := func(label string, value float64) {
		row := sheet.AddRow()
		row.AddCell().Value = label
		row.AddCell().SetFloatWithFormat(value, moneyFormat)
	}

	addPair("Empresa", intake.CompanyName)
	addPair("CIF", intake.TaxID)
	addPair("Contacto", intake.ContactName)
	addPair("Sector", intake.Sector)
	addPair("Empleados", string(intake.EmployeeBand))
	addPair("Ubicación", intake.Location)
	addMoney("Facturación", intake.Revenue)
	addMoney("EBITDA declarado", intake.EBITDA)

	if valuation != nil {
		addMoney("EBITDA utilizado", valuation.EBITDAUsed)
		addPair("Múltiplo aplicado", fmt.Sprintf("%.1fx – %.1fx", valuation.MultipleLow, valuation.MultipleHigh))
		addMoney("Valoración (rango bajo)", valuation.RangeLow)
		addMoney("Valoración (estimación central)", valuation.PointEstimate)
		addMoney("Valoración (rango alto)", valuation.RangeHigh)
		if valuation.UsedFallback {
			addPair("Aviso", "Sector sin múltiplo propio; se aplicó la banda por defecto")
		}
	}

	return nil
}

func addScenarioSheet(f *xlsx.File, scenarios []model.ScenarioResult) error {
	sheet, err := f.AddSheet("Escenarios")
	if err != nil {
		return eris.Wrap(err, "report: add scenario sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{
		"Escenario", "Precio de venta", "Plusvalía", "Impuesto total",
		"Exención reinversión", "Neto después de impuestos", "ROI %", "Tipo efectivo %",
	} {
		header.AddCell().Value = h
	}

	for _, res := range scenarios {
		row := sheet.AddRow()
		row.AddCell().Value = res.Scenario.Name
		row.AddCell().SetFloatWithFormat(res.Valuation, moneyFormat)
		row.AddCell().SetFloatWithFormat(res.Tax.CapitalGain, moneyFormat)
		row.AddCell().SetFloatWithFormat(res.Tax.TotalTax, moneyFormat)
		row.AddCell().SetFloatWithFormat(res.Tax.ReinvestmentBenefit, moneyFormat)
		row.AddCell().SetFloatWithFormat(res.NetReturn, moneyFormat)
		row.AddCell().SetFloatWithFormat(res.ROI, "0.00")
		row.AddCell().SetFloatWithFormat(res.Tax.EffectiveTaxRate*100, "0.00")
	}

	// Audit detail per scenario.
	for _, res := range scenarios {
		sheet.AddRow()
		title := sheet.AddRow()
		title.AddCell().Value = fmt.Sprintf("Desglose: %s", res.Scenario.Name)
		for _, line := range res.Tax.Breakdown {
			row := sheet.AddRow()
			row.AddCell().Value = line.Description
			row.AddCell().SetFloatWithFormat(line.Amount, moneyFormat)
			row.AddCell().SetFloatWithFormat(line.Rate*100, "0.00")
		}
	}

	return nil
}
