// Package scenario combines sale-price hypotheses with the tax impact
// calculator into named, presentation-ready scenarios.
package scenario

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sells-group/valuation-cli/internal/model"
	"github.com/sells-group/valuation-cli/internal/tax"
)

// InvalidScenarioError signals a scenario that cannot be composed from
// the given inputs; callers present it as user-correctable.
type InvalidScenarioError struct {
	Scenario string
	Reason   string
}

func (e *InvalidScenarioError) Error() string {
	return fmt.Sprintf("scenario %s: %s", e.Scenario, e.Reason)
}

// IsInvalidScenario reports whether err is (or wraps) an InvalidScenarioError.
func IsInvalidScenario(err error) bool {
	var ise *InvalidScenarioError
	return errors.As(err, &ise)
}

// Defaults returns the built-in scenarios in presentation order.
func Defaults() []model.Scenario {
	return []model.Scenario{
		{
			Name:        "Conservador",
			Type:        model.ScenarioConservative,
			Multiplier:  0.85,
			Color:       "#DC8850",
			Description: "Venta por debajo de la valoración central",
		},
		{
			Name:        "Base",
			Type:        model.ScenarioBase,
			Multiplier:  1.0,
			Color:       "#4A7BA6",
			Description: "Venta a la valoración central estimada",
		},
		{
			Name:        "Optimista",
			Type:        model.ScenarioOptimistic,
			Multiplier:  1.2,
			Color:       "#5FA05A",
			Description: "Venta con prima competitiva",
		},
	}
}

// Custom builds a custom scenario carrying an explicit sale-price
// override, used verbatim instead of a multiplier.
func Custom(value float64) model.Scenario {
	return model.Scenario{
		Name:        "Personalizado",
		Type:        model.ScenarioCustom,
		Override:    &value,
		Color:       "#8A6FA8",
		Description: "Precio de venta definido por el usuario",
	}
}

// Compose prices a scenario off the base valuation, runs the tax impact
// for that sale price and derives net return and ROI.
//
// acquisitionValue must be positive; ROI is undefined otherwise and the
// scenario is rejected before any computation.
func Compose(scn model.Scenario, base *model.ValuationResult, profile model.TaxpayerProfile, acquisitionValue float64, reinvestment *model.Reinvestment) (*model.ScenarioResult, error) {
	if acquisitionValue <= 0 {
		return nil, &InvalidScenarioError{
			Scenario: scn.Name,
			Reason:   fmt.Sprintf("acquisition value must be positive, got %.2f", acquisitionValue),
		}
	}

	var value float64
	if scn.Type == model.ScenarioCustom {
		if scn.Override == nil {
			return nil, &InvalidScenarioError{Scenario: scn.Name, Reason: "custom scenario requires an override value"}
		}
		value = *scn.Override
	} else {
		if base == nil {
			return nil, &InvalidScenarioError{Scenario: scn.Name, Reason: "base valuation required"}
		}
		value = base.PointEstimate * scn.Multiplier
	}

	taxRes := tax.CalculateImpact(profile, value, acquisitionValue, 100, reinvestment)
	netReturn := taxRes.NetAfterTax

	return &model.ScenarioResult{
		Scenario:  scn,
		Valuation: value,
		Tax:       *taxRes,
		NetReturn: netReturn,
		ROI:       (netReturn - acquisitionValue) / acquisitionValue * 100,
	}, nil
}

// ComposeAll composes every scenario concurrently. The calculators are
// pure, so parallel composition is safe; result order matches the input.
func ComposeAll(ctx context.Context, scenarios []model.Scenario, base *model.ValuationResult, profile model.TaxpayerProfile, acquisitionValue float64, reinvestment *model.Reinvestment) ([]model.ScenarioResult, error) {
	results := make([]model.ScenarioResult, len(scenarios))

	g, _ := errgroup.WithContext(ctx)
	for i, scn := range scenarios {
		g.Go(func() error {
			res, err := Compose(scn, base, profile, acquisitionValue, reinvestment)
			if err != nil {
				return err
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
