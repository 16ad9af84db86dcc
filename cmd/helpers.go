package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/valuation-cli/internal/model"
	"github.com/sells-group/valuation-cli/internal/scenario"
	"github.com/sells-group/valuation-cli/internal/sector"
	"github.com/sells-group/valuation-cli/internal/store"
)

// printer formats numbers with Spanish separators (1.234.567,89).
var printer = message.NewPrinter(language.Spanish)

func money(v float64) string {
	return printer.Sprintf("%.2f €", v)
}

func pct(v float64) string {
	return printer.Sprintf("%.2f %%", v)
}

// initStore opens the configured lead store.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite", "":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	}
	return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// loadSectors returns the configured multiple table, or the built-in one
// when no external table is configured.
func loadSectors() (*sector.Table, error) {
	if cfg.Sectors.TablePath == "" {
		return sector.DefaultTable(), nil
	}
	return sector.LoadFile(cfg.Sectors.TablePath)
}

// loadIntake reads an intake file, YAML or JSON by extension.
func loadIntake(path string) (model.CompanyIntake, error) {
	var intake model.CompanyIntake

	data, err := os.ReadFile(path)
	if err != nil {
		return intake, eris.Wrapf(err, "read intake %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &intake)
	default:
		err = yaml.Unmarshal(data, &intake)
	}
	if err != nil {
		return intake, eris.Wrapf(err, "parse intake %s", path)
	}

	return intake, nil
}

// configuredScenarios returns the built-in scenarios with the multipliers
// from config applied.
func configuredScenarios() []model.Scenario {
	scns := scenario.Defaults()
	for i := range scns {
		switch scns[i].Type {
		case model.ScenarioConservative:
			if cfg.Scenarios.ConservativeMultiplier > 0 {
				scns[i].Multiplier = cfg.Scenarios.ConservativeMultiplier
			}
		case model.ScenarioOptimistic:
			if cfg.Scenarios.OptimisticMultiplier > 0 {
				scns[i].Multiplier = cfg.Scenarios.OptimisticMultiplier
			}
		}
	}
	return scns
}

// profileFromFlags builds the taxpayer profile from the shared
// --profile / --tax-base flags.
func profileFromFlags(kind string, taxBase float64) (model.TaxpayerProfile, error) {
	switch model.TaxpayerKind(kind) {
	case model.TaxpayerIndividual:
		return model.Individual(), nil
	case model.TaxpayerCompany:
		return model.Company(taxBase), nil
	}
	return model.TaxpayerProfile{}, eris.Errorf("unknown taxpayer profile %q (individual, company)", kind)
}

// reinvestmentFromFlags builds a reinvestment plan when an amount was
// given; nil otherwise.
func reinvestmentFromFlags(amount float64, qualifies bool) *model.Reinvestment {
	if amount <= 0 {
		return nil
	}
	return &model.Reinvestment{Planned: true, Qualifies: qualifies, Amount: amount}
}
