package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sells-group/valuation-cli/internal/model"
	"github.com/sells-group/valuation-cli/internal/scenario"
	"github.com/sells-group/valuation-cli/internal/store"
	"github.com/sells-group/valuation-cli/internal/tax"
	"github.com/sells-group/valuation-cli/internal/validate"
	"github.com/sells-group/valuation-cli/internal/valuation"
)

func (s *server) listSectors(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.sectors.All())
}

// validateIntake runs all steps and returns the per-field states when
// anything fails.
func validateIntake(intake model.CompanyIntake) (bool, map[string]validate.FieldState) {
	v := validate.NewStepValidator()
	ok := true
	for step := 1; step <= validate.StepCount; step++ {
		if !v.ValidateStep(step, intake) {
			ok = false
		}
	}
	if ok {
		return true, nil
	}

	states := make(map[string]validate.FieldState)
	for step := 1; step <= validate.StepCount; step++ {
		for _, f := range validate.StepFields(step) {
			v.Touch(f)
			v.ValidateField(f, intake)
			states[f] = v.FieldState(f)
		}
	}
	return false, states
}

func (s *server) valuation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Intake model.CompanyIntake `json:"intake"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if ok, states := validateIntake(req.Intake); !ok {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "datos de entrada no válidos",
			"fields": states,
		})
		return
	}

	res, err := valuation.Compute(req.Intake, s.sectors)
	if err != nil {
		if valuation.IsInvalidInput(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "error interno")
		return
	}

	writeJSON(w, http.StatusOK, res)
}

type taxRequest struct {
	Profile          string              `json:"profile"`
	CurrentTaxBase   float64             `json:"current_tax_base"`
	SalePrice        float64             `json:"sale_price"`
	AcquisitionValue float64             `json:"acquisition_value"`
	SalePct          float64             `json:"sale_pct"`
	Reinvestment     *model.Reinvestment `json:"reinvestment,omitempty"`
}

func (s *server) taxImpact(w http.ResponseWriter, r *http.Request) {
	var req taxRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, ok := profileFromRequest(req.Profile, req.CurrentTaxBase)
	if !ok {
		writeError(w, http.StatusBadRequest, "perfil de contribuyente desconocido")
		return
	}
	if req.SalePct == 0 {
		req.SalePct = 100
	}

	res := tax.CalculateImpact(profile, req.SalePrice, req.AcquisitionValue, req.SalePct, req.Reinvestment)
	writeJSON(w, http.StatusOK, res)
}

type scenariosRequest struct {
	Intake           model.CompanyIntake `json:"intake"`
	Profile          string              `json:"profile"`
	CurrentTaxBase   float64             `json:"current_tax_base"`
	AcquisitionValue float64             `json:"acquisition_value"`
	CustomValue      *float64            `json:"custom_value,omitempty"`
	Reinvestment     *model.Reinvestment `json:"reinvestment,omitempty"`
}

type scenariosResponse struct {
	Valuation *model.ValuationResult `json:"valuation"`
	Scenarios []model.ScenarioResult `json:"scenarios"`
}

// composeScenarios runs the full pipeline for a request: valuation, then
// every scenario. Shared by the scenarios and leads endpoints.
func (s *server) composeScenarios(ctx context.Context, w http.ResponseWriter, req scenariosRequest) (*scenariosResponse, bool) {
	if ok, states := validateIntake(req.Intake); !ok {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "datos de entrada no válidos",
			"fields": states,
		})
		return nil, false
	}

	profile, ok := profileFromRequest(req.Profile, req.CurrentTaxBase)
	if !ok {
		writeError(w, http.StatusBadRequest, "perfil de contribuyente desconocido")
		return nil, false
	}

	base, err := valuation.Compute(req.Intake, s.sectors)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return nil, false
	}

	scns := scenario.Defaults()
	if req.CustomValue != nil {
		scns = append(scns, scenario.Custom(*req.CustomValue))
	}

	results, err := scenario.ComposeAll(ctx, scns, base, profile, req.AcquisitionValue, req.Reinvestment)
	if err != nil {
		if scenario.IsInvalidScenario(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, "error interno")
		return nil, false
	}

	return &scenariosResponse{Valuation: base, Scenarios: results}, true
}

func (s *server) scenarios(w http.ResponseWriter, r *http.Request) {
	var req scenariosRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, ok := s.composeScenarios(r.Context(), w, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) createLead(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "almacén de leads no configurado")
		return
	}

	var req scenariosRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if s.submissions != nil && !s.submissions.Allow(req.Intake.TaxID) {
		writeError(w, http.StatusTooManyRequests, "se ha superado el número de envíos permitidos; inténtalo más tarde")
		return
	}

	res, ok := s.composeScenarios(r.Context(), w, req)
	if !ok {
		return
	}

	lead, err := s.store.SaveLead(r.Context(), req.Intake, res.Valuation, res.Scenarios)
	if err != nil {
		zap.L().Error("api: save lead", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "no se pudo guardar el lead")
		return
	}

	zap.L().Info("api: lead created",
		zap.String("lead_id", lead.ID),
		zap.String("sector", lead.Intake.Sector),
		zap.Float64("point_estimate", res.Valuation.PointEstimate),
	)
	writeJSON(w, http.StatusCreated, lead)
}

func (s *server) listLeads(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "almacén de leads no configurado")
		return
	}

	filter := store.LeadFilter{
		Status: model.LeadStatus(r.URL.Query().Get("status")),
		Sector: r.URL.Query().Get("sector"),
	}
	leads, err := s.store.ListLeads(r.Context(), filter)
	if err != nil {
		zap.L().Error("api: list leads", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "no se pudieron listar los leads")
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (s *server) getLead(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "almacén de leads no configurado")
		return
	}

	lead, err := s.store.GetLead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "lead no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (s *server) updateLeadStatus(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "almacén de leads no configurado")
		return
	}

	var req struct {
		Status model.LeadStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.store.UpdateLeadStatus(r.Context(), id, req.Status); err != nil {
		writeError(w, http.StatusNotFound, "lead no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(req.Status)})
}
