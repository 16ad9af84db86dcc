package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/valuation-cli/internal/model"
	"github.com/sells-group/valuation-cli/internal/ratelimit"
	"github.com/sells-group/valuation-cli/internal/sector"
	"github.com/sells-group/valuation-cli/internal/store"
)

func testHandler(t *testing.T, opts Options) http.Handler {
	t.Helper()
	if opts.Sectors == nil {
		opts.Sectors = sector.DefaultTable()
	}
	return Handler(opts)
}

func testStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "leads.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(t.Context()))
	return st
}

func validIntake() model.CompanyIntake {
	return model.CompanyIntake{
		ContactName:          "Ana García",
		CompanyName:          "Talleres Gómez SL",
		TaxID:                "B65410011",
		Email:                "ana@talleresgomez.es",
		Phone:                "+34912345678",
		Sector:               "Industrial",
		EmployeeBand:         model.EmployeeBand11to50,
		Revenue:              4_200_000,
		EBITDA:               600_000,
		OwnershipPct:         100,
		Location:             "Zaragoza",
		CompetitiveAdvantage: "Clientes recurrentes",
	}
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	t.Parallel()
	h := testHandler(t, Options{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestValuationEndpoint(t *testing.T) {
	t.Parallel()
	h := testHandler(t, Options{})

	rec := postJSON(t, h, "/api/valuation", map[string]any{"intake": validIntake()})
	require.Equal(t, http.StatusOK, rec.Code)

	var res model.ValuationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.InDelta(t, 600_000*(4.0+6.5)/2, res.PointEstimate, 0.01)
	assert.False(t, res.UsedFallback)
}

func TestValuationEndpointRejectsInvalidIntake(t *testing.T) {
	t.Parallel()
	h := testHandler(t, Options{})

	broken := validIntake()
	broken.TaxID = "B65410012"
	rec := postJSON(t, h, "/api/valuation", map[string]any{"intake": broken})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var res struct {
		Fields map[string]struct {
			HasError bool `json:"has_error"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Fields["tax_id"].HasError)
}

func TestTaxEndpoint(t *testing.T) {
	t.Parallel()
	h := testHandler(t, Options{})

	rec := postJSON(t, h, "/api/tax", map[string]any{
		"profile":           "individual",
		"sale_price":        1_000_000,
		"acquisition_value": 200_000,
		"sale_pct":          100,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var res model.TaxCalculationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.InDelta(t, 180_580, res.TotalTax, 0.01)
	assert.InDelta(t, 819_420, res.NetAfterTax, 0.01)
}

func TestTaxEndpointUnknownProfile(t *testing.T) {
	t.Parallel()
	h := testHandler(t, Options{})

	rec := postJSON(t, h, "/api/tax", map[string]any{"profile": "trust"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScenariosEndpoint(t *testing.T) {
	t.Parallel()
	h := testHandler(t, Options{})

	rec := postJSON(t, h, "/api/scenarios", map[string]any{
		"intake":            validIntake(),
		"profile":           "company",
		"current_tax_base":  500_000,
		"acquisition_value": 400_000,
		"custom_value":      5_000_000,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var res scenariosResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Scenarios, 4)
	assert.Equal(t, 5_000_000.0, res.Scenarios[3].Valuation)
}

func TestScenariosEndpointRejectsZeroAcquisition(t *testing.T) {
	t.Parallel()
	h := testHandler(t, Options{})

	rec := postJSON(t, h, "/api/scenarios", map[string]any{
		"intake":            validIntake(),
		"profile":           "individual",
		"acquisition_value": 0,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLeadLifecycle(t *testing.T) {
	t.Parallel()
	st := testStore(t)
	h := testHandler(t, Options{Store: st})

	rec := postJSON(t, h, "/api/leads", map[string]any{
		"intake":            validIntake(),
		"profile":           "individual",
		"acquisition_value": 400_000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var lead model.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lead))
	require.NotEmpty(t, lead.ID)
	require.Len(t, lead.Scenarios, 3)

	// List and fetch.
	listRec := httptest.NewRecorder()
	h.ServeHTTP(listRec, httptest.NewRequest(http.MethodGet, "/api/leads?sector=Industrial", nil))
	require.Equal(t, http.StatusOK, listRec.Code)

	getRec := httptest.NewRecorder()
	h.ServeHTTP(getRec, httptest.NewRequest(http.MethodGet, "/api/leads/"+lead.ID, nil))
	require.Equal(t, http.StatusOK, getRec.Code)

	// Status transition.
	b, _ := json.Marshal(map[string]string{"status": "qualified"})
	patchReq := httptest.NewRequest(http.MethodPatch, "/api/leads/"+lead.ID+"/status", bytes.NewReader(b))
	patchRec := httptest.NewRecorder()
	h.ServeHTTP(patchRec, patchReq)
	require.Equal(t, http.StatusOK, patchRec.Code)
}

func TestLeadEndpointsWithoutStore(t *testing.T) {
	t.Parallel()
	h := testHandler(t, Options{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leads", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCreateLeadSubmissionLimit(t *testing.T) {
	t.Parallel()
	st := testStore(t)
	limiter := ratelimit.New(2, time.Hour, nil)
	h := testHandler(t, Options{Store: st, Submissions: limiter})

	body := map[string]any{
		"intake":            validIntake(),
		"profile":           "individual",
		"acquisition_value": 400_000,
	}
	for i := range 2 {
		rec := postJSON(t, h, "/api/leads", body)
		require.Equal(t, http.StatusCreated, rec.Code, fmt.Sprintf("attempt %d", i+1))
	}

	rec := postJSON(t, h, "/api/leads", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestGlobalThrottle(t *testing.T) {
	t.Parallel()
	h := testHandler(t, Options{RequestsPerSec: 1, Burst: 1})

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
