// Package api exposes the calculation engine over JSON. Handlers only
// decode, validate, delegate and encode; all numeric behavior lives in
// the engine packages.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/valuation-cli/internal/model"
	"github.com/sells-group/valuation-cli/internal/ratelimit"
	"github.com/sells-group/valuation-cli/internal/sector"
	"github.com/sells-group/valuation-cli/internal/store"
)

// Options wires the API's collaborators.
type Options struct {
	Sectors        *sector.Table
	Store          store.Store      // optional; lead endpoints 503 without it
	Submissions    *ratelimit.Store // optional; no submission cap without it
	AllowedOrigins []string
	RequestsPerSec float64
	Burst          int
}

// Handler builds the HTTP handler for the valuation API.
func Handler(opts Options) http.Handler {
	r := chi.NewRouter()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	if opts.RequestsPerSec > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = int(opts.RequestsPerSec)
		}
		r.Use(throttle(rate.NewLimiter(rate.Limit(opts.RequestsPerSec), burst)))
	}

	s := &server{
		sectors:     opts.Sectors,
		store:       opts.Store,
		submissions: opts.Submissions,
	}

	r.Get("/health", s.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/sectors", s.listSectors)
		r.Post("/valuation", s.valuation)
		r.Post("/tax", s.taxImpact)
		r.Post("/scenarios", s.scenarios)
		r.Post("/leads", s.createLead)
		r.Get("/leads", s.listLeads)
		r.Get("/leads/{id}", s.getLead)
		r.Patch("/leads/{id}/status", s.updateLeadStatus)
	})

	return r
}

type server struct {
	sectors     *sector.Table
	store       store.Store
	submissions *ratelimit.Store
}

// throttle applies a process-wide request budget ahead of the handlers.
func throttle(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "demasiadas peticiones")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("api: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "cuerpo de la petición no válido")
		return false
	}
	return true
}

// profileFromRequest maps the wire shape onto the tagged union.
func profileFromRequest(kind string, currentTaxBase float64) (model.TaxpayerProfile, bool) {
	switch model.TaxpayerKind(kind) {
	case model.TaxpayerIndividual:
		return model.Individual(), true
	case model.TaxpayerCompany:
		return model.Company(currentTaxBase), true
	}
	return model.TaxpayerProfile{}, false
}
