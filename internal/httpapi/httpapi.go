// Package httpapi is the presentation boundary: it decodes mutation
// requests, hands them to the session service, and maps engine errors to
// HTTP statuses. All display formatting stays client-side.
package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"gestaopro/backend/internal/domain"
	"gestaopro/backend/internal/engine"
	"gestaopro/backend/internal/report"
	"gestaopro/backend/internal/service"
)

const dateLayout = "2006-01-02"

type API struct {
	service           *service.Service
	allowedOrigin     string
	requestsPerMinute int
	validate          *validator.Validate
}

func New(svc *service.Service, allowedOrigin string, requestsPerMinute int) *API {
	if requestsPerMinute < 1 {
		requestsPerMinute = 240
	}
	return &API{
		service:           svc,
		allowedOrigin:     allowedOrigin,
		requestsPerMinute: requestsPerMinute,
		validate:          validator.New(),
	}
}

func (a *API) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(a.baseMiddleware)
	r.Use(httprate.LimitByIP(a.requestsPerMinute, time.Minute))

	r.Get("/healthz", a.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", a.handleListProducts)
		r.Post("/products", a.handleCreateProduct)
		r.Get("/transactions", a.handleListTransactions)
		r.Post("/transactions", a.handleCreateTransaction)
		r.Get("/dashboard", a.handleDashboard)
		r.Get("/reports", a.handleReport)
	})

	return r
}

func (a *API) baseMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Access-Control-Allow-Origin", a.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Vary", "Origin")

		if r.Method == http.MethodPost && strings.Contains(strings.ToLower(r.Header.Get("Content-Type")), "application/json") {
			r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		startedAt := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(startedAt))
	})
}

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"products": a.service.ListProducts(r.Context()),
	})
}

func (a *API) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req domain.ProductCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	product, err := a.service.AddProduct(r.Context(), req)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"product": product})
}

func (a *API) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": a.service.ListTransactions(r.Context()),
	})
}

func (a *API) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req domain.TransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	tx, err := a.service.Apply(r.Context(), req)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"transaction": tx})
}

func (a *API) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.service.Dashboard(r.Context()))
}

// handleReport accepts either ?range=today|week|month or explicit
// ?start=YYYY-MM-DD / ?end=YYYY-MM-DD bounds (each optional, inclusive).
func (a *API) handleReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if preset := strings.TrimSpace(query.Get("range")); preset != "" {
		summary, err := a.service.ReportPreset(r.Context(), preset)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
		return
	}

	start, err := parseDate(query.Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	end, err := parseDate(query.Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, a.service.Report(r.Context(), start, end))
}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, engine.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrInsufficientStock),
		errors.Is(err, engine.ErrDuplicateSKU):
		return http.StatusConflict
	case errors.Is(err, engine.ErrInvalidQuantity),
		errors.Is(err, engine.ErrInvalidDiscount),
		errors.Is(err, engine.ErrInvalidType),
		errors.Is(err, engine.ErrInvalidPrice),
		errors.Is(err, engine.ErrInvalidProduct),
		errors.Is(err, report.ErrUnknownRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func writeError(w http.ResponseWriter, status int, err error) {
	// 4xx messages are user-facing; 5xx responses stay generic so internal
	// details never leak to clients.
	msg := err.Error()
	if status >= 500 {
		log.Printf("internal error (status %d): %v", status, err)
		msg = "internal server error"
	}
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
