package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kirillkom/talentoplus/internal/config"
	"github.com/kirillkom/talentoplus/internal/core/domain"
	"github.com/kirillkom/talentoplus/internal/core/ports"
	"github.com/kirillkom/talentoplus/internal/observability/metrics"
)

const (
	backpressureWait = 250 * time.Millisecond
	maxAskBodyBytes  = 64 << 10
)

type Dependencies struct {
	Questions   ports.QuestionAnswerer
	Dashboard   ports.DashboardReader
	Employees   ports.EmployeeService
	Departments ports.DepartmentReader
	Imports     ports.ImportUploader
	ImportJobs  ports.ImportReader

	// Metrics is optional; without it /metrics is not mounted.
	Metrics *metrics.HTTPServerMetrics
	Logger  *zap.Logger
}

type Router struct {
	cfg  config.Config
	deps Dependencies
	log  *zap.Logger
}

func NewRouter(cfg config.Config, deps Dependencies) *Router {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{cfg: cfg, deps: deps, log: logger}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", rt.healthz)
	if rt.deps.Metrics != nil {
		mux.Handle("GET /metrics", rt.deps.Metrics.Handler())
	}

	mux.HandleFunc("POST /v1/ai/ask", rt.ask)
	mux.HandleFunc("GET /v1/dashboard", rt.dashboard)

	mux.HandleFunc("GET /v1/employees", rt.listEmployees)
	mux.HandleFunc("POST /v1/employees", rt.createEmployee)
	mux.HandleFunc("GET /v1/employees/export", rt.exportEmployees)
	mux.HandleFunc("GET /v1/employees/{id}", rt.getEmployee)
	mux.HandleFunc("PUT /v1/employees/{id}", rt.updateEmployee)
	mux.HandleFunc("DELETE /v1/employees/{id}", rt.deleteEmployee)

	mux.HandleFunc("GET /v1/departments", rt.listDepartments)

	mux.HandleFunc("POST /v1/imports", rt.uploadImport)
	mux.HandleFunc("GET /v1/imports/{id}", rt.getImport)

	var handler http.Handler = mux
	handler = bearerAuthMiddleware(handler, rt.cfg.APIKey, "/healthz", "/metrics")
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, backpressureWait)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	if rt.deps.Metrics != nil {
		handler = rt.deps.Metrics.Middleware(handler)
	}
	handler = accessLogMiddleware(rt.log, handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) ask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxAskBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}

	// Blank questions are valid and count everyone.
	result, err := rt.deps.Questions.Ask(r.Context(), req.Question, scopeFromRequest(r))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) dashboard(w http.ResponseWriter, r *http.Request) {
	result, err := rt.deps.Dashboard.Metrics(r.Context(), scopeFromRequest(r))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) listDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := rt.deps.Departments.List(r.Context())
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": departments})
}

func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		rt.log.Error("request_failed",
			zap.String("request_id", requestIDFromContext(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		message = "internal error"
	}
	writeJSON(w, status, errorBody(message))
}

// scopeFromRequest reads the optional owner header; absent means unscoped.
func scopeFromRequest(r *http.Request) domain.Scope {
	return domain.Scope{OwnerID: strings.TrimSpace(r.Header.Get(ownerIDHeader))}
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
