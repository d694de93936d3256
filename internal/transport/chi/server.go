// Package chi exposes the showroom API over HTTP: search, compare,
// financing and chat endpoints plus health and metrics.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/drivelane/showroom/internal/domain"
	domfin "github.com/drivelane/showroom/internal/domain/finance"
	chatuc "github.com/drivelane/showroom/internal/usecase/chat"
	compareuc "github.com/drivelane/showroom/internal/usecase/compare"
	financeuc "github.com/drivelane/showroom/internal/usecase/finance"
	healthuc "github.com/drivelane/showroom/internal/usecase/health"
	searchuc "github.com/drivelane/showroom/internal/usecase/search"
)

// Error codes returned in the JSON error payload.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeVehicleNotFound  = "vehicle_not_found"
	codeSessionNotFound  = "session_not_found"
	codeRateLimited      = "rate_limited"
	codeProviderError    = "completion_provider_error"
	codeInternalError    = "internal_error"
)

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the usecase services onto chi routes.
type Server struct {
	search        *searchuc.Service
	compare       *compareuc.Service
	finance       *financeuc.Service
	chat          *chatuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	compare *compareuc.Service,
	finance *financeuc.Service,
	chat *chatuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		compare: compare,
		finance: finance,
		chat:    chat,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrVehicleNotFound, http.StatusNotFound, codeVehicleNotFound),
		sentinelHandler(domain.ErrSessionNotFound, http.StatusNotFound, codeSessionNotFound),
		sentinelHandler(domain.ErrInvalidFinanceParams, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited),
		sentinelHandler(domain.ErrCompletionProviderError, http.StatusBadGateway, codeProviderError),
	}
	return s
}

// Mount registers every route on the given router.
func (s *Server) Mount(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.Search)
		r.Post("/compare", s.Compare)
		r.Post("/finance/calculate", s.FinanceCalculate)
		r.Post("/finance/quote", s.FinanceQuote)
		r.Post("/chat", s.Chat)
	})
}

// SearchRequest is the body of POST /api/v1/search.
type SearchRequest struct {
	Query string `json:"query"`
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Query is required")
		return
	}

	resp, err := s.search.Search(r.Context(), req.Query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// CompareRequest is the body of POST /api/v1/compare. Either Query or
// both vehicle identifiers must be set.
type CompareRequest struct {
	Query       string `json:"query,omitempty"`
	FirstID     string `json:"first_id,omitempty"`
	SecondID    string `json:"second_id,omitempty"`
	FirstColor  string `json:"first_color,omitempty"`
	SecondColor string `json:"second_color,omitempty"`
}

// Compare handles POST /api/v1/compare.
func (s *Server) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var (
		result compareuc.Result
		err    error
	)
	switch {
	case req.FirstID != "" && req.SecondID != "":
		result, err = s.compare.CompareByIDs(
			r.Context(), req.FirstID, req.SecondID, req.FirstColor, req.SecondColor)
	case req.Query != "":
		result, err = s.compare.CompareText(r.Context(), req.Query)
	default:
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"Either query or both first_id and second_id are required")
		return
	}
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// FinanceRequest carries financing parameters over the wire.
type FinanceRequest struct {
	Scenario      string   `json:"scenario,omitempty"`
	Price         float64  `json:"price"`
	DownPayment   float64  `json:"down_payment"`
	APR           float64  `json:"apr"`
	TermMonths    int      `json:"term_months"`
	ResidualValue *float64 `json:"residual_value,omitempty"`
	TradeInValue  float64  `json:"trade_in_value"`
	TaxRate       float64  `json:"tax_rate"`
}

func (req FinanceRequest) params() domfin.Params {
	return domfin.Params{
		Price:         req.Price,
		DownPayment:   req.DownPayment,
		APR:           req.APR,
		TermMonths:    req.TermMonths,
		ResidualValue: req.ResidualValue,
		TradeInValue:  req.TradeInValue,
		TaxRate:       req.TaxRate,
	}
}

// FinanceCalculate handles POST /api/v1/finance/calculate.
func (s *Server) FinanceCalculate(w http.ResponseWriter, r *http.Request) {
	var req FinanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	scenario := domfin.Scenario(req.Scenario)
	if !scenario.Valid() {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"Scenario must be one of purchase, lease, subscription")
		return
	}

	calc, err := s.finance.Calculate(r.Context(), scenario, req.params())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, calc)
}

// FinanceQuote handles POST /api/v1/finance/quote.
func (s *Server) FinanceQuote(w http.ResponseWriter, r *http.Request) {
	var req FinanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	quote, err := s.finance.Aggregate(r.Context(), req.params())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

// Chat handles POST /api/v1/chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Message is required")
		return
	}

	resp, err := s.chat.Respond(r.Context(), req.SessionID, req.Message)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.StatusDown {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, report)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrVehicleNotFound,
		domain.ErrSessionNotFound,
		domain.ErrInvalidFinanceParams,
		domain.ErrEmptyCatalog,
		domain.ErrRateLimited,
		domain.ErrCompletionProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
