package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/esdocs/internal/domain"
	"github.com/kailas-cloud/esdocs/internal/domain/search/request"
	logpkg "github.com/kailas-cloud/esdocs/internal/logger"
	"github.com/kailas-cloud/esdocs/internal/version"
)

// maxBodyBytes bounds request bodies; the largest valid article is ~160KB of content.
const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server implements ServerInterface.
type Server struct {
	articles      ArticleService
	users         UserService
	health        HealthService
	logger        *zap.Logger
	metrics       http.Handler
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(articles ArticleService, users UserService, health HealthService, logger *zap.Logger) *Server {
	s := &Server{
		articles: articles,
		users:    users,
		health:   health,
		logger:   logger,
		metrics:  promhttp.Handler(),
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrArticleNotFound, http.StatusNotFound, ErrorResponseCodeArticleNotFound),
		sentinelHandler(domain.ErrUserNotFound, http.StatusNotFound, ErrorResponseCodeUserNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorResponseCodeNotFound),
		validationHandler,
		sentinelHandler(domain.ErrConflict, http.StatusConflict, ErrorResponseCodeConflict),
		sentinelHandler(domain.ErrBackendUnavailable,
			http.StatusServiceUnavailable, ErrorResponseCodeBackendUnavailable),
	}
	return s
}

// WithMetricsHandler replaces the /metrics handler (custom registries, tests).
func (s *Server) WithMetricsHandler(h http.Handler) *Server {
	if h != nil {
		s.metrics = h
	}
	return s
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Message: "esdocs is running",
		Version: version.Version,
	})
}

// HealthCheck handles GET /health/.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	resp := HealthResponse{
		Status:        string(report.Status),
		Elasticsearch: "connected",
		Cluster:       report.Cluster,
		Checks:        checks,
	}
	httpStatus := http.StatusOK
	if !report.ClusterHealthy() {
		resp.Elasticsearch = "disconnected"
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, resp)
}

// ElasticsearchHealth handles GET /health/elasticsearch.
func (s *Server) ElasticsearchHealth(w http.ResponseWriter, r *http.Request) {
	state := "healthy"
	if !s.health.Check(r.Context()).ClusterHealthy() {
		state = "unhealthy"
	}
	writeJSON(w, http.StatusOK, ElasticsearchHealthResponse{Elasticsearch: state})
}

// CreateArticle handles POST /documents/articles.
func (s *Server) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req ArticleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	a, err := articleFromRequest(req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	created, err := s.articles.Create(r.Context(), a)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, articleToResponse(created))
}

// SearchArticles handles GET /documents/articles.
func (s *Server) SearchArticles(w http.ResponseWriter, r *http.Request, params SearchArticlesParams) {
	if params.Limit != nil && *params.Limit < 1 {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed,
			fmt.Sprintf("limit must be between 1 and %d", request.MaxLimit))
		return
	}

	req, err := request.New(
		deref(params.Query), deref(params.Category), deref(params.Tags), deref(params.Limit), deref(params.Offset),
	)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	page, err := s.articles.Search(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]ArticleResponse, 0, page.Len())
	for _, a := range page.Items() {
		items = append(items, articleToResponse(a))
	}

	w.Header().Set("X-Total-Count", strconv.FormatInt(page.Total(), 10))
	writeJSON(w, http.StatusOK, items)
}

// GetArticle handles GET /documents/articles/{id}.
func (s *Server) GetArticle(w http.ResponseWriter, r *http.Request, id string) {
	a, err := s.articles.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, articleToResponse(a))
}

// UpdateArticle handles PUT /documents/articles/{id}.
func (s *Server) UpdateArticle(w http.ResponseWriter, r *http.Request, id string) {
	var req ArticleUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	a, err := s.articles.Update(r.Context(), id, articlePatchFromRequest(req))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, articleToResponse(a))
}

// DeleteArticle handles DELETE /documents/articles/{id}.
func (s *Server) DeleteArticle(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.articles.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Article deleted successfully"})
}

// CreateUser handles POST /documents/users.
func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := userFromRequest(req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	created, err := s.users.Create(r.Context(), u)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, userToResponse(created))
}

// GetUser handles GET /documents/users/{id}.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request, id string) {
	u, err := s.users.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(u))
}

// UpdateUser handles PUT /documents/users/{id}.
func (s *Server) UpdateUser(w http.ResponseWriter, r *http.Request, id string) {
	var req UserUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := s.users.Update(r.Context(), id, userPatchFromRequest(req))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(u))
}

// DeleteUser handles DELETE /documents/users/{id}.
func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.users.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	s.metrics.ServeHTTP(w, r)
}

// ParamErrorHandler renders parameter binding failures as 400 bad_request.
func ParamErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
}

// NotFound renders unknown routes as JSON.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, ErrorResponseCodeNotFound, "route not found")
}

// MethodNotAllowed renders unsupported methods as JSON.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, ErrorResponseCodeBadRequest, "method not allowed")
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrArticleNotFound,
		domain.ErrUserNotFound,
		domain.ErrNotFound,
		domain.ErrConflict,
		domain.ErrBackendUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, safeDomainMessage(err))
		return true
	}
}

// validationHandler reports the field-level reason; validation messages are built from request values only.
func validationHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrValidation) {
		return false
	}
	writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, err.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context(), s.logger)
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}
