package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/greenbasket/catalogd/internal/domain"
	"github.com/greenbasket/catalogd/internal/domain/catalog/criteria"
	"github.com/greenbasket/catalogd/internal/domain/catalog/page"
	"github.com/greenbasket/catalogd/internal/logger"
	"github.com/greenbasket/catalogd/internal/metrics"
	cataloguc "github.com/greenbasket/catalogd/internal/usecase/catalog"
	healthuc "github.com/greenbasket/catalogd/internal/usecase/health"
	recommenduc "github.com/greenbasket/catalogd/internal/usecase/recommend"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the catalog read API over chi.
type Server struct {
	catalog   *cataloguc.Service
	recommend *recommenduc.Service
	health    *healthuc.Service
	logger    *zap.Logger

	defaultPageSize int
	maxPageSize     int

	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog *cataloguc.Service,
	recommend *recommenduc.Service,
	health *healthuc.Service,
	defaultPageSize, maxPageSize int,
	logger *zap.Logger,
) *Server {
	s := &Server{
		catalog:         catalog,
		recommend:       recommend,
		health:          health,
		logger:          logger,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrProductNotFound, http.StatusNotFound, codeProductNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrInvalidFilterRange, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeStoreUnavailable),
	}
	return s
}

// Routes mounts all API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api/products", s.ListProducts)
	r.Get("/api/products/featured", s.FeaturedProducts)
	r.Get("/api/products/{id}", s.GetProduct)
	r.Get("/api/products/{id}/similar", s.SimilarProducts)
	r.Post("/api/rank", s.RankCandidates)
	r.Get("/api/topics", s.ListTopics)
	r.Get("/api/topics/{code}/recommendations", s.TopicRecommendations)
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// ListProducts handles GET /api/products.
func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	crit, err := criteriaFromQuery(r)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFilterRange) {
			s.handleDomainError(w, r, err)
			return
		}
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}
	req := pageRequestFromQuery(r, s.defaultPageSize, s.maxPageSize)

	kind := "browse"
	if crit.HasQuery() {
		kind = "text"
	}

	start := time.Now()
	pg, err := s.catalog.Search(r.Context(), crit, req)
	if err != nil {
		metrics.CatalogSearchesTotal.WithLabelValues(kind, "error").Inc()
		s.handleDomainError(w, r, err)
		return
	}
	metrics.CatalogSearchesTotal.WithLabelValues(kind, "ok").Inc()
	metrics.CatalogSearchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, pageToDTO(pg))
}

// FeaturedProducts handles GET /api/products/featured.
func (s *Server) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	req := pageRequestFromQuery(r, s.defaultPageSize, s.maxPageSize)

	start := time.Now()
	pg, err := s.catalog.Featured(r.Context(), req)
	if err != nil {
		metrics.CatalogSearchesTotal.WithLabelValues("featured", "error").Inc()
		s.handleDomainError(w, r, err)
		return
	}
	metrics.CatalogSearchesTotal.WithLabelValues("featured", "ok").Inc()
	metrics.CatalogSearchDuration.WithLabelValues("featured").Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, pageToDTO(pg))
}

// GetProduct handles GET /api/products/{id}.
func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, productToDTO(&p))
}

// SimilarProducts handles GET /api/products/{id}/similar.
func (s *Server) SimilarProducts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	limit := queryInt(r, "limit", 0)

	start := time.Now()
	items, err := s.catalog.Similar(r.Context(), id, limit)
	if err != nil {
		metrics.CatalogSearchesTotal.WithLabelValues("similar", "error").Inc()
		s.handleDomainError(w, r, err)
		return
	}
	metrics.CatalogSearchesTotal.WithLabelValues("similar", "ok").Inc()
	metrics.CatalogSearchDuration.WithLabelValues("similar").Observe(time.Since(start).Seconds())

	out := make([]productDTO, len(items))
	for i := range items {
		out[i] = productToDTO(&items[i])
	}
	writeJSON(w, http.StatusOK, productListDTO{Items: out})
}

// RankCandidates handles POST /api/rank.
func (s *Server) RankCandidates(w http.ResponseWriter, r *http.Request) {
	var req rankRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Candidates) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "candidates are required")
		return
	}

	scored, err := s.recommend.Rank(r.Context(), req.Candidates, profileFromDTO(req.Profile), req.Topic)
	if err != nil {
		metrics.RankRequestsTotal.WithLabelValues("error").Inc()
		s.handleDomainError(w, r, err)
		return
	}
	metrics.RankRequestsTotal.WithLabelValues("ok").Inc()
	metrics.RankCandidates.Observe(float64(len(req.Candidates)))

	writeJSON(w, http.StatusOK, rankResponseFromScored(scored))
}

// ListTopics handles GET /api/topics.
func (s *Server) ListTopics(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")

	topics, err := s.recommend.Topics(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	out := make([]topicDTO, len(topics))
	for i := range topics {
		out[i] = topicToDTO(&topics[i], lang)
	}
	writeJSON(w, http.StatusOK, topicListDTO{Items: out})
}

// TopicRecommendations handles GET /api/topics/{code}/recommendations.
func (s *Server) TopicRecommendations(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	lang := r.URL.Query().Get("lang")

	rec, err := s.recommend.Recommend(r.Context(), code, profileFromQuery(r), lang)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, recommendationToDTO(&rec))
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	writeJSON(w, httpStatus, healthDTO{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// --- criteria and paging ---

func criteriaFromQuery(r *http.Request) (criteria.Criteria, error) {
	q := r.URL.Query()

	raw := criteria.Raw{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
		Dir:      q.Get("dir"),
		Tags:     queryList(r, "tags"),
	}
	if v, ok := queryFloat(r, "min_price"); ok {
		raw.MinPrice = &v
	}
	if v, ok := queryFloat(r, "max_price"); ok {
		raw.MaxPrice = &v
	}

	return criteria.New(raw)
}

func pageRequestFromQuery(r *http.Request, defaultSize, maxSize int) page.Request {
	return page.NewRequest(
		queryInt(r, "page", 0),
		queryInt(r, "size", 0),
		defaultSize,
		maxSize,
	)
}

// --- error mapping ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorDTO{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrProductNotFound,
		domain.ErrNotFound,
		domain.ErrInvalidFilterRange,
		domain.ErrStoreUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.logger
	if reqLog := logger.FromContext(r.Context()); reqLog != nil {
		log = reqLog
	}
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
