package catalogd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/greenbasket/catalogd/internal/db"
	dbRedis "github.com/greenbasket/catalogd/internal/db/redis"
	"github.com/greenbasket/catalogd/internal/domain/catalog/criteria"
	"github.com/greenbasket/catalogd/internal/domain/catalog/page"
	domcontent "github.com/greenbasket/catalogd/internal/domain/content"
	"github.com/greenbasket/catalogd/internal/domain/product"
	"github.com/greenbasket/catalogd/internal/domain/profile"
	"github.com/greenbasket/catalogd/internal/domain/rank"
	catalogrepo "github.com/greenbasket/catalogd/internal/repository/catalog"
	contentrepo "github.com/greenbasket/catalogd/internal/repository/content"
	cataloguc "github.com/greenbasket/catalogd/internal/usecase/catalog"
	healthuc "github.com/greenbasket/catalogd/internal/usecase/health"
	recommenduc "github.com/greenbasket/catalogd/internal/usecase/recommend"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces so tests can substitute services.
type catalogUseCase interface {
	Search(ctx context.Context, crit criteria.Criteria, req page.Request) (page.Page, error)
	Featured(ctx context.Context, req page.Request) (page.Page, error)
	Get(ctx context.Context, id string) (product.Summary, error)
	Similar(ctx context.Context, id string, limit int) ([]product.Summary, error)
}

type recommendUseCase interface {
	Rank(ctx context.Context, ids []string, prof profile.Profile, topic string) ([]rank.Scored, error)
	Topics(ctx context.Context) ([]domcontent.Topic, error)
	Recommend(ctx context.Context, code string, prof profile.Profile, lang string) (recommenduc.Recommendation, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the catalogd SDK entry point.
type Client struct {
	store        db.Store
	catalogRepo  *catalogrepo.Repo
	catalogSvc   catalogUseCase
	recommendSvc recommendUseCase
	healthSvc    healthUseCase

	defaultPageSize int
	maxPageSize     int

	obs *observer
}

// New creates a catalogd Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix:       "catalogd:",
		defaultPageSize: page.DefaultSize,
		maxPageSize:     page.MaxSize,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("catalogd: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("catalogd: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("catalogd: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	catalogRepo := catalogrepo.New(store, cfg.keyPrefix)
	contentRepo := contentrepo.New(store, cfg.keyPrefix)

	return &Client{
		store:           store,
		catalogRepo:     catalogRepo,
		catalogSvc:      cataloguc.New(catalogRepo),
		recommendSvc:    recommenduc.New(contentRepo, catalogRepo),
		healthSvc:       healthuc.New(store),
		defaultPageSize: cfg.defaultPageSize,
		maxPageSize:     cfg.maxPageSize,
		obs:             obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// EnsureIndex creates the product search index if it does not exist.
func (c *Client) EnsureIndex(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ensure_index", start, err) }()

	return c.catalogRepo.EnsureIndex(ctx)
}

// Catalog returns the catalog read service.
func (c *Client) Catalog() *CatalogService {
	return &CatalogService{
		svc:             c.catalogSvc,
		defaultPageSize: c.defaultPageSize,
		maxPageSize:     c.maxPageSize,
		obs:             c.obs,
	}
}

// Recommendations returns the personalization service.
func (c *Client) Recommendations() *RecommendService {
	return &RecommendService{svc: c.recommendSvc, obs: c.obs}
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "error"
	Checks map[string]string // component -> "ok"/"error"
}

// Health checks the health of all system components.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}
