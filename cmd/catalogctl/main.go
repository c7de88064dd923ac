// Command catalogctl loads catalog fixtures into the document store:
// product hashes plus curated topic content, and creates the search index.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/greenbasket/catalogd/internal/config"
	dbRedis "github.com/greenbasket/catalogd/internal/db/redis"
	"github.com/greenbasket/catalogd/internal/domain/content"
	"github.com/greenbasket/catalogd/internal/domain/product"
	logpkg "github.com/greenbasket/catalogd/internal/logger"
	catalogrepo "github.com/greenbasket/catalogd/internal/repository/catalog"
	contentrepo "github.com/greenbasket/catalogd/internal/repository/content"
)

type productFixture struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	Category       string   `json:"category"`
	CategorySub    string   `json:"category_sub"`
	Price          float64  `json:"price"`
	SalePrice      float64  `json:"sale_price"`
	Tags           []string `json:"tags"`
	Rating         float64  `json:"rating"`
	RatingCount    int      `json:"rating_count"`
	Purchased      int      `json:"purchased"`
	Views          int      `json:"views"`
	Active         bool     `json:"active"`
	Featured       bool     `json:"featured"`
	HealthTags     []string `json:"health_tags"`
	DietaryTags    []string `json:"dietary_tags"`
	AgeMin         *int     `json:"age_min"`
	AgeMax         *int     `json:"age_max"`
	CreatedAt      string   `json:"created_at"` // RFC 3339
	SearchKeywords string   `json:"search_keywords"`
	Ingredients    string   `json:"ingredients"`
	ShortDesc      string   `json:"short_desc"`
	DetailedDesc   string   `json:"detailed_desc"`
}

type topicFixture struct {
	Code         string            `json:"code"`
	Names        map[string]string `json:"names"`
	DisplayOrder int               `json:"display_order"`
	Active       bool              `json:"active"`
	ProductIDs   []string          `json:"product_ids"`
	Bundles      []content.Bundle  `json:"bundles"`
	Tips         []content.Tip     `json:"tips"`
	Facts        []content.Fact    `json:"facts"`
}

type fixtureFile struct {
	Products []productFixture `json:"products"`
	Topics   []topicFixture   `json:"topics"`
}

func main() {
	file := flag.String("file", "", "path to the fixture JSON file")
	reset := flag.Bool("reset", false, "delete existing products and topics before loading")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: catalogctl -file <fixtures.json>")
		os.Exit(2)
	}

	env := config.GetEnv()
	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	data, err := os.ReadFile(filepath.Clean(*file))
	if err != nil {
		logger.Fatal("Failed to read fixture file", zap.Error(err))
	}

	var fixtures fixtureFile
	if err := json.Unmarshal(data, &fixtures); err != nil {
		logger.Fatal("Failed to parse fixture file", zap.Error(err))
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	catalogRepo := catalogrepo.New(store, cfg.Catalog.KeyPrefix)
	contentRepo := contentrepo.New(store, cfg.Catalog.KeyPrefix)

	if err := catalogRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure product index", zap.Error(err))
	}

	if *reset {
		np, err := catalogRepo.Purge(ctx)
		if err != nil {
			logger.Fatal("Failed to purge products", zap.Error(err))
		}
		nt, err := contentRepo.Purge(ctx)
		if err != nil {
			logger.Fatal("Failed to purge topics", zap.Error(err))
		}
		logger.Info("Existing data purged",
			zap.Int("products", np), zap.Int("topics", nt))
	}

	records := make([]catalogrepo.Record, 0, len(fixtures.Products))
	for i := range fixtures.Products {
		rec, err := recordFromFixture(&fixtures.Products[i])
		if err != nil {
			logger.Fatal("Bad product fixture",
				zap.String("id", fixtures.Products[i].ID), zap.Error(err))
		}
		records = append(records, rec)
	}
	if err := catalogRepo.Upsert(ctx, records); err != nil {
		logger.Fatal("Failed to load products", zap.Error(err))
	}

	for _, t := range fixtures.Topics {
		topic := content.New(
			t.Code, t.Names, t.DisplayOrder, t.Active,
			t.ProductIDs, t.Bundles, t.Tips, t.Facts,
		)
		if err := contentRepo.Put(ctx, topic); err != nil {
			logger.Fatal("Failed to load topic", zap.String("code", t.Code), zap.Error(err))
		}
	}

	logger.Info("Fixtures loaded",
		zap.Int("products", len(records)),
		zap.Int("topics", len(fixtures.Topics)),
	)
}

func recordFromFixture(f *productFixture) (catalogrepo.Record, error) {
	if f.ID == "" {
		return catalogrepo.Record{}, fmt.Errorf("product id is required")
	}

	createdAt := time.Now().UTC()
	if f.CreatedAt != "" {
		t, err := time.Parse(time.RFC3339, f.CreatedAt)
		if err != nil {
			return catalogrepo.Record{}, fmt.Errorf("invalid created_at: %w", err)
		}
		createdAt = t.UTC()
	}

	var bracket *product.AgeBracket
	if f.AgeMin != nil || f.AgeMax != nil {
		bracket = &product.AgeBracket{}
		if f.AgeMin != nil {
			bracket.Min = *f.AgeMin
		}
		if f.AgeMax != nil {
			bracket.Max = *f.AgeMax
		}
	}

	return catalogrepo.Record{
		Summary: product.New(
			f.ID, f.Name, f.Slug, f.Category, f.CategorySub,
			f.Price, f.SalePrice,
			f.Tags,
			f.Rating, f.RatingCount, f.Purchased, f.Views,
			f.Active, f.Featured,
			f.HealthTags, f.DietaryTags,
			bracket,
			createdAt,
		),
		SearchKeywords: f.SearchKeywords,
		Ingredients:    f.Ingredients,
		ShortDesc:      f.ShortDesc,
		DetailedDesc:   f.DetailedDesc,
	}, nil
}
