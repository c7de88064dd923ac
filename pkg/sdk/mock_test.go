package catalogd

import (
	"context"
	"time"

	"github.com/greenbasket/catalogd/internal/domain/catalog/criteria"
	"github.com/greenbasket/catalogd/internal/domain/catalog/page"
	domcontent "github.com/greenbasket/catalogd/internal/domain/content"
	"github.com/greenbasket/catalogd/internal/domain/product"
	"github.com/greenbasket/catalogd/internal/domain/profile"
	"github.com/greenbasket/catalogd/internal/domain/rank"
	recommenduc "github.com/greenbasket/catalogd/internal/usecase/recommend"
)

// --- catalogUseCase mock ---

type mockCatalogUC struct {
	searchFn   func(ctx context.Context, crit criteria.Criteria, req page.Request) (page.Page, error)
	featuredFn func(ctx context.Context, req page.Request) (page.Page, error)
	getFn      func(ctx context.Context, id string) (product.Summary, error)
	similarFn  func(ctx context.Context, id string, limit int) ([]product.Summary, error)
}

func (m *mockCatalogUC) Search(
	ctx context.Context, crit criteria.Criteria, req page.Request,
) (page.Page, error) {
	return m.searchFn(ctx, crit, req)
}

func (m *mockCatalogUC) Featured(ctx context.Context, req page.Request) (page.Page, error) {
	return m.featuredFn(ctx, req)
}

func (m *mockCatalogUC) Get(ctx context.Context, id string) (product.Summary, error) {
	return m.getFn(ctx, id)
}

func (m *mockCatalogUC) Similar(ctx context.Context, id string, limit int) ([]product.Summary, error) {
	return m.similarFn(ctx, id, limit)
}

// --- recommendUseCase mock ---

type mockRecommendUC struct {
	rankFn      func(ctx context.Context, ids []string, prof profile.Profile, topic string) ([]rank.Scored, error)
	topicsFn    func(ctx context.Context) ([]domcontent.Topic, error)
	recommendFn func(ctx context.Context, code string, prof profile.Profile, lang string) (recommenduc.Recommendation, error)
}

func (m *mockRecommendUC) Rank(
	ctx context.Context, ids []string, prof profile.Profile, topic string,
) ([]rank.Scored, error) {
	return m.rankFn(ctx, ids, prof, topic)
}

func (m *mockRecommendUC) Topics(ctx context.Context) ([]domcontent.Topic, error) {
	return m.topicsFn(ctx)
}

func (m *mockRecommendUC) Recommend(
	ctx context.Context, code string, prof profile.Profile, lang string,
) (recommenduc.Recommendation, error) {
	return m.recommendFn(ctx, code, prof, lang)
}

// --- fixtures ---

func domainProduct(id string) product.Summary {
	return product.New(id, "Product "+id, "product-"+id, "tea", "herbal",
		12.5, 9.99, []string{"organic"}, 4.2, 10, 50, 100, true, true,
		[]string{"immunity"}, []string{"vegan"},
		&product.AgeBracket{Min: 30, Max: 50},
		time.Unix(1700000000, 0).UTC())
}

func newTestCatalogService(uc catalogUseCase) *CatalogService {
	return &CatalogService{
		svc:             uc,
		defaultPageSize: page.DefaultSize,
		maxPageSize:     page.MaxSize,
	}
}

func newTestRecommendService(uc recommendUseCase) *RecommendService {
	return &RecommendService{svc: uc}
}
