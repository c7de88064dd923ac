package chi

import (
	"context"
	"testing"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/greenbasket/catalogd/internal/domain"
	"github.com/greenbasket/catalogd/internal/domain/catalog/criteria"
	"github.com/greenbasket/catalogd/internal/domain/content"
	"github.com/greenbasket/catalogd/internal/domain/product"
	"github.com/greenbasket/catalogd/internal/domain/relevance"
	cataloguc "github.com/greenbasket/catalogd/internal/usecase/catalog"
	healthuc "github.com/greenbasket/catalogd/internal/usecase/health"
	recommenduc "github.com/greenbasket/catalogd/internal/usecase/recommend"
)

// mockCatalogRepo implements cataloguc.Repository for handler tests.
type mockCatalogRepo struct {
	searchFn        func(ctx context.Context, crit criteria.Criteria, offset, limit int) ([]relevance.Hit, error)
	countFn         func(ctx context.Context, crit criteria.Criteria) (int, error)
	featuredFn      func(ctx context.Context, offset, limit int) ([]product.Summary, error)
	countFeaturedFn func(ctx context.Context) (int, error)
	getByIDFn       func(ctx context.Context, id string) (product.Summary, error)
	similarFn       func(ctx context.Context, ref product.Summary, limit int) ([]product.Summary, error)
}

func (m *mockCatalogRepo) Search(ctx context.Context, crit criteria.Criteria, offset, limit int) ([]relevance.Hit, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, crit, offset, limit)
	}
	return nil, nil
}

func (m *mockCatalogRepo) Count(ctx context.Context, crit criteria.Criteria) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, crit)
	}
	return 0, nil
}

func (m *mockCatalogRepo) Featured(ctx context.Context, offset, limit int) ([]product.Summary, error) {
	if m.featuredFn != nil {
		return m.featuredFn(ctx, offset, limit)
	}
	return nil, nil
}

func (m *mockCatalogRepo) CountFeatured(ctx context.Context) (int, error) {
	if m.countFeaturedFn != nil {
		return m.countFeaturedFn(ctx)
	}
	return 0, nil
}

func (m *mockCatalogRepo) GetByID(ctx context.Context, id string) (product.Summary, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return product.Summary{}, domain.ErrProductNotFound
}

func (m *mockCatalogRepo) Similar(ctx context.Context, ref product.Summary, limit int) ([]product.Summary, error) {
	if m.similarFn != nil {
		return m.similarFn(ctx, ref, limit)
	}
	return nil, nil
}

// mockContentRepo implements recommenduc.ContentRepository.
type mockContentRepo struct {
	getFn        func(ctx context.Context, code string) (content.Topic, error)
	listActiveFn func(ctx context.Context) ([]content.Topic, error)
}

func (m *mockContentRepo) Get(ctx context.Context, code string) (content.Topic, error) {
	if m.getFn != nil {
		return m.getFn(ctx, code)
	}
	return content.Topic{}, domain.ErrNotFound
}

func (m *mockContentRepo) ListActive(ctx context.Context) ([]content.Topic, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx)
	}
	return nil, nil
}

// mockProductReader implements recommenduc.ProductReader.
type mockProductReader struct {
	getMultiFn func(ctx context.Context, ids []string) ([]product.Summary, error)
}

func (m *mockProductReader) GetMulti(ctx context.Context, ids []string) ([]product.Summary, error) {
	if m.getMultiFn != nil {
		return m.getMultiFn(ctx, ids)
	}
	return nil, nil
}

// mockPinger implements healthuc.DBPinger.
type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type testDeps struct {
	catalog  *mockCatalogRepo
	contents *mockContentRepo
	products *mockProductReader
	pinger   *mockPinger
}

func newTestServer(t *testing.T) (chirouter.Router, *testDeps) {
	t.Helper()

	deps := &testDeps{
		catalog:  &mockCatalogRepo{},
		contents: &mockContentRepo{},
		products: &mockProductReader{},
		pinger:   &mockPinger{},
	}

	srv := NewServer(
		cataloguc.New(deps.catalog),
		recommenduc.New(deps.contents, deps.products),
		healthuc.New(deps.pinger),
		20, 100,
		zap.NewNop(),
	)

	r := chirouter.NewRouter()
	srv.Routes(r)
	return r, deps
}

func apiProduct(id string, active bool) product.Summary {
	return product.New(id, "Product "+id, "product-"+id, "tea", "herbal",
		12.5, 0, []string{"organic"}, 4.2, 10, 50, 100, active, false,
		nil, nil, nil, time.Unix(1700000000, 0).UTC())
}
