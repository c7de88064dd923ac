package catalogd

import (
	"context"
	"fmt"
	"time"

	"github.com/greenbasket/catalogd/internal/domain/catalog/criteria"
	"github.com/greenbasket/catalogd/internal/domain/catalog/page"
	"github.com/greenbasket/catalogd/internal/domain/product"
)

// CatalogService exposes catalog listing, lookup, and similarity reads.
type CatalogService struct {
	svc             catalogUseCase
	defaultPageSize int
	maxPageSize     int
	obs             *observer
}

// Search returns one page of products matching the criteria.
func (s *CatalogService) Search(
	ctx context.Context, c Criteria, pageNumber, pageSize int,
) (_ Page, err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.search", start, err) }()

	crit, err := criteria.New(criteria.Raw{
		Query:    c.Query,
		Category: c.Category,
		MinPrice: c.MinPrice,
		MaxPrice: c.MaxPrice,
		Tags:     c.Tags,
		Sort:     c.Sort,
		Dir:      c.Dir,
	})
	if err != nil {
		return Page{}, fmt.Errorf("catalogd: invalid criteria: %w", err)
	}

	req := page.NewRequest(pageNumber, pageSize, s.defaultPageSize, s.maxPageSize)

	pg, err := s.svc.Search(ctx, crit, req)
	if err != nil {
		return Page{}, fmt.Errorf("catalogd: search: %w", err)
	}
	return pageFromDomain(pg), nil
}

// Featured returns one page of featured products, newest first.
func (s *CatalogService) Featured(
	ctx context.Context, pageNumber, pageSize int,
) (_ Page, err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.featured", start, err) }()

	req := page.NewRequest(pageNumber, pageSize, s.defaultPageSize, s.maxPageSize)

	pg, err := s.svc.Featured(ctx, req)
	if err != nil {
		return Page{}, fmt.Errorf("catalogd: featured: %w", err)
	}
	return pageFromDomain(pg), nil
}

// Get returns a single active product by id.
func (s *CatalogService) Get(ctx context.Context, id string) (_ Product, err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.get", start, err) }()

	p, err := s.svc.Get(ctx, id)
	if err != nil {
		return Product{}, fmt.Errorf("catalogd: get %s: %w", id, err)
	}
	return productFromDomain(&p), nil
}

// Similar returns up to limit products comparable to the given one.
// limit <= 0 applies the server default.
func (s *CatalogService) Similar(ctx context.Context, id string, limit int) (_ []Product, err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.similar", start, err) }()

	items, err := s.svc.Similar(ctx, id, limit)
	if err != nil {
		return nil, fmt.Errorf("catalogd: similar %s: %w", id, err)
	}
	return productsFromDomain(items), nil
}

func productFromDomain(p *product.Summary) Product {
	out := Product{
		ID:          p.ID(),
		Name:        p.Name(),
		Slug:        p.Slug(),
		Category:    p.CategoryMain(),
		CategorySub: p.CategorySub(),
		Price:       p.Price(),
		SalePrice:   p.SalePrice(),
		Tags:        p.Tags(),
		Rating:      p.RatingAvg(),
		RatingCount: p.RatingCount(),
		Purchased:   p.Purchased(),
		Featured:    p.Featured(),
		HealthTags:  p.HealthTags(),
		DietaryTags: p.DietaryTags(),
		CreatedAt:   p.CreatedAt(),
	}
	if b := p.AgeBracket(); b != nil {
		out.AgeBracket = &AgeBracket{Min: b.Min, Max: b.Max}
	}
	return out
}

func productsFromDomain(items []product.Summary) []Product {
	out := make([]Product, len(items))
	for i := range items {
		out[i] = productFromDomain(&items[i])
	}
	return out
}

func pageFromDomain(pg page.Page) Page {
	return Page{
		Items:      productsFromDomain(pg.Items),
		Number:     pg.Number,
		Size:       pg.Size,
		TotalItems: pg.TotalItems,
		TotalPages: pg.TotalPages,
	}
}
