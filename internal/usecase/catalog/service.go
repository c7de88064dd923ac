package catalog

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/greenbasket/catalogd/internal/domain"
	"github.com/greenbasket/catalogd/internal/domain/catalog/criteria"
	"github.com/greenbasket/catalogd/internal/domain/catalog/page"
	"github.com/greenbasket/catalogd/internal/domain/product"
	"github.com/greenbasket/catalogd/internal/domain/relevance"
)

// Similar-product limits applied when a caller omits or exceeds bounds.
const (
	DefaultSimilarLimit = 8
	MaxSimilarLimit     = 50
)

// Service handles catalog listing, lookup, and similarity reads.
type Service struct {
	repo Repository
}

// New creates a catalog service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search returns one page of products matching the criteria. The page
// window and the total count are two independent reads issued
// concurrently; they are not transactionally linked. With a text query
// the window is re-ordered by relevance with deterministic tie-breaks
// before assembly.
func (s *Service) Search(
	ctx context.Context, crit criteria.Criteria, req page.Request,
) (page.Page, error) {
	var (
		hits  []relevance.Hit
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hits, err = s.repo.Search(gctx, crit, req.Offset(), req.Size())
		if err != nil {
			return fmt.Errorf("fetch page: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, crit)
		if err != nil {
			return fmt.Errorf("count: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return page.Page{}, err
	}

	if crit.HasQuery() {
		relevance.Order(hits)
	} else {
		orderBySortField(hits, crit)
	}

	items := make([]product.Summary, 0, len(hits))
	for i := range hits {
		items = append(items, hits[i].Product)
	}

	return page.New(items, req, total), nil
}

// orderBySortField re-applies the criteria sort inside the fetched window
// with an id-ascending tie-break, so equal sort keys always come back in
// the same order regardless of store internals.
func orderBySortField(hits []relevance.Hit, crit criteria.Criteria) {
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := &hits[i].Product, &hits[j].Product
		av, bv := sortKey(a, crit.Sort()), sortKey(b, crit.Sort())
		if av != bv {
			if crit.Descending() {
				return av > bv
			}
			return av < bv
		}
		return a.ID() < b.ID()
	})
}

func sortKey(p *product.Summary, field string) float64 {
	switch field {
	case criteria.SortPrice:
		return p.Price()
	case criteria.SortRating:
		return p.RatingAvg()
	case criteria.SortPopularity:
		return float64(p.Purchased())
	default:
		return float64(p.CreatedAt().Unix())
	}
}

// Featured returns one page of featured products, newest first.
func (s *Service) Featured(ctx context.Context, req page.Request) (page.Page, error) {
	var (
		items []product.Summary
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.Featured(gctx, req.Offset(), req.Size())
		if err != nil {
			return fmt.Errorf("fetch featured: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.CountFeatured(gctx)
		if err != nil {
			return fmt.Errorf("count featured: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return page.Page{}, err
	}

	return page.New(items, req, total), nil
}

// Get returns a single active product. Inactive products are reported as
// missing, same as absent ones.
func (s *Service) Get(ctx context.Context, id string) (product.Summary, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return product.Summary{}, err
	}
	if !p.Active() {
		return product.Summary{}, fmt.Errorf("product %s: %w", id, domain.ErrProductNotFound)
	}
	return p, nil
}

// Similar returns products comparable to the given one. The base product
// must exist and be active.
func (s *Service) Similar(ctx context.Context, id string, limit int) ([]product.Summary, error) {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	if limit > MaxSimilarLimit {
		limit = MaxSimilarLimit
	}

	ref, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.Similar(ctx, ref, limit)
	if err != nil {
		return nil, fmt.Errorf("similar to %s: %w", id, err)
	}
	return items, nil
}
