package catalog

import (
	"context"

	"github.com/greenbasket/catalogd/internal/domain/catalog/criteria"
	"github.com/greenbasket/catalogd/internal/domain/product"
	"github.com/greenbasket/catalogd/internal/domain/relevance"
)

// Repository defines the storage contract for catalog reads.
type Repository interface {
	Search(ctx context.Context, crit criteria.Criteria, offset, limit int) ([]relevance.Hit, error)
	Count(ctx context.Context, crit criteria.Criteria) (int, error)
	Featured(ctx context.Context, offset, limit int) ([]product.Summary, error)
	CountFeatured(ctx context.Context) (int, error)
	GetByID(ctx context.Context, id string) (product.Summary, error)
	Similar(ctx context.Context, ref product.Summary, limit int) ([]product.Summary, error)
}
