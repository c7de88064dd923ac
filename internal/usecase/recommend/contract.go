package recommend

import (
	"context"

	"github.com/greenbasket/catalogd/internal/domain/content"
	"github.com/greenbasket/catalogd/internal/domain/product"
)

// ContentRepository reads curated topic content.
type ContentRepository interface {
	Get(ctx context.Context, code string) (content.Topic, error)
	ListActive(ctx context.Context) ([]content.Topic, error)
}

// ProductReader resolves candidate ids to products.
type ProductReader interface {
	GetMulti(ctx context.Context, ids []string) ([]product.Summary, error)
}
