package catalog

import (
	"context"
	"fmt"

	"github.com/greenbasket/catalogd/internal/db"
	"github.com/greenbasket/catalogd/internal/domain"
	"github.com/greenbasket/catalogd/internal/domain/catalog/criteria"
	"github.com/greenbasket/catalogd/internal/domain/catalog/filter"
	"github.com/greenbasket/catalogd/internal/domain/product"
	"github.com/greenbasket/catalogd/internal/domain/relevance"
)

// Price band for similar-product lookups: same category, regular price
// within [ratio_low*p, ratio_high*p] of the base product.
const (
	similarBandLow  = 0.7
	similarBandHigh = 1.3
)

// store is the consumer interface for catalog reads (ISP).
type store interface {
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, q *db.CountQuery) (int, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo implements usecase/catalog.Repository over the document store.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a catalog repository. keyPrefix namespaces every key and
// the index name, e.g. "catalogd:".
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// EnsureIndex creates the product FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	name := r.indexName()

	exists, err := r.store.IndexExists(ctx, name)
	if err != nil {
		return fmt.Errorf("probe index %s: %w", name, err)
	}
	if exists {
		return nil
	}

	if err := r.store.CreateIndex(ctx, productIndex(name, r.productKeyPrefix())); err != nil {
		return fmt.Errorf("create index %s: %w", name, err)
	}
	return nil
}

// Search returns one page window of products matching the criteria. With a
// text query the store reports per-document relevance scores and the hits
// come back in score order; without one the hits follow the criteria sort
// and carry a zero score.
func (r *Repo) Search(
	ctx context.Context, crit criteria.Criteria, offset, limit int,
) ([]relevance.Hit, error) {
	filters, err := criteriaFilters(crit)
	if err != nil {
		return nil, fmt.Errorf("compile filters: %w", err)
	}

	q := &db.ListQuery{
		IndexName: r.indexName(),
		Filters:   filters,
		Offset:    offset,
		Limit:     limit,
	}
	if crit.HasQuery() {
		q.TextClauses = textClauses(crit.Query())
		q.WithScores = true
	} else {
		q.SortBy = sortField(crit.Sort())
		q.SortDesc = crit.Descending()
	}

	sr, err := r.store.SearchList(ctx, q)
	if err != nil {
		return nil, storeErr("search products", err)
	}

	return parseHits(sr)
}

// Count returns the total number of products matching the criteria.
func (r *Repo) Count(ctx context.Context, crit criteria.Criteria) (int, error) {
	filters, err := criteriaFilters(crit)
	if err != nil {
		return 0, fmt.Errorf("compile filters: %w", err)
	}

	q := &db.CountQuery{
		IndexName: r.indexName(),
		Filters:   filters,
	}
	if crit.HasQuery() {
		q.TextClauses = textClauses(crit.Query())
	}

	total, err := r.store.SearchCount(ctx, q)
	if err != nil {
		return 0, storeErr("count products", err)
	}
	return total, nil
}

// Featured returns one page window of featured active products, newest
// first.
func (r *Repo) Featured(ctx context.Context, offset, limit int) ([]product.Summary, error) {
	sr, err := r.store.SearchList(ctx, &db.ListQuery{
		IndexName: r.indexName(),
		Filters:   featuredFilters(),
		SortBy:    fieldCreatedAt,
		SortDesc:  true,
		Offset:    offset,
		Limit:     limit,
	})
	if err != nil {
		return nil, storeErr("search featured", err)
	}

	return parseProducts(sr)
}

// CountFeatured returns the total number of featured active products.
func (r *Repo) CountFeatured(ctx context.Context) (int, error) {
	total, err := r.store.SearchCount(ctx, &db.CountQuery{
		IndexName: r.indexName(),
		Filters:   featuredFilters(),
	})
	if err != nil {
		return 0, storeErr("count featured", err)
	}
	return total, nil
}

// GetByID returns a single product regardless of its active flag. Callers
// decide whether inactive products are visible.
func (r *Repo) GetByID(ctx context.Context, id string) (product.Summary, error) {
	fields, err := r.store.HGetAll(ctx, r.productKey(id))
	if err != nil {
		return product.Summary{}, storeErr("get product", err)
	}
	if len(fields) == 0 {
		return product.Summary{}, fmt.Errorf("product %s: %w", id, domain.ErrProductNotFound)
	}
	return productFromHash(fields), nil
}

// GetMulti returns products for the given ids, preserving input order and
// skipping missing ids.
func (r *Repo) GetMulti(ctx context.Context, ids []string) ([]product.Summary, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.productKey(id)
	}

	rows, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, storeErr("get products", err)
	}

	out := make([]product.Summary, 0, len(rows))
	for _, fields := range rows {
		if len(fields) == 0 {
			continue
		}
		out = append(out, productFromHash(fields))
	}
	return out, nil
}

// Similar returns up to limit active products in the same main category
// as ref, priced within the similar band, best rated first. ref itself is
// excluded.
func (r *Repo) Similar(ctx context.Context, ref product.Summary, limit int) ([]product.Summary, error) {
	filters, err := similarFilters(ref)
	if err != nil {
		return nil, fmt.Errorf("compile filters: %w", err)
	}

	sr, err := r.store.SearchList(ctx, &db.ListQuery{
		IndexName: r.indexName(),
		Filters:   filters,
		SortBy:    fieldRating,
		SortDesc:  true,
		Offset:    0,
		Limit:     limit,
	})
	if err != nil {
		return nil, storeErr("search similar", err)
	}

	return parseProducts(sr)
}

// Upsert writes product hashes in one round trip. Used by the seed loader;
// the serving path never writes.
func (r *Repo) Upsert(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, 0, len(records))
	for i := range records {
		items = append(items, db.HashSetItem{
			Key:    r.productKey(records[i].Summary.ID()),
			Fields: productToHash(&records[i]),
		})
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("upsert products: %w", err)
	}
	return nil
}

// Purge deletes every product hash under the key prefix and reports how
// many were removed. The index definition stays; used by the seed
// loader's reset path.
func (r *Repo) Purge(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, r.productKeyPrefix()+"*")
	if err != nil {
		return 0, fmt.Errorf("scan products: %w", err)
	}
	if err := r.store.Del(ctx, keys...); err != nil {
		return 0, fmt.Errorf("purge products: %w", err)
	}
	return len(keys), nil
}

// parseHits converts store entries into scored hits.
func parseHits(sr *db.SearchResult) ([]relevance.Hit, error) {
	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	hits := make([]relevance.Hit, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		hits = append(hits, relevance.Hit{
			Product: productFromHash(entry.Fields),
			Score:   entry.Score,
		})
	}
	return hits, nil
}

// parseProducts converts store entries into plain summaries.
func parseProducts(sr *db.SearchResult) ([]product.Summary, error) {
	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	out := make([]product.Summary, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		out = append(out, productFromHash(entry.Fields))
	}
	return out, nil
}

// --- predicate compilation ---

// criteriaFilters compiles validated criteria into a store predicate. The
// same expression backs both the list and the count query.
func criteriaFilters(crit criteria.Criteria) (filter.Expression, error) {
	must := []filter.Condition{activeCond()}

	if cat := crit.Category(); cat != "" {
		c, err := filter.NewMatch(fieldCategory, cat)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, c)
	}

	if crit.MinPrice() != nil || crit.MaxPrice() != nil {
		rng, err := filter.NewRangeFilter(crit.MinPrice(), crit.MaxPrice())
		if err != nil {
			return filter.Expression{}, err
		}
		c, err := filter.NewRange(fieldPrice, rng)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, c)
	}

	if tags := crit.Tags(); len(tags) > 0 {
		c, err := filter.NewAnyOf(fieldTags, tags)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, c)
	}

	return filter.NewExpression(must, nil)
}

func featuredFilters() filter.Expression {
	expr, _ := filter.NewExpression([]filter.Condition{activeCond(), featuredCond()}, nil)
	return expr
}

func similarFilters(ref product.Summary) (filter.Expression, error) {
	lo := ref.Price() * similarBandLow
	hi := ref.Price() * similarBandHigh

	rng, err := filter.NewRangeFilter(&lo, &hi)
	if err != nil {
		return filter.Expression{}, err
	}
	priceCond, err := filter.NewRange(fieldPrice, rng)
	if err != nil {
		return filter.Expression{}, err
	}
	catCond, err := filter.NewMatch(fieldCategory, ref.CategoryMain())
	if err != nil {
		return filter.Expression{}, err
	}
	selfCond, err := filter.NewMatch(fieldID, ref.ID())
	if err != nil {
		return filter.Expression{}, err
	}

	return filter.NewExpression(
		[]filter.Condition{activeCond(), catCond, priceCond},
		[]filter.Condition{selfCond},
	)
}

func activeCond() filter.Condition {
	c, _ := filter.NewMatch(fieldActive, flagTrue)
	return c
}

func featuredCond() filter.Condition {
	c, _ := filter.NewMatch(fieldFeatured, flagTrue)
	return c
}

// textClauses expands one user query into per-field weighted clauses so
// the store's scorer applies the domain weighting policy. The tags field
// is queried through its text alias; the tag-typed attribute stays
// reserved for exact filtering.
func textClauses(query string) []db.TextClause {
	fws := relevance.Weights()
	out := make([]db.TextClause, 0, len(fws))
	for _, fw := range fws {
		field := fw.Field
		if field == relevance.FieldTags {
			field = fieldTagsText
		}
		out = append(out, db.TextClause{Field: field, Weight: fw.Weight, Query: query})
	}
	return out
}

// sortField maps the criteria sort key to the index attribute it sorts on.
func sortField(sort string) string {
	switch sort {
	case criteria.SortPrice:
		return fieldPrice
	case criteria.SortRating:
		return fieldRating
	case criteria.SortPopularity:
		return fieldPurchased
	default:
		return fieldCreatedAt
	}
}

// --- keys ---

func (r *Repo) indexName() string {
	return r.keyPrefix + "products:idx"
}

func (r *Repo) productKeyPrefix() string {
	return r.keyPrefix + "product:"
}

func (r *Repo) productKey(id string) string {
	return r.productKeyPrefix() + id
}

// storeErr tags a failed store read so transport can map it to 503.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
}
