package criteria

import (
	"fmt"
	"strings"

	"github.com/greenbasket/catalogd/internal/domain"
)

// Sort fields accepted from callers. Anything else is silently replaced
// with the default sort rather than rejected.
const (
	SortCreatedAt  = "createdAt"
	SortPrice      = "pricing.regular"
	SortRating     = "ratings.average"
	SortPopularity = "analytics.purchased"
)

// Sort directions.
const (
	DirAsc  = "ASC"
	DirDesc = "DESC"
)

// MaxTags is the maximum number of tag filters per request.
const MaxTags = 16

// Raw holds unvalidated filter parameters as they arrive from a caller.
type Raw struct {
	Query    string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Tags     []string
	Sort     string
	Dir      string
}

// Criteria is a validated, normalized catalog filter. The active-only
// constraint is built in and cannot be overridden by caller input.
type Criteria struct {
	query    string
	category string
	minPrice *float64
	maxPrice *float64
	tags     []string
	sort     string
	desc     bool
}

// New validates and normalizes raw filter parameters.
// A blank query is treated as absent; an unknown sort field falls back to
// createdAt DESC. minPrice > maxPrice fails with ErrInvalidFilterRange.
func New(raw Raw) (Criteria, error) {
	if raw.MinPrice != nil && raw.MaxPrice != nil && *raw.MinPrice > *raw.MaxPrice {
		return Criteria{}, fmt.Errorf("%w: min price %g exceeds max price %g",
			domain.ErrInvalidFilterRange, *raw.MinPrice, *raw.MaxPrice)
	}
	if len(raw.Tags) > MaxTags {
		return Criteria{}, fmt.Errorf("too many tag filters (max %d)", MaxTags)
	}

	c := Criteria{
		query:    strings.TrimSpace(raw.Query),
		category: strings.TrimSpace(raw.Category),
		minPrice: raw.MinPrice,
		maxPrice: raw.MaxPrice,
		sort:     raw.Sort,
		desc:     !strings.EqualFold(raw.Dir, DirAsc),
	}

	switch raw.Sort {
	case SortCreatedAt, SortPrice, SortRating, SortPopularity:
	default:
		c.sort = SortCreatedAt
		c.desc = true
	}

	for _, t := range raw.Tags {
		if t = strings.TrimSpace(t); t != "" {
			c.tags = append(c.tags, t)
		}
	}

	return c, nil
}

// Raw re-serializes the criteria back to the request shape. Building a
// Criteria from the result yields identical normalized values.
func (c Criteria) Raw() Raw {
	dir := DirDesc
	if !c.desc {
		dir = DirAsc
	}
	return Raw{
		Query:    c.query,
		Category: c.category,
		MinPrice: c.minPrice,
		MaxPrice: c.maxPrice,
		Tags:     c.tags,
		Sort:     c.sort,
		Dir:      dir,
	}
}

// ActiveOnly always reports true: inactive products are never matched.
func (c Criteria) ActiveOnly() bool { return true }

// Query returns the normalized text query ("" when absent).
func (c Criteria) Query() string { return c.query }

// HasQuery reports whether a text query is present.
func (c Criteria) HasQuery() bool { return c.query != "" }

// Category returns the main-category filter ("" when absent).
func (c Criteria) Category() string { return c.category }

// MinPrice returns the lower price bound (nil when absent).
func (c Criteria) MinPrice() *float64 { return c.minPrice }

// MaxPrice returns the upper price bound (nil when absent).
func (c Criteria) MaxPrice() *float64 { return c.maxPrice }

// Tags returns the tag filters.
func (c Criteria) Tags() []string { return c.tags }

// Sort returns the sort field (always one of the allowlisted values).
func (c Criteria) Sort() string { return c.sort }

// Descending reports whether the sort direction is DESC.
func (c Criteria) Descending() bool { return c.desc }
