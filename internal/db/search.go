package db

import "github.com/greenbasket/catalogd/internal/domain/catalog/filter"

// TextClause is a weighted full-text clause scoped to a single field. The
// weight is injected into the query as a $weight attribute, so the store's
// text scorer applies the caller's field weighting policy.
type TextClause struct {
	Field  string
	Weight float64
	Query  string
}

// ListQuery is the input for a filtered, sorted, paginated FT.SEARCH.
// An empty SortBy leaves ordering to the text scorer (score descending);
// WithScores then returns the per-document score in each entry.
type ListQuery struct {
	IndexName    string
	Filters      filter.Expression
	TextClauses  []TextClause
	SortBy       string
	SortDesc     bool
	Offset       int
	Limit        int
	WithScores   bool
	ReturnFields []string
}

// CountQuery counts documents matching a predicate via LIMIT 0 0.
type CountQuery struct {
	IndexName   string
	Filters     filter.Expression
	TextClauses []TextClause
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
