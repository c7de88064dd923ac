package relevance

import (
	"sort"

	"github.com/greenbasket/catalogd/internal/domain/product"
)

// Searchable field names as indexed in the store.
const (
	FieldName         = "name"
	FieldKeywords     = "search_keywords"
	FieldTags         = "tags"
	FieldIngredients  = "ingredients"
	FieldShortDesc    = "short_desc"
	FieldDetailedDesc = "detailed_desc"
)

// FieldWeight binds a searchable field to its relevance weight.
type FieldWeight struct {
	Field  string
	Weight float64
}

// weights is the field weighting policy: a name match counts ten times a
// detailed-description match. The store's text primitive supplies the
// per-field match strength; this package owns only weights and the
// combination rule.
var weights = []FieldWeight{
	{FieldName, 10},
	{FieldKeywords, 8},
	{FieldTags, 5},
	{FieldIngredients, 3},
	{FieldShortDesc, 3},
	{FieldDetailedDesc, 1},
}

// Weights returns the weighted fields in descending weight order.
func Weights() []FieldWeight {
	out := make([]FieldWeight, len(weights))
	copy(out, weights)
	return out
}

// weightOf returns the weight of a field, 0 for unweighted fields.
func weightOf(field string) float64 {
	for _, fw := range weights {
		if fw.Field == field {
			return fw.Weight
		}
	}
	return 0
}

// Hit pairs a candidate with its store-reported relevance score. The
// store combines the per-field weights itself; this package only supplies
// the weighting policy and the presentation order.
type Hit struct {
	Product product.Summary
	Score   float64
}

// Order sorts hits for presentation: relevance descending, ties broken by
// createdAt descending, then product id ascending. Hits are never dropped
// here; match filtering is the store's job.
func Order(hits []Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := &hits[i], &hits[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		at, bt := a.Product.CreatedAt(), b.Product.CreatedAt()
		if !at.Equal(bt) {
			return at.After(bt)
		}
		return a.Product.ID() < b.Product.ID()
	})
}
