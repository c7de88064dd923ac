package catalog

import "github.com/greenbasket/catalogd/internal/db"

// Index attribute names. Text attributes carry the default weight; the
// weighting policy is injected per query, not baked into the schema, so
// reweighting never forces a reindex.
const (
	fieldID        = "id"
	fieldCategory  = "category"
	fieldTags      = "tags"
	fieldTagsText  = "tags_text"
	fieldActive    = "is_active"
	fieldFeatured  = "is_featured"
	fieldPrice     = "price"
	fieldRating    = "rating"
	fieldPurchased = "purchased"
	fieldCreatedAt = "created_at"
)

// Boolean hash flags are stored as "1"/"0".
const (
	flagTrue  = "1"
	flagFalse = "0"
)

// productIndex is the FT schema over product hashes. The tags hash field
// is declared twice: once as TEXT under the tags_text alias for weighted
// full-text matching, once as TAG for exact set filtering.
func productIndex(name, keyPrefix string) *db.IndexDefinition {
	return db.NewIndex(name).
		Prefix(keyPrefix).
		Text("name").
		Text("search_keywords").
		TextAs(fieldTags, fieldTagsText).
		Text("ingredients").
		Text("short_desc").
		Text("detailed_desc").
		Tag(fieldID).
		Tag(fieldCategory).
		Tag("category_sub").
		TagWithOpts(fieldTags, ",", false).
		Tag(fieldActive).
		Tag(fieldFeatured).
		TagWithOpts("health_tags", ",", false).
		TagWithOpts("dietary_tags", ",", false).
		SortableNumeric(fieldPrice).
		Numeric("sale_price").
		SortableNumeric(fieldRating).
		Numeric("rating_count").
		SortableNumeric(fieldPurchased).
		Numeric("views").
		SortableNumeric(fieldCreatedAt).
		MustBuild()
}
