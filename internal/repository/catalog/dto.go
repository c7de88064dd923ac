package catalog

import (
	"strconv"
	"strings"
	"time"

	"github.com/greenbasket/catalogd/internal/domain/product"
)

// Record is a full product document as written to the store: the summary
// projection plus the text bodies that exist only to be indexed.
type Record struct {
	Summary        product.Summary
	SearchKeywords string
	Ingredients    string
	ShortDesc      string
	DetailedDesc   string
}

// productFromHash maps stored hash fields to the domain projection.
// Malformed numerics degrade to zero values rather than failing the read.
func productFromHash(fields map[string]string) product.Summary {
	var bracket *product.AgeBracket
	if fields["age_min"] != "" || fields["age_max"] != "" {
		bracket = &product.AgeBracket{
			Min: hashInt(fields, "age_min"),
			Max: hashInt(fields, "age_max"),
		}
	}

	return product.New(
		fields["id"],
		fields["name"],
		fields["slug"],
		fields["category"],
		fields["category_sub"],
		hashFloat(fields, "price"),
		hashFloat(fields, "sale_price"),
		splitList(fields["tags"]),
		hashFloat(fields, "rating"),
		hashInt(fields, "rating_count"),
		hashInt(fields, "purchased"),
		hashInt(fields, "views"),
		fields["is_active"] == flagTrue,
		fields["is_featured"] == flagTrue,
		splitList(fields["health_tags"]),
		splitList(fields["dietary_tags"]),
		bracket,
		time.Unix(int64(hashInt(fields, "created_at")), 0).UTC(),
	)
}

// productToHash maps a record to store hash fields. Inverse of
// productFromHash for the summary part.
func productToHash(rec *Record) map[string]string {
	p := &rec.Summary

	fields := map[string]string{
		"id":              p.ID(),
		"name":            p.Name(),
		"slug":            p.Slug(),
		"category":        p.CategoryMain(),
		"category_sub":    p.CategorySub(),
		"price":           formatFloat(p.Price()),
		"sale_price":      formatFloat(p.SalePrice()),
		"tags":            joinList(p.Tags()),
		"rating":          formatFloat(p.RatingAvg()),
		"rating_count":    strconv.Itoa(p.RatingCount()),
		"purchased":       strconv.Itoa(p.Purchased()),
		"views":           strconv.Itoa(p.Views()),
		"is_active":       formatFlag(p.Active()),
		"is_featured":     formatFlag(p.Featured()),
		"health_tags":     joinList(p.HealthTags()),
		"dietary_tags":    joinList(p.DietaryTags()),
		"created_at":      strconv.FormatInt(p.CreatedAt().Unix(), 10),
		"search_keywords": rec.SearchKeywords,
		"ingredients":     rec.Ingredients,
		"short_desc":      rec.ShortDesc,
		"detailed_desc":   rec.DetailedDesc,
	}

	if b := p.AgeBracket(); b != nil {
		fields["age_min"] = strconv.Itoa(b.Min)
		fields["age_max"] = strconv.Itoa(b.Max)
	}

	return fields
}

func hashFloat(fields map[string]string, key string) float64 {
	f, _ := strconv.ParseFloat(fields[key], 64)
	return f
}

func hashInt(fields map[string]string, key string) int {
	n, _ := strconv.Atoi(fields[key])
	return n
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinList(items []string) string {
	return strings.Join(items, ",")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatFlag(b bool) string {
	if b {
		return flagTrue
	}
	return flagFalse
}
