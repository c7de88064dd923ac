package catalogd

import "time"

// Sort field constants for Criteria.Sort.
const (
	SortCreatedAt  = "createdAt"
	SortPrice      = "pricing.regular"
	SortRating     = "ratings.average"
	SortPopularity = "analytics.purchased"
)

// Sort direction constants for Criteria.Dir.
const (
	DirAsc  = "ASC"
	DirDesc = "DESC"
)

// Criteria is the public filter shape for catalog searches.
type Criteria struct {
	Query    string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Tags     []string
	Sort     string
	Dir      string
}

// AgeBracket is an inclusive target age range.
type AgeBracket struct {
	Min int
	Max int
}

// Product is a catalog item projection.
type Product struct {
	ID          string
	Name        string
	Slug        string
	Category    string
	CategorySub string
	Price       float64
	SalePrice   float64
	Tags        []string
	Rating      float64
	RatingCount int
	Purchased   int
	Featured    bool
	HealthTags  []string
	DietaryTags []string
	AgeBracket  *AgeBracket
	CreatedAt   time.Time
}

// Page is one page of products plus match totals.
type Page struct {
	Items      []Product
	Number     int
	Size       int
	TotalItems int
	TotalPages int
}

// Profile holds the user attributes personalization reads.
// Age < 0 means unknown.
type Profile struct {
	Age                 int
	HealthConditions    []string
	DietaryPreferences  []string
	PurchasedCategories []string
}

// AnonymousProfile returns a profile with every attribute absent.
func AnonymousProfile() Profile {
	return Profile{Age: -1}
}

// Factors is the per-candidate score breakdown.
type Factors struct {
	Age      float64
	Health   float64
	Dietary  float64
	Purchase float64
}

// RankedProduct is a candidate after personalization.
type RankedProduct struct {
	Product   Product
	BaseRank  int
	Factors   Factors
	Composite float64
}

// Topic is a curated content topic.
type Topic struct {
	Code         string
	Name         string
	DisplayOrder int
}

// Bundle is a curated product set attached to a topic.
type Bundle struct {
	Name       string
	ProductIDs []string
	Discount   float64
	Benefit    string
}

// Tip is a short health tip attached to a topic.
type Tip struct {
	Title    string
	Body     string
	Category string
}

// Fact is a "did you know" snippet attached to a topic.
type Fact struct {
	Text   string
	Source string
}

// Recommendation is the assembled payload for one topic.
type Recommendation struct {
	Topic   Topic
	Items   []RankedProduct
	Bundles []Bundle
	Tips    []Tip
	Facts   []Fact
}
