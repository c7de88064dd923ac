package product

import "time"

// AgeBracket is an inclusive target age range a product is intended for.
type AgeBracket struct {
	Min int
	Max int
}

// Contains reports whether age falls inside the bracket.
func (b AgeBracket) Contains(age int) bool {
	return age >= b.Min && age <= b.Max
}

// Summary is a read-only projection of a catalog item as stored in the
// document store. It is owned by the store; catalogd never mutates it.
type Summary struct {
	id           string
	name         string
	slug         string
	categoryMain string
	categorySub  string
	price        float64
	salePrice    float64
	tags         []string
	ratingAvg    float64
	ratingCount  int
	purchased    int
	views        int
	active       bool
	featured     bool
	healthTags   []string
	dietaryTags  []string
	ageBracket   *AgeBracket
	createdAt    time.Time
}

// New creates a product summary.
func New(
	id, name, slug, categoryMain, categorySub string,
	price, salePrice float64,
	tags []string,
	ratingAvg float64, ratingCount, purchased, views int,
	active, featured bool,
	healthTags, dietaryTags []string,
	ageBracket *AgeBracket,
	createdAt time.Time,
) Summary {
	return Summary{
		id: id, name: name, slug: slug,
		categoryMain: categoryMain, categorySub: categorySub,
		price: price, salePrice: salePrice,
		tags:      tags,
		ratingAvg: ratingAvg, ratingCount: ratingCount,
		purchased: purchased, views: views,
		active: active, featured: featured,
		healthTags: healthTags, dietaryTags: dietaryTags,
		ageBracket: ageBracket,
		createdAt:  createdAt,
	}
}

// ID returns the product identifier.
func (s *Summary) ID() string { return s.id }

// Name returns the display name.
func (s *Summary) Name() string { return s.name }

// Slug returns the URL slug.
func (s *Summary) Slug() string { return s.slug }

// CategoryMain returns the main category code.
func (s *Summary) CategoryMain() string { return s.categoryMain }

// CategorySub returns the sub-category code.
func (s *Summary) CategorySub() string { return s.categorySub }

// Price returns the regular price.
func (s *Summary) Price() float64 { return s.price }

// SalePrice returns the sale price (0 when not on sale).
func (s *Summary) SalePrice() float64 { return s.salePrice }

// Tags returns the product tags.
func (s *Summary) Tags() []string { return s.tags }

// RatingAvg returns the average rating.
func (s *Summary) RatingAvg() float64 { return s.ratingAvg }

// RatingCount returns the number of ratings.
func (s *Summary) RatingCount() int { return s.ratingCount }

// Purchased returns the purchase counter.
func (s *Summary) Purchased() int { return s.purchased }

// Views returns the view counter.
func (s *Summary) Views() int { return s.views }

// Active reports whether the product is visible in the catalog.
func (s *Summary) Active() bool { return s.active }

// Featured reports whether the product is featured.
func (s *Summary) Featured() bool { return s.featured }

// HealthTags returns the health-benefit tags (body parts / conditions).
func (s *Summary) HealthTags() []string { return s.healthTags }

// DietaryTags returns the dietary tags (vegan, gluten-free, non-vegan, ...).
func (s *Summary) DietaryTags() []string { return s.dietaryTags }

// AgeBracket returns the target age bracket (nil when the product has none).
func (s *Summary) AgeBracket() *AgeBracket { return s.ageBracket }

// CreatedAt returns the creation timestamp.
func (s *Summary) CreatedAt() time.Time { return s.createdAt }
