package rank

import (
	"sort"
	"strings"

	"github.com/greenbasket/catalogd/internal/domain/product"
	"github.com/greenbasket/catalogd/internal/domain/profile"
)

// Every factor is clamped to [FactorFloor, FactorCeil] so no single factor
// can permanently zero a candidate out of the ranking.
const (
	FactorFloor = 0.1
	FactorCeil  = 2.0

	ageInside  = 1.2
	ageOutside = 0.8

	healthStep = 0.1
	healthCap  = 1.5

	dietMatch    = 1.2
	dietConflict = 0.9

	purchaseMatch = 1.3

	// Neutral is the multiplier a factor contributes when its underlying
	// profile attribute is absent.
	Neutral = 1.0
)

// dietConflictPrefix marks a product tag as an explicit conflict with a
// dietary preference, e.g. "non-vegan" against a "vegan" preference.
const dietConflictPrefix = "non-"

// Factors is the fixed-shape score breakdown for one candidate. Each field
// has an explicit neutral value of 1.0, so a zero-value Factors is invalid;
// use NeutralFactors.
type Factors struct {
	Age      float64
	Health   float64
	Dietary  float64
	Purchase float64
}

// NeutralFactors returns factors that leave the ranking unchanged.
func NeutralFactors() Factors {
	return Factors{Age: Neutral, Health: Neutral, Dietary: Neutral, Purchase: Neutral}
}

// Composite multiplies the four clamped factors into the final score.
func (f Factors) Composite() float64 {
	return clamp(f.Age) * clamp(f.Health) * clamp(f.Dietary) * clamp(f.Purchase)
}

func clamp(v float64) float64 {
	if v < FactorFloor {
		return FactorFloor
	}
	if v > FactorCeil {
		return FactorCeil
	}
	return v
}

// Candidate is a product eligible for display, with its position in the
// incoming order (before personalization).
type Candidate struct {
	Product  product.Summary
	BaseRank int
}

// Scored is a ranked candidate with its score breakdown. Created per
// request and discarded with the response.
type Scored struct {
	Product   product.Summary
	BaseRank  int
	Factors   Factors
	Composite float64
}

// Rank re-orders candidates for a user profile. Pure and deterministic:
// no I/O, inputs are not mutated, identical inputs yield identical output.
// The topic code is carried from the caller for per-topic personalization
// rules; the four fixed factors do not consume it.
//
// Order: composite descending, ties by incoming BaseRank ascending, then
// product id ascending.
func Rank(candidates []Candidate, prof profile.Profile, topic string) []Scored {
	scored := make([]Scored, len(candidates))
	for i, c := range candidates {
		f := factorsFor(&c.Product, &prof)
		scored[i] = Scored{
			Product:   c.Product,
			BaseRank:  c.BaseRank,
			Factors:   f,
			Composite: f.Composite(),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := &scored[i], &scored[j]
		if a.Composite != b.Composite {
			return a.Composite > b.Composite
		}
		if a.BaseRank != b.BaseRank {
			return a.BaseRank < b.BaseRank
		}
		return a.Product.ID() < b.Product.ID()
	})

	return scored
}

func factorsFor(p *product.Summary, prof *profile.Profile) Factors {
	return Factors{
		Age:      ageFactor(p, prof),
		Health:   healthFactor(p, prof),
		Dietary:  dietaryFactor(p, prof),
		Purchase: purchaseFactor(p, prof),
	}
}

// ageFactor boosts products whose target bracket contains the user's age.
// Unknown age or unbracketed product is neutral.
func ageFactor(p *product.Summary, prof *profile.Profile) float64 {
	bracket := p.AgeBracket()
	age, known := prof.Age()
	if bracket == nil || !known {
		return Neutral
	}
	if bracket.Contains(age) {
		return ageInside
	}
	return ageOutside
}

// healthFactor adds 0.1 per user condition matching a product
// health-benefit tag, capped at 1.5. Tags and conditions are compared
// case-insensitively.
func healthFactor(p *product.Summary, prof *profile.Profile) float64 {
	if prof.ConditionCount() == 0 {
		return Neutral
	}
	f := Neutral
	for _, tag := range p.HealthTags() {
		if prof.HasCondition(tag) {
			f += healthStep
		}
	}
	if f > healthCap {
		f = healthCap
	}
	return f
}

// dietaryFactor boosts products whose dietary tags intersect the user's
// preferences and penalizes products explicitly tagged as conflicting
// (a "non-<preference>" tag against a stated preference). A conflict wins
// over a match. Tags and preferences are compared case-insensitively.
func dietaryFactor(p *product.Summary, prof *profile.Profile) float64 {
	matched := false
	for _, tag := range p.DietaryTags() {
		if pref, ok := strings.CutPrefix(strings.ToLower(tag), dietConflictPrefix); ok {
			if prof.PrefersDiet(pref) {
				return dietConflict
			}
			continue
		}
		if prof.PrefersDiet(tag) {
			matched = true
		}
	}
	if matched {
		return dietMatch
	}
	return Neutral
}

// purchaseFactor boosts products in a category the user has bought from.
func purchaseFactor(p *product.Summary, prof *profile.Profile) float64 {
	if prof.PurchasedIn(p.CategoryMain()) {
		return purchaseMatch
	}
	return Neutral
}
