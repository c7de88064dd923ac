package profile

import "strings"

// Profile holds the user attributes personalization reads. It is supplied
// by the caller and read-only here. Every attribute is optional: a missing
// attribute degrades the corresponding ranking factor to its neutral value.
// String attributes are matched case-insensitively; values are lowercased
// on construction and lookups lowercase their argument.
type Profile struct {
	age                 int
	ageKnown            bool
	healthConditions    map[string]struct{}
	dietaryPreferences  map[string]struct{}
	purchasedCategories map[string]struct{}
}

// New creates a profile. age < 0 means unknown.
func New(age int, healthConditions, dietaryPreferences, purchasedCategories []string) Profile {
	return Profile{
		age:                 age,
		ageKnown:            age >= 0,
		healthConditions:    toSet(healthConditions),
		dietaryPreferences:  toSet(dietaryPreferences),
		purchasedCategories: toSet(purchasedCategories),
	}
}

// Age returns the computed age and whether it is known.
func (p *Profile) Age() (int, bool) { return p.age, p.ageKnown }

// HasCondition reports whether the user declared the health condition.
func (p *Profile) HasCondition(c string) bool {
	_, ok := p.healthConditions[strings.ToLower(c)]
	return ok
}

// ConditionCount returns the number of declared health conditions.
func (p *Profile) ConditionCount() int { return len(p.healthConditions) }

// PrefersDiet reports whether the user declared the dietary preference.
func (p *Profile) PrefersDiet(d string) bool {
	_, ok := p.dietaryPreferences[strings.ToLower(d)]
	return ok
}

// DietaryPreferences returns the declared preferences.
func (p *Profile) DietaryPreferences() []string { return keys(p.dietaryPreferences) }

// PurchasedIn reports whether the user previously bought in the category.
func (p *Profile) PurchasedIn(category string) bool {
	_, ok := p.purchasedCategories[strings.ToLower(category)]
	return ok
}

func toSet(vals []string) map[string]struct{} {
	if len(vals) == 0 {
		return nil
	}
	m := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		if v != "" {
			m[strings.ToLower(v)] = struct{}{}
		}
	}
	return m
}

func keys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
