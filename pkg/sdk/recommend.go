package catalogd

import (
	"context"
	"fmt"
	"time"

	"github.com/greenbasket/catalogd/internal/domain/content"
	"github.com/greenbasket/catalogd/internal/domain/profile"
	"github.com/greenbasket/catalogd/internal/domain/rank"
	recommenduc "github.com/greenbasket/catalogd/internal/usecase/recommend"
)

// RecommendService exposes personalization: candidate ranking and
// topic-based recommendations.
type RecommendService struct {
	svc recommendUseCase
	obs *observer
}

// Rank re-orders the candidate product ids for the given profile. Ids
// that do not resolve to active products are dropped from the result.
func (s *RecommendService) Rank(
	ctx context.Context, ids []string, prof Profile, topic string,
) (_ []RankedProduct, err error) {
	start := time.Now()
	defer func() { s.obs.observe("recommend.rank", start, err) }()

	scored, err := s.svc.Rank(ctx, ids, profileToDomain(prof), topic)
	if err != nil {
		return nil, fmt.Errorf("catalogd: rank: %w", err)
	}
	return rankedFromDomain(scored), nil
}

// Topics lists active topics ordered for display. Topic names resolve
// with the given language, falling back to English.
func (s *RecommendService) Topics(ctx context.Context, lang string) (_ []Topic, err error) {
	start := time.Now()
	defer func() { s.obs.observe("recommend.topics", start, err) }()

	topics, err := s.svc.Topics(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalogd: topics: %w", err)
	}
	out := make([]Topic, len(topics))
	for i := range topics {
		out[i] = topicFromDomain(&topics[i], lang)
	}
	return out, nil
}

// Recommend assembles the personalized payload for one topic: the
// topic's curated products ranked for the profile, plus its bundles,
// tips, and facts.
func (s *RecommendService) Recommend(
	ctx context.Context, code string, prof Profile, lang string,
) (_ Recommendation, err error) {
	start := time.Now()
	defer func() { s.obs.observe("recommend.recommend", start, err) }()

	rec, err := s.svc.Recommend(ctx, code, profileToDomain(prof), lang)
	if err != nil {
		return Recommendation{}, fmt.Errorf("catalogd: recommend %s: %w", code, err)
	}
	return recommendationFromDomain(rec), nil
}

func profileToDomain(p Profile) profile.Profile {
	return profile.New(p.Age, p.HealthConditions, p.DietaryPreferences, p.PurchasedCategories)
}

func rankedFromDomain(scored []rank.Scored) []RankedProduct {
	out := make([]RankedProduct, len(scored))
	for i := range scored {
		out[i] = RankedProduct{
			Product:  productFromDomain(&scored[i].Product),
			BaseRank: scored[i].BaseRank,
			Factors: Factors{
				Age:      scored[i].Factors.Age,
				Health:   scored[i].Factors.Health,
				Dietary:  scored[i].Factors.Dietary,
				Purchase: scored[i].Factors.Purchase,
			},
			Composite: scored[i].Composite,
		}
	}
	return out
}

func topicFromDomain(t *content.Topic, lang string) Topic {
	return Topic{
		Code:         t.Code(),
		Name:         t.Name(lang),
		DisplayOrder: t.DisplayOrder(),
	}
}

func recommendationFromDomain(rec recommenduc.Recommendation) Recommendation {
	out := Recommendation{
		Topic:   Topic{Code: rec.TopicCode, Name: rec.TopicName},
		Items:   rankedFromDomain(rec.Ranked),
		Bundles: make([]Bundle, len(rec.Bundles)),
		Tips:    make([]Tip, len(rec.Tips)),
		Facts:   make([]Fact, len(rec.Facts)),
	}
	for i, b := range rec.Bundles {
		out.Bundles[i] = Bundle{
			Name:       b.Name,
			ProductIDs: b.ProductIDs,
			Discount:   b.Discount,
			Benefit:    b.Benefit,
		}
	}
	for i, t := range rec.Tips {
		out.Tips[i] = Tip{Title: t.Title, Body: t.Body, Category: t.Category}
	}
	for i, f := range rec.Facts {
		out.Facts[i] = Fact{Text: f.Text, Source: f.Source}
	}
	return out
}
