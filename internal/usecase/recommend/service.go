package recommend

import (
	"context"
	"fmt"

	"github.com/greenbasket/catalogd/internal/domain/content"
	"github.com/greenbasket/catalogd/internal/domain/profile"
	"github.com/greenbasket/catalogd/internal/domain/rank"
)

// MaxCandidates bounds one ranking request.
const MaxCandidates = 200

// Recommendation is the assembled payload for one topic: the ranked
// products plus the topic's curated extras.
type Recommendation struct {
	TopicCode string
	TopicName string
	Ranked    []rank.Scored
	Bundles   []content.Bundle
	Tips      []content.Tip
	Facts     []content.Fact
}

// Service assembles personalized recommendations from curated topic
// content and the catalog.
type Service struct {
	topics   ContentRepository
	products ProductReader
}

// New creates a recommendation service.
func New(topics ContentRepository, products ProductReader) *Service {
	return &Service{topics: topics, products: products}
}

// Rank scores arbitrary candidate ids against a profile. Ids arrive in
// base order; missing and inactive products are dropped, surviving
// candidates keep their original position as the base rank.
func (s *Service) Rank(
	ctx context.Context, ids []string, prof profile.Profile, topic string,
) ([]rank.Scored, error) {
	if len(ids) > MaxCandidates {
		return nil, fmt.Errorf("too many candidates (max %d)", MaxCandidates)
	}

	candidates, err := s.resolve(ctx, ids)
	if err != nil {
		return nil, err
	}

	return rank.Rank(candidates, prof, topic), nil
}

// Topics returns all active topics in display order.
func (s *Service) Topics(ctx context.Context) ([]content.Topic, error) {
	return s.topics.ListActive(ctx)
}

// Recommend assembles the personalized payload for one topic: the curated
// product list ranked for the profile, plus bundles, tips, and facts.
// With an empty profile the curated order passes through unchanged.
func (s *Service) Recommend(
	ctx context.Context, code string, prof profile.Profile, lang string,
) (Recommendation, error) {
	topic, err := s.topics.Get(ctx, code)
	if err != nil {
		return Recommendation{}, fmt.Errorf("topic %s: %w", code, err)
	}

	candidates, err := s.resolve(ctx, topic.ProductIDs())
	if err != nil {
		return Recommendation{}, err
	}

	return Recommendation{
		TopicCode: topic.Code(),
		TopicName: topic.Name(lang),
		Ranked:    rank.Rank(candidates, prof, topic.Code()),
		Bundles:   topic.Bundles(),
		Tips:      topic.Tips(),
		Facts:     topic.Facts(),
	}, nil
}

// resolve turns ids in base order into rank candidates, dropping missing
// and inactive products while preserving each survivor's original index.
func (s *Service) resolve(ctx context.Context, ids []string) ([]rank.Candidate, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	products, err := s.products.GetMulti(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve candidates: %w", err)
	}

	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, seen := pos[id]; !seen {
			pos[id] = i
		}
	}

	candidates := make([]rank.Candidate, 0, len(products))
	for i := range products {
		if !products[i].Active() {
			continue
		}
		baseRank, ok := pos[products[i].ID()]
		if !ok {
			continue
		}
		candidates = append(candidates, rank.Candidate{Product: products[i], BaseRank: baseRank})
	}
	return candidates, nil
}
