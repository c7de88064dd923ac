package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/greenbasket/catalogd/internal/domain"
	"github.com/greenbasket/catalogd/internal/domain/content"
	"github.com/greenbasket/catalogd/internal/domain/product"
	"github.com/greenbasket/catalogd/internal/domain/profile"
)

// mockContent implements ContentRepository for tests.
type mockContent struct {
	getFn        func(ctx context.Context, code string) (content.Topic, error)
	listActiveFn func(ctx context.Context) ([]content.Topic, error)
}

func (m *mockContent) Get(ctx context.Context, code string) (content.Topic, error) {
	if m.getFn != nil {
		return m.getFn(ctx, code)
	}
	return content.Topic{}, domain.ErrNotFound
}

func (m *mockContent) ListActive(ctx context.Context) ([]content.Topic, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx)
	}
	return nil, nil
}

// mockProducts implements ProductReader for tests.
type mockProducts struct {
	getMultiFn func(ctx context.Context, ids []string) ([]product.Summary, error)
}

func (m *mockProducts) GetMulti(ctx context.Context, ids []string) ([]product.Summary, error) {
	if m.getMultiFn != nil {
		return m.getMultiFn(ctx, ids)
	}
	return nil, nil
}

func newTestService() (*Service, *mockContent, *mockProducts) {
	mc := &mockContent{}
	mp := &mockProducts{}
	return New(mc, mp), mc, mp
}

func recProduct(id string, active bool, health []string) product.Summary {
	return product.New(id, "Product "+id, "product-"+id, "tea", "",
		10, 0, nil, 4, 5, 20, 50, active, false, health, nil, nil,
		time.Unix(1700000000, 0))
}

func anonymous() profile.Profile {
	return profile.New(-1, nil, nil, nil)
}

// --- Rank ---

func TestRank_BaseRankFromInputOrder(t *testing.T) {
	svc, _, mp := newTestService()

	mp.getMultiFn = func(_ context.Context, ids []string) ([]product.Summary, error) {
		out := make([]product.Summary, len(ids))
		for i, id := range ids {
			out[i] = recProduct(id, true, nil)
		}
		return out, nil
	}

	scored, err := svc.Rank(context.Background(), []string{"x", "y", "z"}, anonymous(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scored) != 3 {
		t.Fatalf("len = %d", len(scored))
	}
	for i, want := range []string{"x", "y", "z"} {
		if scored[i].Product.ID() != want || scored[i].BaseRank != i {
			t.Errorf("position %d = %s/base %d", i, scored[i].Product.ID(), scored[i].BaseRank)
		}
	}
}

func TestRank_DropsMissingAndInactive(t *testing.T) {
	svc, _, mp := newTestService()

	mp.getMultiFn = func(_ context.Context, _ []string) ([]product.Summary, error) {
		// "b" is missing from the store, "c" is inactive.
		return []product.Summary{
			recProduct("a", true, nil),
			recProduct("c", false, nil),
			recProduct("d", true, nil),
		}, nil
	}

	scored, err := svc.Rank(context.Background(), []string{"a", "b", "c", "d"}, anonymous(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scored) != 2 {
		t.Fatalf("len = %d, want 2", len(scored))
	}
	if scored[0].Product.ID() != "a" || scored[0].BaseRank != 0 {
		t.Errorf("first = %s/base %d", scored[0].Product.ID(), scored[0].BaseRank)
	}
	// d keeps its original input position even though b and c dropped out.
	if scored[1].Product.ID() != "d" || scored[1].BaseRank != 3 {
		t.Errorf("second = %s/base %d, want d/3", scored[1].Product.ID(), scored[1].BaseRank)
	}
}

func TestRank_ProfileReorders(t *testing.T) {
	svc, _, mp := newTestService()

	mp.getMultiFn = func(_ context.Context, _ []string) ([]product.Summary, error) {
		return []product.Summary{
			recProduct("plain", true, nil),
			recProduct("boosted", true, []string{"digestion"}),
		}, nil
	}

	prof := profile.New(-1, []string{"digestion"}, nil, nil)
	scored, err := svc.Rank(context.Background(), []string{"plain", "boosted"}, prof, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scored[0].Product.ID() != "boosted" {
		t.Errorf("first = %s, want boosted", scored[0].Product.ID())
	}
}

func TestRank_TooManyCandidates(t *testing.T) {
	svc, _, _ := newTestService()

	ids := make([]string, MaxCandidates+1)
	for i := range ids {
		ids[i] = "p"
	}
	_, err := svc.Rank(context.Background(), ids, anonymous(), "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "too many candidates") {
		t.Errorf("error = %q", err)
	}
}

func TestRank_Empty(t *testing.T) {
	svc, _, mp := newTestService()
	mp.getMultiFn = func(_ context.Context, _ []string) ([]product.Summary, error) {
		t.Fatal("GetMulti called for empty input")
		return nil, nil
	}

	scored, err := svc.Rank(context.Background(), nil, anonymous(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scored) != 0 {
		t.Errorf("len = %d", len(scored))
	}
}

// --- Topics ---

func TestTopics_PassThrough(t *testing.T) {
	svc, mc, _ := newTestService()

	mc.listActiveFn = func(_ context.Context) ([]content.Topic, error) {
		return []content.Topic{
			content.New("eyes", nil, 1, true, nil, nil, nil, nil),
		}, nil
	}

	topics, err := svc.Topics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(topics) != 1 || topics[0].Code() != "eyes" {
		t.Errorf("topics = %+v", topics)
	}
}

// --- Recommend ---

func TestRecommend_AssemblesPayload(t *testing.T) {
	svc, mc, mp := newTestService()

	mc.getFn = func(_ context.Context, code string) (content.Topic, error) {
		if code != "sleep" {
			t.Errorf("code = %s", code)
		}
		return content.New("sleep", map[string]string{"en": "Sleep", "ka": "ძილი"}, 1, true,
			[]string{"p1", "p2"},
			[]content.Bundle{{Name: "Kit"}},
			[]content.Tip{{Title: "t"}},
			[]content.Fact{{Text: "f"}},
		), nil
	}
	mp.getMultiFn = func(_ context.Context, ids []string) ([]product.Summary, error) {
		if len(ids) != 2 || ids[0] != "p1" {
			t.Errorf("ids = %v", ids)
		}
		return []product.Summary{recProduct("p1", true, nil), recProduct("p2", true, nil)}, nil
	}

	rec, err := svc.Recommend(context.Background(), "sleep", anonymous(), "ka")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.TopicCode != "sleep" || rec.TopicName != "ძილი" {
		t.Errorf("topic = %s/%s", rec.TopicCode, rec.TopicName)
	}
	if len(rec.Ranked) != 2 || rec.Ranked[0].Product.ID() != "p1" {
		t.Errorf("ranked = %+v", rec.Ranked)
	}
	if len(rec.Bundles) != 1 || len(rec.Tips) != 1 || len(rec.Facts) != 1 {
		t.Errorf("extras = %d/%d/%d", len(rec.Bundles), len(rec.Tips), len(rec.Facts))
	}
}

func TestRecommend_AnonymousKeepsCuratedOrder(t *testing.T) {
	svc, mc, mp := newTestService()

	mc.getFn = func(_ context.Context, _ string) (content.Topic, error) {
		return content.New("sleep", nil, 1, true,
			[]string{"third", "first", "second"}, nil, nil, nil), nil
	}
	mp.getMultiFn = func(_ context.Context, ids []string) ([]product.Summary, error) {
		out := make([]product.Summary, len(ids))
		for i, id := range ids {
			out[i] = recProduct(id, true, nil)
		}
		return out, nil
	}

	rec, err := svc.Recommend(context.Background(), "sleep", anonymous(), "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, want := range []string{"third", "first", "second"} {
		if rec.Ranked[i].Product.ID() != want {
			t.Errorf("position %d = %s, want %s", i, rec.Ranked[i].Product.ID(), want)
		}
	}
}

func TestRecommend_TopicMissing(t *testing.T) {
	svc, mc, _ := newTestService()
	mc.getFn = func(_ context.Context, code string) (content.Topic, error) {
		return content.Topic{}, domain.ErrNotFound
	}

	_, err := svc.Recommend(context.Background(), "nope", anonymous(), "en")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// --- resolve ---

func TestResolve_DuplicateIDsKeepFirstPosition(t *testing.T) {
	svc, _, mp := newTestService()

	mp.getMultiFn = func(_ context.Context, _ []string) ([]product.Summary, error) {
		return []product.Summary{
			recProduct("a", true, nil),
			recProduct("a", true, nil),
			recProduct("b", true, nil),
		}, nil
	}

	scored, err := svc.Rank(context.Background(), []string{"a", "a", "b"}, anonymous(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range scored {
		if s.Product.ID() == "a" && s.BaseRank != 0 {
			t.Errorf("duplicate a carries base rank %d, want 0", s.BaseRank)
		}
	}
}
