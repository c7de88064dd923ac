package content

import (
	"context"
	"errors"
	"testing"

	"github.com/greenbasket/catalogd/internal/domain"
	"github.com/greenbasket/catalogd/internal/domain/content"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn         func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn      func(ctx context.Context, key string) (map[string]string, error)
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
	delFn          func(ctx context.Context, keys ...string) error
	scanFn         func(ctx context.Context, pattern string) ([]string, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return nil, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	if m.delFn != nil {
		return m.delFn(ctx, keys...)
	}
	return nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "catalogd:"), ms
}

func topicHash(code string, order int, active bool) map[string]string {
	m, _ := topicToHash(content.New(
		code, map[string]string{"en": "Topic " + code}, order, active,
		[]string{"p1", "p2"}, nil, nil, nil,
	))
	return m
}

// --- Get ---

func TestGet(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.hgetAllFn = func(_ context.Context, key string) (map[string]string, error) {
		if key != "catalogd:topic:eyes" {
			t.Errorf("key = %s", key)
		}
		return topicHash("eyes", 1, true), nil
	}

	topic, err := repo.Get(context.Background(), "eyes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if topic.Code() != "eyes" || topic.Name("en") != "Topic eyes" {
		t.Errorf("topic = %+v", topic)
	}
	if len(topic.ProductIDs()) != 2 {
		t.Errorf("ProductIDs() = %v", topic.ProductIDs())
	}
}

func TestGet_Missing(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.hgetAllFn = func(_ context.Context, _ string) (map[string]string, error) {
		return map[string]string{}, nil
	}

	_, err := repo.Get(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestGet_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.hgetAllFn = func(_ context.Context, _ string) (map[string]string, error) {
		return nil, errors.New("connection refused")
	}

	_, err := repo.Get(context.Background(), "eyes")
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("error = %v, want ErrStoreUnavailable", err)
	}
}

// --- ListActive ---

func TestListActive_SortsAndFilters(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.scanFn = func(_ context.Context, pattern string) ([]string, error) {
		if pattern != "catalogd:topic:*" {
			t.Errorf("pattern = %s", pattern)
		}
		return []string{
			"catalogd:topic:sleep",
			"catalogd:topic:hidden",
			"catalogd:topic:eyes",
			"catalogd:topic:gone",
		}, nil
	}
	ms.hgetAllMultiFn = func(_ context.Context, keys []string) ([]map[string]string, error) {
		return []map[string]string{
			topicHash("sleep", 2, true),
			topicHash("hidden", 1, false),
			topicHash("eyes", 1, true),
			{}, // key disappeared between SCAN and HGETALL
		}, nil
	}

	topics, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("len = %d, want 2 (inactive and empty dropped)", len(topics))
	}
	if topics[0].Code() != "eyes" || topics[1].Code() != "sleep" {
		t.Errorf("order = %s,%s", topics[0].Code(), topics[1].Code())
	}
}

func TestListActive_TieBreakByCode(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.scanFn = func(_ context.Context, _ string) ([]string, error) {
		return []string{"catalogd:topic:b", "catalogd:topic:a"}, nil
	}
	ms.hgetAllMultiFn = func(_ context.Context, _ []string) ([]map[string]string, error) {
		return []map[string]string{
			topicHash("b", 1, true),
			topicHash("a", 1, true),
		}, nil
	}

	topics, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if topics[0].Code() != "a" {
		t.Errorf("first = %s, want a", topics[0].Code())
	}
}

func TestListActive_NoTopics(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.scanFn = func(_ context.Context, _ string) ([]string, error) { return nil, nil }

	topics, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(topics) != 0 {
		t.Errorf("len = %d", len(topics))
	}
}

// --- Put ---

func TestPut(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotKey string
	var gotFields map[string]string
	ms.hsetFn = func(_ context.Context, key string, fields map[string]string) error {
		gotKey = key
		gotFields = fields
		return nil
	}

	topic := content.New("sleep", map[string]string{"en": "Sleep"}, 3, true,
		[]string{"p1"},
		[]content.Bundle{{Name: "Kit", ProductIDs: []string{"p1"}, Discount: 5}},
		[]content.Tip{{Title: "t", Body: "b"}},
		[]content.Fact{{Text: "f"}},
	)
	if err := repo.Put(context.Background(), topic); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "catalogd:topic:sleep" {
		t.Errorf("key = %s", gotKey)
	}
	if gotFields["is_active"] != "1" || gotFields["display_order"] != "3" {
		t.Errorf("fields = %v", gotFields)
	}

	// The written hash hydrates back to an equivalent topic.
	back, err := topicFromHash(gotFields)
	if err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if back.Code() != "sleep" || len(back.Bundles()) != 1 || len(back.Tips()) != 1 || len(back.Facts()) != 1 {
		t.Errorf("round trip topic = %+v", back)
	}
	if back.Bundles()[0].Discount != 5 {
		t.Errorf("bundle = %+v", back.Bundles()[0])
	}
}

// --- Purge ---

func TestPurge(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.scanFn = func(_ context.Context, pattern string) ([]string, error) {
		if pattern != "catalogd:topic:*" {
			t.Errorf("pattern = %s", pattern)
		}
		return []string{"catalogd:topic:sleep"}, nil
	}
	var deleted []string
	ms.delFn = func(_ context.Context, keys ...string) error {
		deleted = keys
		return nil
	}

	n, err := repo.Purge(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 || len(deleted) != 1 || deleted[0] != "catalogd:topic:sleep" {
		t.Errorf("purged %d, deleted %v", n, deleted)
	}
}
