package content

import (
	"context"
	"fmt"
	"sort"

	"github.com/greenbasket/catalogd/internal/domain"
	"github.com/greenbasket/catalogd/internal/domain/content"
)

// store is the consumer interface for topic content (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/recommend.ContentRepository over topic hashes.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a content repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// Get returns one topic by code, active or not.
func (r *Repo) Get(ctx context.Context, code string) (content.Topic, error) {
	m, err := r.store.HGetAll(ctx, r.topicKey(code))
	if err != nil {
		return content.Topic{}, fmt.Errorf("get topic %s: %w: %v", code, domain.ErrStoreUnavailable, err)
	}
	if len(m) == 0 {
		return content.Topic{}, fmt.Errorf("topic %s: %w", code, domain.ErrNotFound)
	}

	return topicFromHash(m)
}

// ListActive returns all active topics sorted by display order, ties by
// code.
func (r *Repo) ListActive(ctx context.Context) ([]content.Topic, error) {
	keys, err := r.store.Scan(ctx, r.topicKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan topics: %w: %v", domain.ErrStoreUnavailable, err)
	}
	if len(keys) == 0 {
		return []content.Topic{}, nil
	}

	rows, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi topics: %w: %v", domain.ErrStoreUnavailable, err)
	}

	topics := make([]content.Topic, 0, len(rows))
	for i, m := range rows {
		if len(m) == 0 {
			continue
		}
		t, err := topicFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse topic %s: %w", keys[i], err)
		}
		if !t.Active() {
			continue
		}
		topics = append(topics, t)
	}

	sort.Slice(topics, func(i, j int) bool {
		if topics[i].DisplayOrder() != topics[j].DisplayOrder() {
			return topics[i].DisplayOrder() < topics[j].DisplayOrder()
		}
		return topics[i].Code() < topics[j].Code()
	})

	return topics, nil
}

// Put writes one topic hash. Used by the seed loader.
func (r *Repo) Put(ctx context.Context, t content.Topic) error {
	fields, err := topicToHash(t)
	if err != nil {
		return fmt.Errorf("encode topic %s: %w", t.Code(), err)
	}
	if err := r.store.HSet(ctx, r.topicKey(t.Code()), fields); err != nil {
		return fmt.Errorf("put topic %s: %w", t.Code(), err)
	}
	return nil
}

// Purge deletes every topic hash under the key prefix and reports how
// many were removed. Used by the seed loader's reset path.
func (r *Repo) Purge(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, r.topicKey("*"))
	if err != nil {
		return 0, fmt.Errorf("scan topics: %w", err)
	}
	if err := r.store.Del(ctx, keys...); err != nil {
		return 0, fmt.Errorf("purge topics: %w", err)
	}
	return len(keys), nil
}

func (r *Repo) topicKey(code string) string {
	return r.keyPrefix + "topic:" + code
}
