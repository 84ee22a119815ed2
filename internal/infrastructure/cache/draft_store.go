package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gardenbuild/internal/wizard"

	"github.com/redis/go-redis/v9"
)

// RedisDraftStore persists wizard drafts as JSON blobs with a TTL, so
// abandoned sessions age out on their own.
type RedisDraftStore struct {
	redis *RedisClient
	ttl   time.Duration
}

var _ wizard.DraftStore = (*RedisDraftStore)(nil)

func NewRedisDraftStore(redis *RedisClient, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{redis: redis, ttl: ttl}
}

func draftKey(id string) string {
	return fmt.Sprintf("wizard:draft:%s", id)
}

func (s *RedisDraftStore) Save(ctx context.Context, draft wizard.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard draft: %w", err)
	}
	return s.redis.Set(ctx, draftKey(draft.ID), string(data), s.ttl)
}

func (s *RedisDraftStore) Load(ctx context.Context, id string) (wizard.Draft, error) {
	data, err := s.redis.Get(ctx, draftKey(id))
	if errors.Is(err, redis.Nil) {
		return wizard.Draft{}, wizard.ErrDraftNotFound
	}
	if err != nil {
		return wizard.Draft{}, err
	}

	var draft wizard.Draft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return wizard.Draft{}, fmt.Errorf("failed to unmarshal wizard draft: %w", err)
	}
	return draft, nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, id string) error {
	return s.redis.Delete(ctx, draftKey(id))
}
