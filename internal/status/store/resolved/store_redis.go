package resolved

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"statusgate/internal/status/models"
	"statusgate/pkg/domain"
	"statusgate/pkg/platform/sentinel"
	"statusgate/pkg/requestcontext"
)

const (
	defaultKeyPrefix = "status:resolved:"
	scanBatch        = 100
	// minKeyTTL keeps already-expired records briefly so a write never fails
	// on a non-positive expiry.
	minKeyTTL = time.Second
)

// RedisStore keeps one JSON value per subject. The key TTL follows the
// record's remaining lifetime so Redis evicts stale rows on its own.
type RedisStore struct {
	client *redis.Client
	prefix string
}

type RedisOption func(*RedisStore)

// WithKeyPrefix namespaces the keys, e.g. per deployment sharing one Redis.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

func NewRedisStore(client *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, prefix: defaultKeyPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(id domain.SubjectID) string {
	return s.prefix + id.String()
}

func (s *RedisStore) Find(ctx context.Context, id domain.SubjectID) (*models.ResolvedStatus, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get resolved status: %w", err)
	}
	var rec models.ResolvedStatus
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode resolved status: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) Save(ctx context.Context, record *models.ResolvedStatus) error {
	if record == nil {
		return nil
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode resolved status: %w", err)
	}
	ttl := record.ExpiresAt.Sub(requestcontext.Now(ctx))
	if ttl < minKeyTTL {
		ttl = minKeyTTL
	}
	if err := s.client.Set(ctx, s.key(record.SubjectID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("set resolved status: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id domain.SubjectID) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete resolved status: %w", err)
	}
	return nil
}

// List scans the key space under the prefix and fetches values in batches.
func (s *RedisStore) List(ctx context.Context) ([]models.ResolvedStatus, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan resolved statuses: %w", err)
	}

	out := make([]models.ResolvedStatus, 0, len(keys))
	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))
		values, err := s.client.MGet(ctx, keys[start:end]...).Result()
		if err != nil {
			return nil, fmt.Errorf("fetch resolved statuses: %w", err)
		}
		for _, v := range values {
			str, ok := v.(string)
			if !ok {
				// evicted between SCAN and MGET
				continue
			}
			var rec models.ResolvedStatus
			if err := json.Unmarshal([]byte(str), &rec); err != nil {
				return nil, fmt.Errorf("decode resolved status: %w", err)
			}
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubjectID < out[j].SubjectID })
	return out, nil
}
