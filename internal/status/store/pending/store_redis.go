package pending

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"statusgate/internal/status/models"
	"statusgate/pkg/domain"
	"statusgate/pkg/platform/sentinel"
	"statusgate/pkg/requestcontext"
)

const (
	defaultKeyPrefix = "status:pending:"
	minKeyTTL        = time.Second
)

// RedisStore keeps one JSON value per subject, expiring with the record.
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

func (s *RedisStore) Find(ctx context.Context, id domain.SubjectID) (*models.PendingRequest, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get pending request: %w", err)
	}
	var req models.PendingRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("decode pending request: %w", err)
	}
	return &req, nil
}

func (s *RedisStore) Save(ctx context.Context, request *models.PendingRequest) error {
	if request == nil {
		return nil
	}
	raw, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("encode pending request: %w", err)
	}
	ttl := max(request.ExpiresAt.Sub(requestcontext.Now(ctx)), minKeyTTL)
	if err := s.client.Set(ctx, s.key(request.SubjectID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("set pending request: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id domain.SubjectID) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete pending request: %w", err)
	}
	return nil
}
