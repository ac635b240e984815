package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lotusaroma/pkg/metrics"
	"lotusaroma/storefront-service/internal/app/storefront/entity"
)

const sessionKeyPrefix = "session:"

type redisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository - сессии в Redis; срок жизни задаёт TTL ключа
func NewSessionRepository(client *redis.Client) SessionRepository {
	return &redisSessionRepository{client: client}
}

// Save сохраняет сессию по ключу session:<id>
func (r *redisSessionRepository) Save(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	timer := metrics.NewRedisTimer(metricsService, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	if err := r.client.Set(ctx, sessionKeyPrefix+session.ID, data, ttl).Err(); err != nil {
		metrics.RecordRedisError(metricsService, metrics.RedisOpSet)
		return fmt.Errorf("failed to save session to Redis: %w", err)
	}

	return nil
}

// Get возвращает ErrSessionNotFound для истекшей или удаленной сессии
func (r *redisSessionRepository) Get(ctx context.Context, id string) (*entity.Session, error) {
	timer := metrics.NewRedisTimer(metricsService, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	data, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		metrics.RecordRedisError(metricsService, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// Delete идемпотентен: отсутствующая сессия не ошибка
func (r *redisSessionRepository) Delete(ctx context.Context, id string) error {
	timer := metrics.NewRedisTimer(metricsService, metrics.RedisOpDel)
	defer timer.ObserveDuration()

	if err := r.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		metrics.RecordRedisError(metricsService, metrics.RedisOpDel)
		return fmt.Errorf("failed to delete session from Redis: %w", err)
	}

	return nil
}
