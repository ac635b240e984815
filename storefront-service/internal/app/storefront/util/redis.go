package util

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lotusaroma/pkg/metrics"
	"lotusaroma/storefront-service/internal/app/storefront/config"
	"lotusaroma/storefront-service/internal/app/storefront/entity"
)

const catalogKeyPrefix = "catalog:products:"

var cachedLists = []string{CacheKeyAllProducts, CacheKeyNewArrivals, CacheKeyBestsellers}

// NewRedisClient подключается к Redis и проверяет соединение
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// RedisCatalogCache хранит списки товаров JSON-ом с TTL
type RedisCatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *RedisCatalogCache {
	return &RedisCatalogCache{client: client, ttl: ttl}
}

func (c *RedisCatalogCache) GetProducts(ctx context.Context, key string) ([]entity.Product, error) {
	timer := metrics.NewRedisTimer(config.ServiceName, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	data, err := c.client.Get(ctx, catalogKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheMiss(config.ServiceName, catalogKeyPrefix+key)
		return nil, nil
	}
	if err != nil {
		metrics.RecordRedisError(config.ServiceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get products from cache: %w", err)
	}

	var products []entity.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal products: %w", err)
	}

	metrics.RecordCacheHit(config.ServiceName, catalogKeyPrefix+key)
	return products, nil
}

func (c *RedisCatalogCache) SetProducts(ctx context.Context, key string, products []entity.Product) error {
	if products == nil {
		products = []entity.Product{}
	}

	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal products: %w", err)
	}

	timer := metrics.NewRedisTimer(config.ServiceName, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	if err := c.client.Set(ctx, catalogKeyPrefix+key, data, c.ttl).Err(); err != nil {
		metrics.RecordRedisError(config.ServiceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set products in cache: %w", err)
	}

	return nil
}

// InvalidateProducts сбрасывает все списки: averageRating есть в каждом из них
func (c *RedisCatalogCache) InvalidateProducts(ctx context.Context) error {
	keys := make([]string, 0, len(cachedLists))
	for _, k := range cachedLists {
		keys = append(keys, catalogKeyPrefix+k)
	}

	timer := metrics.NewRedisTimer(config.ServiceName, metrics.RedisOpDel)
	defer timer.ObserveDuration()

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		metrics.RecordRedisError(config.ServiceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to delete products from cache: %w", err)
	}

	return nil
}
