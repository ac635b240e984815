package util

import (
	"context"

	"lotusaroma/storefront-service/internal/app/storefront/entity"
)

// Ключи закешированных списков каталога
const (
	CacheKeyAllProducts = "all"
	CacheKeyNewArrivals = "new_arrivals"
	CacheKeyBestsellers = "bestsellers"
)

// CatalogCache - кеш списков товаров.
// GetProducts возвращает nil, nil при промахе.
type CatalogCache interface {
	GetProducts(ctx context.Context, key string) ([]entity.Product, error)
	SetProducts(ctx context.Context, key string, products []entity.Product) error
	InvalidateProducts(ctx context.Context) error
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
