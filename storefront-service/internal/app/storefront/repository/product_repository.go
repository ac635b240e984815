package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lotusaroma/pkg/metrics"
	"lotusaroma/storefront-service/internal/app/storefront/entity"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает репозиторий каталога поверх GORM
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// GetAll возвращает весь каталог в порядке id
func (r *productRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "products")

	var products []entity.Product
	err := r.db.WithContext(ctx).Order("id").Find(&products).Error
	timer.Done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "products")

	var product entity.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		timer.Done(nil)
		return nil, ErrProductNotFound
	}
	timer.Done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

func (r *productRepository) GetNewArrivals(ctx context.Context) ([]entity.Product, error) {
	return r.findFlagged(ctx, "is_new_arrival")
}

func (r *productRepository) GetBestsellers(ctx context.Context) ([]entity.Product, error) {
	return r.findFlagged(ctx, "is_best_seller")
}

// findFlagged - выборка по булевому флагу; column только из констант выше
func (r *productRepository) findFlagged(ctx context.Context, column string) ([]entity.Product, error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "products")

	var products []entity.Product
	err := r.db.WithContext(ctx).Where(column+" = ?", true).Order("id").Find(&products).Error
	timer.Done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by %s: %w", column, err)
	}

	return products, nil
}

// Create используется только при заполнении каталога
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpInsert, "products")

	err := r.db.WithContext(ctx).Create(product).Error
	timer.Done(err)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// UpdateAverageRating - единственное изменение товара после создания
func (r *productRepository) UpdateAverageRating(ctx context.Context, id int64, rating float64) error {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpUpdate, "products")

	result := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Where("id = ?", id).
		Update("average_rating", rating)
	timer.Done(result.Error)

	if result.Error != nil {
		return fmt.Errorf("failed to update average rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
