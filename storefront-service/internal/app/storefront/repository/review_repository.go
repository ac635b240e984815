package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"lotusaroma/pkg/metrics"
	"lotusaroma/storefront-service/internal/app/storefront/entity"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository - отзывы в PostgreSQL (по умолчанию)
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create сохраняет отзыв; id и created_at заполняет GORM
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpInsert, "reviews")

	err := r.db.WithContext(ctx).Create(review).Error
	timer.Done(err)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// GetByProductID - отзывы товара от старых к новым
func (r *reviewRepository) GetByProductID(ctx context.Context, productID int64) ([]entity.Review, error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "reviews")

	var reviews []entity.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at, id").
		Find(&reviews).Error
	timer.Done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	return reviews, nil
}
