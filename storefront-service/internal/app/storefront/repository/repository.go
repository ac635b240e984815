package repository

import (
	"context"
	"errors"
	"time"

	"lotusaroma/storefront-service/internal/app/storefront/entity"
)

const metricsService = "storefront-service"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrSessionNotFound   = errors.New("session not found")
)

// ProductRepository - каталог (PostgreSQL через GORM)
type ProductRepository interface {
	GetAll(ctx context.Context) ([]entity.Product, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetNewArrivals(ctx context.Context) ([]entity.Product, error)
	GetBestsellers(ctx context.Context) ([]entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	UpdateAverageRating(ctx context.Context, id int64, rating float64) error
	Count(ctx context.Context) (int64, error)
}

// ReviewRepository - отзывы (PostgreSQL или MongoDB)
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByProductID(ctx context.Context, productID int64) ([]entity.Review, error)
}

// UserRepository - аккаунты (PostgreSQL через pgx)
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}

// SessionRepository - серверные сессии (Redis)
type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
