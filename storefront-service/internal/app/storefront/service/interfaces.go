package service

import (
	"context"

	"lotusaroma/storefront-service/internal/app/storefront/entity"
)

type CatalogServiceInterface interface {
	GetAllProducts(ctx context.Context) ([]entity.Product, error)
	SearchProducts(ctx context.Context, query string) ([]entity.Product, error)
	GetNewArrivals(ctx context.Context) ([]entity.Product, error)
	GetBestsellers(ctx context.Context) ([]entity.Product, error)
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
	GetReviews(ctx context.Context, productID int64) ([]entity.Review, error)
	CreateReview(ctx context.Context, productID int64, req *entity.CreateReviewRequest) (*entity.Review, error)
}

type AccountServiceInterface interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, string, error)
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.User, string, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*entity.Identity, error)
	GetUser(ctx context.Context, id int64) (*entity.User, error)
}
