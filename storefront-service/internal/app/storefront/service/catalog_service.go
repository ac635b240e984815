package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"lotusaroma/pkg/logger"
	"lotusaroma/pkg/metrics"
	"lotusaroma/storefront-service/internal/app/storefront/entity"
	"lotusaroma/storefront-service/internal/app/storefront/repository"
	"lotusaroma/storefront-service/internal/app/storefront/util"
)

// sharedLoadTimeout ограничивает загрузку списка, которую делят несколько запросов
const sharedLoadTimeout = 10 * time.Second

// CatalogService - каталог, поиск и отзывы с пересчётом рейтинга.
// Списки товаров читаются через Redis кеш; одновременные промахи по
// одному ключу схлопываются в один запрос к БД.
type CatalogService struct {
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	cache       util.CatalogCache
	publisher   util.MessagePublisher
	validate    *validator.Validate
	loads       singleflight.Group
	log         zerolog.Logger
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	cache util.CatalogCache,
	publisher util.MessagePublisher,
) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		cache:       cache,
		publisher:   publisher,
		validate:    newValidator(),
		log:         logger.Component("catalog"),
	}
}

func (s *CatalogService) GetAllProducts(ctx context.Context) ([]entity.Product, error) {
	return s.cachedList(ctx, util.CacheKeyAllProducts, s.productRepo.GetAll)
}

func (s *CatalogService) GetNewArrivals(ctx context.Context) ([]entity.Product, error) {
	return s.cachedList(ctx, util.CacheKeyNewArrivals, s.productRepo.GetNewArrivals)
}

func (s *CatalogService) GetBestsellers(ctx context.Context) ([]entity.Product, error) {
	return s.cachedList(ctx, util.CacheKeyBestsellers, s.productRepo.GetBestsellers)
}

// SearchProducts - подстрока без учета регистра в name, description,
// shortDescription или category. Пустой запрос возвращает весь каталог.
func (s *CatalogService) SearchProducts(ctx context.Context, query string) ([]entity.Product, error) {
	all, err := s.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return all, nil
	}
	metrics.CatalogSearches.Inc()

	found := make([]entity.Product, 0)
	for i := range all {
		if all[i].Matches(query) {
			found = append(found, all[i])
		}
	}
	return found, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// GetReviews - отзывы товара от старых к новым
func (s *CatalogService) GetReviews(ctx context.Context, productID int64) ([]entity.Review, error) {
	reviews, err := s.reviewRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	if reviews == nil {
		reviews = []entity.Review{}
	}
	return reviews, nil
}

// CreateReview сохраняет отзыв и пересчитывает averageRating товара заново
// по всем его отзывам. Пересчёт не транзакционный: расхождение после
// конкурентных вставок исправляет ReconcileRatings.
func (s *CatalogService) CreateReview(ctx context.Context, productID int64, req *entity.CreateReviewRequest) (*entity.Review, error) {
	// несуществующий товар - 404 даже при невалидном теле
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	review := &entity.Review{
		ProductID: productID,
		Username:  req.Username,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	average, err := s.recomputeRating(ctx, productID)
	if err != nil {
		return nil, err
	}

	metrics.ReviewsCreated.Inc()
	metrics.ReviewsRating.Observe(float64(review.Rating))

	s.invalidateLists(ctx)
	s.publishReviewCreated(ctx, review, average)

	return review, nil
}

// recomputeRating перечитывает все отзывы товара и сохраняет среднее
func (s *CatalogService) recomputeRating(ctx context.Context, productID int64) (float64, error) {
	reviews, err := s.reviewRepo.GetByProductID(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to reload reviews: %w", err)
	}

	average := entity.AverageRating(reviews)
	if err := s.productRepo.UpdateAverageRating(ctx, productID, average); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return 0, ErrProductNotFound
		}
		return 0, fmt.Errorf("failed to update average rating: %w", err)
	}

	return average, nil
}

// ReconcileRatings пересчитывает рейтинг каждого товара с отзывами и
// записывает только изменившиеся значения. Товары без отзывов сохраняют
// исходный рейтинг. Возвращает число обновлённых товаров.
func (s *CatalogService) ReconcileRatings(ctx context.Context) (int, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list products: %w", err)
	}

	updated := 0
	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return updated, err
		}

		reviews, err := s.reviewRepo.GetByProductID(ctx, p.ID)
		if err != nil {
			return updated, fmt.Errorf("failed to get reviews for product %d: %w", p.ID, err)
		}
		if len(reviews) == 0 {
			continue
		}

		average := entity.AverageRating(reviews)
		if average == p.AverageRating {
			continue
		}

		if err := s.productRepo.UpdateAverageRating(ctx, p.ID, average); err != nil {
			return updated, fmt.Errorf("failed to update rating for product %d: %w", p.ID, err)
		}
		s.log.Info().
			Int64("product_id", p.ID).
			Float64("from", p.AverageRating).
			Float64("to", average).
			Msg("Average rating reconciled")
		updated++
	}

	if updated > 0 {
		s.invalidateLists(ctx)
	}
	return updated, nil
}

// WarmCache перезагружает все списки каталога из БД в кеш
func (s *CatalogService) WarmCache(ctx context.Context) error {
	lists := []struct {
		key  string
		load func(context.Context) ([]entity.Product, error)
	}{
		{util.CacheKeyAllProducts, s.productRepo.GetAll},
		{util.CacheKeyNewArrivals, s.productRepo.GetNewArrivals},
		{util.CacheKeyBestsellers, s.productRepo.GetBestsellers},
	}

	for _, l := range lists {
		products, err := l.load(ctx)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", l.key, err)
		}
		if err := s.cache.SetProducts(ctx, l.key, products); err != nil {
			return fmt.Errorf("failed to cache %s: %w", l.key, err)
		}
	}
	return nil
}

// cachedList: кеш, затем БД через singleflight. Ошибки кеша не ломают запрос.
func (s *CatalogService) cachedList(
	ctx context.Context,
	key string,
	load func(context.Context) ([]entity.Product, error),
) ([]entity.Product, error) {
	cached, err := s.cache.GetProducts(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Catalog cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	// общая загрузка не привязана к отмене первого запроса: её результат
	// ждут и другие запросы с тем же ключом
	ch := s.loads.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLoadTimeout)
		defer cancel()

		products, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		if products == nil {
			products = []entity.Product{}
		}
		if err := s.cache.SetProducts(loadCtx, key, products); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("Catalog cache write failed")
		}
		return products, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("failed to get products: %w", res.Err)
		}
		return res.Val.([]entity.Product), nil
	}
}

func (s *CatalogService) invalidateLists(ctx context.Context) {
	if err := s.cache.InvalidateProducts(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Failed to invalidate catalog cache")
	}
}

func (s *CatalogService) publishReviewCreated(ctx context.Context, review *entity.Review, average float64) {
	event := entity.ReviewEvent{
		EventID:       uuid.NewString(),
		EventType:     entity.EventReviewCreated,
		ReviewID:      review.ID,
		ProductID:     review.ProductID,
		Rating:        review.Rating,
		AverageRating: average,
		Timestamp:     time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to marshal review event")
		return
	}

	// ключ - товар, чтобы события одного товара шли по порядку
	if err := s.publisher.PublishMessage(ctx, strconv.FormatInt(review.ProductID, 10), data); err != nil {
		s.log.Warn().Err(err).Int64("review_id", review.ID).Msg("Failed to publish review event")
	}
}
