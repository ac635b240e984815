package repository

import (
	"context"
	"fmt"

	"lotusaroma/pkg/logger"
)

// Seeder заполняет пустой каталог демонстрационными духами и отзывами
type Seeder struct {
	products ProductRepository
	reviews  ReviewRepository
}

func NewSeeder(products ProductRepository, reviews ReviewRepository) *Seeder {
	return &Seeder{products: products, reviews: reviews}
}

// SeedIfEmpty ничего не делает, если в каталоге уже есть хотя бы один товар.
// Возвращает число созданных товаров.
func (s *Seeder) SeedIfEmpty(ctx context.Context) (int, error) {
	count, err := s.products.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	log := logger.Component("seed")
	log.Info().Int("products", len(sampleCatalog)).Msg("Catalog is empty, seeding sample products")

	created := 0
	for _, sample := range sampleCatalog {
		product := sample.product
		if err := s.products.Create(ctx, &product); err != nil {
			return created, fmt.Errorf("failed to seed %q: %w", product.Name, err)
		}
		created++

		for _, r := range sample.reviews {
			review := r
			review.ProductID = product.ID
			if err := s.reviews.Create(ctx, &review); err != nil {
				return created, fmt.Errorf("failed to seed review for %q: %w", product.Name, err)
			}
		}
	}

	log.Info().Int("products", created).Msg("Catalog seeded")
	return created, nil
}
