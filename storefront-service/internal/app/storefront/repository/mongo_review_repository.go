package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lotusaroma/storefront-service/internal/app/storefront/entity"
)

const (
	reviewsCollection  = "reviews"
	countersCollection = "counters"
)

type mongoReviewRepository struct {
	reviews  *mongo.Collection
	counters *mongo.Collection
}

// NewMongoReviewRepository - отзывы в MongoDB (REVIEW_STORE=mongo).
// Числовые id выдаются счётчиком в коллекции counters, чтобы API
// не зависело от выбранного хранилища.
func NewMongoReviewRepository(db *mongo.Database) ReviewRepository {
	return &mongoReviewRepository{
		reviews:  db.Collection(reviewsCollection),
		counters: db.Collection(countersCollection),
	}
}

// EnsureReviewIndexes создает индекс (product_id, created_at) под выборку отзывов товара
func EnsureReviewIndexes(ctx context.Context, db *mongo.Database) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "product_id", Value: 1}, {Key: "created_at", Value: 1}},
		Options: options.Index().SetName("product_id_created_at_idx"),
	}

	if _, err := db.Collection(reviewsCollection).Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create reviews index: %w", err)
	}
	return nil
}

func (r *mongoReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}

	review.ID = id
	review.CreatedAt = time.Now().UTC()

	if _, err := r.reviews.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (r *mongoReviewRepository) GetByProductID(ctx context.Context, productID int64) ([]entity.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "review_id", Value: 1}})

	cursor, err := r.reviews.Find(ctx, bson.M{"product_id": productID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []entity.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return reviews, nil
}

// nextID атомарно увеличивает счётчик reviews
func (r *mongoReviewRepository) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": reviewsCollection},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate review id: %w", err)
	}

	return counter.Seq, nil
}
