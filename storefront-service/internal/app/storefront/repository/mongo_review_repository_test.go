package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"lotusaroma/storefront-service/internal/app/storefront/entity"
)

func TestMongoReviewRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create allocates numeric id", func(mt *mtest.T) {
		repo := NewMongoReviewRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: "reviews"},
				{Key: "seq", Value: int64(4)},
			}}),
			mtest.CreateSuccessResponse(),
		)

		review := &entity.Review{ProductID: 2, Username: "Aisha", Rating: 5, Comment: "Rich and smoky oud"}

		// Act
		err := repo.Create(context.Background(), review)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(4), review.ID)
		assert.False(t, review.CreatedAt.IsZero())
	})

	mt.Run("create fails when counter unavailable", func(mt *mtest.T) {
		repo := NewMongoReviewRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Message: "interrupted at shutdown",
		}))

		err := repo.Create(context.Background(), &entity.Review{ProductID: 2, Rating: 4})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to allocate review id")
	})

	mt.Run("get by product id", func(mt *mtest.T) {
		repo := NewMongoReviewRepository(mt.DB)
		created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
		ns := mt.DB.Name() + "." + reviewsCollection

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "review_id", Value: int64(1)},
				{Key: "product_id", Value: int64(2)},
				{Key: "username", Value: "Aisha"},
				{Key: "rating", Value: 5},
				{Key: "comment", Value: "Rich and smoky oud"},
				{Key: "created_at", Value: created},
			},
			bson.D{
				{Key: "review_id", Value: int64(2)},
				{Key: "product_id", Value: int64(2)},
				{Key: "username", Value: "Vikram"},
				{Key: "rating", Value: 5},
				{Key: "comment", Value: "Worth every rupee"},
				{Key: "created_at", Value: created.Add(time.Hour)},
			},
		))

		// Act
		reviews, err := repo.GetByProductID(context.Background(), 2)

		// Assert
		require.NoError(t, err)
		require.Len(t, reviews, 2)
		assert.Equal(t, "Aisha", reviews[0].Username)
		assert.Equal(t, int64(2), reviews[1].ID)
		assert.Equal(t, 5, reviews[1].Rating)
	})

	mt.Run("get by product id without reviews", func(mt *mtest.T) {
		repo := NewMongoReviewRepository(mt.DB)
		ns := mt.DB.Name() + "." + reviewsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		reviews, err := repo.GetByProductID(context.Background(), 9)

		require.NoError(t, err)
		assert.Empty(t, reviews)
	})
}
