package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lotusaroma/storefront-service/internal/app/storefront/entity"
)

type ReviewRepositoryTestSuite struct {
	suite.Suite
	mock  sqlmock.Sqlmock
	repo  ReviewRepository
	sqlDB *sql.DB
}

func TestReviewRepositorySuite(t *testing.T) {
	suite.Run(t, new(ReviewRepositoryTestSuite))
}

func (s *ReviewRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	}), &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewReviewRepository(db)
}

func (s *ReviewRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

func (s *ReviewRepositoryTestSuite) TestCreate_Success() {
	ctx := context.Background()
	review := &entity.Review{ProductID: 1, Username: "Priya", Rating: 5, Comment: "Lovely and long lasting"}

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "reviews"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.Create(ctx, review)

	// Assert
	s.NoError(err)
	s.Equal(int64(7), review.ID)
	s.False(review.CreatedAt.IsZero())
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ReviewRepositoryTestSuite) TestCreate_DBError() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "reviews"`)).
		WillReturnError(sql.ErrConnDone)
	s.mock.ExpectRollback()

	// Act
	err := s.repo.Create(ctx, &entity.Review{ProductID: 1, Rating: 3})

	// Assert
	s.Error(err)
	s.Contains(err.Error(), "failed to create review")
}

func (s *ReviewRepositoryTestSuite) TestGetByProductID_Ordered() {
	ctx := context.Background()
	first := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "product_id", "username", "rating", "comment", "created_at"}).
		AddRow(1, 2, "Aisha", 5, "Rich and smoky oud", first).
		AddRow(2, 2, "Vikram", 4, "Strong projection all day", first.Add(time.Hour))

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reviews" WHERE product_id = $1 ORDER BY created_at, id`)).
		WithArgs(int64(2)).
		WillReturnRows(rows)

	// Act
	reviews, err := s.repo.GetByProductID(ctx, 2)

	// Assert
	s.NoError(err)
	s.Require().Len(reviews, 2)
	s.Equal("Aisha", reviews[0].Username)
	s.Equal(4, reviews[1].Rating)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ReviewRepositoryTestSuite) TestGetByProductID_None() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reviews" WHERE product_id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "username", "rating", "comment", "created_at"}))

	// Act
	reviews, err := s.repo.GetByProductID(ctx, 5)

	// Assert
	s.NoError(err)
	s.Empty(reviews)
}
