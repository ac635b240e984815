package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"lotusaroma/storefront-service/internal/app/storefront/entity"
)

// SessionRepositoryTestSuite тестовый suite для Redis сессий
type SessionRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *redis.Client
	repo      SessionRepository
}

func TestSessionRepositorySuite(t *testing.T) {
	suite.Run(t, new(SessionRepositoryTestSuite))
}

func (s *SessionRepositoryTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.client = redis.NewClient(&redis.Options{Addr: s.miniRedis.Addr()})
	s.repo = NewSessionRepository(s.client)
}

func (s *SessionRepositoryTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *SessionRepositoryTestSuite) TearDownSuite() {
	s.client.Close()
	s.miniRedis.Close()
}

func newTestSession() *entity.Session {
	now := time.Now().UTC().Truncate(time.Second)
	return &entity.Session{
		ID:        "3f0c2a9e-5d1b-4b7e-9a44-0c1e2d3f4a5b",
		UserID:    11,
		Username:  "meera",
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
}

func (s *SessionRepositoryTestSuite) TestSaveAndGet() {
	ctx := context.Background()
	session := newTestSession()

	// Act
	err := s.repo.Save(ctx, session, 24*time.Hour)
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, session.ID)

	// Assert
	s.NoError(err)
	s.Equal(session.UserID, got.UserID)
	s.Equal(session.Username, got.Username)
	s.True(session.ExpiresAt.Equal(got.ExpiresAt))
	s.True(s.miniRedis.Exists("session:" + session.ID))
	s.Equal(24*time.Hour, s.miniRedis.TTL("session:"+session.ID))
}

func (s *SessionRepositoryTestSuite) TestGet_Expired() {
	ctx := context.Background()
	session := newTestSession()
	s.Require().NoError(s.repo.Save(ctx, session, time.Minute))

	s.miniRedis.FastForward(2 * time.Minute)

	// Act
	got, err := s.repo.Get(ctx, session.ID)

	// Assert
	s.Nil(got)
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *SessionRepositoryTestSuite) TestGet_Missing() {
	got, err := s.repo.Get(context.Background(), "nope")

	s.Nil(got)
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *SessionRepositoryTestSuite) TestGet_CorruptValue() {
	s.Require().NoError(s.miniRedis.Set("session:bad", "{not json"))

	got, err := s.repo.Get(context.Background(), "bad")

	s.Nil(got)
	s.Error(err)
	s.NotErrorIs(err, ErrSessionNotFound)
}

func (s *SessionRepositoryTestSuite) TestSave_RejectsNonPositiveTTL() {
	err := s.repo.Save(context.Background(), newTestSession(), 0)

	s.Error(err)
}

func (s *SessionRepositoryTestSuite) TestDelete_Idempotent() {
	ctx := context.Background()
	session := newTestSession()
	s.Require().NoError(s.repo.Save(ctx, session, time.Hour))

	// Act
	s.NoError(s.repo.Delete(ctx, session.ID))
	s.NoError(s.repo.Delete(ctx, session.ID))

	// Assert
	s.False(s.miniRedis.Exists("session:" + session.ID))
}

func (s *SessionRepositoryTestSuite) TestRedisDown() {
	ctx := context.Background()
	s.miniRedis.SetError("LOADING")
	defer s.miniRedis.SetError("")

	_, err := s.repo.Get(ctx, "any")

	s.Error(err)
	s.NotErrorIs(err, ErrSessionNotFound)
}
