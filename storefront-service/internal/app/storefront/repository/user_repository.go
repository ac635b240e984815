package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"lotusaroma/pkg/metrics"
	"lotusaroma/storefront-service/internal/app/storefront/entity"
)

// SQLSTATE unique_violation
const uniqueViolation = "23505"

// pgxQuerier - часть pgxpool.Pool, которой пользуется репозиторий
type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type userRepository struct {
	db pgxQuerier
}

// NewUserRepository создает репозиторий аккаунтов на pgx
func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &userRepository{db: db}
}

// Create вставляет пользователя и заполняет ID и CreatedAt.
// Занятое имя - ErrDuplicateUsername.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpInsert, "users")

	query := `
		INSERT INTO users (username, password)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, user.Username, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		timer.Done(nil)
		return ErrDuplicateUsername
	}
	timer.Done(err)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT id, username, password, created_at FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT id, username, password, created_at FROM users WHERE username = $1`
	return r.getOne(ctx, query, username)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, "users")

	var user entity.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		timer.Done(nil)
		return nil, ErrUserNotFound
	}
	timer.Done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
