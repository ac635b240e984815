package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"lotusaroma/pkg/logger"
	"lotusaroma/pkg/metrics"
	"lotusaroma/storefront-service/internal/app/storefront/entity"
	"lotusaroma/storefront-service/internal/app/storefront/repository"
	"lotusaroma/storefront-service/internal/app/storefront/util"
)

// AccountService - регистрация, вход и серверные сессии.
// Токен сессии - подписанная ссылка на запись в Redis; выход удаляет запись.
type AccountService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	signer      *util.SessionSigner
	publisher   util.MessagePublisher
	validate    *validator.Validate
	log         zerolog.Logger
}

func NewAccountService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	signer *util.SessionSigner,
	publisher util.MessagePublisher,
) *AccountService {
	return &AccountService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		signer:      signer,
		publisher:   publisher,
		validate:    newValidator(),
		log:         logger.Component("account"),
	}
}

// Register создает аккаунт и сразу открывает для него сессию
func (s *AccountService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, string, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, "", err
	}

	passwordHash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, "", ErrUserExists
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}
	metrics.AccountRegistrations.Inc()

	token, err := s.startSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.publishRegistered(ctx, user)
	return user, token, nil
}

// Login: неизвестное имя и неверный пароль неразличимы для клиента
func (s *AccountService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.User, string, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			metrics.AccountLogins.WithLabelValues("failed").Inc()
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !util.CheckPassword(req.Password, user.PasswordHash) {
		metrics.AccountLogins.WithLabelValues("failed").Inc()
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.startSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	metrics.AccountLogins.WithLabelValues("success").Inc()
	return user, token, nil
}

// Logout удаляет сессию. Пустой или недействительный токен - не ошибка.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := s.signer.Verify(token)
	if err != nil {
		return nil
	}

	if err := s.sessionRepo.Delete(ctx, claims.SessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Authenticate проверяет подпись токена и наличие сессии в Redis
func (s *AccountService) Authenticate(ctx context.Context, token string) (*entity.Identity, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	claims, err := s.signer.Verify(token)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	session, err := s.sessionRepo.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session.UserID != claims.UserID {
		return nil, ErrNotAuthenticated
	}

	return &entity.Identity{
		UserID:    session.UserID,
		Username:  session.Username,
		SessionID: session.ID,
	}, nil
}

func (s *AccountService) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *AccountService) startSession(ctx context.Context, user *entity.User) (string, error) {
	now := time.Now().UTC()
	session := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.signer.TTL()),
	}

	if err := s.sessionRepo.Save(ctx, session, s.signer.TTL()); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}

	token, err := s.signer.Sign(session.ID, user.ID)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *AccountService) publishRegistered(ctx context.Context, user *entity.User) {
	event := entity.AccountEvent{
		EventID:   uuid.NewString(),
		EventType: entity.EventUserRegistered,
		UserID:    user.ID,
		Username:  user.Username,
		Timestamp: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to marshal account event")
		return
	}

	if err := s.publisher.PublishMessage(ctx, "user-"+strconv.FormatInt(user.ID, 10), data); err != nil {
		s.log.Warn().Err(err).Int64("user_id", user.ID).Msg("Failed to publish account event")
	}
}
