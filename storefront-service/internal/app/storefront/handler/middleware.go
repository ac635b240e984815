package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"lotusaroma/pkg/logger"
	"lotusaroma/storefront-service/internal/app/storefront/entity"
	"lotusaroma/storefront-service/internal/app/storefront/service"
)

const identityKey = "identity"

// SessionMiddleware один раз на запрос превращает cookie сессии в Identity.
// Запрос без сессии не прерывается: решение принимает handler.
type SessionMiddleware struct {
	accounts   service.AccountServiceInterface
	cookieName string
}

func NewSessionMiddleware(accounts service.AccountServiceInterface, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{accounts: accounts, cookieName: cookieName}
}

func (m *SessionMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		identity, err := m.accounts.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(identityKey, identity)
		case errors.Is(err, service.ErrNotAuthenticated):
		default:
			logger.Warn().
				Err(err).
				Str("request_id", c.GetString(logger.RequestIDKey)).
				Msg("Session lookup failed, treating request as anonymous")
		}

		c.Next()
	}
}

// CurrentIdentity - аутентифицированный пользователь запроса, если есть
func CurrentIdentity(c *gin.Context) (*entity.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*entity.Identity)
	return identity, ok && identity != nil
}
