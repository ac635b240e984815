package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lotusaroma/storefront-service/internal/app/storefront/entity"
	"lotusaroma/storefront-service/internal/app/storefront/service"
)

// CookieConfig - параметры cookie сессии
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	accounts service.AccountServiceInterface
	cookie   CookieConfig
}

func NewAuthHandler(accounts service.AccountServiceInterface, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{accounts: accounts, cookie: cookie}
}

// Register создает аккаунт и сразу выполняет вход
func (h *AuthHandler) Register(c *gin.Context) {
	var req entity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFieldErrors(c, "Invalid registration data", malformedBody)
		return
	}

	user, token, err := h.accounts.Register(c.Request.Context(), &req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrUserExists):
			respondError(c, http.StatusBadRequest, "Username already exists")
		case errors.As(err, &verr):
			respondFieldErrors(c, "Invalid registration data", verr.Fields)
		default:
			respondInternal(c, err, "Failed to register user")
		}
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, entity.NewUserResponse(user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req entity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFieldErrors(c, "Invalid login data", malformedBody)
		return
	}

	user, token, err := h.accounts.Login(c.Request.Context(), &req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, http.StatusUnauthorized, "Invalid username or password")
		case errors.As(err, &verr):
			respondFieldErrors(c, "Invalid login data", verr.Fields)
		default:
			respondInternal(c, err, "Failed to login")
		}
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, entity.NewUserResponse(user))
}

// Logout всегда 200, даже без активной сессии
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.cookie.Name)

	if err := h.accounts.Logout(c.Request.Context(), token); err != nil {
		respondInternal(c, err, "Failed to logout")
		return
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, entity.MessageResponse{Message: "Successfully logged out"})
}

// User - GET /api/auth/user
func (h *AuthHandler) User(c *gin.Context) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.accounts.GetUser(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusUnauthorized, "Not authenticated")
			return
		}
		respondInternal(c, err, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, entity.NewUserResponse(user))
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.Secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
}
