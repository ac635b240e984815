package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"lotusaroma/pkg/cart"
	"lotusaroma/pkg/logger"
)

const (
	// SessionSlot - слот хранилища клиента, где лежит cookie сессии
	SessionSlot = "session"
	// DefaultSessionCookie - имя cookie сервера по умолчанию (SESSION_COOKIE)
	DefaultSessionCookie = "lotus_session"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("not authenticated")
)

// APIError - ответ сервера с кодом 4xx/5xx
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status code: %d", e.Status)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	}
	return nil
}

// Client - HTTP клиент витрины. Cookie сессии переживает перезапуск
// процесса: она сохраняется в том же хранилище, что и корзина.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      cart.Storage
	cookieName string
}

// New создаёт клиент. cookieName должен совпадать с SESSION_COOKIE сервера,
// пустое значение - DefaultSessionCookie.
func New(baseURL string, store cart.Storage, cookieName string) *Client {
	if cookieName == "" {
		cookieName = DefaultSessionCookie
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		store:      store,
		cookieName: cookieName,
	}
}

// ListProducts - весь каталог либо результат поиска, если search не пуст
func (c *Client) ListProducts(ctx context.Context, search string) ([]Product, error) {
	path := "/api/products"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}

	var products []Product
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) NewArrivals(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/api/products/new-arrivals", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Bestsellers(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/api/products/bestsellers", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, productPath(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) ListReviews(ctx context.Context, productID int64) ([]Review, error) {
	var reviews []Review
	if err := c.do(ctx, http.MethodGet, productPath(productID)+"/reviews", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) CreateReview(ctx context.Context, productID int64, req ReviewRequest) (*Review, error) {
	var review Review
	if err := c.do(ctx, http.MethodPost, productPath(productID)+"/reviews", req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// Register создаёт аккаунт; сервер сразу открывает сессию
func (c *Client) Register(ctx context.Context, creds Credentials) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", creds, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", creds, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout всегда забывает локальную cookie, даже если сервер недоступен
func (c *Client) Logout(ctx context.Context) (string, error) {
	var resp messageResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, &resp)
	c.saveSession("")
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/auth/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session := c.loadSession(); session != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: session})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	c.captureSession(resp)

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
		apiErr.Fields = body.Errors
	}
	return apiErr
}

// captureSession запоминает новую cookie или её удаление сервером
func (c *Client) captureSession(resp *http.Response) {
	for _, cookie := range resp.Cookies() {
		if cookie.Name != c.cookieName {
			continue
		}
		if cookie.MaxAge < 0 || cookie.Value == "" {
			c.saveSession("")
		} else {
			c.saveSession(cookie.Value)
		}
	}
}

func (c *Client) loadSession() string {
	if c.store == nil {
		return ""
	}
	data, err := c.store.Load(SessionSlot)
	if err != nil || len(data) == 0 {
		return ""
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return ""
	}
	return value
}

func (c *Client) saveSession(value string) {
	if c.store == nil {
		return
	}
	data, _ := json.Marshal(value)
	if err := c.store.Save(SessionSlot, data); err != nil {
		logger.Warn().Err(err).Msg("Failed to persist session cookie")
	}
}

func productPath(id int64) string {
	return "/api/products/" + strconv.FormatInt(id, 10)
}
