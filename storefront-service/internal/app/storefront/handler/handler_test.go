package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"

	"lotusaroma/storefront-service/internal/app/storefront/repository/mocks"
	"lotusaroma/storefront-service/internal/app/storefront/service"
	"lotusaroma/storefront-service/internal/app/storefront/util"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testCookie = "lotus_session"

// testEnv - полный роутер поверх реальных сервисов и мок-репозиториев
type testEnv struct {
	router    *gin.Engine
	products  *mocks.MockProductRepository
	reviews   *mocks.MockReviewRepository
	cache     *mocks.MockCatalogCache
	users     *mocks.MockUserRepository
	sessions  *mocks.MockSessionRepository
	publisher *mocks.MockMessagePublisher
	signer    *util.SessionSigner
}

func newTestEnv() *testEnv {
	env := &testEnv{
		products:  new(mocks.MockProductRepository),
		reviews:   new(mocks.MockReviewRepository),
		cache:     new(mocks.MockCatalogCache),
		users:     new(mocks.MockUserRepository),
		sessions:  new(mocks.MockSessionRepository),
		publisher: &mocks.MockMessagePublisher{},
		signer:    util.NewSessionSigner("test-secret", 24*time.Hour),
	}

	catalog := service.NewCatalogService(env.products, env.reviews, env.cache, env.publisher)
	accounts := service.NewAccountService(env.users, env.sessions, env.signer, env.publisher)

	env.router = SetupRoutes(
		RouterConfig{ServiceName: "storefront-service", CORSOrigins: []string{"http://localhost:5173"}},
		NewProductHandler(catalog),
		NewAuthHandler(accounts, CookieConfig{Name: testCookie, TTL: 24 * time.Hour}),
		NewSessionMiddleware(accounts, testCookie),
	)
	return env
}

func (e *testEnv) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reader = &bytes.Buffer{}
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	return nil
}
