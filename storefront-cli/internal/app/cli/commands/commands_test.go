package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"lotusaroma/pkg/cart"
	"lotusaroma/storefront-cli/internal/app/cli/client"
)

var jasmine = client.Product{
	ID:        1,
	Name:      "Moonlit Jasmine",
	Price:     250000,
	ImageURLs: []string{"/img/jasmine-1.jpg", "/img/jasmine-2.jpg"},
	Sizes:     []string{"50ml", "100ml"},
	Category:  "Floral",
	InStock:   true,
}

type CommandsTestSuite struct {
	suite.Suite
	srv       *httptest.Server
	store     *cart.MemoryStorage
	listCalls int32

	mu         sync.Mutex
	lastSearch string
}

func TestCommandsSuite(t *testing.T) {
	suite.Run(t, new(CommandsTestSuite))
}

func (s *CommandsTestSuite) SetupTest() {
	atomic.StoreInt32(&s.listCalls, 0)
	s.store = cart.NewMemoryStorage()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.listCalls, 1)
		s.mu.Lock()
		s.lastSearch = r.URL.Query().Get("search")
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, []client.Product{jasmine})
	})
	mux.HandleFunc("/api/products/1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, jasmine)
	})
	mux.HandleFunc("/api/products/404", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not Found", "message": "Product not found"})
	})
	mux.HandleFunc("/api/auth/user", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized", "message": "Not authenticated"})
	})
	s.srv = httptest.NewServer(mux)
}

func (s *CommandsTestSuite) TearDownTest() {
	s.srv.Close()
}

func (s *CommandsTestSuite) run(stdin string, args ...string) (string, error) {
	app := &App{Storage: s.store}
	root := NewRootCommand(app)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--api-url", s.srv.URL))

	err := root.Execute()
	return out.String(), err
}

func (s *CommandsTestSuite) cartItems() []cart.Item {
	return cart.New(s.store).Items()
}

func (s *CommandsTestSuite) TestSearch_ShortQueryShowsNothing() {
	out, err := s.run("", "products", "search", " j ")

	s.Require().NoError(err)
	s.Empty(out)
	s.Equal(int32(0), atomic.LoadInt32(&s.listCalls))
}

func (s *CommandsTestSuite) TestSearch_SendsTrimmedQuery() {
	out, err := s.run("", "products", "search", "  jasmine  ")

	s.Require().NoError(err)
	s.mu.Lock()
	s.Equal("jasmine", s.lastSearch)
	s.mu.Unlock()
	s.Contains(out, "Moonlit Jasmine")
	s.Contains(out, "₹2500.00")
}

func (s *CommandsTestSuite) TestShow_NotFound() {
	_, err := s.run("", "products", "show", "404")

	s.True(errors.Is(err, client.ErrNotFound))
}

func (s *CommandsTestSuite) TestShow_InvalidID() {
	_, err := s.run("", "products", "show", "abc")

	s.EqualError(err, `invalid product ID "abc"`)
}

func (s *CommandsTestSuite) TestCartAdd_SnapshotsProductAndDefaultsSize() {
	_, err := s.run("", "cart", "add", "1")
	s.Require().NoError(err)
	_, err = s.run("", "cart", "add", "1", "-q", "2")
	s.Require().NoError(err)

	items := s.cartItems()
	s.Require().Len(items, 1)
	s.Equal(cart.Item{
		ID:       1,
		Name:     "Moonlit Jasmine",
		Price:    250000,
		Image:    "/img/jasmine-1.jpg",
		Quantity: 3,
		Size:     "50ml",
	}, items[0])
}

func (s *CommandsTestSuite) TestCartAdd_UnknownSize() {
	_, err := s.run("", "cart", "add", "1", "--size", "10ml")

	s.Error(err)
	s.Empty(s.cartItems())
}

func (s *CommandsTestSuite) TestCartSet_ZeroRemoves() {
	_, err := s.run("", "cart", "add", "1", "--size", "100ml")
	s.Require().NoError(err)

	_, err = s.run("", "cart", "set", "1", "0", "--size", "100ml")

	s.Require().NoError(err)
	s.Empty(s.cartItems())
}

func (s *CommandsTestSuite) TestCartShow_Totals() {
	_, err := s.run("", "cart", "add", "1")
	s.Require().NoError(err)

	out, err := s.run("", "cart", "show")

	s.Require().NoError(err)
	s.Contains(out, "Items: 1")
	s.Contains(out, "Subtotal: ₹2500.00")
	s.Contains(out, "Shipping: ₹100.00")
	s.Contains(out, "Tax:      ₹450.00")
	s.Contains(out, "Total:    ₹3050.00")
}

func (s *CommandsTestSuite) TestCheckout_EmptyCart() {
	out, err := s.run("", "checkout")

	s.Require().NoError(err)
	s.Contains(out, "Your cart is empty")
}

func (s *CommandsTestSuite) TestCheckout_HappyPathClearsCart() {
	_, err := s.run("", "cart", "add", "1")
	s.Require().NoError(err)

	input := detailsInput("asha@example.in") + paymentInput()
	out, err := s.run(input, "checkout")

	s.Require().NoError(err)
	s.Contains(out, "order confirmed")
	s.Contains(out, "1 x Moonlit Jasmine (50ml)")
	s.Contains(out, "Total:    ₹3050.00")
	s.Empty(s.cartItems())
}

func (s *CommandsTestSuite) TestCheckout_InvalidDetailsKeepsInput() {
	_, err := s.run("", "cart", "add", "1")
	s.Require().NoError(err)

	// вторая попытка: пустые строки сохраняют введённое, правится только email
	retry := "\n\n" + "asha@example.in\n" + strings.Repeat("\n", 6)
	input := detailsInput("not-an-email") + retry + paymentInput()
	out, err := s.run(input, "checkout")

	s.Require().NoError(err)
	s.Contains(out, "email: must be a valid email")
	s.Contains(out, "First name [Asha]")
	s.Contains(out, "order confirmed")
}

func (s *CommandsTestSuite) TestCheckout_BackFromPayment() {
	_, err := s.run("", "cart", "add", "1")
	s.Require().NoError(err)

	input := detailsInput("asha@example.in") + "back\n" + strings.Repeat("\n", 9) + paymentInput()
	out, err := s.run(input, "checkout")

	s.Require().NoError(err)
	s.Equal(2, strings.Count(out, "Step 1 of 3"))
	s.Contains(out, "order confirmed")
}

func (s *CommandsTestSuite) TestCheckout_InputClosedKeepsCart() {
	_, err := s.run("", "cart", "add", "1")
	s.Require().NoError(err)

	_, err = s.run(detailsInput("asha@example.in"), "checkout")

	s.ErrorIs(err, errInputClosed)
	s.Len(s.cartItems(), 1)
}

func (s *CommandsTestSuite) TestWhoami_NotLoggedIn() {
	out, err := s.run("", "auth", "whoami")

	s.Require().NoError(err)
	s.Contains(out, "Not logged in")
}

func detailsInput(email string) string {
	return strings.Join([]string{
		"Asha", "Verma", email, "9876543210", "12 MG Road", "Bengaluru", "Karnataka", "560001", "India",
	}, "\n") + "\n"
}

func paymentInput() string {
	return "4111111111111111\n12/29\n123\nAsha Verma\n"
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "₹0.00", formatPrice(0))
	assert.Equal(t, "₹12.80", formatPrice(1280))
	assert.Equal(t, "-₹1.05", formatPrice(-105))
}

func TestParseID(t *testing.T) {
	id, err := parseID("7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = parseID("0")
	assert.Error(t, err)
}

// Сессия с нестандартным именем cookie переживает перезапуск CLI вместе с корзиной
func TestRootCommand_SessionSurvivesRestartWithCustomCookie(t *testing.T) {
	// Arrange
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "shop_sid", Value: "token-9", Path: "/"})
		writeJSON(w, http.StatusOK, client.User{ID: 9, Username: "meera"})
	})
	mux.HandleFunc("/api/auth/user", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("shop_sid")
		if err != nil || cookie.Value != "token-9" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized", "message": "Not authenticated"})
			return
		}
		writeJSON(w, http.StatusOK, client.User{ID: 9, Username: "meera"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	execute := func(args ...string) string {
		app := &App{}
		root := NewRootCommand(app)
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetIn(strings.NewReader(""))
		root.SetArgs(append(args, "--api-url", srv.URL, "--cart-dir", dir, "--session-cookie", "shop_sid"))
		require.NoError(t, root.Execute())
		require.NoError(t, app.Close())
		return out.String()
	}

	// Act
	execute("auth", "login", "--username", "meera", "--password", "secret1")
	out := execute("auth", "whoami")

	// Assert
	assert.Contains(t, out, "meera (#9)")
}
