package commands

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lotusaroma/pkg/cart"
	"lotusaroma/storefront-cli/internal/app/cli/client"
)

const (
	defaultAPIURL = "http://localhost:8080"

	envAPIURL        = "LOTUS_API_URL"
	envCartDir       = "LOTUS_CART_DIR"
	envSessionCookie = "LOTUS_SESSION_COOKIE"

	// storageFile - файл SQLite внутри cart-dir с корзиной и cookie сессии
	storageFile = "lotus.db"
)

// App - зависимости команд. Пустые поля заполняются в init
// из флагов и окружения, тесты подставляют свои заранее.
type App struct {
	APIURL        string
	CartDir       string
	SessionCookie string
	Storage       cart.Storage
	Client        *client.Client
	Cart          *cart.Engine
}

func (a *App) init() error {
	if a.Storage == nil {
		store, err := cart.NewSQLiteStorage(filepath.Join(a.CartDir, storageFile))
		if err != nil {
			return err
		}
		a.Storage = store
	}
	if a.Client == nil {
		a.Client = client.New(a.APIURL, a.Storage, a.SessionCookie)
	}
	if a.Cart == nil {
		a.Cart = cart.New(a.Storage)
	}
	return nil
}

// Close освобождает хранилище, если оно держит ресурсы
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// NewRootCommand собирает дерево команд lotus
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "lotus",
		Short:         "LotusAroma storefront in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init()
		},
	}

	root.PersistentFlags().StringVar(&app.APIURL, "api-url", getEnv(envAPIURL, defaultAPIURL), "storefront API base URL")
	root.PersistentFlags().StringVar(&app.CartDir, "cart-dir", getEnv(envCartDir, defaultCartDir()), "directory for the cart and session")
	root.PersistentFlags().StringVar(&app.SessionCookie, "session-cookie", getEnv(envSessionCookie, client.DefaultSessionCookie), "session cookie name, must match the server SESSION_COOKIE")

	root.AddCommand(
		newProductsCommand(app),
		newReviewsCommand(app),
		newCartCommand(app),
		newCheckoutCommand(app),
		newAuthCommand(app),
	)

	return root
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func defaultCartDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".lotusaroma"
	}
	return filepath.Join(dir, "lotusaroma")
}
