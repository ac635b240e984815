package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lotusaroma/pkg/logger"
	"lotusaroma/storefront-cli/internal/app/cli/commands"
)

const serviceName = "storefront-cli"

func main() {
	// Пользователь видит вывод команд в stdout, в stderr только предупреждения
	logger.InitWithWriter(serviceName, getEnv("LOG_LEVEL", "warn"), os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &commands.App{}
	root := commands.NewRootCommand(app)
	err := root.ExecuteContext(ctx)
	if closeErr := app.Close(); closeErr != nil {
		logger.Warn().Err(closeErr).Msg("Failed to close cart storage")
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
