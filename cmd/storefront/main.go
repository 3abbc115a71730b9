// Command storefront runs ad-hoc storefront GraphQL queries and the
// auxiliary REST calls against a store configured through BIGCOMMERCE_*
// variables (a local .env file is loaded first when present).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gookit/goutil/envutil"
	"github.com/joho/godotenv"
	libpack_logger "github.com/lukaszraczylo/go-storefront-graphql/logging"
	"github.com/lukaszraczylo/go-storefront-graphql/storefront"
)

func main() {
	logger := libpack_logger.New().SetMinLogLevel(libpack_logger.GetLogLevel(envutil.Getenv("LOG_LEVEL", "info")))
	if err := godotenv.Load(); err != nil {
		logger.Debug(&libpack_logger.LogMessage{
			Message: ".env file not loaded",
			Pairs:   map[string]interface{}{"error": err.Error()},
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := storefront.ConfigFromEnv()
	cfg.Logger = logger
	a := &app{cfg: cfg, out: os.Stdout, in: os.Stdin, logger: logger}

	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		logger.Error(&libpack_logger.LogMessage{
			Message: "Command failed",
			Pairs:   map[string]interface{}{"error": err.Error()},
		})
		os.Exit(1)
	}
}
