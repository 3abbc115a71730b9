package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	gql "github.com/lukaszraczylo/go-storefront-graphql"
	libpack_logger "github.com/lukaszraczylo/go-storefront-graphql/logging"
	"github.com/lukaszraczylo/go-storefront-graphql/storefront"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

type app struct {
	out    io.Writer
	in     io.Reader
	logger *libpack_logger.Logger
	cfg    storefront.Config

	retries    uint
	retryDelay time.Duration
	adminRPS   float64
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Query a storefront GraphQL API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.StoreHash, "store-hash", a.cfg.StoreHash, "store hash (BIGCOMMERCE_STORE_HASH)")
	flags.StringVar(&a.cfg.ChannelID, "default-channel", a.cfg.ChannelID, "default channel id (BIGCOMMERCE_CHANNEL_ID)")
	flags.BoolVar(&a.cfg.LogRequests, "log-requests", a.cfg.LogRequests, "log operation timing and complexity (CLIENT_LOGGER)")
	flags.UintVar(&a.retries, "retries", 1, "attempts per call for transport failures")
	flags.DurationVar(&a.retryDelay, "retry-delay", 300*time.Millisecond, "base delay between attempts")
	flags.Float64Var(&a.adminRPS, "admin-rps", 2, "admin API requests per second, 0 disables the limit")

	root.AddCommand(newQueryCmd(a), newShippingZonesCmd(a), newSitemapCmd(a))
	return root
}

func (a *app) client() (*storefront.Client, error) {
	cfg := a.cfg
	if a.adminRPS > 0 {
		cfg.AdminLimiter = rate.NewLimiter(rate.Limit(a.adminRPS), 1)
	}
	return storefront.New(cfg)
}

// withRetry runs fn until it succeeds, the attempts run out, or the error is
// one a retry cannot fix.
func (a *app) withRetry(ctx context.Context, fn func() error) error {
	attempts := a.retries
	if attempts == 0 {
		attempts = 1
	}
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(a.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			a.logger.Warning(&libpack_logger.LogMessage{
				Message: "Retrying request",
				Pairs:   map[string]interface{}{"error": err.Error(), "attempt": n + 1},
			})
		}),
	)
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *gql.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}
	for _, permanent := range permanentErrors {
		if errors.Is(err, permanent) {
			return false
		}
	}
	return true
}

// permanentErrors are configuration or input mistakes that no retry can fix.
var permanentErrors = []error{
	storefront.ErrMissingChannelID,
	gql.ErrInvalidDocument,
	gql.ErrEmptyEndpoint,
	gql.ErrInvalidEndpoint,
	gql.ErrNilRequest,
	gql.ErrEncodeRequest,
}
