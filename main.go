package gql

import (
	"net/http"

	"github.com/gookit/goutil/envutil"
	logging "github.com/lukaszraczylo/go-storefront-graphql/logging"
)

// NewClient builds a client from cfg. A nil Logger gets a default one honoring
// LOG_LEVEL; a nil HTTPClient gets the tuned transport from createHttpClient.
func NewClient(cfg Config) *BaseClient {
	b := &BaseClient{
		endpoint:            cfg.Endpoint,
		requestLogger:       cfg.RequestLogger,
		Logger:              cfg.Logger,
		defaultFetchOptions: cfg.DefaultFetchOptions,
		minify_queries:      cfg.MinifyQueries,
	}
	if b.endpoint == nil {
		b.endpoint = StaticEndpoint("")
	}
	if b.Logger == nil {
		b.Logger = newDefaultLogger()
	}
	b.client = cfg.HTTPClient
	if b.client == nil {
		b.client = b.createHttpClient()
	}
	return b
}

// NewConnection builds a client from the environment:
// GRAPHQL_ENDPOINT, GRAPHQL_MINIFY_QUERIES and LOG_LEVEL.
func NewConnection() *BaseClient {
	logger := newDefaultLogger()
	b := NewClient(Config{
		Endpoint:      StaticEndpoint(envutil.Getenv("GRAPHQL_ENDPOINT")),
		MinifyQueries: envutil.GetBool("GRAPHQL_MINIFY_QUERIES", true),
		Logger:        logger,
	})
	b.Logger.Debug(&logging.LogMessage{
		Message: "Created new GraphQL client connection",
		Pairs: map[string]interface{}{
			"endpoint":       sanitizeForLogging(envutil.Getenv("GRAPHQL_ENDPOINT")),
			"minify_queries": b.minify_queries,
		},
	})
	return b
}

func newDefaultLogger() *logging.Logger {
	logLevelStr := envutil.Getenv("LOG_LEVEL", "info")
	return logging.New().SetMinLogLevel(logging.GetLogLevel(logLevelStr))
}

// SetEndpoint replaces the endpoint resolver with a fixed URL. Not safe to call
// concurrently with Do.
func (b *BaseClient) SetEndpoint(endpoint string) {
	b.endpoint = StaticEndpoint(endpoint)
}

// SetHTTPClient swaps the underlying HTTP client. Not safe to call
// concurrently with Do.
func (b *BaseClient) SetHTTPClient(client *http.Client) {
	b.client = client
}

// HTTPClient returns the client used for GraphQL calls, for callers issuing
// auxiliary requests against the same hosts.
func (b *BaseClient) HTTPClient() *http.Client {
	return b.client
}
