package storefront

import (
	"context"
	"errors"
	"fmt"

	"github.com/gookit/goutil/envutil"
	gql "github.com/lukaszraczylo/go-storefront-graphql"
	libpack_logger "github.com/lukaszraczylo/go-storefront-graphql/logging"
)

var ErrMissingChannelID = errors.New("client configuration must include a channel id")

// New validates cfg and builds a Client. It fails when no ChannelID is set.
func New(cfg Config) (*Client, error) {
	if cfg.ChannelID == "" {
		return nil, ErrMissingChannelID
	}

	c := &Client{
		adminLimiter:       cfg.AdminLimiter,
		getChannelID:       cfg.GetChannelID,
		beforeRequest:      cfg.BeforeRequest,
		storeHash:          cfg.StoreHash,
		xAuthToken:         cfg.XAuthToken,
		defaultChannelID:   cfg.ChannelID,
		graphqlAPIDomain:   cfg.GraphQLAPIDomain,
		adminAPIHostname:   cfg.AdminAPIHostname,
		trustedProxySecret: cfg.TrustedProxySecret,
		backendUserAgent:   BackendUserAgent(cfg.Platform, cfg.BackendUserAgentExtensions),
	}
	if c.graphqlAPIDomain == "" {
		c.graphqlAPIDomain = envutil.Getenv("BIGCOMMERCE_GRAPHQL_API_DOMAIN", DefaultGraphQLAPIDomain)
	}
	if c.adminAPIHostname == "" {
		c.adminAPIHostname = envutil.Getenv("BIGCOMMERCE_ADMIN_API_HOST", DefaultAdminAPIHostname)
	}
	if c.getChannelID == nil {
		c.getChannelID = func(_ context.Context, defaultChannelID string) (string, error) {
			return defaultChannelID, nil
		}
	}

	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + cfg.StorefrontToken,
		"User-Agent":    c.backendUserAgent,
	}
	if c.trustedProxySecret != "" {
		headers[TrustedProxySecretHeader] = c.trustedProxySecret
	}

	var loggers []gql.RequestLogger
	if cfg.LogRequests {
		loggers = append(loggers, c.logRequest)
	}
	if cfg.RequestLogger != nil {
		loggers = append(loggers, cfg.RequestLogger)
	}

	c.base = gql.NewClient(gql.Config{
		Endpoint: gql.EndpointFunc(func(ctx context.Context) (string, error) {
			return c.GraphQLEndpoint(ctx, "")
		}),
		RequestLogger:       chainRequestLoggers(loggers...),
		HTTPClient:          cfg.HTTPClient,
		Logger:              cfg.Logger,
		DefaultFetchOptions: gql.FetchOptions{Headers: headers},
	})
	c.Logger = c.base.Logger

	c.Logger.Debug(&libpack_logger.LogMessage{
		Message: "Created storefront client",
		Pairs: map[string]interface{}{
			"store_hash": c.storeHash,
			"channel_id": c.defaultChannelID,
			"api_domain": c.graphqlAPIDomain,
		},
	})
	return c, nil
}

// Do layers the per-call headers over the client defaults and runs req.
// Header precedence, lowest first: customer access token, BeforeRequest
// hook, explicit FetchOptions headers. Cookies and Timeout from the caller
// win over the hook's when non-zero.
func (c *Client) Do(ctx context.Context, req *Request) (*gql.Result, error) {
	if req == nil {
		return nil, gql.ErrNilRequest
	}

	var hooked gql.FetchOptions
	if c.beforeRequest != nil {
		extra, err := c.beforeRequest(ctx, req.FetchOptions)
		if err != nil {
			return nil, fmt.Errorf("before request hook failed: %w", err)
		}
		if extra != nil {
			hooked = *extra
		}
	}

	var customer map[string]string
	if req.CustomerAccessToken != "" {
		customer = map[string]string{CustomerAccessTokenHeader: req.CustomerAccessToken}
	}

	opts := gql.FetchOptions{
		Headers: gql.MergeHeaders(customer, hooked.Headers, req.FetchOptions.Headers),
		Cookies: hooked.Cookies,
		Timeout: hooked.Timeout,
	}.Merge(gql.FetchOptions{
		Cookies: req.FetchOptions.Cookies,
		Timeout: req.FetchOptions.Timeout,
	})

	var override string
	if req.ChannelID != "" {
		var err error
		override, err = c.GraphQLEndpoint(ctx, req.ChannelID)
		if err != nil {
			return nil, err
		}
	}

	return c.base.Do(ctx, &gql.Request{
		Document:         req.Document,
		Variables:        req.Variables,
		EndpointOverride: override,
		FetchOptions:     opts,
	})
}

type FetchOption func(*Request)

func WithCustomerAccessToken(token string) FetchOption {
	return func(r *Request) {
		r.CustomerAccessToken = token
	}
}

func WithChannelID(channelID string) FetchOption {
	return func(r *Request) {
		r.ChannelID = channelID
	}
}

func WithFetchOptions(opts gql.FetchOptions) FetchOption {
	return func(r *Request) {
		r.FetchOptions = r.FetchOptions.Merge(opts)
	}
}

// Fetch runs a typed document through c. GraphQL errors come back inside the
// Response; err only reports transport, hook and decoding failures.
func Fetch[TResult any, TVariables any](ctx context.Context, c *Client, doc gql.Document[TResult, TVariables], variables TVariables, opts ...FetchOption) (*gql.Response[TResult], error) {
	req := &Request{
		Document:  doc,
		Variables: variables,
	}
	for _, opt := range opts {
		opt(req)
	}

	res, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return gql.DecodeResponse[TResult](res)
}
