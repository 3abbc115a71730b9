package storefront

import (
	"context"
	"net/http"

	gql "github.com/lukaszraczylo/go-storefront-graphql"
	libpack_logger "github.com/lukaszraczylo/go-storefront-graphql/logging"
	"golang.org/x/time/rate"
)

const (
	DefaultGraphQLAPIDomain = "mybigcommerce.com"
	DefaultAdminAPIHostname = "api.bigcommerce.com"

	CustomerAccessTokenHeader = "X-Bc-Customer-Access-Token"
	TrustedProxySecretHeader  = "X-BC-Trusted-Proxy-Secret"
	AuthTokenHeader           = "X-Auth-Token"
	ComplexityHeader          = "X-Bc-Graphql-Complexity"
)

// ChannelIDFunc maps the configured default channel to the one a request
// should use. It may block, e.g. on a domain lookup.
type ChannelIDFunc func(ctx context.Context, defaultChannelID string) (string, error)

// BeforeRequestFunc contributes fetch options for a single call. It receives
// the caller's options; a nil result adds nothing. Explicit caller values
// always win over what the hook returns.
type BeforeRequestFunc func(ctx context.Context, opts gql.FetchOptions) (*gql.FetchOptions, error)

type Config struct {
	HTTPClient                 *http.Client
	AdminLimiter               *rate.Limiter
	Logger                     *libpack_logger.Logger
	GetChannelID               ChannelIDFunc
	BeforeRequest              BeforeRequestFunc
	RequestLogger              gql.RequestLogger
	StoreHash                  string
	StorefrontToken            string
	XAuthToken                 string
	ChannelID                  string
	Platform                   string
	BackendUserAgentExtensions string
	GraphQLAPIDomain           string
	AdminAPIHostname           string
	TrustedProxySecret         string
	LogRequests                bool
}

// Client is a storefront GraphQL client bound to one store. The endpoint is
// derived per call from the store hash and the resolved channel.
type Client struct {
	base               *gql.BaseClient
	adminLimiter       *rate.Limiter
	getChannelID       ChannelIDFunc
	beforeRequest      BeforeRequestFunc
	Logger             *libpack_logger.Logger
	storeHash          string
	xAuthToken         string
	defaultChannelID   string
	graphqlAPIDomain   string
	adminAPIHostname   string
	trustedProxySecret string
	backendUserAgent   string
}

// Request is a single storefront call. ChannelID, when set, replaces the
// default channel for this call only.
type Request struct {
	Document            any
	Variables           any
	CustomerAccessToken string
	ChannelID           string
	FetchOptions        gql.FetchOptions
}
