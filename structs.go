package gql

import (
	"context"
	"net/http"
	"time"

	logging "github.com/lukaszraczylo/go-storefront-graphql/logging"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// EndpointResolver yields the GraphQL endpoint for a single call.
type EndpointResolver interface {
	ResolveEndpoint(ctx context.Context) (string, error)
}

// StaticEndpoint is an EndpointResolver that always returns itself.
type StaticEndpoint string

func (s StaticEndpoint) ResolveEndpoint(context.Context) (string, error) {
	return string(s), nil
}

// EndpointFunc adapts a function to EndpointResolver.
type EndpointFunc func(ctx context.Context) (string, error)

func (f EndpointFunc) ResolveEndpoint(ctx context.Context) (string, error) {
	return f(ctx)
}

// FetchOptions are the per-request settings layered over the client defaults.
// Headers merge key by key; for the other fields a non-zero per-call value wins.
type FetchOptions struct {
	Headers map[string]string
	Cookies []*http.Cookie
	Timeout time.Duration
}

// RequestLog describes one completed request. Header and Body are copies, so a
// RequestLogger may keep or mutate them freely.
type RequestLog struct {
	Header     http.Header
	Type       ast.Operation
	Name       string
	Endpoint   string
	Body       []byte
	Duration   time.Duration
	StatusCode int
}

type RequestLogger func(RequestLog)

type Config struct {
	Endpoint            EndpointResolver
	RequestLogger       RequestLogger
	HTTPClient          *http.Client
	Logger              *logging.Logger
	DefaultFetchOptions FetchOptions
	MinifyQueries       bool
}

type BaseClient struct {
	endpoint            EndpointResolver
	requestLogger       RequestLogger
	client              *http.Client
	Logger              *logging.Logger
	defaultFetchOptions FetchOptions
	minify_queries      bool
}

// Request is a single untyped GraphQL call. Document is anything NormalizeQuery accepts.
type Request struct {
	Document         any
	Variables        any
	EndpointOverride string
	FetchOptions     FetchOptions
}

// Result is the raw outcome of a successful (2xx) round trip.
type Result struct {
	Header     http.Header
	Endpoint   string
	Body       []byte
	StatusCode int
}

// Response is the GraphQL envelope. Errors may accompany partial Data; neither
// is turned into a Go error.
type Response[T any] struct {
	Data       *T             `json:"data,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
	Errors     gqlerror.List  `json:"errors,omitempty"`
}

func (r *Response[T]) HasErrors() bool {
	return r != nil && len(r.Errors) > 0
}

type requestBody struct {
	Query     string `json:"query"`
	Variables any    `json:"variables,omitempty"`
}

// Doer executes untyped requests. *BaseClient implements it.
type Doer interface {
	Do(ctx context.Context, req *Request) (*Result, error)
}
