package gql

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	libpack_logger "github.com/lukaszraczylo/go-storefront-graphql/logging"
)

// compileQuery renders the POST body. Variables are included only when they
// are non-nil; a nil map or pointer is omitted rather than sent as null.
func (b *BaseClient) compileQuery(query string, variables any) ([]byte, error) {
	if b.minify_queries {
		query = MinifyQuery(query)
	}

	body := requestBody{Query: query}
	if !isNilValue(variables) {
		body.Variables = variables
	}

	jsonQuery, err := json.Marshal(&body)
	if err != nil {
		b.Logger.Error(&libpack_logger.LogMessage{
			Message: "Can't convert query to JSON",
			Pairs:   map[string]interface{}{"error": err.Error()},
		})
		return nil, fmt.Errorf("%w: %w", ErrEncodeRequest, err)
	}
	return jsonQuery, nil
}

type FetchOption func(*Request)

func WithFetchOptions(opts FetchOptions) FetchOption {
	return func(r *Request) {
		r.FetchOptions = r.FetchOptions.Merge(opts)
	}
}

func WithEndpointOverride(endpoint string) FetchOption {
	return func(r *Request) {
		r.EndpointOverride = endpoint
	}
}

// Fetch runs doc against c and decodes the envelope into a Response[TResult].
// GraphQL errors are returned inside the Response; err is reserved for
// transport and decoding failures.
func Fetch[TResult any, TVariables any](ctx context.Context, c Doer, doc Document[TResult, TVariables], variables TVariables, opts ...FetchOption) (*Response[TResult], error) {
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
	return DecodeResponse[TResult](res)
}

// DecodeResponse unmarshals a raw result into the GraphQL envelope. The shape
// is trusted; no validation happens here.
func DecodeResponse[TResult any](res *Result) (*Response[TResult], error) {
	var out Response[TResult]
	if err := json.Unmarshal(res.Body, &out); err != nil {
		return nil, fmt.Errorf("can't decode response from %s: %w", res.Endpoint, err)
	}
	return &out, nil
}
