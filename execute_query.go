package gql

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	libpack_logger "github.com/lukaszraczylo/go-storefront-graphql/logging"
)

func (b *BaseClient) resolveEndpoint(ctx context.Context, override string) (string, error) {
	endpoint := override
	if endpoint == "" {
		var err error
		endpoint, err = b.endpoint.ResolveEndpoint(ctx)
		if err != nil {
			return "", fmt.Errorf("can't resolve graphql endpoint: %w", err)
		}
	}
	switch {
	case endpoint == "":
		return "", ErrEmptyEndpoint
	case !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://"):
		return "", fmt.Errorf("%w: %q", ErrInvalidEndpoint, endpoint)
	}
	return endpoint, nil
}

// Do sends req and returns the buffered 2xx response. Non-2xx statuses come
// back as *APIError. The configured RequestLogger, if any, sees a copy of the
// response once the body has been read in full.
func (b *BaseClient) Do(ctx context.Context, req *Request) (*Result, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	startTime := time.Now()

	endpoint, err := b.resolveEndpoint(ctx, req.EndpointOverride)
	if err != nil {
		return nil, err
	}

	query, err := NormalizeQuery(req.Document)
	if err != nil {
		return nil, err
	}
	opInfo := GetOperationInfo(query)

	body, err := b.compileQuery(query, req.Variables)
	if err != nil {
		return nil, err
	}

	opts := b.defaultFetchOptions.Merge(req.FetchOptions)
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		b.Logger.Error(&libpack_logger.LogMessage{
			Message: "Can't create HTTP request",
			Pairs:   map[string]interface{}{"error": err.Error()},
		})
		return nil, fmt.Errorf("can't create request for %s: %w", endpoint, err)
	}
	for key, value := range opts.Headers {
		httpRequest.Header.Set(key, value)
	}
	for _, cookie := range opts.Cookies {
		httpRequest.AddCookie(cookie)
	}

	b.Logger.Debug(&libpack_logger.LogMessage{
		Message: "Executing GraphQL request",
		Pairs: map[string]interface{}{
			"endpoint":       sanitizeForLogging(endpoint),
			"operation_type": string(opInfo.Type),
			"operation_name": opInfo.Name,
			"headers":        sanitizeHeaders(opts.Headers),
		},
	})

	httpResponse, err := b.client.Do(httpRequest)
	if err != nil {
		b.Logger.Debug(&libpack_logger.LogMessage{
			Message: "Error while executing http request",
			Pairs:   map[string]interface{}{"error": err.Error(), "endpoint": sanitizeForLogging(endpoint)},
		})
		return nil, fmt.Errorf("failed to fetch from %s: %w", endpoint, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, httpResponse.Body)
		httpResponse.Body.Close()
	}()

	if httpResponse.StatusCode < 200 || httpResponse.StatusCode > 299 {
		apiErr := NewAPIError("failed to fetch from", endpoint, httpResponse)
		b.Logger.Debug(&libpack_logger.LogMessage{
			Message: "HTTP error - unacceptable status code",
			Pairs:   map[string]interface{}{"status": httpResponse.Status, "endpoint": sanitizeForLogging(endpoint)},
		})
		return nil, apiErr
	}

	responseBody, err := readBody(httpResponse)
	if err != nil {
		return nil, fmt.Errorf("error while reading response from %s: %w", endpoint, err)
	}

	result := &Result{
		Endpoint:   endpoint,
		StatusCode: httpResponse.StatusCode,
		Header:     httpResponse.Header,
		Body:       responseBody,
	}

	if b.requestLogger != nil {
		b.requestLogger(RequestLog{
			Type:       opInfo.Type,
			Name:       opInfo.Name,
			Endpoint:   endpoint,
			Duration:   time.Since(startTime),
			StatusCode: httpResponse.StatusCode,
			Header:     httpResponse.Header.Clone(),
			Body:       bytes.Clone(responseBody),
		})
	}

	return result, nil
}

// readBody drains the response through a pooled buffer and returns an owned copy.
func readBody(res *http.Response) ([]byte, error) {
	var reader io.Reader = res.Body
	if !res.Uncompressed && strings.EqualFold(res.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(res.Body)
		if err != nil {
			return nil, fmt.Errorf("error while creating gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	buf := getBuffer(res.ContentLength)
	defer putBuffer(buf)
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}
