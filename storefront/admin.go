package storefront

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	gql "github.com/lukaszraczylo/go-storefront-graphql"
	libpack_logger "github.com/lukaszraczylo/go-storefront-graphql/logging"
)

// FetchShippingZones lists the store's shipping zones from the admin REST
// API. The payload is returned as decoded JSON without further typing.
func (c *Client) FetchShippingZones(ctx context.Context) (any, error) {
	if c.adminLimiter != nil {
		if err := c.adminLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	endpoint := fmt.Sprintf("https://%s/stores/%s/v2/shipping/zones", c.adminAPIHostname, c.storeHash)
	body, err := c.get(ctx, endpoint, "unable to get shipping zones from", map[string]string{
		"Accept":        "application/json",
		"Content-Type":  "application/json",
		AuthTokenHeader: c.xAuthToken,
		"User-Agent":    c.backendUserAgent,
	})
	if err != nil {
		return nil, err
	}

	var zones any
	if err := json.Unmarshal(body, &zones); err != nil {
		return nil, fmt.Errorf("can't decode shipping zones: %w", err)
	}
	return zones, nil
}

// get issues a GET outside the GraphQL pipeline and returns the body of a
// 2xx response. op prefixes the *gql.APIError returned otherwise.
func (c *Client) get(ctx context.Context, endpoint, op string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("can't create request for %s: %w", endpoint, err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	res, err := c.base.HTTPClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, endpoint, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		c.Logger.Debug(&libpack_logger.LogMessage{
			Message: "HTTP error - unacceptable status code",
			Pairs:   map[string]interface{}{"status": res.Status, "endpoint": endpoint},
		})
		return nil, gql.NewAPIError(op, endpoint, res)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error while reading response from %s: %w", endpoint, err)
	}
	return body, nil
}
