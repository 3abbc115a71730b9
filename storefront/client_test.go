package storefront

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	gql "github.com/lukaszraczylo/go-storefront-graphql"
	"golang.org/x/time/rate"
)

type siteResult struct {
	Site struct {
		Settings struct {
			StoreName string `json:"storeName"`
		} `json:"settings"`
	} `json:"site"`
}

var storeNameQuery = gql.NewDocument[siteResult, gql.NoVariables](`query StoreName { site { settings { storeName } } }`)

func (suite *Tests) TestNew_requiresChannelID() {
	c, err := New(Config{StoreHash: "abc123"})
	assert.Nil(c)
	assert.ErrorIs(err, ErrMissingChannelID)
}

func (suite *Tests) TestNew_defaultsFromEnvironment() {
	suite.T().Run("built-in defaults", func(t *testing.T) {
		t.Setenv("BIGCOMMERCE_GRAPHQL_API_DOMAIN", "")
		t.Setenv("BIGCOMMERCE_ADMIN_API_HOST", "")
		c, err := New(Config{StoreHash: "abc123", ChannelID: "1"})
		assert.NoError(err)
		assert.Equal(DefaultGraphQLAPIDomain, c.graphqlAPIDomain)
		assert.Equal(DefaultAdminAPIHostname, c.adminAPIHostname)
	})

	suite.T().Run("environment overrides", func(t *testing.T) {
		t.Setenv("BIGCOMMERCE_GRAPHQL_API_DOMAIN", "store.example")
		t.Setenv("BIGCOMMERCE_ADMIN_API_HOST", "admin.example")
		c, err := New(Config{StoreHash: "abc123", ChannelID: "1"})
		assert.NoError(err)
		endpoint, err := c.GraphQLEndpoint(context.Background(), "")
		assert.NoError(err)
		assert.Equal("https://store-abc123-1.store.example/graphql", endpoint)
		assert.Equal("admin.example", c.adminAPIHostname)
	})
}

func (suite *Tests) TestFetch_defaultHeadersAndEndpoint() {
	c := suite.newClient(Config{Platform: "catalyst", TrustedProxySecret: "proxy-secret"})

	res, err := Fetch(context.Background(), c, storeNameQuery, nil)
	assert.NoError(err)
	assert.Equal("Plant Shop", res.Data.Site.Settings.StoreName)

	got := suite.transport.last()
	assert.Equal(http.MethodPost, got.Method)
	assert.Equal("https://store-abc123-1.mybigcommerce.com/graphql", got.URL)
	assert.Equal("application/json", got.Header.Get("Content-Type"))
	assert.Equal("Bearer sf-token", got.Header.Get("Authorization"))
	assert.Equal(BackendUserAgent("catalyst", ""), got.Header.Get("User-Agent"))
	assert.Equal("proxy-secret", got.Header.Get(TrustedProxySecretHeader))
	assert.Empty(got.Header.Get(CustomerAccessTokenHeader))
}

func (suite *Tests) TestFetch_headerLayering() {
	c := suite.newClient(Config{
		BeforeRequest: func(ctx context.Context, opts gql.FetchOptions) (*gql.FetchOptions, error) {
			assert.Equal("explicit", opts.Headers["X-Hook"])
			return &gql.FetchOptions{
				Headers: map[string]string{
					"X-Hook":                  "x",
					"X-From-Hook":             "hook",
					CustomerAccessTokenHeader: "hook-token",
				},
				Timeout: time.Second,
			}, nil
		},
	})

	_, err := Fetch(context.Background(), c, storeNameQuery, nil,
		WithCustomerAccessToken("customer-token"),
		WithFetchOptions(gql.FetchOptions{Headers: map[string]string{"X-Hook": "explicit"}}),
	)
	assert.NoError(err)

	got := suite.transport.last()
	assert.Equal("explicit", got.Header.Get("X-Hook"))
	assert.Equal("hook", got.Header.Get("X-From-Hook"))
	assert.Equal("hook-token", got.Header.Get(CustomerAccessTokenHeader))
	assert.Equal("Bearer sf-token", got.Header.Get("Authorization"))
}

func (suite *Tests) TestFetch_customerAccessToken() {
	c := suite.newClient(Config{})

	_, err := Fetch(context.Background(), c, storeNameQuery, nil, WithCustomerAccessToken("customer-token"))
	assert.NoError(err)
	assert.Equal("customer-token", suite.transport.last().Header.Get(CustomerAccessTokenHeader))
}

func (suite *Tests) TestFetch_beforeRequestError() {
	boom := errors.New("session store down")
	c := suite.newClient(Config{
		BeforeRequest: func(context.Context, gql.FetchOptions) (*gql.FetchOptions, error) {
			return nil, boom
		},
	})

	_, err := Fetch(context.Background(), c, storeNameQuery, nil)
	assert.ErrorIs(err, boom)
	assert.Empty(suite.transport.requests)
}

func (suite *Tests) TestFetch_channelResolution() {
	suite.T().Run("GetChannelID hook picks the default endpoint", func(t *testing.T) {
		c := suite.newClient(Config{
			GetChannelID: func(ctx context.Context, defaultChannelID string) (string, error) {
				assert.Equal("1", defaultChannelID)
				return "42", nil
			},
		})
		_, err := Fetch(context.Background(), c, storeNameQuery, nil)
		assert.NoError(err)
		assert.Equal("https://store-abc123-42.mybigcommerce.com/graphql", suite.transport.last().URL)
	})

	suite.T().Run("explicit channel bypasses the hook", func(t *testing.T) {
		called := false
		c := suite.newClient(Config{
			GetChannelID: func(ctx context.Context, defaultChannelID string) (string, error) {
				called = true
				return "42", nil
			},
		})
		_, err := Fetch(context.Background(), c, storeNameQuery, nil, WithChannelID("7"))
		assert.NoError(err)
		assert.Equal("https://store-abc123-7.mybigcommerce.com/graphql", suite.transport.last().URL)
		assert.False(called)
	})

	suite.T().Run("hook errors propagate", func(t *testing.T) {
		boom := errors.New("unknown domain")
		c := suite.newClient(Config{
			GetChannelID: func(context.Context, string) (string, error) { return "", boom },
		})
		_, err := Fetch(context.Background(), c, storeNameQuery, nil)
		assert.ErrorIs(err, boom)
	})
}

func (suite *Tests) TestFetch_errors() {
	suite.T().Run("graphql errors are returned, not raised", func(t *testing.T) {
		c := suite.newClient(Config{})
		doc := gql.NewDocument[siteResult, gql.NoVariables](`query Broken { broken }`)
		res, err := Fetch(context.Background(), c, doc, nil)
		assert.NoError(err)
		assert.Nil(res.Data)
		assert.Len(res.Errors, 1)
		assert.Equal("bad input", res.Errors[0].Message)
	})

	suite.T().Run("non-2xx is a transport error", func(t *testing.T) {
		suite.status.Store(http.StatusBadGateway)
		defer suite.status.Store(http.StatusOK)

		c := suite.newClient(Config{})
		_, err := Fetch(context.Background(), c, storeNameQuery, nil)
		assert.True(gql.IsAPIError(err, http.StatusBadGateway))
		assert.Contains(err.Error(), "https://store-abc123-1.mybigcommerce.com/graphql")
		assert.Contains(err.Error(), "Bad Gateway")
	})
}

func (suite *Tests) TestFetch_logRequests() {
	var observed []gql.RequestLog
	c := suite.newClient(Config{
		LogRequests:   true,
		RequestLogger: func(l gql.RequestLog) { observed = append(observed, l) },
	})

	_, err := Fetch(context.Background(), c, storeNameQuery, nil)
	assert.NoError(err)

	line := suite.logs.String()
	assert.Contains(line, "[BigCommerce] query StoreName - ")
	assert.Contains(line, "complexity 12")
	assert.Len(observed, 1)
	assert.Equal("12", observed[0].Header.Get(ComplexityHeader))
}

func (suite *Tests) TestFetch_noLogsByDefault() {
	c := suite.newClient(Config{})
	_, err := Fetch(context.Background(), c, storeNameQuery, nil)
	assert.NoError(err)
	assert.False(strings.Contains(suite.logs.String(), "[BigCommerce]"))
}

func (suite *Tests) TestFetchShippingZones() {
	suite.T().Run("sends admin credentials", func(t *testing.T) {
		c := suite.newClient(Config{XAuthToken: "admin-token", AdminLimiter: rate.NewLimiter(rate.Inf, 1)})

		zones, err := c.FetchShippingZones(context.Background())
		assert.NoError(err)
		list, ok := zones.([]any)
		assert.True(ok)
		assert.Len(list, 1)

		got := suite.transport.last()
		assert.Equal(http.MethodGet, got.Method)
		assert.Equal("https://api.bigcommerce.com/stores/abc123/v2/shipping/zones", got.URL)
		assert.Equal("admin-token", got.Header.Get(AuthTokenHeader))
		assert.Equal("application/json", got.Header.Get("Accept"))
		assert.Equal("application/json", got.Header.Get("Content-Type"))
		assert.NotEmpty(got.Header.Get("User-Agent"))
		assert.Empty(got.Header.Get("Authorization"))
	})

	suite.T().Run("non-OK status", func(t *testing.T) {
		suite.status.Store(http.StatusUnauthorized)
		defer suite.status.Store(http.StatusOK)

		c := suite.newClient(Config{XAuthToken: "bad"})
		_, err := c.FetchShippingZones(context.Background())
		assert.True(gql.IsAPIError(err, http.StatusUnauthorized))
		assert.Contains(err.Error(), "unable to get shipping zones")
		assert.Contains(err.Error(), "Unauthorized")
	})

	suite.T().Run("limiter honours context", func(t *testing.T) {
		limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
		limiter.Allow()
		c := suite.newClient(Config{AdminLimiter: limiter})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		_, err := c.FetchShippingZones(ctx)
		assert.Error(err)
	})
}

func (suite *Tests) TestFetchSitemapIndex() {
	suite.T().Run("explicit channel", func(t *testing.T) {
		c := suite.newClient(Config{TrustedProxySecret: "proxy-secret"})

		xml, err := c.FetchSitemapIndex(context.Background(), "99")
		assert.NoError(err)
		assert.Contains(xml, "<sitemapindex>")

		got := suite.transport.last()
		assert.Equal(http.MethodGet, got.Method)
		assert.Equal("https://store-abc123-99.mybigcommerce.com/xmlsitemap.php", got.URL)
		assert.Equal("application/xml", got.Header.Get("Accept"))
		assert.Equal("proxy-secret", got.Header.Get(TrustedProxySecretHeader))
	})

	suite.T().Run("default channel without proxy secret", func(t *testing.T) {
		c := suite.newClient(Config{})

		_, err := c.FetchSitemapIndex(context.Background(), "")
		assert.NoError(err)

		got := suite.transport.last()
		assert.Equal("https://store-abc123-1.mybigcommerce.com/xmlsitemap.php", got.URL)
		assert.Empty(got.Header.Get(TrustedProxySecretHeader))
	})

	suite.T().Run("non-OK status", func(t *testing.T) {
		suite.status.Store(http.StatusNotFound)
		defer suite.status.Store(http.StatusOK)

		c := suite.newClient(Config{})
		_, err := c.FetchSitemapIndex(context.Background(), "99")
		assert.True(gql.IsAPIError(err, http.StatusNotFound))
		assert.Contains(err.Error(), "unable to get sitemap index")
		assert.Contains(err.Error(), "Not Found")
	})
}
