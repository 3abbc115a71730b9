package storefront

import "github.com/gookit/goutil/envutil"

// ConfigFromEnv fills a Config from the BIGCOMMERCE_* variables and
// CLIENT_LOGGER. New never reads these itself apart from the two API host
// defaults.
func ConfigFromEnv() Config {
	return Config{
		StoreHash:          envutil.Getenv("BIGCOMMERCE_STORE_HASH"),
		ChannelID:          envutil.Getenv("BIGCOMMERCE_CHANNEL_ID"),
		StorefrontToken:    envutil.Getenv("BIGCOMMERCE_STOREFRONT_TOKEN"),
		XAuthToken:         envutil.Getenv("BIGCOMMERCE_ACCESS_TOKEN"),
		TrustedProxySecret: envutil.Getenv("BIGCOMMERCE_TRUSTED_PROXY_SECRET"),
		GraphQLAPIDomain:   envutil.Getenv("BIGCOMMERCE_GRAPHQL_API_DOMAIN", DefaultGraphQLAPIDomain),
		AdminAPIHostname:   envutil.Getenv("BIGCOMMERCE_ADMIN_API_HOST", DefaultAdminAPIHostname),
		LogRequests:        envutil.GetBool("CLIENT_LOGGER", false),
	}
}
