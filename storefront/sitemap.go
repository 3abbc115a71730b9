package storefront

import "context"

// FetchSitemapIndex returns the raw XML sitemap index for channelID, or for
// the resolved default channel when channelID is empty.
func (c *Client) FetchSitemapIndex(ctx context.Context, channelID string) (string, error) {
	canonical, err := c.CanonicalURL(ctx, channelID)
	if err != nil {
		return "", err
	}

	headers := map[string]string{
		"Accept":       "application/xml",
		"Content-Type": "application/xml",
		"User-Agent":   c.backendUserAgent,
	}
	if c.trustedProxySecret != "" {
		headers[TrustedProxySecretHeader] = c.trustedProxySecret
	}

	body, err := c.get(ctx, canonical+"/xmlsitemap.php", "unable to get sitemap index from", headers)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
