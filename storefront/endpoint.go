package storefront

import (
	"context"
	"fmt"
)

// CanonicalURL is the storefront origin for a channel. An empty channelID
// resolves the default channel through the GetChannelID hook.
func (c *Client) CanonicalURL(ctx context.Context, channelID string) (string, error) {
	resolved := channelID
	if resolved == "" {
		var err error
		resolved, err = c.getChannelID(ctx, c.defaultChannelID)
		if err != nil {
			return "", fmt.Errorf("can't resolve channel id: %w", err)
		}
	}
	return fmt.Sprintf("https://store-%s-%s.%s", c.storeHash, resolved, c.graphqlAPIDomain), nil
}

func (c *Client) GraphQLEndpoint(ctx context.Context, channelID string) (string, error) {
	canonical, err := c.CanonicalURL(ctx, channelID)
	if err != nil {
		return "", err
	}
	return canonical + "/graphql", nil
}
