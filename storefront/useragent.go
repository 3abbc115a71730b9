package storefront

import (
	"runtime"
	"strings"
)

const Version = "1.0.0"

// BackendUserAgent identifies server-side traffic to the API. Platform and
// extensions are appended only when set.
func BackendUserAgent(platform, extensions string) string {
	parts := []string{"go-storefront-graphql/" + Version}
	if platform != "" {
		parts = append(parts, "platform/"+platform)
	}
	parts = append(parts, "go/"+strings.TrimPrefix(runtime.Version(), "go"))
	if extensions = strings.TrimSpace(extensions); extensions != "" {
		parts = append(parts, extensions)
	}
	return strings.Join(parts, " ")
}
