package gql

import (
	"net/http"
	"regexp"
	"strings"
)

// Sensitive data patterns to redact from logs
var (
	// Pattern for common sensitive field names in JSON/GraphQL
	sensitiveFieldPattern = regexp.MustCompile(`(?i)"?(password|passwd|pwd|token|apikey|api_key|api-key|secret|authorization|customerAccessToken|access_token|refresh_token|client_secret|session|cookie)"?\s*:\s*"[^"]*"`)

	// Pattern for basic auth in URLs
	basicAuthURLPattern = regexp.MustCompile(`(https?://)([^:/]+):([^@]+)@`)

	// Pattern for JWT tokens
	jwtPattern = regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)

	// Headers whose values never reach the logs
	sensitiveHeaders = map[string]struct{}{
		"Authorization":              {},
		"Cookie":                     {},
		"X-Auth-Token":               {},
		"X-Bc-Customer-Access-Token": {},
		"X-Bc-Trusted-Proxy-Secret":  {},
	}
)

const redactedText = "[REDACTED]"

// sanitizeForLogging removes sensitive data from strings before logging
func sanitizeForLogging(input string) string {
	if input == "" {
		return input
	}

	sanitized := sensitiveFieldPattern.ReplaceAllStringFunc(input, func(match string) string {
		parts := strings.SplitN(match, ":", 2)
		if len(parts) == 2 {
			return parts[0] + `: "` + redactedText + `"`
		}
		return redactedText
	})

	sanitized = basicAuthURLPattern.ReplaceAllString(sanitized, "${1}"+redactedText+":"+redactedText+"@")
	sanitized = jwtPattern.ReplaceAllString(sanitized, redactedText)

	return sanitized
}

// sanitizeHeaders returns a copy of headers with credential values replaced.
func sanitizeHeaders(headers map[string]string) map[string]string {
	out := make(map[string]string, len(headers))
	for key, value := range headers {
		if _, ok := sensitiveHeaders[http.CanonicalHeaderKey(key)]; ok {
			out[key] = redactedText
			continue
		}
		out[key] = sanitizeForLogging(value)
	}
	return out
}
