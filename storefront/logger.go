package storefront

import (
	"fmt"

	gql "github.com/lukaszraczylo/go-storefront-graphql"
	libpack_logger "github.com/lukaszraczylo/go-storefront-graphql/logging"
)

// logRequest reports the operation, its duration and the query complexity
// the API charged for it.
func (c *Client) logRequest(l gql.RequestLog) {
	name := l.Name
	if name == "" {
		name = "anonymous"
	}
	complexity := l.Header.Get(ComplexityHeader)
	if complexity == "" {
		complexity = "unknown"
	}

	c.Logger.Info(&libpack_logger.LogMessage{
		Message: fmt.Sprintf("[BigCommerce] %s %s - %dms - complexity %s", l.Type, name, l.Duration.Milliseconds(), complexity),
		Pairs: map[string]interface{}{
			"operation_type": string(l.Type),
			"operation_name": name,
			"duration_ms":    l.Duration.Milliseconds(),
			"complexity":     complexity,
			"status":         l.StatusCode,
		},
	})
}

// chainRequestLoggers calls each logger in order. It returns nil when there
// is nothing to call so the base client can skip logging entirely.
func chainRequestLoggers(loggers ...gql.RequestLogger) gql.RequestLogger {
	switch len(loggers) {
	case 0:
		return nil
	case 1:
		return loggers[0]
	}
	return func(l gql.RequestLog) {
		for i, logger := range loggers {
			entry := l
			if i < len(loggers)-1 {
				entry.Header = l.Header.Clone()
				entry.Body = append([]byte(nil), l.Body...)
			}
			logger(entry)
		}
	}
}
