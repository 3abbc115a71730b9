package gql

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

var (
	ErrEmptyEndpoint   = errors.New("graphql endpoint is empty")
	ErrInvalidEndpoint = errors.New("invalid endpoint - must start with http:// or https://")
	ErrNilRequest      = errors.New("request is nil")
	ErrEncodeRequest   = errors.New("can't encode request body")
)

// APIError reports a non-2xx HTTP response. It is a transport failure, as
// opposed to GraphQL errors carried inside a 2xx Response.
type APIError struct {
	Op         string
	Endpoint   string
	Status     string
	StatusCode int
}

func NewAPIError(op, endpoint string, res *http.Response) *APIError {
	return &APIError{
		Op:         op,
		Endpoint:   endpoint,
		Status:     res.Status,
		StatusCode: res.StatusCode,
	}
}

// StatusText is the reason phrase without the numeric code.
func (e *APIError) StatusText() string {
	text := strings.TrimSpace(strings.TrimPrefix(e.Status, strconv.Itoa(e.StatusCode)))
	if text == "" {
		text = http.StatusText(e.StatusCode)
	}
	return text
}

func (e *APIError) Error() string {
	op := e.Op
	if op == "" {
		op = "failed to fetch from"
	}
	return fmt.Sprintf("%s %s: %s", op, e.Endpoint, e.StatusText())
}

// IsAPIError reports whether err wraps an *APIError with the given status code.
// A zero code matches any status.
func IsAPIError(err error, code int) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return code == 0 || apiErr.StatusCode == code
}
