package gql

import (
	"net/http"
	"reflect"
)

// MergeHeaders folds header layers left to right; on a key collision the later
// layer wins. Keys are canonicalized so "x-token" and "X-Token" collide.
func MergeHeaders(layers ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, layer := range layers {
		for key, value := range layer {
			merged[http.CanonicalHeaderKey(key)] = value
		}
	}
	return merged
}

// Merge returns o overlaid with over.
func (o FetchOptions) Merge(over FetchOptions) FetchOptions {
	merged := FetchOptions{
		Headers: MergeHeaders(o.Headers, over.Headers),
		Cookies: o.Cookies,
		Timeout: o.Timeout,
	}
	if len(over.Cookies) > 0 {
		merged.Cookies = over.Cookies
	}
	if over.Timeout > 0 {
		merged.Timeout = over.Timeout
	}
	return merged
}

// isNilValue reports whether v is nil or a typed nil (map, pointer, slice...).
// Such variables are left out of the request body instead of being sent as null.
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
