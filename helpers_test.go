package gql

import (
	"net/http"
	"testing"
	"time"
)

func (suite *Tests) Test_MergeHeaders() {
	tests := []struct {
		want   map[string]string
		name   string
		layers []map[string]string
	}{
		{
			name:   "later layer wins",
			layers: []map[string]string{{"A": "1"}, {"A": "2", "B": "3"}},
			want:   map[string]string{"A": "2", "B": "3"},
		},
		{
			name:   "keys collide case-insensitively",
			layers: []map[string]string{{"x-hook": "hook"}, {"X-Hook": "explicit"}},
			want:   map[string]string{"X-Hook": "explicit"},
		},
		{
			name:   "nil layers are skipped",
			layers: []map[string]string{nil, {"A": "1"}, nil},
			want:   map[string]string{"A": "1"},
		},
		{
			name: "no layers",
			want: map[string]string{},
		},
	}
	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			assert.Equal(tt.want, MergeHeaders(tt.layers...))
		})
	}
}

func (suite *Tests) Test_FetchOptionsMerge() {
	cookie := &http.Cookie{Name: "session", Value: "abc"}
	base := FetchOptions{
		Headers: map[string]string{"A": "1"},
		Cookies: []*http.Cookie{cookie},
		Timeout: time.Second,
	}

	suite.T().Run("zero values keep the defaults", func(t *testing.T) {
		got := base.Merge(FetchOptions{})
		assert.Equal(map[string]string{"A": "1"}, got.Headers)
		assert.Equal([]*http.Cookie{cookie}, got.Cookies)
		assert.Equal(time.Second, got.Timeout)
	})

	suite.T().Run("per-call values win", func(t *testing.T) {
		other := &http.Cookie{Name: "cart", Value: "1"}
		got := base.Merge(FetchOptions{
			Headers: map[string]string{"A": "2"},
			Cookies: []*http.Cookie{other},
			Timeout: 5 * time.Second,
		})
		assert.Equal(map[string]string{"A": "2"}, got.Headers)
		assert.Equal([]*http.Cookie{other}, got.Cookies)
		assert.Equal(5*time.Second, got.Timeout)
	})

	suite.T().Run("does not mutate the receiver", func(t *testing.T) {
		base.Merge(FetchOptions{Headers: map[string]string{"A": "changed"}})
		assert.Equal("1", base.Headers["A"])
	})
}

func (suite *Tests) Test_isNilValue() {
	var nilMap map[string]any
	var nilSlice []string
	var nilPtr *viewerVariables

	assert.True(isNilValue(nil))
	assert.True(isNilValue(nilMap))
	assert.True(isNilValue(nilSlice))
	assert.True(isNilValue(nilPtr))
	assert.True(isNilValue(NoVariables(nil)))
	assert.False(isNilValue(map[string]any{}))
	assert.False(isNilValue(viewerVariables{}))
	assert.False(isNilValue(0))
	assert.False(isNilValue(""))
}
