package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyCache_Get(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(*IdempotencyCache)
		key           string
		expectedFound bool
	}{
		{
			name: "returns cached response when exists",
			setup: func(cache *IdempotencyCache) {
				cache.Set("abc", &cachedResponse{
					StatusCode: 200,
					Headers:    map[string]string{"Content-Type": "application/json"},
					Body:       []byte(`{"data": "test"}`),
				})
			},
			key:           "abc",
			expectedFound: true,
		},
		{
			name:          "returns false when key not found",
			setup:         func(cache *IdempotencyCache) {},
			key:           "missing",
			expectedFound: false,
		},
		{
			name: "returns false when expired",
			setup: func(cache *IdempotencyCache) {
				cache.mu.Lock()
				cache.items["old"] = &cachedResponse{
					StatusCode: 200,
					Body:       []byte(`{}`),
					Timestamp:  time.Now().Add(-2 * time.Minute),
				}
				cache.mu.Unlock()
			},
			key:           "old",
			expectedFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := NewIdempotencyCache(time.Minute)
			defer cache.Stop()
			tt.setup(cache)

			resp, found := cache.Get(tt.key)

			assert.Equal(t, tt.expectedFound, found)
			if tt.expectedFound {
				require.NotNil(t, resp)
				assert.Equal(t, 200, resp.StatusCode)
			}
		})
	}
}

func TestIdempotencyCache_Cleanup(t *testing.T) {
	cache := NewIdempotencyCache(time.Minute)
	defer cache.Stop()

	cache.mu.Lock()
	cache.items["expired"] = &cachedResponse{Timestamp: time.Now().Add(-2 * time.Hour)}
	cache.items["fresh"] = &cachedResponse{Timestamp: time.Now()}
	cache.mu.Unlock()

	cache.cleanup()

	assert.Equal(t, 1, cache.Len())
	_, found := cache.Get("fresh")
	assert.True(t, found)
}

func TestIdempotencyCache_StopTwice(t *testing.T) {
	cache := NewIdempotencyCache(time.Minute)
	cache.Stop()
	assert.NotPanics(t, cache.Stop)
}
