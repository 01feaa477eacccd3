package pexels

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixfetch/pkg/errors"
	"pixfetch/pkg/logger"
)

const testAPIKey = "test-api-key-0123456789"

func newTestClient(t *testing.T, handler http.HandlerFunc, maxRetries int) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.URL, testAPIKey, 5*time.Second, maxRetries, logger.NewTestLogger())
	return client, server
}

func errorType(t *testing.T, err error) errors.ErrorType {
	t.Helper()
	apiErr, ok := err.(*errors.Error)
	require.True(t, ok, "expected *errors.Error, got %T: %v", err, err)
	return apiErr.Type
}

func TestNewClient(t *testing.T) {
	log := logger.NewTestLogger()
	client := NewClient("", testAPIKey, 10*time.Second, 2, log)

	assert.NotNil(t, client)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, BaseURL, client.BaseURL())
	assert.Equal(t, 2, client.maxRetries)

	t.Run("negative retries clamp to zero", func(t *testing.T) {
		client := NewClient("", testAPIKey, 10*time.Second, -1, log)
		assert.Equal(t, 0, client.maxRetries)
	})
}

func TestSearchPhotosRequiresAPIKey(t *testing.T) {
	client := NewClient("", "", 5*time.Second, 0, logger.NewTestLogger())

	_, err := client.SearchPhotos("mountains", 1, 15)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeAuth, errorType(t, err))
}

func TestSearchPhotos(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "mountains", r.URL.Query().Get("query"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "40", r.URL.Query().Get("per_page"))

		json.NewEncoder(w).Encode(SearchResponse{
			Page:         2,
			PerPage:      40,
			TotalResults: 120,
			NextPage:     "https://api.pexels.com/v1/search?page=3",
			Photos: []Photo{
				{ID: 101, Photographer: "Alice", Src: PhotoSrc{Original: "https://img/101.jpg"}},
				{ID: 102, Photographer: "Bob", Src: PhotoSrc{Original: "https://img/102.jpg"}},
			},
		})
	}, 0)

	resp, err := client.SearchPhotos("mountains", 2, 40)
	require.NoError(t, err)

	assert.Equal(t, testAPIKey, gotAuth)
	assert.Equal(t, 120, resp.TotalResults)
	assert.Len(t, resp.Photos, 2)
	assert.Equal(t, int64(101), resp.Photos[0].ID)
}

func TestStatusCodeErrorMapping(t *testing.T) {
	tests := []struct {
		status   int
		wantType errors.ErrorType
	}{
		{http.StatusUnauthorized, errors.ErrorTypeAuth},
		{http.StatusForbidden, errors.ErrorTypeAuth},
		{http.StatusNotFound, errors.ErrorTypeNotFound},
		{http.StatusTooManyRequests, errors.ErrorTypeRateLimit},
		{http.StatusInternalServerError, errors.ErrorTypeServerError},
		{http.StatusTeapot, errors.ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}, 0)

			_, err := client.SearchPhotos("cats", 1, 15)
			require.Error(t, err)
			assert.Equal(t, tt.wantType, errorType(t, err))
		})
	}
}

func TestRateLimitIsNotRetried(t *testing.T) {
	var requests int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}, 3)

	_, err := client.SearchPhotos("cats", 1, 15)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeRateLimit, errorType(t, err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestServerErrorIsRetried(t *testing.T) {
	var requests int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&requests, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(SearchResponse{TotalResults: 1})
	}, 1)

	resp, err := client.SearchPhotos("cats", 1, 15)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalResults)
	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
}

func TestServerErrorExhaustsRetries(t *testing.T) {
	var requests int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusBadGateway)
	}, 1)

	_, err := client.SearchPhotos("cats", 1, 15)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeServerError, errorType(t, err))
	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
}

func TestGetJSONParseError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}, 0)

	_, err := client.SearchPhotos("cats", 1, 15)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeParsing, errorType(t, err))
}

func TestNetworkErrorType(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", testAPIKey, 500*time.Millisecond, 0, logger.NewTestLogger())

	_, err := client.SearchPhotos("cats", 1, 15)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeNetwork, errorType(t, err))
}

func TestDownloadImage(t *testing.T) {
	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(payload)
	}, 0)

	data, contentType, err := client.DownloadImage(server.URL + "/photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, "image/jpeg", contentType)
}

func TestDownloadImageNotFound(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, 0)

	_, _, err := client.DownloadImage(server.URL + "/gone.jpg")
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeNotFound, errorType(t, err))
}
