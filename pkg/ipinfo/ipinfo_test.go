package ipinfo

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPublicIPSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"ip":"203.0.113.7"}`)
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL), WithMaxRetries(0))

	ip, err := c.FetchPublicIP(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.7", ip)
}

func TestFetchPublicIPServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL), WithMaxRetries(0))

	_, err := c.FetchPublicIP(context.Background())
	var lerr *LookupError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, lerr.Message, "Layanan IP")
}

func TestFetchPublicIPInvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "<html>oops</html>"},
		{name: "missing ip field", body: `{"address":"1.2.3.4"}`},
		{name: "empty ip", body: `{"ip":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c := NewClient(WithEndpoint(srv.URL), WithMaxRetries(0))
			_, err := c.FetchPublicIP(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestFetchPublicIPRetriesTransientFailure(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, `{"ip":"198.51.100.2"}`)
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL), WithMaxRetries(2))

	ip, err := c.FetchPublicIP(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "198.51.100.2", ip)
	assert.Equal(t, 2, attempts)
}

func TestFetchPublicIPClientErrorIsNotRetried(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL), WithMaxRetries(3))

	_, err := c.FetchPublicIP(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}
