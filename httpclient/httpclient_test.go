package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tech-blog/trace"
)

func TestBaseClient_NewRequest(t *testing.T) {
	c := NewBaseClient("http://content.local/static")

	req, err := c.NewRequest(context.Background(), http.MethodGet, "/content/posts/react/a.mdx", url.Values{"v": {"1"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://content.local/static/content/posts/react/a.mdx?v=1", req.URL.String())

	_, err = c.NewRequest(context.Background(), http.MethodGet, "/a?b=c", nil, nil)
	assert.Error(t, err)
}

func TestLoggingRoundTripper_PropagatesTraceHeaders(t *testing.T) {
	var gotRequestID, gotSpanID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get(trace.HeaderRequestID)
		gotSpanID = r.Header.Get(trace.HeaderSpanID)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewBaseClient(srv.URL)
	ctx := trace.WithRequestAndSpan(context.Background(), "req-42", 0)

	req, err := c.NewRequest(ctx, http.MethodGet, "/", nil, nil)
	require.NoError(t, err)
	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "req-42", gotRequestID)
	assert.Equal(t, "1", gotSpanID)
	assert.Empty(t, req.Header.Get(trace.HeaderRequestID), "original request must not be mutated")
}

func TestLoggingRoundTripper_GeneratesRequestID(t *testing.T) {
	var gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get(trace.HeaderRequestID)
	}))
	defer srv.Close()

	resp, err := NewDefault().Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.NotEmpty(t, gotRequestID)
}
