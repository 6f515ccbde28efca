package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"math-helper/cmd/internal/trace"
)

func TestNewRequest_JoinsBasePathAndKeepsTrailingSlash(t *testing.T) {
	testCases := []struct {
		name    string
		baseURL string
		relPath string
		want    string
	}{
		{name: "root base", baseURL: "http://api.local", relPath: "/aihelper/chat/", want: "http://api.local/aihelper/chat/"},
		{name: "base with prefix", baseURL: "http://api.local/api/", relPath: "/articles/all/", want: "http://api.local/api/articles/all/"},
		{name: "no trailing slash", baseURL: "http://api.local", relPath: "/health", want: "http://api.local/health"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			c := NewBaseClient(testCase.baseURL)
			req, err := c.NewRequest(context.Background(), http.MethodGet, testCase.relPath, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, req.URL.String())
		})
	}
}

func TestNewRequest_RejectsQueryInPath(t *testing.T) {
	c := NewBaseClient("http://api.local")
	_, err := c.NewRequest(context.Background(), http.MethodGet, "/articles/all/?page=1", nil, nil)
	assert.Error(t, err)

	req, err := c.NewRequest(context.Background(), http.MethodGet, "/articles/all/", url.Values{"page": {"1"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "page=1", req.URL.RawQuery)
}

func TestLoggingRoundTripper_PropagatesTraceHeaders(t *testing.T) {
	var gotRequestID, gotSpanID, gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get(trace.HeaderRequestID)
		gotSpanID = r.Header.Get(trace.HeaderSpanID)
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewBaseClient(srv.URL)
	ctx := trace.WithRequestAndSpan(context.Background(), "req-42", 0)

	for i := 0; i < 2; i++ {
		req, err := c.NewRequest(ctx, http.MethodPost, "/aihelper/chat/with-ai/", nil, strings.NewReader(`{"message":"salom"}`))
		require.NoError(t, err)
		SetBearer(req, "tok")

		resp, err := c.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, "req-42", gotRequestID)
	assert.Equal(t, "2", gotSpanID)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, `{"message":"salom"}`, gotBody)
}
