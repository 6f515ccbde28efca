package aihelperclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, nil)
}

func TestListHistory_PreservesServerOrder(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/aihelper/chat/", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[
			{"id": 3, "type": "assistant", "message": "integral", "messaged_at": "2025-03-01T10:02:00+05:00"},
			{"id": 1, "type": "user", "message": "2+2=?", "messaged_at": "2025-03-01T10:00:00.123456Z"},
			{"id": 2, "type": "user", "message": "naive", "messaged_at": "2025-03-01T10:01:00"}
		]`)
	})

	msgs, err := c.ListHistory(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Len(t, msgs, 3)

	assert.Equal(t, []int64{3, 1, 2}, []int64{msgs[0].ID, msgs[1].ID, msgs[2].ID})
	assert.Equal(t, MessageTypeAssistant, msgs[0].Type)
	assert.Equal(t, "2+2=?", msgs[1].Message)
	assert.Equal(t, 123456000, msgs[1].MessagedAt.Nanosecond())
	assert.Equal(t, time.Local, msgs[2].MessagedAt.Location())
}

func TestListHistory_EmptyAndNullBodies(t *testing.T) {
	for _, body := range []string{"[]", "null"} {
		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, body)
		})
		msgs, err := c.ListHistory(context.Background(), "tok")
		require.NoError(t, err)
		assert.NotNil(t, msgs)
		assert.Empty(t, msgs)
	}
}

func TestListHistory_Malformed(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "object instead of array", body: `{"detail": "oops"}`},
		{name: "not json", body: `<html>502</html>`},
		{name: "unknown type", body: `[{"id": 1, "type": "system", "message": "x", "messaged_at": "2025-03-01T10:00:00Z"}]`},
		{name: "bad timestamp", body: `[{"id": 1, "type": "user", "message": "x", "messaged_at": "yesterday"}]`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, testCase.body)
			})
			_, err := c.ListHistory(context.Background(), "tok")
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestListHistory_HTTPErrors(t *testing.T) {
	testCases := []struct {
		name             string
		status           int
		wantUnauthorized bool
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantUnauthorized: true},
		{name: "server error", status: http.StatusInternalServerError},
		{name: "not found", status: http.StatusNotFound},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(testCase.status)
				_, _ = io.WriteString(w, `{"detail":"no"}`)
			})
			_, err := c.ListHistory(context.Background(), "tok")

			var httpErr *HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, testCase.status, httpErr.StatusCode)
			assert.Equal(t, testCase.wantUnauthorized, errors.Is(err, ErrUnauthorized))
		})
	}
}

func TestSendMessage_PostsJSONPayload(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/aihelper/chat/with-ai/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok-2", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"message": "what is calculus"}, body)

		_, _ = io.WriteString(w, `{"success": true, "answer": "..."}`)
	})

	resp, err := c.SendMessage(context.Background(), "tok-2", "what is calculus")
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestSendMessage_MissingSuccessFlagIsFalse(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"error": "quota"}`)
	})

	resp, err := c.SendMessage(context.Background(), "tok", "hi")
	require.NoError(t, err)
	assert.False(t, resp.Success)
}

func TestSendMessage_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.SendMessage(ctx, "tok", "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
