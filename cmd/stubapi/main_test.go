package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithCORS(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name        string
		origins     []string
		origin      string
		wantAllowed string
	}{
		{name: "any origin by default", origin: "http://localhost:5173", wantAllowed: "*"},
		{name: "listed origin", origins: []string{"http://localhost:5173"}, origin: "http://localhost:5173", wantAllowed: "http://localhost:5173"},
		{name: "unlisted origin", origins: []string{"http://localhost:5173"}, origin: "http://evil.test", wantAllowed: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/articles/all/", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			withCORS(inner, tt.origins).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantAllowed, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
