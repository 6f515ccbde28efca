package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"math-helper/cmd/stubapi/router"
	"math-helper/cmd/stubapi/store"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLoginWhoamiLogout(t *testing.T) {
	t.Setenv("MATH_HELPER_HOME", t.TempDir())

	out, err := execute(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Login qilinmagan.")

	out, err = execute(t, "login", "--token", "  abcdef123456  ")
	require.NoError(t, err)
	assert.Contains(t, out, "Token saqlandi.")

	out, err = execute(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "abcd********")

	_, err = execute(t, "logout")
	require.NoError(t, err)

	out, err = execute(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Login qilinmagan.")
}

func TestLoginRequiresToken(t *testing.T) {
	t.Setenv("MATH_HELPER_HOME", t.TempDir())

	_, err := execute(t, "login", "--token", "   ")
	assert.EqualError(t, err, "--token is required")
}

func TestArticlesPlain(t *testing.T) {
	t.Setenv("MATH_HELPER_HOME", t.TempDir())
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(router.New(store.NewMemory(), router.Options{}))
	defer srv.Close()

	out, err := execute(t, "articles", "--plain", "--api-url", srv.URL, "--timeout", "2s")
	require.NoError(t, err)

	for _, a := range store.SeedArticles() {
		assert.Contains(t, out, a.Title)
	}
	assert.Contains(t, out, "(PDF fayl) - to‘liq ko‘rish uchun oching")
	assert.Contains(t, out, "10/02/2025")
	assert.Contains(t, out, "/articles/3")
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "abc", want: "***"},
		{in: "abcdef", want: "abcd**"},
		{in: "abcdefghijklmnopqrstuvwxyz", want: "abcd********"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, maskToken(tt.in))
	}
}
