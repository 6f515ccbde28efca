package auth

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	ErrMissingHeader = errors.New("missing_authorization_header")
	ErrInvalidFormat = errors.New("invalid_authorization_header")
	ErrEmptyToken    = errors.New("empty_token")
	ErrInvalidToken  = errors.New("invalid_token")
)

const ctxKeyToken = "bearer_token"

// ExtractBearerToken extracts the Bearer token from the Authorization header.
func ExtractBearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrMissingHeader
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrInvalidFormat
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}

// AbortWithUnauthorized aborts the request with 401 status and error JSON.
func AbortWithUnauthorized(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
}

// RequireBearer 는 bearer 토큰이 없는 요청을 401 로 끊는다.
// allowed 가 비어 있으면 비어 있지 않은 모든 토큰을 받아들인다. 토큰 자체가 사용자 식별자다.
func RequireBearer(allowed []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := ExtractBearerToken(c)
		if err != nil {
			AbortWithUnauthorized(c, err)
			return
		}
		if len(allowed) > 0 && !slices.Contains(allowed, token) {
			AbortWithUnauthorized(c, ErrInvalidToken)
			return
		}
		c.Set(ctxKeyToken, token)
		c.Next()
	}
}

// TokenFromContext 는 RequireBearer 가 저장한 토큰을 꺼낸다.
func TokenFromContext(c *gin.Context) string {
	return c.GetString(ctxKeyToken)
}
