package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"math-helper/cmd/internal/logger"
	"math-helper/cmd/internal/trace"
)

const maxBodyLog = 1024

// RequestTrace 는 클라이언트가 보낸 X-Request-Id/X-Span-Id 를 이어받아 컨텍스트와 응답 헤더에 싣고,
// 요청 한 건마다 완료 로그를 남긴다. 헤더가 없으면 새 Request ID 를 만든다.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		requestID := req.Header.Get(trace.HeaderRequestID)
		if requestID == "" {
			requestID = trace.GenerateID()
		}
		// 클라이언트가 보낸 span 을 이어받는다. 없거나 숫자가 아니면 0 이다.
		clientSpan, _ := strconv.ParseInt(req.Header.Get(trace.HeaderSpanID), 10, 64)

		ctxWithTrace := trace.WithRequestAndSpan(req.Context(), requestID, clientSpan)
		c.Request = req.WithContext(ctxWithTrace)
		c.Writer.Header().Set(trace.HeaderRequestID, requestID)
		c.Writer.Header().Set(trace.HeaderSpanID, trace.CurrentSpanID(ctxWithTrace))

		bodySnippet := readBodySnippet(c)

		c.Next()

		fields := logger.Fields{
			"method":     req.Method,
			"path":       req.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
			"request_id": requestID,
			"span_id":    trace.CurrentSpanID(c.Request.Context()),
		}
		if bodySnippet != "" {
			fields["body"] = bodySnippet
		}
		logger.InfoWithFields("completed request", fields)
	}
}

// readBodySnippet 은 본문 앞부분을 로그용으로 읽고, 핸들러가 다시 읽을 수 있게 Body 를 복원한다.
func readBodySnippet(c *gin.Context) string {
	req := c.Request
	if req.Body == nil || req.ContentLength == 0 {
		return ""
	}
	if req.Method != http.MethodPost && req.Method != http.MethodPut && req.Method != http.MethodPatch {
		return ""
	}

	bodyBytes, err := io.ReadAll(req.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	if len(bodyBytes) > maxBodyLog {
		bodyBytes = bodyBytes[:maxBodyLog]
	}
	return string(bodyBytes)
}
