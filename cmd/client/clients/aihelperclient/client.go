package aihelperclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"math-helper/cmd/client/httpclient"
)

const (
	historyPath = "/aihelper/chat/"
	sendPath    = "/aihelper/chat/with-ai/"

	maxBodySize = 5 * 1024 * 1024
)

var (
	// ErrUnauthorized 는 원격 API 가 bearer 토큰을 거절(401)했을 때 errors.Is 로 확인할 수 있다.
	ErrUnauthorized = errors.New("aihelper: credential rejected")
	// ErrMalformedResponse 는 2xx 응답이지만 기대한 형태로 해석할 수 없을 때 반환된다.
	ErrMalformedResponse = errors.New("aihelper: malformed response")
)

// Client는 원격 AI helper 채팅 API 를 호출하는 얇은 클라이언트다.
// 세션/토큰의 존재 여부는 알지 않고, 호출자가 넘겨준 토큰을 그대로 bearer 로 싣는다.
type Client struct {
	base *httpclient.BaseClient
}

type SendRequest struct {
	Message string `json:"message"`
}

// SendResponse 는 with-ai 응답 중 클라이언트가 사용하는 부분이다.
type SendResponse struct {
	Success bool `json:"success"`
}

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("aihelper request failed: status=%d body=%s", e.StatusCode, e.Body)
}

// Is 는 401 응답을 ErrUnauthorized 로 취급한다.
func (e *HTTPError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// New 는 baseURL 을 기준으로 클라이언트를 만든다. httpClient 가 nil 이면 기본 클라이언트를 쓴다.
func New(baseURL string, httpClient *http.Client) *Client {
	return &Client{base: httpclient.NewBaseClientWithClient(httpClient, baseURL)}
}

// ListHistory 는 GET /aihelper/chat/ 로 현재 사용자의 전체 대화 기록을 서버 순서 그대로 가져온다.
func (c *Client) ListHistory(ctx context.Context, token string) ([]ChatMessage, error) {
	req, err := c.base.NewRequest(ctx, http.MethodGet, historyPath, nil, nil)
	if err != nil {
		return nil, err
	}
	httpclient.SetBearer(req, token)
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var out []ChatMessage
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	for i := range out {
		if !out[i].Type.Valid() {
			return nil, fmt.Errorf("%w: message %d has unknown type %q", ErrMalformedResponse, out[i].ID, out[i].Type)
		}
	}
	if out == nil {
		// "null" 본문도 빈 기록으로 본다.
		out = []ChatMessage{}
	}
	return out, nil
}

// SendMessage 는 POST /aihelper/chat/with-ai/ 로 메시지를 보낸다.
// success 플래그의 해석은 호출자의 몫이다.
func (c *Client) SendMessage(ctx context.Context, token, message string) (SendResponse, error) {
	buf, err := json.Marshal(SendRequest{Message: message})
	if err != nil {
		return SendResponse{}, err
	}

	req, err := c.base.NewRequest(ctx, http.MethodPost, sendPath, nil, bytes.NewReader(buf))
	if err != nil {
		return SendResponse{}, err
	}
	httpclient.SetBearer(req, token)
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return SendResponse{}, err
	}

	var out SendResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return SendResponse{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return out, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.base.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if readErr != nil {
		return nil, fmt.Errorf("aihelper response read failed: %w", readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		const maxErrBody = 2048
		if len(body) > maxErrBody {
			body = body[:maxErrBody]
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
