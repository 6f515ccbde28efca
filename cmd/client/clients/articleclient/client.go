package articleclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"math-helper/cmd/client/httpclient"
)

// Client는 공개 기사 API 를 호출하는 얇은 클라이언트다. 인증이 필요 없다.
type Client struct {
	base *httpclient.BaseClient
}

var ErrMalformedResponse = errors.New("articles: malformed response")

// Article 은 /articles/all/ 응답의 한 항목이다.
// content 가 없으면 pdf_file 만 있는 기사다.
type Article struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Content       *string `json:"content,omitempty"`
	PDFFile       *string `json:"pdf_file,omitempty"`
	Author        *string `json:"author,omitempty"`
	PublishedDate string  `json:"published_date"`
	ViewCount     int     `json:"view_count"`
	Category      string  `json:"category"`
}

func New(baseURL string, httpClient *http.Client) *Client {
	return &Client{base: httpclient.NewBaseClientWithClient(httpClient, baseURL)}
}

// ListAll 은 GET /articles/all/ 을 호출해 서버 순서 그대로 모든 기사를 가져온다.
func (c *Client) ListAll(ctx context.Context) ([]Article, error) {
	req, err := c.base.NewRequest(ctx, http.MethodGet, "/articles/all/", nil, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("articles ListAll: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out []Article
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return out, nil
}
