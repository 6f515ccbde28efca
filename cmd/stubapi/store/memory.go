// Package store 는 개발용 stub API 의 메모리 저장소다. 프로세스가 끝나면 모두 사라진다.
package store

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"math-helper/cmd/stubapi/dto"
)

const (
	TypeUser      = "user"
	TypeAssistant = "assistant"
)

// Replier 는 사용자 메시지에 대한 assistant 답변을 만든다.
type Replier func(message string) string

// CannedReply 는 질문을 되풀이하는 고정 답변이다.
func CannedReply(message string) string {
	return fmt.Sprintf("**Savol:** %s\n\nBu ishlab chiqish serverining namunaviy javobi.", strings.TrimSpace(message))
}

// Memory 는 토큰별 대화 기록과 기사 목록을 보관한다. 토큰이 곧 사용자다.
type Memory struct {
	mu       sync.Mutex
	nextID   int64
	chats    map[string][]dto.ChatMessageDTO
	articles []dto.ArticleDTO
	reply    Replier
	now      func() time.Time
}

type Option func(*Memory)

func WithReplier(r Replier) Option {
	return func(m *Memory) { m.reply = r }
}

func WithClock(now func() time.Time) Option {
	return func(m *Memory) { m.now = now }
}

func WithArticles(articles []dto.ArticleDTO) Option {
	return func(m *Memory) { m.articles = slices.Clone(articles) }
}

func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		chats:    map[string][]dto.ChatMessageDTO{},
		articles: SeedArticles(),
		reply:    CannedReply,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// History 는 토큰의 대화 기록을 오래된 순서로 돌려준다. 기록이 없으면 빈 슬라이스다.
func (m *Memory) History(token string) []dto.ChatMessageDTO {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.chats[token])
	if out == nil {
		out = []dto.ChatMessageDTO{}
	}
	return out
}

// Ask 는 사용자 메시지와 assistant 답변을 한 번에 기록하고 답변을 돌려준다.
func (m *Memory) Ask(token, message string) dto.ChatMessageDTO {
	m.mu.Lock()
	defer m.mu.Unlock()

	at := m.now().UTC()
	m.nextID++
	user := dto.ChatMessageDTO{ID: m.nextID, Type: TypeUser, Message: message, MessagedAt: at}
	m.nextID++
	answer := dto.ChatMessageDTO{ID: m.nextID, Type: TypeAssistant, Message: m.reply(message), MessagedAt: at}

	m.chats[token] = append(m.chats[token], user, answer)
	return answer
}

func (m *Memory) Articles() []dto.ArticleDTO {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.articles)
}

func strPtr(s string) *string { return &s }

// SeedArticles 는 본문 기사, HTML 본문 기사, PDF 전용 기사를 섞은 기본 목록이다.
func SeedArticles() []dto.ArticleDTO {
	return []dto.ArticleDTO{
		{
			ID:            1,
			Title:         "Kvadrat tenglamalarni yechish",
			Content:       strPtr("<p>Kvadrat tenglama <b>ax² + bx + c = 0</b> ko‘rinishida bo‘ladi. Diskriminant D = b² − 4ac orqali ildizlar soni aniqlanadi: D &gt; 0 bo‘lsa ikki ildiz, D = 0 bo‘lsa bitta ildiz, D &lt; 0 bo‘lsa haqiqiy ildiz yo‘q.</p>"),
			Author:        strPtr("Dilnoza Karimova"),
			PublishedDate: "2025-02-10",
			ViewCount:     128,
			Category:      "algebra",
		},
		{
			ID:            2,
			Title:         "Uchburchak yuzasi formulalari",
			PDFFile:       strPtr("/media/articles/uchburchak.pdf"),
			PublishedDate: "2025-01-22",
			ViewCount:     64,
			Category:      "geometriya",
		},
		{
			ID:            3,
			Title:         "Hosila nima?",
			Content:       strPtr("Hosila funksiyaning o‘zgarish tezligini ko‘rsatadi. Masalan, f(x) = x² uchun f'(x) = 2x."),
			Author:        strPtr("Javohir Tursunov"),
			PublishedDate: "2024-12-03",
			ViewCount:     301,
			Category:      "analiz",
		},
	}
}
