// Package articles 는 공개 기사 목록 화면의 데이터를 만든다.
package articles

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"math-helper/cmd/client/clients/articleclient"
	"math-helper/cmd/internal/logger"
	"math-helper/cmd/internal/trace"
)

const (
	// PDFPreview 는 본문 없이 PDF 만 있는 기사의 미리보기 문구다.
	PDFPreview = "(PDF fayl) - to‘liq ko‘rish uchun oching"
	// LoadingText 는 목록을 받아오는 동안 보여주는 문구다.
	LoadingText = "Yuklanmoqda..."

	DateLayout = "02/01/2006"

	defaultPreviewLength  = 100
	defaultWordsPerMinute = 200
	defaultPDFReadMinutes = 3
)

// Fetcher 는 *articleclient.Client 가 구현한다.
type Fetcher interface {
	ListAll(ctx context.Context) ([]articleclient.Article, error)
}

// Card 는 목록의 기사 카드 한 장이다.
type Card struct {
	ID            int64
	Title         string
	Category      string
	ViewCount     int
	Author        string
	PublishedDate string
	Preview       string
	ReadMinutes   int
	IsPDF         bool
	Link          string
}

type Options struct {
	PreviewLength  int
	WordsPerMinute int
	PDFReadMinutes int
	Extractor      TextExtractor
	Timeout        time.Duration
}

// Listing 은 기사 목록 화면의 상태다. 서버 순서를 그대로 유지한다.
type Listing struct {
	fetcher Fetcher
	opts    Options

	mu      sync.Mutex
	loading bool
	cards   []Card
}

func NewListing(fetcher Fetcher, opts Options) *Listing {
	if opts.PreviewLength <= 0 {
		opts.PreviewLength = defaultPreviewLength
	}
	if opts.WordsPerMinute <= 0 {
		opts.WordsPerMinute = defaultWordsPerMinute
	}
	if opts.PDFReadMinutes <= 0 {
		opts.PDFReadMinutes = defaultPDFReadMinutes
	}
	if opts.Extractor == nil {
		opts.Extractor = PlainText
	}
	return &Listing{fetcher: fetcher, opts: opts}
}

func (l *Listing) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

func (l *Listing) Cards() []Card {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Card, len(l.cards))
	copy(out, l.cards)
	return out
}

// Load 는 목록을 받아와 카드를 새로 만든다. 실패하면 이전 카드를 그대로 둔다.
func (l *Listing) Load(ctx context.Context) error {
	ctx = trace.Start(ctx)

	l.mu.Lock()
	l.loading = true
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.loading = false
		l.mu.Unlock()
	}()

	if l.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.opts.Timeout)
		defer cancel()
	}

	list, err := l.fetcher.ListAll(ctx)
	if err != nil {
		logger.ErrorWithFields("failed to load articles", logger.Fields{
			"request_id": trace.RequestIDFromContext(ctx),
			"error":      err.Error(),
		})
		return fmt.Errorf("load articles: %w", err)
	}

	cards := make([]Card, 0, len(list))
	for _, a := range list {
		cards = append(cards, l.toCard(a))
	}

	l.mu.Lock()
	l.cards = cards
	l.mu.Unlock()

	logger.DebugWithFields("articles loaded", logger.Fields{
		"request_id": trace.RequestIDFromContext(ctx),
		"count":      len(cards),
	})
	return nil
}

func (l *Listing) toCard(a articleclient.Article) Card {
	card := Card{
		ID:            a.ID,
		Title:         a.Title,
		Category:      a.Category,
		ViewCount:     a.ViewCount,
		PublishedDate: FormatDate(a.PublishedDate),
		Link:          fmt.Sprintf("/articles/%d", a.ID),
	}
	if a.Author != nil {
		card.Author = *a.Author
	}

	if a.Content == nil || strings.TrimSpace(*a.Content) == "" {
		card.IsPDF = a.PDFFile != nil
		card.Preview = PDFPreview
		card.ReadMinutes = l.opts.PDFReadMinutes
		return card
	}

	text, err := l.opts.Extractor(*a.Content)
	if err != nil {
		logger.WarnWithFields("failed to extract article text", logger.Fields{
			"article_id": a.ID,
			"error":      err.Error(),
		})
		text = normalizeSpace(*a.Content)
	}
	card.Preview = Truncate(text, l.opts.PreviewLength)
	// 읽기 시간은 추출 전 원문 기준으로 센다. 태그 속성도 단어로 친다.
	card.ReadMinutes = ReadingTime(*a.Content, l.opts.WordsPerMinute)
	return card
}

// Truncate 는 문자(rune) 기준으로 max 를 넘으면 잘라서 "..." 을 붙인다.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}

// ReadingTime 은 공백으로 나눈 단어 수 기준 읽기 시간(분)이다. 최소 1분.
func ReadingTime(text string, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = defaultWordsPerMinute
	}
	words := len(strings.Fields(text))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	return max(1, minutes)
}

// FormatDate 는 서버 날짜를 DD/MM/YYYY 로 바꾼다. 알 수 없는 형식이면 그대로 둔다.
func FormatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(DateLayout)
		}
	}
	return raw
}
