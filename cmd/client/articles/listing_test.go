package articles

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"math-helper/cmd/client/clients/articleclient"
)

type fakeFetcher struct {
	articles []articleclient.Article
	err      error
	onCall   func()
}

func (f *fakeFetcher) ListAll(ctx context.Context) ([]articleclient.Article, error) {
	if f.onCall != nil {
		f.onCall()
	}
	return f.articles, f.err
}

func ptr(s string) *string { return &s }

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{name: "shorter", input: "abc", max: 5, want: "abc"},
		{name: "exact", input: "abcde", max: 5, want: "abcde"},
		{name: "longer", input: "abcdef", max: 5, want: "abcde..."},
		{name: "multibyte counted as runes", input: "ko‘p so‘z", max: 4, want: "ko‘p..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.max))
		})
	}
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  int
	}{
		{name: "empty is one minute", words: 0, want: 1},
		{name: "one word", words: 1, want: 1},
		{name: "exactly 200", words: 200, want: 1},
		{name: "201 rounds up", words: 201, want: 2},
		{name: "1000", words: 1000, want: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.TrimSpace(strings.Repeat("so‘z ", tt.words))
			assert.Equal(t, tt.want, ReadingTime(text, 200))
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "10/02/2025", FormatDate("2025-02-10"))
	assert.Equal(t, "01/03/2024", FormatDate("2024-03-01T09:30:00Z"))
	assert.Equal(t, "01/03/2024", FormatDate("2024-03-01T09:30:00"))
	assert.Equal(t, "noma'lum", FormatDate("noma'lum"))
}

func TestListing_LoadBuildsCardsInServerOrder(t *testing.T) {
	long := strings.Repeat("a", 150)
	fetcher := &fakeFetcher{articles: []articleclient.Article{
		{ID: 7, Title: "Algebra", Content: ptr("<p>" + long + "</p>"), Author: ptr("Ali"), PublishedDate: "2025-02-10", ViewCount: 3, Category: "algebra"},
		{ID: 2, Title: "Geometriya", PDFFile: ptr("/media/geo.pdf"), PublishedDate: "2025-01-05", Category: "geometriya"},
		{ID: 5, Title: "Qisqa", Content: ptr("bir ikki uch"), PublishedDate: "2024-12-31", Category: "boshqa"},
	}}

	l := NewListing(fetcher, Options{})
	require.NoError(t, l.Load(context.Background()))
	assert.False(t, l.Loading())

	cards := l.Cards()
	require.Len(t, cards, 3)
	assert.Equal(t, []int64{7, 2, 5}, []int64{cards[0].ID, cards[1].ID, cards[2].ID})

	assert.Equal(t, strings.Repeat("a", 100)+"...", cards[0].Preview)
	assert.Equal(t, 1, cards[0].ReadMinutes)
	assert.Equal(t, "Ali", cards[0].Author)
	assert.Equal(t, "10/02/2025", cards[0].PublishedDate)
	assert.Equal(t, "/articles/7", cards[0].Link)
	assert.False(t, cards[0].IsPDF)

	assert.Equal(t, PDFPreview, cards[1].Preview)
	assert.Equal(t, 3, cards[1].ReadMinutes)
	assert.True(t, cards[1].IsPDF)
	assert.Empty(t, cards[1].Author)

	assert.Equal(t, "bir ikki uch", cards[2].Preview)
}

func TestListing_ReadingTimeCountsRawContent(t *testing.T) {
	// 150 단어지만 원문에서는 태그 속성 때문에 공백 기준 300 토큰이다.
	content := strings.Repeat(`<span class="x">so‘z</span> `, 150)
	fetcher := &fakeFetcher{articles: []articleclient.Article{{ID: 1, Title: "Uzun", Content: ptr(content)}}}

	l := NewListing(fetcher, Options{})
	require.NoError(t, l.Load(context.Background()))

	card := l.Cards()[0]
	assert.Equal(t, 2, card.ReadMinutes)
	assert.NotContains(t, card.Preview, "<span")
}

func TestListing_LoadingDuringFetch(t *testing.T) {
	var l *Listing
	var sawLoading bool
	fetcher := &fakeFetcher{onCall: func() { sawLoading = l.Loading() }}
	l = NewListing(fetcher, Options{})

	assert.False(t, l.Loading())
	require.NoError(t, l.Load(context.Background()))
	assert.True(t, sawLoading)
	assert.False(t, l.Loading())
}

func TestListing_FailureKeepsPreviousCards(t *testing.T) {
	fetcher := &fakeFetcher{articles: []articleclient.Article{{ID: 1, Title: "Bir", Content: ptr("matn")}}}
	l := NewListing(fetcher, Options{})
	require.NoError(t, l.Load(context.Background()))

	boom := errors.New("connection refused")
	fetcher.articles, fetcher.err = nil, boom

	err := l.Load(context.Background())
	require.ErrorIs(t, err, boom)
	assert.False(t, l.Loading())
	require.Len(t, l.Cards(), 1)
	assert.Equal(t, int64(1), l.Cards()[0].ID)
}
