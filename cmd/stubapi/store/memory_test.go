package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_AskAppendsPairPerToken(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemory(
		WithClock(func() time.Time { return fixed }),
		WithReplier(func(msg string) string { return "javob: " + msg }),
	)

	answer := m.Ask("tok-a", "2+2")
	assert.Equal(t, "javob: 2+2", answer.Message)
	assert.Equal(t, TypeAssistant, answer.Type)

	m.Ask("tok-a", "3*3")

	history := m.History("tok-a")
	require.Len(t, history, 4)
	assert.Equal(t, []string{TypeUser, TypeAssistant, TypeUser, TypeAssistant},
		[]string{history[0].Type, history[1].Type, history[2].Type, history[3].Type})
	assert.Equal(t, "2+2", history[0].Message)
	assert.Equal(t, fixed, history[0].MessagedAt)
	for i := 1; i < len(history); i++ {
		assert.Greater(t, history[i].ID, history[i-1].ID)
	}

	assert.Empty(t, m.History("tok-b"))
	assert.NotNil(t, m.History("tok-b"))
}

func TestMemory_HistoryIsACopy(t *testing.T) {
	m := NewMemory()
	m.Ask("tok", "salom")

	h := m.History("tok")
	h[0].Message = "changed"

	assert.Equal(t, "salom", m.History("tok")[0].Message)
}

func TestMemory_ConcurrentAsk(t *testing.T) {
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Ask("tok", "q")
		}()
	}
	wg.Wait()

	assert.Len(t, m.History("tok"), 40)
}

func TestSeedArticles(t *testing.T) {
	articles := NewMemory().Articles()
	require.NotEmpty(t, articles)

	var sawPDFOnly bool
	for _, a := range articles {
		if a.Content == nil && a.PDFFile != nil {
			sawPDFOnly = true
		}
	}
	assert.True(t, sawPDFOnly)
}
