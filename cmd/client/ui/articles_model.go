package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"math-helper/cmd/client/articles"
)

const (
	articlesTitle = "Maqolalar"
	loadFailed    = "Maqolalarni olishda xatolik."
)

// ArticleSource 는 *articles.Listing 이 구현한다.
type ArticleSource interface {
	Load(ctx context.Context) error
	Cards() []articles.Card
}

type articlesLoadedMsg struct{ err error }

// ArticlesModel 은 기사 카드 목록 화면이다.
type ArticlesModel struct {
	ctx    context.Context
	source ArticleSource
	styles Styles

	loading  bool
	err      error
	cards    []articles.Card
	viewport viewport.Model
	width    int
}

func NewArticlesModel(ctx context.Context, source ArticleSource, styles Styles) ArticlesModel {
	return ArticlesModel{
		ctx:      ctx,
		source:   source,
		styles:   styles,
		loading:  true,
		viewport: viewport.New(80, 20),
		width:    80,
	}
}

func (m ArticlesModel) Init() tea.Cmd {
	source, ctx := m.source, m.ctx
	return func() tea.Msg {
		return articlesLoadedMsg{err: source.Load(ctx)}
	}
}

func (m ArticlesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 20)
		m.viewport.Width = m.width
		m.viewport.Height = max(msg.Height-3, 1)
		m.viewport.SetContent(m.renderCards())
		return m, nil
	case articlesLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.cards = m.source.Cards()
		m.viewport.SetContent(m.renderCards())
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m ArticlesModel) View() string {
	if m.loading {
		return m.styles.Muted.Render(articles.LoadingText)
	}
	return m.styles.Title.Render(articlesTitle) + "\n" + m.viewport.View() + "\n" +
		m.styles.Help.Render("↑/↓: aylantirish • q: chiqish")
}

func (m ArticlesModel) renderCards() string {
	if m.err != nil && len(m.cards) == 0 {
		return m.styles.Error.Render(loadFailed)
	}
	width := max(m.width-4, 16)
	blocks := make([]string, 0, len(m.cards))
	for _, c := range m.cards {
		blocks = append(blocks, m.renderCard(c, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (m ArticlesModel) renderCard(c articles.Card, width int) string {
	header := fmt.Sprintf("[%s]  👁 %d", c.Category, c.ViewCount)
	meta := c.PublishedDate
	if c.Author != "" {
		meta = c.Author + " • " + meta
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Muted.Render(header),
		m.styles.CardTitle.Render(c.Title),
		c.Preview,
		m.styles.Muted.Render(fmt.Sprintf("%s • %d daqiqa o‘qish", meta, c.ReadMinutes)),
		m.styles.Muted.Render("O‘qishni davom ettirish → "+c.Link),
	)
	return m.styles.Card.Width(width).Render(body)
}

// WriteCardsPlain 은 TUI 없이 카드 목록을 텍스트로 쓴다. 파이프나 스크립트용이다.
func WriteCardsPlain(w io.Writer, cards []articles.Card) error {
	var sb strings.Builder
	for i, c := range cards {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "#%d %s [%s] (%d)\n", c.ID, c.Title, c.Category, c.ViewCount)
		fmt.Fprintf(&sb, "  %s\n", c.Preview)
		if c.Author != "" {
			fmt.Fprintf(&sb, "  %s • ", c.Author)
		} else {
			sb.WriteString("  ")
		}
		fmt.Fprintf(&sb, "%s • %d daqiqa o‘qish • %s\n", c.PublishedDate, c.ReadMinutes, c.Link)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
