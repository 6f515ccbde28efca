// Package ui 는 채팅과 기사 목록을 bubbletea 화면으로 그린다.
// 상태는 모두 chat/articles 패키지가 들고 있고, 여기서는 스냅샷을 그리기만 한다.
package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"math-helper/cmd/client/chat"
	"math-helper/cmd/client/clients/aihelperclient"
)

const (
	chatTitle        = "Matematik Suhbat"
	inputPlaceholder = "Matematik savol yoki masalangizni yozing..."
	modalTitle       = "Login talab qilinadi"
	modalBody        = "Chatdan foydalanish uchun iltimos, hisobingizga kiring."
	modalButton      = "Login qilish"

	headerHeight = 3
	footerHeight = 5
)

// Conversation 은 *chat.Interface 가 구현한다.
type Conversation interface {
	Mount(ctx context.Context) error
	Submit(ctx context.Context) error
	SetDraft(text string)
	State() chat.State
	Subscribe(fn func(chat.State)) func()
	LoginPrompt() *chat.LoginPrompt
}

type stateChangedMsg struct{}

type mountedMsg struct{ err error }

type sentMsg struct{ err error }

// ChatModel 은 AI helper 대화 화면이다.
type ChatModel struct {
	ctx    context.Context
	conv   Conversation
	styles Styles

	changes     chan struct{}
	unsubscribe func()

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer

	state   chat.State
	sending bool
	width   int
	height  int
}

func NewChatModel(ctx context.Context, conv Conversation, styles Styles) ChatModel {
	ti := textinput.New()
	ti.Placeholder = inputPlaceholder
	ti.Prompt = "│ "
	ti.PromptStyle = styles.Prompt
	ti.CharLimit = 4096
	ti.Width = 76
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = styles.Typing

	changes := make(chan struct{}, 1)
	m := ChatModel{
		ctx:      ctx,
		conv:     conv,
		styles:   styles,
		changes:  changes,
		input:    ti,
		spinner:  sp,
		viewport: viewport.New(80, 24-headerHeight-footerHeight),
		width:    80,
		height:   24,
	}
	// 알림은 신호만 남기고, 실제 값은 Update 에서 최신 스냅샷으로 다시 읽는다.
	m.unsubscribe = conv.Subscribe(func(chat.State) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	m.renderer = newMarkdownRenderer(m.width)
	m.state = conv.State()
	m.viewport.SetContent(m.renderHistory())
	return m
}

func newMarkdownRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(20, width*8/10-4)),
	)
	if err != nil {
		return nil
	}
	return r
}

// Close 는 상태 구독을 해제한다. 프로그램이 끝난 뒤 호출한다.
func (m ChatModel) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.mount(), m.waitForChange())
}

func (m ChatModel) mount() tea.Cmd {
	return func() tea.Msg {
		return mountedMsg{err: m.conv.Mount(m.ctx)}
	}
}

func (m ChatModel) submit() tea.Cmd {
	return func() tea.Msg {
		return sentMsg{err: m.conv.Submit(m.ctx)}
	}
}

func (m ChatModel) waitForChange() tea.Cmd {
	changes := m.changes
	return func() tea.Msg {
		<-changes
		return stateChangedMsg{}
	}
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 20)
		m.height = max(msg.Height, headerHeight+footerHeight+1)
		m.viewport.Width = m.width
		m.viewport.Height = m.height - headerHeight - footerHeight
		m.input.Width = m.width - 4
		m.renderer = newMarkdownRenderer(m.width)
		m.sync()
		return m, nil

	case stateChangedMsg:
		m.sync()
		return m, m.waitForChange()

	case mountedMsg:
		m.sync()
		return m, nil

	case sentMsg:
		m.sending = false
		m.sync()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ChatModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.state.ShowLoginModal {
		if msg.Type == tea.KeyEnter {
			m.conv.LoginPrompt().DismissAndRedirect()
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		if m.sending || !m.state.CanSubmit() {
			return m, nil
		}
		m.sending = true
		m.input.Blur()
		return m, m.submit()
	case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.sending || m.state.IsTyping {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.conv.SetDraft(m.input.Value())
	m.state.Draft = m.input.Value()
	return m, cmd
}

// sync 는 최신 스냅샷을 읽어 입력창과 기록 영역을 맞춘다.
func (m *ChatModel) sync() {
	m.state = m.conv.State()

	if m.input.Value() != m.state.Draft {
		m.input.SetValue(m.state.Draft)
	}
	if m.sending || m.state.IsTyping {
		m.input.Blur()
	} else {
		m.input.Focus()
	}

	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

func (m ChatModel) renderHistory() string {
	if len(m.state.History) == 0 {
		return m.styles.Muted.Render("Hali xabarlar yo‘q.")
	}

	bubbleWidth := max(10, m.width*8/10)
	var sb strings.Builder
	for i, msg := range m.state.History {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(m.renderMessage(msg, bubbleWidth))
	}
	return sb.String()
}

func (m ChatModel) renderMessage(msg chat.Message, width int) string {
	stamp := m.styles.Timestamp.Render(msg.MessagedAt.Local().Format("15:04"))

	if msg.Type == aihelperclient.MessageTypeUser {
		bubble := m.styles.UserBubble.MaxWidth(width).Render(msg.Message)
		block := lipgloss.JoinVertical(lipgloss.Right, bubble, stamp)
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, block)
	}

	body := msg.Message
	if m.renderer != nil {
		if out, err := m.renderer.Render(msg.Message); err == nil {
			body = strings.Trim(out, "\n")
		}
	}
	bubble := m.styles.AssistBubble.MaxWidth(width).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, bubble, stamp)
}

func (m ChatModel) View() string {
	if m.state.ShowLoginModal {
		return m.modalView()
	}

	var sb strings.Builder
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.Title.Render(chatTitle), " ", m.styles.Badge.Render("Faol")))
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")

	if m.state.IsTyping {
		sb.WriteString(m.spinner.View())
	}
	sb.WriteString("\n")

	if text := errorText(m.state.LastError); text != "" {
		sb.WriteString(m.styles.Error.Render(text))
	}
	sb.WriteString("\n")

	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render("Enter: yuborish • ↑/↓: aylantirish • Esc: chiqish"))
	return sb.String()
}

func (m ChatModel) modalView() string {
	box := m.styles.Modal.Render(lipgloss.JoinVertical(lipgloss.Center,
		m.styles.ModalTitle.Render(modalTitle),
		m.styles.Muted.Render(modalBody),
		m.styles.Button.Render(modalButton+" ⏎"),
	))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// errorText 는 LastError 를 화면 문구로 바꾼다. 인증 실패는 모달이 대신 알리므로 비워 둔다.
func errorText(err error) string {
	if err == nil {
		return ""
	}
	var chatErr *chat.Error
	if !errors.As(err, &chatErr) {
		return "Xatolik: " + err.Error()
	}
	switch {
	case chatErr.Kind == chat.KindUnauthenticated:
		return ""
	case chatErr.Op == chat.OpSend:
		return "Xabar yuborishda xatolik. Qaytadan urinib ko‘ring."
	case chatErr.Op == chat.OpRefresh:
		return "Tarixni olishda xatolik."
	default:
		return "Xatolik: " + chatErr.Err.Error()
	}
}
