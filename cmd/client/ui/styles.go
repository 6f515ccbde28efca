package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	colorError   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}
)

// Styles 는 두 화면이 공유하는 lipgloss 스타일 모음이다.
type Styles struct {
	Title        lipgloss.Style
	Badge        lipgloss.Style
	UserBubble   lipgloss.Style
	AssistBubble lipgloss.Style
	Timestamp    lipgloss.Style
	Typing       lipgloss.Style
	Prompt       lipgloss.Style
	Error        lipgloss.Style
	Help         lipgloss.Style
	Modal        lipgloss.Style
	ModalTitle   lipgloss.Style
	Button       lipgloss.Style
	Card         lipgloss.Style
	CardTitle    lipgloss.Style
	Muted        lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).MarginBottom(1),
		Badge: lipgloss.NewStyle().Foreground(colorMuted).Border(lipgloss.NormalBorder()).
			BorderForeground(colorBorder).Padding(0, 1),
		UserBubble: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).Padding(0, 1),
		AssistBubble: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).Padding(0, 1),
		Timestamp: lipgloss.NewStyle().Foreground(colorMuted).Faint(true),
		Typing:    lipgloss.NewStyle().Foreground(colorPrimary),
		Prompt:    lipgloss.NewStyle().Foreground(colorPrimary),
		Error:     lipgloss.NewStyle().Foreground(colorError),
		Help:      lipgloss.NewStyle().Foreground(colorMuted),
		Modal: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).Padding(1, 3).Align(lipgloss.Center),
		ModalTitle: lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Button: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).Padding(0, 2).MarginTop(1),
		Card: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).Padding(0, 1).MarginBottom(1),
		CardTitle: lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Muted:     lipgloss.NewStyle().Foreground(colorMuted),
	}
}
