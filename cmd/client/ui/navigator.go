package ui

import (
	"fmt"
	"io"
	"sync"
)

// TerminalNavigator 는 로그인 안내를 받았는지 기억해 두었다가,
// TUI 가 끝난 뒤 터미널에 로그인 페이지 주소를 안내한다.
// loginURL 은 config.AppConfig.LoginURL() 값이고, Redirect 로 받는 경로는 그 주소의 경로 부분과 같다.
type TerminalNavigator struct {
	loginURL string

	mu   sync.Mutex
	path string
}

func NewTerminalNavigator(loginURL string) *TerminalNavigator {
	return &TerminalNavigator{loginURL: loginURL}
}

func (n *TerminalNavigator) Redirect(path string) {
	n.mu.Lock()
	n.path = path
	n.mu.Unlock()
}

// Pending 은 Redirect 가 호출되었는지와 전체 로그인 주소를 돌려준다.
func (n *TerminalNavigator) Pending() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.path == "" {
		return "", false
	}
	return n.loginURL, true
}

// PrintHint 는 Redirect 가 있었을 때만 로그인 안내를 w 에 쓴다.
func (n *TerminalNavigator) PrintHint(w io.Writer) {
	url, ok := n.Pending()
	if !ok {
		return
	}
	fmt.Fprintf(w, "Login talab qilinadi. Brauzerda oching: %s\n", url)
	fmt.Fprintln(w, "Token olgach: math-helper login --token <TOKEN>")
}
