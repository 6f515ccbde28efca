package chat

import "sync"

// Navigator 는 로그인 진입점으로 이동시키는 외부 협력자다.
type Navigator interface {
	Redirect(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) Redirect(path string) { f(path) }

// LoginPrompt 는 인증이 필요할 때 띄우는 차단형 안내다.
type LoginPrompt struct {
	mu      sync.Mutex
	visible bool
	shows   int

	path     string
	nav      Navigator
	onChange func()
}

func newLoginPrompt(path string, nav Navigator, onChange func()) *LoginPrompt {
	return &LoginPrompt{path: path, nav: nav, onChange: onChange}
}

func (p *LoginPrompt) Show() {
	p.mu.Lock()
	p.visible = true
	p.shows++
	p.mu.Unlock()
	p.changed()
}

func (p *LoginPrompt) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}

// DismissAndRedirect 는 모달을 닫고 로그인 경로로 이동시킨다.
func (p *LoginPrompt) DismissAndRedirect() {
	p.mu.Lock()
	p.visible = false
	p.mu.Unlock()
	p.changed()

	if p.nav != nil {
		p.nav.Redirect(p.path)
	}
}

func (p *LoginPrompt) changed() {
	if p.onChange != nil {
		p.onChange()
	}
}
