package chat

import (
	"strings"

	"math-helper/cmd/client/clients/aihelperclient"
)

type Message = aihelperclient.ChatMessage

// State 는 화면이 그리는 데 필요한 모든 값을 복사해 둔 스냅샷이다.
type State struct {
	// History 는 서버가 마지막으로 돌려준 기록 그대로다. 로컬에서 합치거나 정렬하지 않는다.
	History []Message
	// Loaded 는 한 번이라도 기록을 받아왔는지 여부다.
	Loaded bool
	Draft  string

	IsTyping       bool
	ShowLoginModal bool

	// LastError 는 마지막 동작의 실패다. 다음 성공한 동작이 지운다.
	LastError error
}

// CanSubmit 은 전송 버튼 활성화 조건이다.
func (s State) CanSubmit() bool {
	return !s.IsTyping && strings.TrimSpace(s.Draft) != ""
}
