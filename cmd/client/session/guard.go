package session

import (
	"context"
	"errors"
	"strings"

	"math-helper/cmd/internal/logger"
)

// ErrUnauthenticated 는 저장된 자격 증명이 없어 특권 동작을 진행할 수 없음을 뜻한다.
var ErrUnauthenticated = errors.New("session: no credential")

// Guard 는 특권 동작 직전마다 저장소에서 자격 증명을 다시 읽는다.
// 결과를 캐시하지 않으므로 세션 도중 로그아웃되면 다음 동작에서 바로 걸린다.
type Guard struct {
	store    Store
	onDenied func()
}

// NewGuard 는 거절될 때마다 onDenied 를 호출하는 Guard 를 만든다. (보통 로그인 안내 모달 표시)
func NewGuard(store Store, onDenied func()) *Guard {
	return &Guard{store: store, onDenied: onDenied}
}

// Authorize 는 bearer 로 쓸 토큰을 반환한다.
// 토큰이 없거나 비어 있으면 onDenied 를 호출하고 ErrUnauthenticated 를 반환한다.
func (g *Guard) Authorize(ctx context.Context) (string, error) {
	token, err := g.store.Get(ctx, CredentialKey)
	if err != nil && !errors.Is(err, ErrNotFound) {
		logger.ErrorWithFields("credential store read failed", logger.Fields{"error": err.Error()})
	}
	token = strings.TrimSpace(token)
	if err != nil || token == "" {
		g.deny()
		return "", ErrUnauthenticated
	}
	return token, nil
}

// Deny 는 서버가 토큰을 거절했을 때처럼 저장소 밖에서 알게 된 거절을 알린다.
func (g *Guard) Deny() {
	g.deny()
}

func (g *Guard) deny() {
	if g.onDenied != nil {
		g.onDenied()
	}
}
