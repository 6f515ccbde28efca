// Package chat 는 인증이 필요한 AI helper 대화 화면의 상태와 동작을 담는다.
// 화면(tea 모델 등)은 State 스냅샷을 그리고, 사용자 동작을 Interface 메서드로 전달한다.
package chat

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"math-helper/cmd/client/clients/aihelperclient"
	"math-helper/cmd/client/session"
	"math-helper/cmd/internal/logger"
	"math-helper/cmd/internal/trace"
)

const (
	OpRefresh = "refresh"
	OpSend    = "send"

	defaultLoginPath = "/login"
)

// API 는 Interface 가 사용하는 원격 채팅 API 다. *aihelperclient.Client 가 구현한다.
type API interface {
	ListHistory(ctx context.Context, token string) ([]aihelperclient.ChatMessage, error)
	SendMessage(ctx context.Context, token, message string) (aihelperclient.SendResponse, error)
}

type Options struct {
	// Timeout 은 각 네트워크 호출의 deadline 이다. 0 이면 호출자 컨텍스트만 따른다.
	Timeout   time.Duration
	LoginPath string
	Navigator Navigator
}

// Interface 는 AI helper 대화 화면 하나의 세션 상태다.
//
// 모든 특권 동작(기록 조회, 전송)은 매번 session.Guard 를 통과해야 하고,
// 기록은 guard 를 통과한 조회 결과로만 통째로 교체된다.
type Interface struct {
	api     API
	guard   *session.Guard
	prompt  *LoginPrompt
	timeout time.Duration

	// sending 은 동시에 진행 중인 전송을 하나로 제한한다.
	sending sync.Mutex

	mu         sync.Mutex
	history    []Message
	loaded     bool
	draft      string
	typing     bool
	lastErr    error
	refreshSeq uint64

	listenersMu sync.Mutex
	listeners   map[int]func(State)
	nextID      int
}

func New(api API, store session.Store, opts Options) *Interface {
	if opts.LoginPath == "" {
		opts.LoginPath = defaultLoginPath
	}
	it := &Interface{
		api:       api,
		timeout:   opts.Timeout,
		listeners: map[int]func(State){},
	}
	it.prompt = newLoginPrompt(opts.LoginPath, opts.Navigator, it.notify)
	it.guard = session.NewGuard(store, it.prompt.Show)
	return it
}

// LoginPrompt 는 화면이 모달의 "로그인" 버튼을 연결할 때 사용한다.
func (it *Interface) LoginPrompt() *LoginPrompt {
	return it.prompt
}

// Subscribe 는 상태가 바뀔 때마다 fn 을 호출하도록 등록한다. 반환값으로 해제한다.
// fn 은 잠금 밖에서 호출되므로 Interface 메서드를 다시 불러도 된다.
func (it *Interface) Subscribe(fn func(State)) func() {
	it.listenersMu.Lock()
	id := it.nextID
	it.nextID++
	it.listeners[id] = fn
	it.listenersMu.Unlock()

	return func() {
		it.listenersMu.Lock()
		delete(it.listeners, id)
		it.listenersMu.Unlock()
	}
}

func (it *Interface) State() State {
	it.mu.Lock()
	s := State{
		History:   slices.Clone(it.history),
		Loaded:    it.loaded,
		Draft:     it.draft,
		IsTyping:  it.typing,
		LastError: it.lastErr,
	}
	it.mu.Unlock()
	s.ShowLoginModal = it.prompt.Visible()
	return s
}

func (it *Interface) notify() {
	it.listenersMu.Lock()
	fns := make([]func(State), 0, len(it.listeners))
	for _, fn := range it.listeners {
		fns = append(fns, fn)
	}
	it.listenersMu.Unlock()
	if len(fns) == 0 {
		return
	}

	s := it.State()
	for _, fn := range fns {
		fn(s)
	}
}

// Mount 는 화면이 처음 열릴 때 한 번 호출한다.
func (it *Interface) Mount(ctx context.Context) error {
	return it.Refresh(ctx)
}

// Refresh 는 서버의 최신 기록으로 History 를 통째로 교체한다.
//
// 실패하면 이전 기록을 그대로 두고 에러를 돌려준다. 호출 순서와 완료 순서가 다를 수 있으므로
// 가장 나중에 시작된 refresh 의 응답만 반영하고, 나머지는 ErrSuperseded 로 버린다.
func (it *Interface) Refresh(ctx context.Context) error {
	ctx = trace.Start(ctx)

	token, err := it.guard.Authorize(ctx)
	if err != nil {
		return &Error{Kind: KindUnauthenticated, Op: OpRefresh, Err: err}
	}

	it.mu.Lock()
	it.refreshSeq++
	seq := it.refreshSeq
	it.mu.Unlock()

	callCtx, cancel := it.withTimeout(ctx)
	msgs, err := it.api.ListHistory(callCtx, token)
	cancel()

	it.mu.Lock()
	latest := it.refreshSeq
	it.mu.Unlock()
	if seq != latest {
		// 성공이든 실패든 오래된 응답은 상태, 로그인 안내, 에러 표시에 손대지 않는다.
		fields := logger.Fields{
			"request_id": trace.RequestIDFromContext(ctx),
			"seq":        seq,
			"latest_seq": latest,
		}
		if err != nil {
			fields["error"] = err.Error()
		}
		logger.DebugWithFields("discarding superseded history response", fields)
		return ErrSuperseded
	}

	if err != nil {
		chatErr := it.fail(ctx, OpRefresh, err)
		it.setLastErr(chatErr)
		it.notify()
		return chatErr
	}

	it.mu.Lock()
	if seq != it.refreshSeq {
		it.mu.Unlock()
		return ErrSuperseded
	}
	it.history = slices.Clone(msgs)
	it.loaded = true
	it.lastErr = nil
	it.mu.Unlock()

	logger.DebugWithFields("history refreshed", logger.Fields{
		"request_id": trace.RequestIDFromContext(ctx),
		"count":      len(msgs),
	})
	it.notify()
	return nil
}

func (it *Interface) Draft() string {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.draft
}

func (it *Interface) SetDraft(text string) {
	it.mu.Lock()
	changed := it.draft != text
	it.draft = text
	it.mu.Unlock()
	if changed {
		it.notify()
	}
}

// Submit 은 현재 작성 중인 초안을 전송한다.
func (it *Interface) Submit(ctx context.Context) error {
	return it.Send(ctx, it.Draft())
}

// Send 는 메시지 하나를 전송한다.
//
// 공백뿐인 초안은 네트워크 호출 없이 ErrEmptyDraft 로 끝난다. guard 를 통과하면 타이핑 표시를 켜고
// 쓰기 호출을 정확히 한 번 하며, 서버가 success 로 답하면 기록을 한 번 다시 받는다.
// 성공/실패와 관계없이 마지막에 타이핑 표시를 끄고 초안을 비운다.
// 실패한 전송도 초안을 비우므로 사용자가 다시 입력해야 한다.
func (it *Interface) Send(ctx context.Context, draft string) error {
	if strings.TrimSpace(draft) == "" {
		return &Error{Kind: KindValidation, Op: OpSend, Err: ErrEmptyDraft}
	}
	if !it.sending.TryLock() {
		return ErrSendInProgress
	}
	defer it.sending.Unlock()

	ctx = trace.Start(ctx)

	token, err := it.guard.Authorize(ctx)
	if err != nil {
		return &Error{Kind: KindUnauthenticated, Op: OpSend, Err: err}
	}

	it.mu.Lock()
	it.typing = true
	it.mu.Unlock()
	it.notify()
	defer it.finishSend()

	callCtx, cancel := it.withTimeout(ctx)
	resp, err := it.api.SendMessage(callCtx, token, draft)
	cancel()

	if err != nil {
		chatErr := it.fail(ctx, OpSend, err)
		it.setLastErr(chatErr)
		return chatErr
	}
	if !resp.Success {
		chatErr := &Error{Kind: KindTransport, Op: OpSend, Err: ErrNotAcknowledged}
		logger.WarnWithFields("message not acknowledged", logger.Fields{
			"request_id": trace.RequestIDFromContext(ctx),
		})
		it.setLastErr(chatErr)
		return chatErr
	}

	it.setLastErr(nil)
	if err := it.Refresh(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
		// 전송 자체는 성공했다. 기록은 이전 값으로 남고 LastError 에 남는다.
		logger.WarnWithFields("refresh after send failed", logger.Fields{
			"request_id": trace.RequestIDFromContext(ctx),
			"error":      err.Error(),
		})
	}
	return nil
}

func (it *Interface) finishSend() {
	it.mu.Lock()
	it.typing = false
	it.draft = ""
	it.mu.Unlock()
	it.notify()
}

func (it *Interface) setLastErr(err error) {
	it.mu.Lock()
	it.lastErr = err
	it.mu.Unlock()
}

// fail 은 원격 호출 실패를 분류하고 로깅한다. 서버가 토큰을 거절했으면 로그인 안내를 띄운다.
func (it *Interface) fail(ctx context.Context, op string, err error) *Error {
	chatErr := classify(op, err)
	fields := logger.Fields{
		"op":         op,
		"kind":       chatErr.Kind.String(),
		"request_id": trace.RequestIDFromContext(ctx),
		"error":      err.Error(),
	}
	if chatErr.Kind == KindUnauthenticated {
		logger.WarnWithFields("credential rejected by server", fields)
		it.guard.Deny()
		return chatErr
	}
	logger.ErrorWithFields("chat request failed", fields)
	return chatErr
}

func (it *Interface) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if it.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, it.timeout)
}
