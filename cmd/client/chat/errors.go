package chat

import (
	"errors"
	"fmt"

	"math-helper/cmd/client/clients/aihelperclient"
)

// Kind 는 실패를 사용자 관점에서 분류한다.
type Kind int

const (
	KindUnknown Kind = iota
	// KindUnauthenticated: 자격 증명이 없거나 서버가 거절했다. 로그인 안내 모달이 이미 떠 있다.
	KindUnauthenticated
	// KindTransport: 네트워크 실패, deadline 만료, 2xx 가 아닌 응답, success=false 응답.
	KindTransport
	// KindMalformed: 응답 본문이 기대한 형태가 아니다. Transport 와 똑같이 흡수된다.
	KindMalformed
	// KindValidation: 요청 전에 로컬에서 걸러졌다. 에러로 로깅하지 않는다.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindTransport:
		return "transport"
	case KindMalformed:
		return "malformed"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

var (
	ErrEmptyDraft      = errors.New("chat: draft is empty")
	ErrSendInProgress  = errors.New("chat: a send is already in flight")
	ErrNotAcknowledged = errors.New("chat: server did not acknowledge the message")
	// ErrSuperseded 는 더 나중에 시작된 refresh 가 있어 응답을 버렸음을 알린다. 실패가 아니다.
	ErrSuperseded = errors.New("chat: refresh superseded by a newer one")
)

// Error 는 채팅 동작(op) 하나의 실패를 분류와 함께 담는다.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("chat %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// KindOf 는 err 체인에서 *Error 를 찾아 분류를 돌려준다.
func KindOf(err error) Kind {
	var chatErr *Error
	if errors.As(err, &chatErr) {
		return chatErr.Kind
	}
	return KindUnknown
}

func classify(op string, err error) *Error {
	switch {
	case errors.Is(err, aihelperclient.ErrUnauthorized):
		return &Error{Kind: KindUnauthenticated, Op: op, Err: err}
	case errors.Is(err, aihelperclient.ErrMalformedResponse):
		return &Error{Kind: KindMalformed, Op: op, Err: err}
	default:
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}
}
