package session

import (
	"context"
	"errors"
	"sync"
)

// CredentialKey 는 외부 로그인 흐름이 access 토큰을 기록하는 잘 알려진 키다.
const CredentialKey = "access"

// ErrNotFound 는 키가 저장소에 없을 때 반환된다.
var ErrNotFound = errors.New("session: key not found")

// Store 는 프로세스 밖에서도 유지되는 문자열 key-value 저장소다.
// 핵심 채팅 로직은 Get 만 사용하고, Set/Delete 는 로그인/로그아웃 흐름이 사용한다.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore 는 테스트와 임시 실행을 위한 Store 구현이다.
type MemoryStore struct {
	mu   sync.RWMutex
	vals map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{vals: map[string]string{}}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vals[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vals, key)
	return nil
}
