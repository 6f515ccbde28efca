package aihelperclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// MessageType 은 채팅 메시지의 발화자다.
type MessageType string

const (
	MessageTypeUser      MessageType = "user"
	MessageTypeAssistant MessageType = "assistant"
)

func (t MessageType) Valid() bool {
	return t == MessageTypeUser || t == MessageTypeAssistant
}

// ChatMessage 는 서버가 부여한 id 를 가진 불변 메시지다.
type ChatMessage struct {
	ID         int64       `json:"id"`
	Type       MessageType `json:"type"`
	Message    string      `json:"message"`
	MessagedAt Timestamp   `json:"messaged_at"`
}

// Timestamp 는 서버의 ISO8601 시각을 받는다.
// 타임존이 없는 값(예: 2025-01-01T10:00:00.123456)은 로컬 시각으로 해석한다.
type Timestamp struct {
	time.Time
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		ts.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		ts.Time = t
		return nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			ts.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid messaged_at %q", raw)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.Time.Format(time.RFC3339Nano))
}
