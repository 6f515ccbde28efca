package dto

import "time"

// ChatMessageDTO 는 GET /aihelper/chat/ 응답 배열의 한 항목이다.
type ChatMessageDTO struct {
	ID         int64     `json:"id" example:"1"`
	Type       string    `json:"type" example:"user"`
	Message    string    `json:"message" example:"2+2=?"`
	MessagedAt time.Time `json:"messaged_at"`
}

type ChatWithAIRequestDTO struct {
	Message string `json:"message" binding:"required" example:"what is calculus"`
}

type ChatWithAIResponseDTO struct {
	Success bool   `json:"success"`
	Answer  string `json:"answer,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrorResponseDTO는 공통 에러 응답 형식을 통일하기 위한 DTO이다.
type ErrorResponseDTO struct {
	Error string `json:"error" example:"invalid_token"`
}
