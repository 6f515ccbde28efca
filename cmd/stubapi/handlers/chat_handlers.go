package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"math-helper/cmd/internal/logger"
	"math-helper/cmd/internal/trace"
	"math-helper/cmd/stubapi/auth"
	"math-helper/cmd/stubapi/dto"
	"math-helper/cmd/stubapi/store"
)

// ListChatHistoryHandler godoc
// @Summary      대화 기록 조회
// @Description  토큰 소유자의 AI helper 대화 기록을 오래된 순서로 반환한다.
// @Tags         aihelper
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   dto.ChatMessageDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /aihelper/chat/ [get]
func ListChatHistoryHandler(mem *store.Memory) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, mem.History(auth.TokenFromContext(c)))
	}
}

// ChatWithAIHandler godoc
// @Summary      AI helper 질의
// @Description  메시지를 기록하고 assistant 답변을 함께 기록한다.
// @Tags         aihelper
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ChatWithAIRequestDTO  true  "chat request"
// @Success      200   {object}  dto.ChatWithAIResponseDTO
// @Failure      400   {object}  dto.ChatWithAIResponseDTO
// @Failure      401   {object}  dto.ErrorResponseDTO
// @Router       /aihelper/chat/with-ai/ [post]
func ChatWithAIHandler(mem *store.Memory) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ChatWithAIRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
			c.JSON(http.StatusBadRequest, dto.ChatWithAIResponseDTO{Success: false, Error: "invalid_request"})
			return
		}

		answer := mem.Ask(auth.TokenFromContext(c), req.Message)
		logger.DebugWithFields("assistant replied", logger.Fields{
			"request_id": trace.RequestIDFromContext(c.Request.Context()),
			"message_id": answer.ID,
		})

		c.JSON(http.StatusOK, dto.ChatWithAIResponseDTO{Success: true, Answer: answer.Message})
	}
}
