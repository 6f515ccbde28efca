package router

import (
	"github.com/gin-gonic/gin"

	"math-helper/cmd/stubapi/auth"
	"math-helper/cmd/stubapi/handlers"
	"math-helper/cmd/stubapi/middleware"
	"math-helper/cmd/stubapi/store"
)

type Options struct {
	// Tokens 가 비어 있으면 비어 있지 않은 모든 bearer 토큰을 허용한다.
	Tokens []string
}

func New(mem *store.Memory, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace())

	r.GET("/health", handlers.HealthHandler)

	r.GET("/articles/all/", handlers.ListArticlesHandler(mem))

	aihelper := r.Group("/aihelper/chat", auth.RequireBearer(opts.Tokens))
	{
		aihelper.GET("/", handlers.ListChatHistoryHandler(mem))
		aihelper.POST("/with-ai/", handlers.ChatWithAIHandler(mem))
	}

	return r
}
