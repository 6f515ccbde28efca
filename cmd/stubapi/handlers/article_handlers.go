package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"math-helper/cmd/stubapi/store"
)

// ListArticlesHandler godoc
// @Summary      기사 목록
// @Description  인증 없이 모든 기사를 반환한다.
// @Tags         articles
// @Produce      json
// @Success      200  {array}  dto.ArticleDTO
// @Router       /articles/all/ [get]
func ListArticlesHandler(mem *store.Memory) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, mem.Articles())
	}
}

func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
