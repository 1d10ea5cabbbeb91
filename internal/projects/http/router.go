package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group. adminOnly guards the
// destructive bulk-clear route.
func (h *Handler) Register(rg *gin.RouterGroup, adminOnly ...gin.HandlerFunc) {
	rg.POST("", h.create)
	rg.POST("/toggle-pin", h.togglePin)
	rg.GET("", h.list)

	chain := append(append([]gin.HandlerFunc{}, adminOnly...), h.bulkClear)
	rg.DELETE("/bulk-clear", chain...)
}
