package http

import "github.com/gin-gonic/gin"

// Register attaches notification routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/stream", h.stream)
	rg.PATCH("/:notificationId/read", h.markRead)
}
