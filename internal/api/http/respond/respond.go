// Package respond writes the error bodies shared by every API handler.
package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/api/http/middleware"
)

// Errors renders server errors. With expose set, the raw error text is returned to the
// client in the "error" field; otherwise a generic string replaces it.
type Errors struct {
	log    *zap.Logger
	expose bool
}

func NewErrors(log *zap.Logger, expose bool) *Errors {
	if log == nil {
		log = zap.NewNop()
	}
	return &Errors{log: log, expose: expose}
}

// Server logs err and answers 500 {message, error}.
func (e *Errors) Server(c *gin.Context, err error) {
	e.log.Error("request failed",
		zap.String("request_id", middleware.GetRequestID(c.Request.Context())),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)

	detail := "internal error"
	if e.expose {
		detail = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": detail})
}

// Message answers with {message}.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}
