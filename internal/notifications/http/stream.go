package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/api/http/respond"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/auth"
)

// stream pushes the caller's notification events using Server-Sent Events (SSE)
func (h *Handler) stream(c *gin.Context) {
	if h.sub == nil {
		respond.Message(c, http.StatusServiceUnavailable, "Notification stream unavailable")
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		respond.Message(c, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ctx := c.Request.Context()
	userID := auth.UserID(c)

	evs, err := h.sub.Subscribe(ctx, userID)
	if err != nil {
		h.errs.Server(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering
	c.Status(http.StatusOK)

	fmt.Fprint(c.Writer, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Client disconnected
			return

		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()

		case ev, ok := <-evs:
			if !ok {
				return
			}
			data, err := json.Marshal(ev.Notification)
			if err != nil {
				continue
			}
			fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", ev.Type, data)
			flusher.Flush()
		}
	}
}
