package http

import (
	"time"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/api/http/respond"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/notifications/events"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/notifications/service"
)

const keepAliveInterval = 15 * time.Second

// Handler bundles the dependencies for notification HTTP endpoints. sub may be nil, in
// which case the stream endpoint answers 503.
type Handler struct {
	svc       *service.NotificationService
	sub       *events.Subscriber
	errs      *respond.Errors
	keepAlive time.Duration
}

func New(svc *service.NotificationService, sub *events.Subscriber, errs *respond.Errors) *Handler {
	return &Handler{svc: svc, sub: sub, errs: errs, keepAlive: keepAliveInterval}
}

type createReq struct {
	RecipientID string `json:"recipient_id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	ProjectID   string `json:"project_id"`
}
