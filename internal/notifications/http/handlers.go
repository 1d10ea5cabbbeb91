package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/api/http/respond"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/auth"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/notifications/domain"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/notifications/service"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/pagination"
)

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Message(c, http.StatusBadRequest, "Recipient ID and title are required")
		return
	}

	n, err := h.svc.Create(c.Request.Context(), auth.UserID(c), domain.CreateInput{
		RecipientID: req.RecipientID,
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Body:        req.Body,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMissingRecipient) {
			respond.Message(c, http.StatusBadRequest, "Recipient ID and title are required")
			return
		}
		h.errs.Server(c, err)
		return
	}

	c.JSON(http.StatusCreated, n)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.Parse(c.Query("page"), c.Query("limit"), service.DefaultListLimit)
	unreadOnly := c.Query("unreadOnly") == "true"

	page, err := h.svc.List(c.Request.Context(), auth.UserID(c), q, unreadOnly)
	if err != nil {
		h.errs.Server(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) markRead(c *gin.Context) {
	n, err := h.svc.MarkRead(c.Request.Context(), auth.UserID(c), c.Param("notificationId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respond.Message(c, http.StatusNotFound, "Notification not found")
			return
		}
		h.errs.Server(c, err)
		return
	}

	c.JSON(http.StatusOK, n)
}
