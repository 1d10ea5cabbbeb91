package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/api/http/respond"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/auth"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/pagination"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects/service"
)

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		respond.Message(c, http.StatusBadRequest, "Project name required")
		return
	}

	p, err := h.svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		h.errs.Server(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *Handler) togglePin(c *gin.Context) {
	var req togglePinReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ProjectID) == "" {
		respond.Message(c, http.StatusBadRequest, "Project ID required")
		return
	}

	res, err := h.svc.TogglePin(c.Request.Context(), auth.UserID(c), strings.TrimSpace(req.ProjectID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respond.Message(c, http.StatusNotFound, "Project not found")
			return
		}
		h.errs.Server(c, err)
		return
	}

	if !res.IsPinned {
		c.JSON(http.StatusOK, gin.H{"message": "Project unpinned", "isPinned": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project pinned", "isPinned": true, "pinned": res.Pin})
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.Parse(c.Query("page"), c.Query("limit"), service.DefaultFeedLimit)

	page, err := h.svc.Feed(c.Request.Context(), auth.UserID(c), q)
	if err != nil {
		h.errs.Server(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) bulkClear(c *gin.Context) {
	var req bulkClearReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Message(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	if !req.anySet() {
		noClearOption(c)
		return
	}

	opts := domain.ClearOptions{
		Projects:       isTrue(req.ClearProjects),
		Notifications:  isTrue(req.ClearNotifications),
		PinnedProjects: isTrue(req.ClearPinnedProjects),
	}

	res := &domain.ClearResult{}
	if opts.Any() {
		var err error
		res, err = h.svc.BulkClear(c.Request.Context(), auth.UserID(c), opts)
		if err != nil {
			if errors.Is(err, domain.ErrNoClearFlag) {
				noClearOption(c)
				return
			}
			h.errs.Server(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Bulk clear completed",
		"results": bulkClearResults{
			Projects:       deletedCount{res.Projects},
			Notifications:  deletedCount{res.Notifications},
			PinnedProjects: deletedCount{res.PinnedProjects},
		},
	})
}

func noClearOption(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "At least one clear option must be specified",
		"options": gin.H{
			"clearProjects":       "Set to true to clear all projects",
			"clearNotifications":  "Set to true to clear all notifications",
			"clearPinnedProjects": "Set to true to clear all pinned projects",
		},
	})
}
