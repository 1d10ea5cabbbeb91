package http

import (
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/api/http/respond"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects/service"
)

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc  *service.ProjectService
	errs *respond.Errors
}

func New(svc *service.ProjectService, errs *respond.Errors) *Handler {
	return &Handler{svc: svc, errs: errs}
}

type createReq struct {
	Name string `json:"name"`
}

type togglePinReq struct {
	ProjectID string `json:"projectId"`
}

// bulkClearReq keeps the flags untyped. A request is rejected only when every flag is
// falsy (absent, false, 0, ""), but only a JSON true selects a table, so
// {"clearProjects":"true"} is accepted and deletes nothing.
type bulkClearReq struct {
	ClearProjects       any `json:"clearProjects"`
	ClearNotifications  any `json:"clearNotifications"`
	ClearPinnedProjects any `json:"clearPinnedProjects"`
}

func (r bulkClearReq) anySet() bool {
	return isTruthy(r.ClearProjects) || isTruthy(r.ClearNotifications) || isTruthy(r.ClearPinnedProjects)
}

func isTrue(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func isTruthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}

type deletedCount struct {
	Deleted int64 `json:"deleted"`
}

type bulkClearResults struct {
	Projects       deletedCount `json:"projects"`
	Notifications  deletedCount `json:"notifications"`
	PinnedProjects deletedCount `json:"pinnedProjects"`
}
