package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/api/http/respond"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/auth"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects/service"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/users"
)

type stubCatalog struct{ projects []domain.Project }

func (s *stubCatalog) Create(_ context.Context, name string) (*domain.Project, error) {
	p := domain.Project{ID: "p-new", Name: name, CreatedAt: time.Now()}
	s.projects = append(s.projects, p)
	return &p, nil
}

func (s *stubCatalog) GetByID(_ context.Context, id string) (*domain.Project, error) {
	for _, p := range s.projects {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCatalog) ListAll(context.Context) ([]domain.Project, error) { return s.projects, nil }

type stubPins map[string]time.Time

func (s stubPins) Toggle(_ context.Context, userID, projectID string) (*domain.ToggleResult, error) {
	if _, ok := s[projectID]; ok {
		delete(s, projectID)
		return &domain.ToggleResult{}, nil
	}
	s[projectID] = time.Now()
	return &domain.ToggleResult{IsPinned: true, Pin: &domain.Pin{ID: "pin-1", UserID: userID, ProjectID: projectID, PinnedAt: s[projectID]}}, nil
}

func (s stubPins) PinnedAtByUser(context.Context, string) (map[string]time.Time, error) {
	return s, nil
}

type stubUnread map[string]int

func (s stubUnread) UnreadCountsByProject(context.Context, string) (map[string]int, error) {
	return s, nil
}

type stubClearer struct{ called bool }

func (s *stubClearer) Clear(_ context.Context, opts domain.ClearOptions) (*domain.ClearResult, error) {
	s.called = true
	res := &domain.ClearResult{}
	if opts.Projects {
		res.Projects = 3
	}
	return res, nil
}

func setup(t *testing.T, projects ...domain.Project) (*gin.Engine, *stubClearer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clr := &stubClearer{}
	svc := service.NewProjectService(&stubCatalog{projects: projects}, stubPins{}, stubUnread{"p-2": 5}, clr, nil)
	h := New(svc, respond.NewErrors(nil, true))

	r := gin.New()
	h.Register(r.Group("/api/projects", func(c *gin.Context) {
		auth.SetUser(c, &users.User{ID: "u-1"})
		c.Next()
	}))
	return r, clr
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestCreateProject(t *testing.T) {
	r, _ := setup(t)

	rr := do(r, http.MethodPost, "/api/projects", `{"name":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"message":"Project name required"}`, rr.Body.String())

	rr = do(r, http.MethodPost, "/api/projects", `{"name":" Alpha "}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"Alpha"`)
}

func TestTogglePin(t *testing.T) {
	r, _ := setup(t, domain.Project{ID: "p-1", Name: "Alpha"})

	rr := do(r, http.MethodPost, "/api/projects/toggle-pin", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(r, http.MethodPost, "/api/projects/toggle-pin", `{"projectId":"nope"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"message":"Project not found"}`, rr.Body.String())

	rr = do(r, http.MethodPost, "/api/projects/toggle-pin", `{"projectId":"p-1"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var pinned struct {
		Message  string      `json:"message"`
		IsPinned bool        `json:"isPinned"`
		Pinned   *domain.Pin `json:"pinned"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pinned))
	assert.Equal(t, "Project pinned", pinned.Message)
	assert.True(t, pinned.IsPinned)
	require.NotNil(t, pinned.Pinned)
	assert.Equal(t, "u-1", pinned.Pinned.UserID)

	rr = do(r, http.MethodPost, "/api/projects/toggle-pin", `{"projectId":"p-1"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Project unpinned","isPinned":false}`, rr.Body.String())
}

func TestListProjects(t *testing.T) {
	r, _ := setup(t,
		domain.Project{ID: "p-1", Name: "Beta"},
		domain.Project{ID: "p-2", Name: "Alpha"},
	)

	rr := do(r, http.MethodGet, "/api/projects?page=x&limit=1", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var page domain.FeedPage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	require.Len(t, page.Projects, 1)
	assert.Equal(t, "Alpha", page.Projects[0].Name)
	assert.Equal(t, 5, page.Projects[0].UnreadCount)
	assert.True(t, page.Projects[0].HasUnread)
	assert.Equal(t, domain.FeedPagination{CurrentPage: 1, TotalPages: 2, TotalProjects: 2, HasMore: true}, page.Pagination)
}

func TestBulkClear(t *testing.T) {
	t.Run("every flag falsy", func(t *testing.T) {
		r, clr := setup(t)
		rr := do(r, http.MethodDelete, "/api/projects/bulk-clear",
			`{"clearProjects":false,"clearNotifications":0,"clearPinnedProjects":""}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), `"options"`)
		assert.False(t, clr.called)
	})

	t.Run("truthy but not true deletes nothing", func(t *testing.T) {
		r, clr := setup(t)
		rr := do(r, http.MethodDelete, "/api/projects/bulk-clear", `{"clearProjects":"true"}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, clr.called)
		assert.JSONEq(t, `{
			"message":"Bulk clear completed",
			"results":{"projects":{"deleted":0},"notifications":{"deleted":0},"pinnedProjects":{"deleted":0}}
		}`, rr.Body.String())
	})

	t.Run("empty body", func(t *testing.T) {
		r, clr := setup(t)
		rr := do(r, http.MethodDelete, "/api/projects/bulk-clear", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.False(t, clr.called)
	})

	t.Run("projects", func(t *testing.T) {
		r, clr := setup(t)
		rr := do(r, http.MethodDelete, "/api/projects/bulk-clear", `{"clearProjects":true}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, clr.called)
		assert.JSONEq(t, `{
			"message":"Bulk clear completed",
			"results":{"projects":{"deleted":3},"notifications":{"deleted":0},"pinnedProjects":{"deleted":0}}
		}`, rr.Body.String())
	})
}
