package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/pagination"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects/domain"
)

// Catalog is the read/write surface of the shared project catalog.
type Catalog interface {
	Create(ctx context.Context, name string) (*domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListAll(ctx context.Context) ([]domain.Project, error)
}

// PinStore holds per-user pins.
type PinStore interface {
	Toggle(ctx context.Context, userID, projectID string) (*domain.ToggleResult, error)
	PinnedAtByUser(ctx context.Context, userID string) (map[string]time.Time, error)
}

// UnreadCounter reports a user's unread notification counts keyed by project ID.
type UnreadCounter interface {
	UnreadCountsByProject(ctx context.Context, userID string) (map[string]int, error)
}

// Clearer empties whole collections.
type Clearer interface {
	Clear(ctx context.Context, opts domain.ClearOptions) (*domain.ClearResult, error)
}

// ProjectService handles project-related business logic
type ProjectService struct {
	catalog Catalog
	pins    PinStore
	unread  UnreadCounter
	clearer Clearer
	log     *zap.Logger
}

// NewProjectService creates a new project service
func NewProjectService(catalog Catalog, pins PinStore, unread UnreadCounter, clearer Clearer, log *zap.Logger) *ProjectService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProjectService{
		catalog: catalog,
		pins:    pins,
		unread:  unread,
		clearer: clearer,
		log:     log,
	}
}

// Create adds a project to the catalog.
func (s *ProjectService) Create(ctx context.Context, name string) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	return s.catalog.Create(ctx, name)
}

// TogglePin flips the caller's pin on an existing project.
func (s *ProjectService) TogglePin(ctx context.Context, userID, projectID string) (*domain.ToggleResult, error) {
	if _, err := s.catalog.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	res, err := s.pins.Toggle(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	s.log.Debug("project pin toggled",
		zap.String("user_id", userID),
		zap.String("project_id", projectID),
		zap.Bool("is_pinned", res.IsPinned),
	)
	return res, nil
}

// Feed returns one page of the catalog ranked for the given user.
func (s *ProjectService) Feed(ctx context.Context, userID string, q pagination.Query) (*domain.FeedPage, error) {
	catalog, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	pins, err := s.pins.PinnedAtByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	unread, err := s.unread.UnreadCountsByProject(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("unread counts: %w", err)
	}

	page := BuildFeed(catalog, pins, unread, q)
	return &page, nil
}

// BulkClear empties the selected collections.
func (s *ProjectService) BulkClear(ctx context.Context, actorID string, opts domain.ClearOptions) (*domain.ClearResult, error) {
	if !opts.Any() {
		return nil, domain.ErrNoClearFlag
	}

	res, err := s.clearer.Clear(ctx, opts)
	if err != nil {
		return nil, err
	}

	s.log.Warn("bulk clear executed",
		zap.String("actor_id", actorID),
		zap.Int64("projects", res.Projects),
		zap.Int64("notifications", res.Notifications),
		zap.Int64("pinned_projects", res.PinnedProjects),
	)
	return res, nil
}
