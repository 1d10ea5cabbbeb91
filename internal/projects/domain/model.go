package domain

import "time"

// Project is an entry of the shared catalog. Projects have no owner and are visible to
// every user.
type Project struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Pin records that a user bookmarked a project. At most one exists per (user, project).
type Pin struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"user_id"`
	ProjectID string    `json:"project_id"`
	PinnedAt  time.Time `json:"pinned_at"`
}

// FeedItem is a catalog project with the caller's overlay fields.
type FeedItem struct {
	ID          string     `json:"_id"`
	Name        string     `json:"name"`
	CreatedAt   time.Time  `json:"createdAt"`
	IsPinned    bool       `json:"isPinned"`
	PinnedAt    *time.Time `json:"pinnedAt"`
	UnreadCount int        `json:"unreadCount"`
	HasUnread   bool       `json:"hasUnread"`
}

// FeedPagination is the pagination block of the project feed.
type FeedPagination struct {
	CurrentPage   int  `json:"currentPage"`
	TotalPages    int  `json:"totalPages"`
	TotalProjects int  `json:"totalProjects"`
	HasMore       bool `json:"hasMore"`
}

type FeedPage struct {
	Projects   []FeedItem     `json:"projects"`
	Pagination FeedPagination `json:"pagination"`
}

// ToggleResult reports the pin state after a toggle. Pin is set only when the project
// became pinned.
type ToggleResult struct {
	IsPinned bool
	Pin      *Pin
}

// ClearOptions selects which collections a bulk clear empties.
type ClearOptions struct {
	Projects       bool
	Notifications  bool
	PinnedProjects bool
}

// Any reports whether at least one collection is selected.
func (o ClearOptions) Any() bool {
	return o.Projects || o.Notifications || o.PinnedProjects
}

// ClearResult holds deleted row counts per collection.
type ClearResult struct {
	Projects       int64
	Notifications  int64
	PinnedProjects int64
}
