package service

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/pagination"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects/domain"
)

// DefaultFeedLimit is the page size used when the caller gives none.
const DefaultFeedLimit = 10

// BuildFeed overlays one user's pins and unread counts on the catalog, ranks the result
// and cuts out the requested page.
//
// Ranking is pinned first, then most recently pinned, then name ascending by byte-wise
// (case-sensitive) comparison. Project ID breaks any remaining tie so that paging is
// stable across requests.
func BuildFeed(catalog []domain.Project, pins map[string]time.Time, unread map[string]int, q pagination.Query) domain.FeedPage {
	items := make([]domain.FeedItem, 0, len(catalog))
	for _, p := range catalog {
		item := domain.FeedItem{
			ID:          p.ID,
			Name:        p.Name,
			CreatedAt:   p.CreatedAt,
			UnreadCount: unread[p.ID],
		}
		if at, ok := pins[p.ID]; ok {
			pinnedAt := at
			item.IsPinned = true
			item.PinnedAt = &pinnedAt
		}
		item.HasUnread = item.UnreadCount > 0
		items = append(items, item)
	}

	slices.SortFunc(items, compareFeedItems)

	start, end := q.Window(len(items))
	page := items[start:end]
	meta := pagination.NewMeta(q, len(page), len(items))

	return domain.FeedPage{
		Projects: page,
		Pagination: domain.FeedPagination{
			CurrentPage:   meta.CurrentPage,
			TotalPages:    meta.TotalPages,
			TotalProjects: meta.Total,
			HasMore:       meta.HasMore,
		},
	}
}

func compareFeedItems(a, b domain.FeedItem) int {
	if a.IsPinned != b.IsPinned {
		if a.IsPinned {
			return -1
		}
		return 1
	}
	if a.IsPinned {
		// newer pin first
		if c := b.PinnedAt.Compare(*a.PinnedAt); c != 0 {
			return c
		}
	}
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
