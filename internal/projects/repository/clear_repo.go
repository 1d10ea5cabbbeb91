package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects/domain"
)

const (
	tableProjects       = "projects"
	tableNotifications  = "notifications"
	tablePinnedProjects = "user_pinned_projects"
)

// ClearRepository empties whole collections for the admin bulk-clear operation.
type ClearRepository struct {
	db *sql.DB
}

func NewClearRepository(db *sql.DB) *ClearRepository {
	return &ClearRepository{db: db}
}

// Clear deletes every row of the selected tables in one transaction. Either all selected
// tables are emptied or none is.
func (r *ClearRepository) Clear(ctx context.Context, opts domain.ClearOptions) (*domain.ClearResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var res domain.ClearResult
	steps := []struct {
		enabled bool
		table   string
		count   *int64
	}{
		{opts.Projects, tableProjects, &res.Projects},
		{opts.Notifications, tableNotifications, &res.Notifications},
		{opts.PinnedProjects, tablePinnedProjects, &res.PinnedProjects},
	}

	for _, s := range steps {
		if !s.enabled {
			continue
		}
		result, err := tx.ExecContext(ctx, "DELETE FROM "+pq.QuoteIdentifier(s.table))
		if err != nil {
			return nil, fmt.Errorf("clear %s: %w", s.table, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return nil, err
		}
		*s.count = n
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &res, nil
}
