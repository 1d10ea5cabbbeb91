package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects/domain"
)

// PinRepository stores per-user project pins. The (user_id, project_id) unique constraint
// on user_pinned_projects guarantees at most one pin per pair.
type PinRepository struct {
	db *sql.DB
}

func NewPinRepository(db *sql.DB) *PinRepository {
	return &PinRepository{db: db}
}

// Toggle removes the caller's pin on the project if one exists, otherwise creates it.
func (r *PinRepository) Toggle(ctx context.Context, userID, projectID string) (*domain.ToggleResult, error) {
	const del = `
DELETE FROM user_pinned_projects
WHERE user_id = $1 AND project_id = $2;
`
	res, err := r.db.ExecContext(ctx, del, userID, projectID)
	if err != nil {
		return nil, fmt.Errorf("delete pin: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return &domain.ToggleResult{IsPinned: false}, nil
	}

	const ins = `
INSERT INTO user_pinned_projects (id, user_id, project_id, pinned_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (user_id, project_id) DO NOTHING
RETURNING id, user_id, project_id, pinned_at;
`
	var p domain.Pin
	err = r.db.QueryRowContext(ctx, ins, uuid.New().String(), userID, projectID).
		Scan(&p.ID, &p.UserID, &p.ProjectID, &p.PinnedAt)
	if err == nil {
		return &domain.ToggleResult{IsPinned: true, Pin: &p}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("insert pin: %w", err)
	}

	// A concurrent toggle inserted the pin between our delete and insert.
	existing, err := r.get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	return &domain.ToggleResult{IsPinned: true, Pin: existing}, nil
}

// PinnedAtByUser returns pin timestamps keyed by project ID for one user.
func (r *PinRepository) PinnedAtByUser(ctx context.Context, userID string) (map[string]time.Time, error) {
	const q = `
SELECT project_id, pinned_at
FROM user_pinned_projects
WHERE user_id = $1;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list pins: %w", err)
	}
	defer rows.Close()

	out := make(map[string]time.Time)
	for rows.Next() {
		var (
			projectID string
			pinnedAt  time.Time
		)
		if err := rows.Scan(&projectID, &pinnedAt); err != nil {
			return nil, err
		}
		out[projectID] = pinnedAt
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PinRepository) get(ctx context.Context, userID, projectID string) (*domain.Pin, error) {
	const q = `
SELECT id, user_id, project_id, pinned_at
FROM user_pinned_projects
WHERE user_id = $1 AND project_id = $2;
`
	var p domain.Pin
	err := r.db.QueryRowContext(ctx, q, userID, projectID).
		Scan(&p.ID, &p.UserID, &p.ProjectID, &p.PinnedAt)
	if err != nil {
		return nil, fmt.Errorf("get pin: %w", err)
	}
	return &p, nil
}
