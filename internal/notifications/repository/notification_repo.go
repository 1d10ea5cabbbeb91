package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/notifications/domain"
)

// NotificationRepository provides persistence operations for notifications
type NotificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = `n.id, n.recipient_id, n.sender_id, n.project_id, n.title, n.body, n.is_read, n.created_at`

// Create inserts an unread notification.
func (r *NotificationRepository) Create(ctx context.Context, in domain.CreateInput) (*domain.Notification, error) {
	const q = `
INSERT INTO notifications AS n (id, recipient_id, sender_id, project_id, title, body)
VALUES ($1, $2, nullif($3, ''), nullif($4, ''), $5, nullif($6, ''))
RETURNING ` + notificationColumns + `;
`
	n, err := scanNotification(r.db.QueryRowContext(ctx, q,
		uuid.New().String(), in.RecipientID, in.SenderID, in.ProjectID, in.Title, in.Body,
	))
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	return n, nil
}

// List returns a recipient's notifications newest first, with sender and project
// resolved through left joins.
func (r *NotificationRepository) List(ctx context.Context, f domain.ListFilter) ([]domain.ListedNotification, error) {
	const q = `
SELECT ` + notificationColumns + `,
       s.id, s.name, s.email,
       p.id, p.name
FROM notifications n
LEFT JOIN users s ON s.id = n.sender_id
LEFT JOIN projects p ON p.id = n.project_id
WHERE n.recipient_id = $1
  AND ($2 = false OR n.is_read = false)
ORDER BY n.created_at DESC, n.id DESC
LIMIT $3 OFFSET $4;
`
	rows, err := r.db.QueryContext(ctx, q, f.RecipientID, f.UnreadOnly, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ListedNotification, 0, f.Limit)
	for rows.Next() {
		var (
			item                      domain.ListedNotification
			senderID, projectID, body sql.NullString
			sID, sName, sEmail        sql.NullString
			pID, pName                sql.NullString
		)
		if err := rows.Scan(
			&item.ID, &item.RecipientID, &senderID, &projectID, &item.Title, &body, &item.IsRead, &item.CreatedAt,
			&sID, &sName, &sEmail,
			&pID, &pName,
		); err != nil {
			return nil, err
		}
		item.SenderID = nullableString(senderID)
		item.ProjectID = nullableString(projectID)
		item.Body = nullableString(body)
		if sID.Valid {
			item.Sender = &domain.UserRef{ID: sID.String, Name: sName.String, Email: sEmail.String}
		}
		if pID.Valid {
			item.Project = &domain.ProjectRef{ID: pID.String, Name: pName.String}
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns how many notifications match the recipient filter.
func (r *NotificationRepository) Count(ctx context.Context, recipientID string, unreadOnly bool) (int, error) {
	const q = `
SELECT count(*)
FROM notifications
WHERE recipient_id = $1
  AND ($2 = false OR is_read = false);
`
	var n int
	if err := r.db.QueryRowContext(ctx, q, recipientID, unreadOnly).Scan(&n); err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return n, nil
}

// UnreadCountsByProject returns the recipient's unread notification counts keyed by
// project ID. Notifications without a project are not counted.
func (r *NotificationRepository) UnreadCountsByProject(ctx context.Context, userID string) (map[string]int, error) {
	const q = `
SELECT project_id, count(*)
FROM notifications
WHERE recipient_id = $1
  AND is_read = false
  AND project_id IS NOT NULL
GROUP BY project_id;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("count unread by project: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			projectID string
			n         int
		)
		if err := rows.Scan(&projectID, &n); err != nil {
			return nil, err
		}
		out[projectID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead flags a notification as read when recipientID owns it. Any other caller gets
// domain.ErrNotFound.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID string) (*domain.Notification, error) {
	const q = `
UPDATE notifications AS n
SET is_read = true
WHERE n.id = $1 AND n.recipient_id = $2
RETURNING ` + notificationColumns + `;
`
	n, err := scanNotification(r.db.QueryRowContext(ctx, q, id, recipientID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	return n, nil
}

func scanNotification(row *sql.Row) (*domain.Notification, error) {
	var (
		n                         domain.Notification
		senderID, projectID, body sql.NullString
	)
	if err := row.Scan(&n.ID, &n.RecipientID, &senderID, &projectID, &n.Title, &body, &n.IsRead, &n.CreatedAt); err != nil {
		return nil, err
	}
	n.SenderID = nullableString(senderID)
	n.ProjectID = nullableString(projectID)
	n.Body = nullableString(body)
	return &n, nil
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
