package domain

import (
	"errors"
	"time"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/pagination"
)

var (
	ErrNotFound         = errors.New("notification not found")
	ErrMissingRecipient = errors.New("recipient ID and title are required")
)

// Notification is addressed to exactly one recipient and optionally tied to a project and
// a sender.
type Notification struct {
	ID          string    `json:"_id"`
	RecipientID string    `json:"recipient_id"`
	SenderID    *string   `json:"sender_id"`
	ProjectID   *string   `json:"project_id"`
	Title       string    `json:"title"`
	Body        *string   `json:"body"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserRef and ProjectRef are the populated references of a listed notification.
type UserRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ProjectRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// ListedNotification is a notification with its sender and project resolved when they
// still exist.
type ListedNotification struct {
	Notification
	Sender  *UserRef    `json:"sender,omitempty"`
	Project *ProjectRef `json:"project,omitempty"`
}

type CreateInput struct {
	RecipientID string
	SenderID    string
	ProjectID   string
	Title       string
	Body        string
}

type ListFilter struct {
	RecipientID string
	UnreadOnly  bool
	Limit       int
	Offset      int
}

// ListPage is a page of a recipient's notifications. UnreadCount is the recipient's total
// unread count regardless of the UnreadOnly filter.
type ListPage struct {
	Notifications []ListedNotification `json:"notifications"`
	UnreadCount   int                  `json:"unreadCount"`
	Pagination    pagination.Meta      `json:"pagination"`
}
