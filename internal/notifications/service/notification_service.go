package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/notifications/domain"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/notifications/events"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/pagination"
)

// DefaultListLimit is the page size used when the client sends none.
const DefaultListLimit = 20

// Store is the persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, in domain.CreateInput) (*domain.Notification, error)
	List(ctx context.Context, f domain.ListFilter) ([]domain.ListedNotification, error)
	Count(ctx context.Context, recipientID string, unreadOnly bool) (int, error)
	MarkRead(ctx context.Context, id, recipientID string) (*domain.Notification, error)
}

// NotificationService handles notification business logic
type NotificationService struct {
	store     Store
	publisher events.Publisher
	log       *zap.Logger
}

// NewNotificationService creates a new notification service. A nil publisher disables
// live events.
func NewNotificationService(store Store, publisher events.Publisher, log *zap.Logger) *NotificationService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &NotificationService{store: store, publisher: publisher, log: log}
}

// Create stores an unread notification from senderID and announces it to the recipient.
func (s *NotificationService) Create(ctx context.Context, senderID string, in domain.CreateInput) (*domain.Notification, error) {
	in.RecipientID = strings.TrimSpace(in.RecipientID)
	in.Title = strings.TrimSpace(in.Title)
	if in.RecipientID == "" || in.Title == "" {
		return nil, domain.ErrMissingRecipient
	}
	in.SenderID = senderID
	in.ProjectID = strings.TrimSpace(in.ProjectID)

	n, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.publish(ctx, n.RecipientID, events.Event{Type: events.TypeCreated, Notification: n})
	return n, nil
}

// List returns a page of recipientID's notifications plus their total unread count.
func (s *NotificationService) List(ctx context.Context, recipientID string, q pagination.Query, unreadOnly bool) (*domain.ListPage, error) {
	items, err := s.store.List(ctx, domain.ListFilter{
		RecipientID: recipientID,
		UnreadOnly:  unreadOnly,
		Limit:       q.Limit,
		Offset:      q.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	total, err := s.store.Count(ctx, recipientID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}

	unread := total
	if !unreadOnly {
		if unread, err = s.store.Count(ctx, recipientID, true); err != nil {
			return nil, fmt.Errorf("failed to count unread notifications: %w", err)
		}
	}

	return &domain.ListPage{
		Notifications: items,
		UnreadCount:   unread,
		Pagination:    pagination.NewMeta(q, len(items), total),
	}, nil
}

// MarkRead marks a notification owned by recipientID as read. Marking an already read
// notification succeeds again.
func (s *NotificationService) MarkRead(ctx context.Context, recipientID, id string) (*domain.Notification, error) {
	n, err := s.store.MarkRead(ctx, strings.TrimSpace(id), recipientID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, recipientID, events.Event{Type: events.TypeRead, Notification: n})
	return n, nil
}

func (s *NotificationService) publish(ctx context.Context, recipientID string, ev events.Event) {
	if err := s.publisher.Publish(ctx, recipientID, ev); err != nil {
		s.log.Warn("failed to publish notification event",
			zap.String("type", ev.Type),
			zap.String("recipient_id", recipientID),
			zap.Error(err),
		)
	}
}
