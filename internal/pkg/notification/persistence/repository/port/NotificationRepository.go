package repository

import (
	"context"
	"errors"

	notification "github.com/D-matsu-portfolio/matching-board/internal/pkg/notification/domain"
)

// ErrNotFound signals the notification does not exist or belongs to another user.
var ErrNotFound = errors.New("notification repository: not found")

// NotificationRepository defines persistence operations for the notification feed.
type NotificationRepository interface {
	Create(ctx context.Context, n notification.Notification) (notification.Notification, error)

	// ListLatest returns the newest notifications for the user, newest first.
	ListLatest(ctx context.Context, userID string, limit int) ([]notification.Notification, error)

	// MarkRead flips the read flag. The user guard is part of the predicate so
	// one user cannot mark another's notifications.
	MarkRead(ctx context.Context, userID string, notificationID string) error
}
