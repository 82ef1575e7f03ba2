package service

import (
	"context"
	"fmt"

	notification "github.com/D-matsu-portfolio/matching-board/internal/pkg/notification/domain"
	repository "github.com/D-matsu-portfolio/matching-board/internal/pkg/notification/persistence/repository/port"
)

// DefaultFeedSize is how many entries the bell dropdown shows.
const DefaultFeedSize = 10

// NotificationService mediates the per-user notification feed.
type NotificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Create persists a feed entry for the user.
func (s *NotificationService) Create(ctx context.Context, userID string, message string, linkTo *string) (*notification.Notification, error) {
	if userID == "" || message == "" {
		return nil, fmt.Errorf("notification: user_id and message are required")
	}
	n, err := s.repo.Create(ctx, notification.Notification{UserID: userID, Message: message, LinkTo: linkTo})
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ListLatest returns the newest entries, capped at DefaultFeedSize when
// limit is not positive.
func (s *NotificationService) ListLatest(ctx context.Context, userID string, limit int) ([]notification.Notification, error) {
	if userID == "" {
		return nil, fmt.Errorf("notification: user_id is required")
	}
	if limit <= 0 {
		limit = DefaultFeedSize
	}
	return s.repo.ListLatest(ctx, userID, limit)
}

// MarkRead flips the read flag for one of the user's notifications.
func (s *NotificationService) MarkRead(ctx context.Context, userID string, notificationID string) error {
	if userID == "" || notificationID == "" {
		return fmt.Errorf("notification: user_id and notification_id are required")
	}
	return s.repo.MarkRead(ctx, userID, notificationID)
}
