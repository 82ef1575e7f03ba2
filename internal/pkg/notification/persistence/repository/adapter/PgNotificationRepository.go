package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	notification "github.com/D-matsu-portfolio/matching-board/internal/pkg/notification/domain"
	repository "github.com/D-matsu-portfolio/matching-board/internal/pkg/notification/persistence/repository/port"
)

type PgNotificationRepository struct {
	pool *pgxpool.Pool
}

func NewPgNotificationRepository(pool *pgxpool.Pool) *PgNotificationRepository {
	return &PgNotificationRepository{pool: pool}
}

var _ repository.NotificationRepository = (*PgNotificationRepository)(nil)

func (r *PgNotificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	if r == nil || r.pool == nil {
		return notification.Notification{}, errors.New("PgNotificationRepository: nil pool")
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO notifications (user_id, message, link_to)
		VALUES ($1::uuid, $2, $3)
		RETURNING id::text, is_read, created_at
	`, n.UserID, n.Message, n.LinkTo).Scan(&n.ID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return notification.Notification{}, err
	}
	return n, nil
}

func (r *PgNotificationRepository) ListLatest(ctx context.Context, userID string, limit int) ([]notification.Notification, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgNotificationRepository: nil pool")
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, user_id::text, message, link_to, is_read, created_at
		FROM notifications
		WHERE user_id = $1::uuid
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.LinkTo, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return items, nil
}

func (r *PgNotificationRepository) MarkRead(ctx context.Context, userID string, notificationID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgNotificationRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE notifications
		SET is_read = true
		WHERE id = $1::uuid AND user_id = $2::uuid
	`, notificationID, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
