package task

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/D-matsu-portfolio/matching-board/internal/infrastructure/queue/port"
	"github.com/D-matsu-portfolio/matching-board/internal/pkg/notification/application/service"
	repoAdapter "github.com/D-matsu-portfolio/matching-board/internal/pkg/notification/persistence/repository/adapter"
)

// Task names for notification fan-out within the notify queue.
const (
	NewMessageTaskType     = "notify:new_message"
	NewApplicationTaskType = "notify:application"
)

// NewMessagePayload is enqueued after a message insert so the recipient gets
// a feed entry pointing at the conversation.
type NewMessagePayload struct {
	RecipientID    string `json:"recipientId"`
	SenderName     string `json:"senderName"`
	ConversationID string `json:"conversationId"`
}

// NewApplicationPayload is enqueued after an application insert so the
// posting owner gets a feed entry.
type NewApplicationPayload struct {
	OwnerID       string `json:"ownerId"`
	ApplicantName string `json:"applicantName"`
	PostingTitle  string `json:"postingTitle"`
	ApplicationID string `json:"applicationId"`
}

// RegisterNotificationTasks binds both fan-out handlers to the worker server.
// Handlers construct their dependencies from the pool per execution, matching
// how the queue re-runs tasks on retry.
func RegisterNotificationTasks(srv qport.Server, pool *pgxpool.Pool) {
	srv.Register(NewMessageTaskType, func(ctx context.Context, t qport.Task) error {
		var p NewMessagePayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: do not retry indefinitely
			return err
		}

		svc := service.NewNotificationService(repoAdapter.NewPgNotificationRepository(pool))

		link := "/messages/" + p.ConversationID
		msg := p.SenderName + "さんからメッセージが届きました"

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		_, err := svc.Create(ctx, p.RecipientID, msg, &link)
		return err
	})

	srv.Register(NewApplicationTaskType, func(ctx context.Context, t qport.Task) error {
		var p NewApplicationPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			return err
		}

		svc := service.NewNotificationService(repoAdapter.NewPgNotificationRepository(pool))

		link := "/dashboard"
		msg := p.ApplicantName + "さんが「" + p.PostingTitle + "」に応募しました"

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		_, err := svc.Create(ctx, p.OwnerID, msg, &link)
		return err
	})
}

// Enqueue serializes the payload and hands it to the queue on the notify
// queue with a modest retry budget. Callers treat failures as best-effort.
func Enqueue(ctx context.Context, client qport.Client, taskType string, payload any) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return client.Enqueue(ctx, qport.Task{Type: taskType, Payload: b}, qport.EnqueueOption{
		Queue:    "notify",
		MaxRetry: 10,
	})
}
