package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/D-matsu-portfolio/matching-board/internal/infrastructure/queue/port"
	"github.com/D-matsu-portfolio/matching-board/internal/infrastructure/realtime"
	identityhttp "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/presentation/http"
	identityadapter "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/repository/adapter"
	messaging "github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/application/domain"
	"github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/application/usecase"
	"github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/persistence/repository/adapter"
	repository "github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/persistence/repository/port"
	notiftask "github.com/D-matsu-portfolio/matching-board/internal/pkg/notification/application/task"
)

type sendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessageController persists an outbound message over HTTP, then pushes
// it to the conversation room and enqueues the recipient notification.
// Delivery fan-out is best effort: the message is already saved, so push or
// queue failures are logged and the request still succeeds.
type SendMessageController struct {
	UC       *usecase.SendMessageUseCase
	Profiles *identityadapter.PgIdentityRepository
	Hub      *realtime.Hub
	Queue    port.Client
}

func NewSendMessageController(pool *pgxpool.Pool, hub *realtime.Hub, queue port.Client) *SendMessageController {
	repo := adapter.NewPgMessagingRepository(pool)
	return &SendMessageController{
		UC:       usecase.NewSendMessageUseCase(repo),
		Profiles: identityadapter.NewPgIdentityRepository(pool),
		Hub:      hub,
		Queue:    queue,
	}
}

func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("conversationId")
		if conversationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId is required"})
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		in := usecase.SendMessageInput{
			ConversationID: conversationID,
			SenderID:       identityhttp.CurrentUserID(c),
			Content:        req.Content,
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		res, err := h.UC.Execute(ctx, in)
		switch {
		case errors.Is(err, messaging.ErrEmptyContent):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case errors.Is(err, messaging.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
			return
		case errors.Is(err, usecase.ErrPersistence):
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		case err != nil:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		h.fanOut(ctx, res)

		c.JSON(http.StatusCreated, gin.H{"message": res.Message})
	}
}

// fanOut pushes the saved message to the room (sender excluded, the caller
// already has it from the HTTP response) and enqueues the notification task.
func (h *SendMessageController) fanOut(ctx context.Context, res *usecase.SendMessageResult) {
	frame, err := json.Marshal(ServerFrame{
		Type:           FrameMessage,
		ConversationID: res.Message.ConversationID,
		Message:        &res.Message,
	})
	if err != nil {
		log.Printf("send message: marshal push frame: %v", err)
		return
	}
	// A recipient subscribed to the room already got the broadcast; the direct
	// user push only fires when they are viewing another thread.
	h.Hub.Broadcast(res.Message.ConversationID, frame, res.Message.SenderID)
	if !h.Hub.InRoom(res.Message.ConversationID, res.RecipientID) {
		h.Hub.NotifyUser(res.RecipientID, frame)
	}

	senderName := "Unknown User"
	if profile, err := h.Profiles.GetProfile(ctx, res.Message.SenderID); err == nil {
		senderName = profile.DisplayName()
	}
	_, err = notiftask.Enqueue(ctx, h.Queue, notiftask.NewMessageTaskType, notiftask.NewMessagePayload{
		RecipientID:    res.RecipientID,
		SenderName:     senderName,
		ConversationID: res.Message.ConversationID,
	})
	if err != nil {
		log.Printf("send message: enqueue notification: %v", err)
	}
}
