package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/D-matsu-portfolio/matching-board/internal/infrastructure/queue/port"
	"github.com/D-matsu-portfolio/matching-board/internal/infrastructure/realtime"
	identityadapter "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/repository/adapter"
	"github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/service"
	messaging "github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/application/domain"
	"github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/application/usecase"
	"github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/persistence/repository/adapter"
	repository "github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/persistence/repository/port"
	notiftask "github.com/D-matsu-portfolio/matching-board/internal/pkg/notification/application/task"
)

const (
	socketReadLimit = 64 * 1024
	pongWait        = 60 * time.Second
	historyLimit    = 200
	opTimeout       = 3 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// MessageSocketController upgrades to a websocket and runs the read loop for
// one client session. The token is passed as a query parameter because
// browser websocket clients cannot set an Authorization header.
type MessageSocketController struct {
	Auth     *service.AuthService
	Hub      *realtime.Hub
	Repo     repository.MessagingRepository
	GetUC    *usecase.GetMessagesUseCase
	SendUC   *usecase.SendMessageUseCase
	Profiles *identityadapter.PgIdentityRepository
	Queue    port.Client
}

func NewMessageSocketController(pool *pgxpool.Pool, auth *service.AuthService, hub *realtime.Hub, queue port.Client) *MessageSocketController {
	repo := adapter.NewPgMessagingRepository(pool)
	return &MessageSocketController{
		Auth:     auth,
		Hub:      hub,
		Repo:     repo,
		GetUC:    usecase.NewGetMessagesUseCase(repo),
		SendUC:   usecase.NewSendMessageUseCase(repo),
		Profiles: identityadapter.NewPgIdentityRepository(pool),
		Queue:    queue,
	}
}

func (h *MessageSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), opTimeout)
		userID, err := h.Auth.Resolve(ctx, token)
		cancel()
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("socket: upgrade: %v", err)
			return
		}

		conn := realtime.NewConnection(userID, ws)
		h.Hub.Attach(conn)
		go h.readLoop(conn, ws)
	}
}

func (h *MessageSocketController) readLoop(conn *realtime.Connection, ws *websocket.Conn) {
	defer func() {
		h.Hub.Detach(conn)
		conn.Close(websocket.CloseNormalClosure, "bye")
	}()

	ws.SetReadLimit(socketReadLimit)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("socket: read: %v", err)
			}
			return
		}

		var frame ClientFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			h.sendError(conn, "", "malformed frame")
			continue
		}

		switch frame.Type {
		case FrameSubscribe:
			h.handleSubscribe(conn, frame.ConversationID)
		case FrameUnsubscribe:
			h.Hub.Unsubscribe(conn)
			h.send(conn, ServerFrame{Type: FrameAck, ConversationID: frame.ConversationID})
		case FrameMessage:
			h.handleMessage(conn, frame)
		default:
			h.sendError(conn, frame.ConversationID, "unknown frame type")
		}
	}
}

// handleSubscribe checks participation, joins the room, then replays history.
// Joining before the history fetch means a message saved during the fetch is
// broadcast live; if it also lands in the snapshot the client's id dedup
// absorbs the overlap. The Hub guarantees the session leaves any previous
// room first.
func (h *MessageSocketController) handleSubscribe(conn *realtime.Connection, conversationID string) {
	if conversationID == "" {
		h.sendError(conn, "", "conversation_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	conv, err := h.Repo.GetConversation(ctx, conversationID)
	if errors.Is(err, repository.ErrNotFound) {
		h.sendError(conn, conversationID, "conversation not found")
		return
	}
	if err != nil {
		h.sendError(conn, conversationID, "failed to load conversation")
		return
	}
	if _, ok := conv.OtherParty(conn.UserID); !ok {
		h.sendError(conn, conversationID, "not a participant")
		return
	}

	h.Hub.Subscribe(conversationID, conn)

	msgs, err := h.GetUC.Execute(ctx, usecase.GetMessagesInput{
		ConversationID: conversationID,
		ViewerID:       conn.UserID,
		Limit:          historyLimit,
	})
	if err != nil {
		h.Hub.Unsubscribe(conn)
		h.sendError(conn, conversationID, "failed to load history")
		return
	}

	history := messaging.NewHistory(msgs)
	h.send(conn, ServerFrame{
		Type:           FrameHistory,
		ConversationID: conversationID,
		Messages:       history.Messages(),
	})
}

func (h *MessageSocketController) handleMessage(conn *realtime.Connection, frame ClientFrame) {
	conversationID := frame.ConversationID
	if conversationID == "" {
		if current, ok := h.Hub.Subscription(conn); ok {
			conversationID = current
		}
	}
	if conversationID == "" {
		h.sendError(conn, "", "conversation_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := h.SendUC.Execute(ctx, usecase.SendMessageInput{
		ConversationID: conversationID,
		SenderID:       conn.UserID,
		Content:        frame.Content,
	})
	switch {
	case errors.Is(err, messaging.ErrEmptyContent):
		h.sendError(conn, conversationID, "content is empty")
		return
	case errors.Is(err, repository.ErrNotFound):
		h.sendError(conn, conversationID, "conversation not found")
		return
	case errors.Is(err, messaging.ErrNotParticipant):
		h.sendError(conn, conversationID, "not a participant")
		return
	case err != nil:
		h.sendError(conn, conversationID, "failed to send message")
		return
	}

	push := ServerFrame{
		Type:           FrameMessage,
		ConversationID: conversationID,
		Message:        &res.Message,
	}
	payload, err := json.Marshal(push)
	if err != nil {
		log.Printf("socket: marshal push: %v", err)
		return
	}

	// The sender gets the saved row back on their own socket; the room push
	// excludes them so the client never has to dedup its own echo. A recipient
	// already in the room was covered by the broadcast, so the direct user
	// push only fires for a recipient viewing another thread.
	h.send(conn, push)
	h.Hub.Broadcast(conversationID, payload, conn.UserID)
	if !h.Hub.InRoom(conversationID, res.RecipientID) {
		h.Hub.NotifyUser(res.RecipientID, payload)
	}
	h.notifyRecipient(ctx, res)
}

func (h *MessageSocketController) notifyRecipient(ctx context.Context, res *usecase.SendMessageResult) {
	senderName := "Unknown User"
	if profile, err := h.Profiles.GetProfile(ctx, res.Message.SenderID); err == nil {
		senderName = profile.DisplayName()
	}
	_, err := notiftask.Enqueue(ctx, h.Queue, notiftask.NewMessageTaskType, notiftask.NewMessagePayload{
		RecipientID:    res.RecipientID,
		SenderName:     senderName,
		ConversationID: res.Message.ConversationID,
	})
	if err != nil {
		log.Printf("socket: enqueue notification: %v", err)
	}
}

func (h *MessageSocketController) send(conn *realtime.Connection, frame ServerFrame) {
	payload, err := json.Marshal(frame)
	if err != nil {
		log.Printf("socket: marshal frame: %v", err)
		return
	}
	if err := conn.Send(payload); err != nil {
		log.Printf("socket: send: %v", err)
	}
}

func (h *MessageSocketController) sendError(conn *realtime.Connection, conversationID string, msg string) {
	h.send(conn, ServerFrame{Type: FrameError, ConversationID: conversationID, Error: msg})
}
