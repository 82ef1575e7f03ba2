package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/D-matsu-portfolio/matching-board/internal/infrastructure/queue/port"
	"github.com/D-matsu-portfolio/matching-board/internal/infrastructure/realtime"
	identityhttp "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/presentation/http"
	"github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/service"
	"github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/presentation/controller"
)

// RegisterRoutes mounts the conversation and message endpoints.
// The websocket endpoint authenticates via query token inside the controller,
// every other route goes through the session middleware.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, auth *service.AuthService, hub *realtime.Hub, queue qport.Client) {
	g.GET("/messages/ws", controller.NewMessageSocketController(pool, auth, hub, queue).Handle())

	authed := g.Group("", identityhttp.RequireSession(auth))
	authed.POST("/applications/:applicationId/conversation", controller.NewStartConversationController(pool).Handle())
	authed.GET("/conversations", controller.NewListConversationsController(pool).Handle())
	authed.GET("/conversations/:conversationId/messages", controller.NewGetMessagesController(pool).Handle())
	authed.POST("/conversations/:conversationId/messages", controller.NewSendMessageController(pool, hub, queue).Handle())
}
