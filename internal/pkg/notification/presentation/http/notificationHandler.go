package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	identityhttp "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/presentation/http"
	"github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/service"
	notifservice "github.com/D-matsu-portfolio/matching-board/internal/pkg/notification/application/service"
	"github.com/D-matsu-portfolio/matching-board/internal/pkg/notification/persistence/repository/adapter"
	repository "github.com/D-matsu-portfolio/matching-board/internal/pkg/notification/persistence/repository/port"
)

// RegisterRoutes wires the handler against the shared pool.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, auth *service.AuthService) {
	svc := notifservice.NewNotificationService(adapter.NewPgNotificationRepository(pool))
	NewNotificationHandler(svc).RegisterRoutes(g, auth)
}

// NotificationHandler serves the bell-dropdown feed endpoints.
type NotificationHandler struct {
	svc *notifservice.NotificationService
}

func NewNotificationHandler(svc *notifservice.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// RegisterRoutes mounts notification endpoints, all session-guarded.
func (h *NotificationHandler) RegisterRoutes(g *gin.RouterGroup, auth *service.AuthService) {
	authed := g.Group("", identityhttp.RequireSession(auth))
	authed.GET("/notifications", h.List)
	authed.POST("/notifications/:notificationId/read", h.MarkRead)
}

func (h *NotificationHandler) List(c *gin.Context) {
	limit := notifservice.DefaultFeedSize
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	items, err := h.svc.ListLatest(c.Request.Context(), identityhttp.CurrentUserID(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id := c.Param("notificationId")
	err := h.svc.MarkRead(c.Request.Context(), identityhttp.CurrentUserID(c), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notification read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}
