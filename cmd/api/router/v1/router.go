package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/D-matsu-portfolio/matching-board/internal/infrastructure/queue/port"
	"github.com/D-matsu-portfolio/matching-board/internal/infrastructure/realtime"
	boardhttp "github.com/D-matsu-portfolio/matching-board/internal/pkg/board/presentation/http"
	identityhttp "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/presentation/http"
	"github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/service"
	messaginghttp "github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/presentation/http"
	notificationhttp "github.com/D-matsu-portfolio/matching-board/internal/pkg/notification/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(r *gin.Engine, pool *pgxpool.Pool, auth *service.AuthService, hub *realtime.Hub, queue qport.Client) {
	v1 := r.Group("/api/v1")

	identityhttp.NewAuthHandler(auth).RegisterRoutes(v1)
	boardhttp.RegisterRoutes(v1, pool, auth, queue)
	messaginghttp.RegisterRoutes(v1, pool, auth, hub, queue)
	notificationhttp.RegisterRoutes(v1, pool, auth)
}
