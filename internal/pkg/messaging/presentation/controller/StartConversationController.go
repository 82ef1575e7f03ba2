package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	identityhttp "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/presentation/http"
	"github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/application/usecase"
	"github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/persistence/repository/adapter"
)

// StartConversationController handles the "message this applicant" endpoint
// One controller per endpoint
type StartConversationController struct {
	UC *usecase.StartConversationUseCase
}

func NewStartConversationController(pool *pgxpool.Pool) *StartConversationController {
	repo := adapter.NewPgMessagingRepository(pool)
	return &StartConversationController{UC: usecase.NewStartConversationUseCase(repo)}
}

// Handle returns a gin handler that opens (or returns the existing)
// conversation for an application. Repeated clicks and racing tabs land on
// the same conversation id.
func (h *StartConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		applicationID := c.Param("applicationId")
		if applicationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "applicationId is required"})
			return
		}

		in := usecase.StartConversationInput{
			ActorID:       identityhttp.CurrentUserID(c),
			ApplicationID: applicationID,
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		conv, err := h.UC.Execute(ctx, in)
		switch {
		case errors.Is(err, usecase.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		case errors.Is(err, usecase.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		case errors.Is(err, usecase.ErrPersistence):
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		case err != nil:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":             conv.ID,
			"application_id": conv.ApplicationID,
			"created_at":     conv.CreatedAt,
		})
	}
}
