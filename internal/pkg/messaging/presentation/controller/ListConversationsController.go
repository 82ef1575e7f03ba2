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

// ListConversationsController handles the conversation list endpoint
// One controller per endpoint
type ListConversationsController struct {
	UC *usecase.ListConversationsUseCase
}

func NewListConversationsController(pool *pgxpool.Pool) *ListConversationsController {
	repo := adapter.NewPgMessagingRepository(pool)
	return &ListConversationsController{UC: usecase.NewListConversationsUseCase(repo)}
}

func (h *ListConversationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		in := usecase.ListConversationsInput{UserID: identityhttp.CurrentUserID(c)}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		views, err := h.UC.Execute(ctx, in)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"conversations": views})
	}
}
