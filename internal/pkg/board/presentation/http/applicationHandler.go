package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/D-matsu-portfolio/matching-board/internal/pkg/board/application/service"
	board "github.com/D-matsu-portfolio/matching-board/internal/pkg/board/domain"
	identityhttp "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/presentation/http"
)

// ApplicationHandler serves applying and both application lists.
type ApplicationHandler struct {
	svc *service.ApplicationService
}

func NewApplicationHandler(svc *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	app, err := h.svc.Apply(c.Request.Context(), identityhttp.CurrentUserID(c), c.Param("postingId"))
	if errors.Is(err, board.ErrAlreadyApplied) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply"})
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) HasApplied(c *gin.Context) {
	applied, err := h.svc.HasApplied(c.Request.Context(), identityhttp.CurrentUserID(c), c.Param("postingId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check application"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": applied})
}

func (h *ApplicationHandler) ListApplicants(c *gin.Context) {
	applicants, err := h.svc.ListApplicants(c.Request.Context(), identityhttp.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load applicants"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applicants": applicants})
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	apps, err := h.svc.ListMine(c.Request.Context(), identityhttp.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load applications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}
