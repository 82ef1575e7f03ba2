package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/D-matsu-portfolio/matching-board/internal/pkg/board/application/service"
	board "github.com/D-matsu-portfolio/matching-board/internal/pkg/board/domain"
	repository "github.com/D-matsu-portfolio/matching-board/internal/pkg/board/persistence/repository/port"
	identityhttp "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/presentation/http"
)

// CompanyHandler serves owner-side company management endpoints.
type CompanyHandler struct {
	svc *service.CompanyService
}

func NewCompanyHandler(svc *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

type companyRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), identityhttp.CurrentUserID(c), board.Company{
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create company"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.svc.ListOwned(c.Request.Context(), identityhttp.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load companies"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

func (h *CompanyHandler) Update(c *gin.Context) {
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.svc.Update(c.Request.Context(), identityhttp.CurrentUserID(c), board.Company{
		ID:          c.Param("companyId"),
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
	})
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update company"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), identityhttp.CurrentUserID(c), c.Param("companyId"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete company"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
