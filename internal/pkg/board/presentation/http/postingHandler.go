package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/D-matsu-portfolio/matching-board/internal/pkg/board/application/service"
	board "github.com/D-matsu-portfolio/matching-board/internal/pkg/board/domain"
	repository "github.com/D-matsu-portfolio/matching-board/internal/pkg/board/persistence/repository/port"
	identityhttp "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/presentation/http"
)

// PostingHandler serves the public posting surface and owner-side management.
type PostingHandler struct {
	svc *service.PostingService
}

func NewPostingHandler(svc *service.PostingService) *PostingHandler {
	return &PostingHandler{svc: svc}
}

type postingRequest struct {
	CompanyID    string  `json:"company_id"`
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description" binding:"required"`
	PositionType *string `json:"position_type"`
	Location     *string `json:"location"`
}

// Search is the public listing; no session required.
func (h *PostingHandler) Search(c *gin.Context) {
	q := board.PostingSearch{
		Keyword:      c.Query("q"),
		Location:     c.Query("location"),
		PositionType: c.Query("position_type"),
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			q.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			q.Offset = n
		}
	}

	postings, err := h.svc.Search(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search postings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"postings": postings})
}

// Get is the public posting detail; no session required.
func (h *PostingHandler) Get(c *gin.Context) {
	posting, err := h.svc.Get(c.Request.Context(), c.Param("postingId"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "posting not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posting"})
		return
	}
	c.JSON(http.StatusOK, posting)
}

func (h *PostingHandler) Create(c *gin.Context) {
	var req postingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.CompanyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company_id is required"})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), identityhttp.CurrentUserID(c), board.Posting{
		CompanyID:    req.CompanyID,
		Title:        req.Title,
		Description:  req.Description,
		PositionType: req.PositionType,
		Location:     req.Location,
	})
	if errors.Is(err, repository.ErrNotFound) {
		// The insert matched no owned company.
		c.JSON(http.StatusForbidden, gin.H{"error": "company not found or not owned"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create posting"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *PostingHandler) ListOwned(c *gin.Context) {
	postings, err := h.svc.ListOwned(c.Request.Context(), identityhttp.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load postings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"postings": postings})
}

func (h *PostingHandler) Update(c *gin.Context) {
	var req postingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.svc.Update(c.Request.Context(), identityhttp.CurrentUserID(c), board.Posting{
		ID:           c.Param("postingId"),
		Title:        req.Title,
		Description:  req.Description,
		PositionType: req.PositionType,
		Location:     req.Location,
	})
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "posting not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update posting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *PostingHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), identityhttp.CurrentUserID(c), c.Param("postingId"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "posting not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete posting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
