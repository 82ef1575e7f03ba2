package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	identityhttp "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/presentation/http"
	"github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/application/usecase"
)

func newMessagesRouter(repo *threadRepo, viewerID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &GetMessagesController{UC: usecase.NewGetMessagesUseCase(repo)}
	r := gin.New()
	r.GET("/conversations/:conversationId/messages", identityhttp.WithUser(viewerID), h.Handle())
	return r
}

func TestGetMessagesEndpointUnknownConversation(t *testing.T) {
	router := newMessagesRouter(newThreadRepo(), "applicant-1")

	req := httptest.NewRequest(http.MethodGet, "/conversations/conv-missing/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "conversation not found")
}

func TestGetMessagesEndpointRejectsNonParticipant(t *testing.T) {
	// The thread exists but the viewer is neither party.
	router := newMessagesRouter(newThreadRepo(), "stranger")

	req := httptest.NewRequest(http.MethodGet, "/conversations/conv-1/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}
