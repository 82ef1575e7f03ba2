package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/D-matsu-portfolio/matching-board/internal/infrastructure/queue/port"
	boardservice "github.com/D-matsu-portfolio/matching-board/internal/pkg/board/application/service"
	boardrepo "github.com/D-matsu-portfolio/matching-board/internal/pkg/board/persistence/repository/adapter"
	identityhttp "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/presentation/http"
	identityrepo "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/repository/adapter"
	"github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/service"
)

// RegisterRoutes mounts the board endpoints under the given group: public
// posting search and detail, and session-guarded owner/applicant surfaces.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, auth *service.AuthService, queue qport.Client) {
	repo := boardrepo.NewPgBoardRepository(pool)
	profiles := identityrepo.NewPgIdentityRepository(pool)

	companyHandler := NewCompanyHandler(boardservice.NewCompanyService(repo))
	postingHandler := NewPostingHandler(boardservice.NewPostingService(repo))
	applicationHandler := NewApplicationHandler(boardservice.NewApplicationService(repo, profiles, queue))

	// Public surface
	g.GET("/postings", postingHandler.Search)
	g.GET("/postings/:postingId", postingHandler.Get)

	authed := g.Group("", identityhttp.RequireSession(auth))

	authed.POST("/companies", companyHandler.Create)
	authed.GET("/companies", companyHandler.List)
	authed.PUT("/companies/:companyId", companyHandler.Update)
	authed.DELETE("/companies/:companyId", companyHandler.Delete)

	authed.POST("/postings", postingHandler.Create)
	authed.PUT("/postings/:postingId", postingHandler.Update)
	authed.DELETE("/postings/:postingId", postingHandler.Delete)
	authed.GET("/dashboard/postings", postingHandler.ListOwned)

	authed.POST("/postings/:postingId/apply", applicationHandler.Apply)
	authed.GET("/postings/:postingId/applied", applicationHandler.HasApplied)
	authed.GET("/dashboard/applicants", applicationHandler.ListApplicants)
	authed.GET("/dashboard/applications", applicationHandler.ListMine)
}
