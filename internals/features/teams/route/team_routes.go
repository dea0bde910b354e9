// file: internals/features/teams/route/team_routes.go
package route

import (
	teamController "lombaku_backend/internals/features/teams/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/*
User routes: profil tim + roster.
Mount contoh: TeamUserRoutes(app.Group("/api/u"), db)
*/
func TeamUserRoutes(r fiber.Router, db *gorm.DB) {
	teamCtl := teamController.NewTeamController(db)

	teams := r.Group("/teams")
	teams.Get("/", teamCtl.GetMyTeam)      // GET /api/u/teams
	teams.Put("/", teamCtl.UpsertMyTeam)   // PUT /api/u/teams
	teams.Put("/roster", teamCtl.PutRoster) // PUT /api/u/teams/roster (?&sync via competition_id di body)
}
