// file: internals/route/index.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	compRoute "lombaku_backend/internals/features/competitions/competition/route"
	regRoute "lombaku_backend/internals/features/registrations/route"
	teamRoute "lombaku_backend/internals/features/teams/route"
	authMiddleware "lombaku_backend/internals/middlewares/auth"

	"lombaku_backend/internals/constants"
)

// SetupRoutes memasang seluruh route tree:
//   - /api      : publik (katalog read-only)
//   - /api/u    : user login (tim, roster, registrasi milik sendiri)
//   - /api/a    : organizer/admin (katalog CRUD, kelola registrasi)
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")
	compRoute.CompetitionPublicRoutes(api, db)

	user := app.Group("/api/u", authMiddleware.AuthMiddleware())
	teamRoute.TeamUserRoutes(user, db)
	regRoute.RegistrationUserRoutes(user, db)

	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorOrganizer("manajemen kompetisi"),
			constants.OrganizerAndAbove,
		),
	)
	compRoute.CompetitionAdminRoutes(admin, db)
	regRoute.RegistrationAdminRoutes(admin, db)
}
