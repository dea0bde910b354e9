// file: internals/features/competitions/competition/route/competition_routes.go
package route

import (
	compController "lombaku_backend/internals/features/competitions/competition/controller"
	eventController "lombaku_backend/internals/features/competitions/event/controller"
	groupController "lombaku_backend/internals/features/competitions/group/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/*
Public routes: katalog read-only.
Mount contoh: CompetitionPublicRoutes(app.Group("/api"), db)
*/
func CompetitionPublicRoutes(r fiber.Router, db *gorm.DB) {
	compCtl := compController.NewCompetitionController(db)
	eventCtl := eventController.NewEventController(db)
	groupCtl := groupController.NewGroupController(db)

	competitions := r.Group("/competitions")
	competitions.Get("/", compCtl.List)                      // GET /api/competitions
	competitions.Get("/:id", compCtl.GetByID)                // GET /api/competitions/:id
	competitions.Get("/:id/events", eventCtl.ListByCompetition)  // GET /api/competitions/:id/events
	competitions.Get("/:id/groups", groupCtl.ListByCompetition)  // GET /api/competitions/:id/groups
}

/*
Admin/organizer routes: full CRUD katalog.
Mount contoh: CompetitionAdminRoutes(app.Group("/api/a"), db)
*/
func CompetitionAdminRoutes(r fiber.Router, db *gorm.DB) {
	compCtl := compController.NewCompetitionController(db)
	eventCtl := eventController.NewEventController(db)
	groupCtl := groupController.NewGroupController(db)

	competitions := r.Group("/competitions")
	competitions.Post("/", compCtl.Create)      // POST   /api/a/competitions
	competitions.Put("/:id", compCtl.Update)    // PUT    /api/a/competitions/:id
	competitions.Delete("/:id", compCtl.Delete) // DELETE /api/a/competitions/:id

	events := r.Group("/events")
	events.Post("/", eventCtl.Create)      // POST   /api/a/events
	events.Put("/:id", eventCtl.Update)    // PUT    /api/a/events/:id
	events.Delete("/:id", eventCtl.Delete) // DELETE /api/a/events/:id

	groups := r.Group("/groups")
	groups.Post("/", groupCtl.Create)      // POST   /api/a/groups
	groups.Put("/:id", groupCtl.Update)    // PUT    /api/a/groups/:id
	groups.Delete("/:id", groupCtl.Delete) // DELETE /api/a/groups/:id
}
