// file: internals/features/registrations/route/registration_routes.go
package route

import (
	regController "lombaku_backend/internals/features/registrations/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/*
User routes: registrasi langsung + kelola milik sendiri.
Mount contoh: RegistrationUserRoutes(app.Group("/api/u"), db)
*/
func RegistrationUserRoutes(r fiber.Router, db *gorm.DB) {
	regCtl := regController.NewRegistrationController(db)

	regs := r.Group("/registrations")
	regs.Post("/", regCtl.Create)                        // POST   /api/u/registrations
	regs.Get("/", regCtl.ListMine)                       // GET    /api/u/registrations
	regs.Post("/attachments", regCtl.UploadAttachment)   // POST   /api/u/registrations/attachments
	regs.Get("/:id", regCtl.GetByID)                     // GET    /api/u/registrations/:id
	regs.Patch("/:id", regCtl.Update)                    // PATCH  /api/u/registrations/:id (peserta: hanya cancel)
	regs.Delete("/:id", regCtl.Cancel)                   // DELETE /api/u/registrations/:id (soft-cancel, idempoten)
}

/*
Admin/organizer routes: kelola registrasi kompetisi.
Mount contoh: RegistrationAdminRoutes(app.Group("/api/a"), db)
*/
func RegistrationAdminRoutes(r fiber.Router, db *gorm.DB) {
	regCtl := regController.NewRegistrationController(db)

	r.Get("/competitions/:id/registrations", regCtl.ListByCompetition) // GET /api/a/competitions/:id/registrations
	r.Patch("/registrations/:id", regCtl.Update)                       // PATCH /api/a/registrations/:id
	r.Delete("/registrations/:id", regCtl.Cancel)                      // DELETE /api/a/registrations/:id
}
