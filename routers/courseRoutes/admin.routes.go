package courseRoutes

import (
	controllers "studybyte/controllers/course"
	"studybyte/middleware"
	"studybyte/models"
	validators "studybyte/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupAdminCertificateRoutes sets up certificate administration routes
func SetupAdminCertificateRoutes(app *fiber.App, auth fiber.Handler, db *gorm.DB, h *controllers.CertificateController) {
	adminGroup := app.Group("/admin/certificate", auth, middleware.CheckPermissionMiddleware(db, models.PermissionRevokeCertificate))

	adminGroup.Post("/:number/revoke", validators.CertificateNumber(), h.RevokeCertificate)
}
