package courseRoutes

import (
	controllers "studybyte/controllers/course"
	"studybyte/middleware"
	"studybyte/models"
	validators "studybyte/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCertificateRoutes sets up certificate issuance, download and the
// public verification lookup
func SetupCertificateRoutes(app *fiber.App, auth fiber.Handler, h *controllers.CertificateController) {
	certGroup := app.Group("/certificate")

	// Public verification
	certGroup.Get("/verify/:number", validators.CertificateNumber(), h.VerifyCertificate)

	student := middleware.RequireRole(models.RoleStudent)
	certGroup.Post("/generate", auth, student, validators.GenerateCertificate(), h.GenerateCertificate)
	certGroup.Get("/:courseId", auth, student, validators.CertificateCourse(), h.GetCertificate)
	certGroup.Get("/:courseId/preview", auth, student, validators.CertificateCourse(), h.PreviewCertificate)

	userGroup := app.Group("/user")
	userGroup.Get("/certificates", auth, h.GetUserCertificates)
}
