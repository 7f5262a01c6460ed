package courseRoutes

import (
	controllers "studybyte/controllers/course"
	"studybyte/middleware"
	"studybyte/models"
	validators "studybyte/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the learner-facing course routes
func SetupCourseRoutes(app *fiber.App, auth fiber.Handler, h *controllers.CourseController) {
	userGroup := app.Group("/course", auth, middleware.RequireRole(models.RoleStudent))

	// Enrollment
	userGroup.Post("/:id/enroll", validators.EnrollCourse(), h.EnrollInCourse)

	// Content completion
	userGroup.Post("/:course_id/content/:content_id/complete", validators.MarkContentComplete(), h.MarkContentComplete)

	// Progress tracking
	userGroup.Get("/:course_id/progress", validators.GetCourseProgress(), h.GetUserProgress)
}
