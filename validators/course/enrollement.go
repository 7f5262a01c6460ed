package courseValidator

import "github.com/gofiber/fiber/v2"

// EnrollCourse validates the course ID of an enrollment request
func EnrollCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := idParam(c, "id")
		if !ok {
			return invalidID(c, "Course")
		}
		c.Locals("courseID", courseID)
		return c.Next()
	}
}
