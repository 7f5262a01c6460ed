package courseValidator

import "github.com/gofiber/fiber/v2"

// MarkContentComplete validates the course and content IDs
func MarkContentComplete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := idParam(c, "course_id")
		if !ok {
			return invalidID(c, "Course")
		}
		contentID, ok := idParam(c, "content_id")
		if !ok {
			return invalidID(c, "Content")
		}

		c.Locals("courseID", courseID)
		c.Locals("contentID", contentID)
		return c.Next()
	}
}

// GetCourseProgress validates the course ID of a progress request
func GetCourseProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := idParam(c, "course_id")
		if !ok {
			return invalidID(c, "Course")
		}
		c.Locals("courseID", courseID)
		return c.Next()
	}
}
