package controllers

import (
	"errors"

	"studybyte/certificate"
	"studybyte/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetUserProgress reports how much of an enrolled course the caller has
// completed and whether a certificate can be generated.
func (h *CourseController) GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	if _, err := h.Catalog.CourseForLearner(c.UserContext(), userID, courseID); err != nil {
		if errors.Is(err, certificate.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or user not enrolled", nil)
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch progress!", err)
	}

	summary, err := h.progressSummary(c, userID, courseID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch progress!", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", summary)
}
