package controllers

import (
	"errors"

	"studybyte/certificate"
	"studybyte/logger"
	"studybyte/middleware"
	courseModels "studybyte/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CourseController serves enrollment and progress, the writes that
// certificate eligibility is computed from.
type CourseController struct {
	DB      *gorm.DB
	Catalog certificate.Catalog
	Log     *logger.Logger
}

func NewCourseController(db *gorm.DB, catalog certificate.Catalog, log *logger.Logger) *CourseController {
	return &CourseController{DB: db, Catalog: catalog, Log: log}
}

func (h *CourseController) EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)
	db := h.DB.WithContext(c.UserContext())

	// Check if course exists and is published
	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	var enrollment courseModels.Enrollment
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	switch {
	case err == nil && !enrollment.IsDeleted:
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
	case err == nil:
		// Re-enrolling reactivates the withdrawn row.
		if err := db.Model(&enrollment).Updates(map[string]interface{}{"is_deleted": false, "status": "ENROLLED"}).Error; err != nil {
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to enroll in course!", err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to enroll in course!", err)
	}

	enrollment = courseModels.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   "ENROLLED",
	}
	if err := db.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
		}
		h.Log.Error("create enrollment failed", "user_id", userID, "course_id", courseID, "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to enroll in course!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}
