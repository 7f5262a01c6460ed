package controllers

import (
	"errors"

	"studybyte/certificate"
	"studybyte/middleware"
	courseModels "studybyte/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var errAlreadyCompleted = errors.New("content already completed")

func (h *CourseController) MarkContentComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)
	contentID := c.Locals("contentID").(uint)
	ctx := c.UserContext()
	db := h.DB.WithContext(ctx)

	// Check if course exists and is active
	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	var content courseModels.CourseContent
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", contentID, courseID, false).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course content not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var completion courseModels.ContentCompletion
	err := db.Transaction(func(tx *gorm.DB) error {
		var progress courseModels.CourseProgress
		if err := tx.Where(courseModels.CourseProgress{UserID: userID, CourseID: courseID}).FirstOrCreate(&progress).Error; err != nil {
			return err
		}
		completion = courseModels.ContentCompletion{CourseProgressID: progress.ID, CourseContentID: contentID}
		if err := tx.Create(&completion).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errAlreadyCompleted
			}
			return err
		}
		return nil
	})
	if errors.Is(err, errAlreadyCompleted) {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Content already marked as completed!", nil)
	}
	if err != nil {
		h.Log.Error("mark content complete failed", "user_id", userID, "content_id", contentID, "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to mark content as completed!", err)
	}

	summary, err := h.progressSummary(c, userID, courseID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update course progress!", err)
	}
	if summary.IsCompleted && enrollment.Status != "COMPLETED" {
		if err := db.Model(&enrollment).Update("status", "COMPLETED").Error; err != nil {
			h.Log.Warn("update enrollment status failed", "enrollment_id", enrollment.ID, "error", err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content marked as completed successfully!", fiber.Map{
		"completion": completion,
		"progress":   summary,
	})
}

// ProgressSummary is a learner's completion standing in one course.
type ProgressSummary struct {
	CourseID       uint `json:"course_id"`
	CompletedItems int  `json:"completed_items"`
	TotalItems     int  `json:"total_items"`
	Percentage     int  `json:"percentage"`
	IsCompleted    bool `json:"is_completed"`
}

func (h *CourseController) progressSummary(c *fiber.Ctx, userID, courseID uint) (*ProgressSummary, error) {
	course, err := h.Catalog.Course(c.UserContext(), courseID)
	if err != nil {
		return nil, err
	}
	progress, _, err := h.Catalog.Progress(c.UserContext(), userID, courseID)
	if err != nil {
		return nil, err
	}

	summary := &ProgressSummary{CourseID: courseID, TotalItems: course.Outline.ItemCount()}
	if progress != nil {
		summary.CompletedItems = len(progress.CompletedItems)
	}
	if summary.TotalItems > 0 {
		summary.Percentage = summary.CompletedItems * 100 / summary.TotalItems
	}
	// Same rule issuance applies.
	summary.IsCompleted = certificate.Evaluate(course.Outline, progress) == nil
	return summary, nil
}
