package certificate

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"studybyte/models"
	courseModels "studybyte/models/course"

	"gorm.io/gorm"
)

// Catalog reads the course, enrollment, progress and identity data that
// issuance consumes. None of it is written here.
type Catalog interface {
	// CourseForLearner returns the course only when userID is enrolled in it.
	CourseForLearner(ctx context.Context, userID, courseID uint) (*Course, error)
	Course(ctx context.Context, courseID uint) (*Course, error)
	// Progress returns nil without error when the learner has no progress
	// record for the course.
	Progress(ctx context.Context, userID, courseID uint) (*Progress, time.Time, error)
	Learner(ctx context.Context, userID uint) (*Learner, error)
}

// GormCatalog is the Catalog over the platform's GORM models.
type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

func (c *GormCatalog) CourseForLearner(ctx context.Context, userID, courseID uint) (*Course, error) {
	course, err := c.Course(ctx, courseID)
	if err != nil {
		return nil, err
	}

	var enrollment courseModels.Enrollment
	err = c.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error
	if err != nil {
		return nil, lookupError("find enrollment", err)
	}
	return course, nil
}

func (c *GormCatalog) Course(ctx context.Context, courseID uint) (*Course, error) {
	var course courseModels.Course
	err := c.db.WithContext(ctx).
		Preload("Instructor").
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("order_index asc, id asc")
		}).
		Preload("Modules.Contents", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("order_index asc, id asc")
		}).
		Where("id = ? AND is_deleted = ?", courseID, false).
		First(&course).Error
	if err != nil {
		return nil, lookupError("find course", err)
	}
	return courseFacts(course), nil
}

func (c *GormCatalog) Progress(ctx context.Context, userID, courseID uint) (*Progress, time.Time, error) {
	var progress courseModels.CourseProgress
	err := c.db.WithContext(ctx).
		Preload("Completions").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("find course progress: %w", err)
	}

	out := &Progress{CompletedItems: make([]string, 0, len(progress.Completions))}
	var last time.Time
	for _, done := range progress.Completions {
		out.CompletedItems = append(out.CompletedItems, itemID(done.CourseContentID))
		if done.CreatedAt.After(last) {
			last = done.CreatedAt
		}
	}
	return out, last, nil
}

func (c *GormCatalog) Learner(ctx context.Context, userID uint) (*Learner, error) {
	var user models.User
	err := c.db.WithContext(ctx).Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error
	if err != nil {
		return nil, lookupError("find learner", err)
	}
	return &Learner{ID: user.ID, FirstName: user.FirstName, LastName: user.LastName, Email: user.Email}, nil
}

func courseFacts(course courseModels.Course) *Course {
	out := &Course{
		ID:        course.ID,
		Name:      course.CourseName,
		CreatedAt: course.CreatedAt,
	}
	if course.Instructor != nil {
		out.InstructorName = course.Instructor.FullName()
	}
	for _, m := range course.Modules {
		section := Section{Title: m.Title, Items: make([]string, 0, len(m.Contents))}
		for _, item := range m.Contents {
			section.Items = append(section.Items, itemID(item.ID))
		}
		out.Outline.Sections = append(out.Outline.Sections, section)
	}
	return out
}

func itemID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
