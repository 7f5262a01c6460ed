package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"studybyte/config"
	"studybyte/database"
	"studybyte/logger"
	"studybyte/models"
	courseModels "studybyte/models/course"

	"gorm.io/gorm"
)

// OpenDB returns a migrated sqlite database that lives for the test.
func OpenDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	cfg := &config.Config{
		DBDriver:   "sqlite",
		DBName:     filepath.Join(tb.TempDir(), "test.db"),
		DBLogLevel: "silent",
	}
	db, err := database.ConnectDb(cfg, logger.NewNop())
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	tb.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func SeedUser(tb testing.TB, db *gorm.DB, first, last, email string) *models.User {
	tb.Helper()
	u := &models.User{FirstName: first, LastName: last, Email: email, Role: models.RoleStudent}
	if err := db.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedCourse creates a course with one module per entry of itemsPerModule,
// each holding that many content items. It returns the course and its
// content IDs in outline order.
func SeedCourse(tb testing.TB, db *gorm.DB, name string, instructor *models.User, itemsPerModule ...int) (*courseModels.Course, []uint) {
	tb.Helper()
	c := &courseModels.Course{CourseName: name, IsPublished: true}
	if instructor != nil {
		c.InstructorID = &instructor.ID
	}
	if err := db.Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}

	var items []uint
	for m, count := range itemsPerModule {
		mod := &courseModels.Module{CourseID: c.ID, Title: fmt.Sprintf("Section %d", m+1), OrderIndex: m}
		if err := db.Create(mod).Error; err != nil {
			tb.Fatalf("seed module: %v", err)
		}
		for i := 0; i < count; i++ {
			item := &courseModels.CourseContent{
				CourseID:   c.ID,
				ModuleID:   mod.ID,
				Title:      fmt.Sprintf("Lesson %d.%d", m+1, i+1),
				OrderIndex: i,
			}
			if err := db.Create(item).Error; err != nil {
				tb.Fatalf("seed content: %v", err)
			}
			items = append(items, item.ID)
		}
	}
	return c, items
}

func Enroll(tb testing.TB, db *gorm.DB, userID, courseID uint) *courseModels.Enrollment {
	tb.Helper()
	e := &courseModels.Enrollment{UserID: userID, CourseID: courseID, Status: "ENROLLED"}
	if err := db.Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}

// Complete records contentIDs as done, creating the progress record if
// needed. With no contentIDs it only ensures the progress record exists.
func Complete(tb testing.TB, db *gorm.DB, userID, courseID uint, contentIDs ...uint) *courseModels.CourseProgress {
	tb.Helper()
	var p courseModels.CourseProgress
	if err := db.Where(courseModels.CourseProgress{UserID: userID, CourseID: courseID}).FirstOrCreate(&p).Error; err != nil {
		tb.Fatalf("seed progress: %v", err)
	}
	for _, id := range contentIDs {
		done := &courseModels.ContentCompletion{CourseProgressID: p.ID, CourseContentID: id}
		if err := db.Create(done).Error; err != nil {
			tb.Fatalf("seed completion: %v", err)
		}
	}
	return &p
}
