package course

import (
	"studybyte/models"

	"gorm.io/gorm"
)

// Course represents a learning course
type Course struct {
	gorm.Model
	CourseName   string       `json:"course_name"`
	Description  string       `json:"description"`
	InstructorID *uint        `json:"instructor_id" gorm:"index"`
	Instructor   *models.User `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
	Modules      []Module     `json:"modules,omitempty" gorm:"foreignKey:CourseID"`
	IsPublished  bool         `json:"is_published" gorm:"default:false"`
	IsDeleted    bool         `json:"-" gorm:"default:false"`
}
