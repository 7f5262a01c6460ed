package course

import (
	"gorm.io/gorm"
)

// Enrollment places a learner in a course's enrolled set
type Enrollment struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"uniqueIndex:idx_enrollment_pair;not null"`
	CourseID  uint   `json:"course_id" gorm:"uniqueIndex:idx_enrollment_pair;not null"`
	Status    string `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, COMPLETED
	IsDeleted bool   `json:"-" gorm:"default:false"`
}
