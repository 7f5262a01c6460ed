package course

import "gorm.io/gorm"

// CourseContent is a single completable item (video, text, quiz) within a module
type CourseContent struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	Title       string `json:"title"`
	ContentType string `json:"content_type" gorm:"default:'VIDEO'"` // TEXT, MCQ, VIDEO
	OrderIndex  int    `json:"order_index" gorm:"default:0"`        // Order within module
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}

// CourseProgress is a learner's progress record for one course
type CourseProgress struct {
	gorm.Model
	UserID      uint                `json:"user_id" gorm:"uniqueIndex:idx_progress_pair;not null"`
	CourseID    uint                `json:"course_id" gorm:"uniqueIndex:idx_progress_pair;not null"`
	Completions []ContentCompletion `json:"completions,omitempty" gorm:"foreignKey:CourseProgressID"`
}

// ContentCompletion marks one content item as done within a progress record
type ContentCompletion struct {
	gorm.Model
	CourseProgressID uint `json:"course_progress_id" gorm:"uniqueIndex:idx_completion_item;not null"`
	CourseContentID  uint `json:"course_content_id" gorm:"uniqueIndex:idx_completion_item;not null"`
}
