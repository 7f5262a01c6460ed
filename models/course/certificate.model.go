package course

import (
	"time"

	"gorm.io/gorm"
)

const (
	CertificateActive  = "active"
	CertificateRevoked = "revoked"
)

// Certificate is the durable record of an issued course-completion
// certificate. A (user, course) pair has at most one, and its number never
// changes once assigned.
type Certificate struct {
	gorm.Model
	UserID            uint       `json:"user_id" gorm:"uniqueIndex:idx_certificate_pair;not null"`
	CourseID          uint       `json:"course_id" gorm:"uniqueIndex:idx_certificate_pair;not null"`
	CertificateNumber string     `json:"certificate_number" gorm:"uniqueIndex;size:64;not null"`
	IssueDate         time.Time  `json:"issue_date"`
	CompletionDate    time.Time  `json:"completion_date"`
	Status            string     `json:"status" gorm:"size:16;default:'active'"` // active, revoked
	RevokedAt         *time.Time `json:"revoked_at,omitempty"`
}

func (c Certificate) IsRevoked() bool {
	return c.Status == CertificateRevoked
}
