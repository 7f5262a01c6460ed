package certificate

import (
	"fmt"
	"strings"
	"time"
)

// Learner is the identity snapshot printed on a certificate.
type Learner struct {
	ID        uint
	FirstName string
	LastName  string
	Email     string
}

func (l Learner) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(l.FirstName) + " " + strings.TrimSpace(l.LastName))
}

// Course carries what the evaluator and the renderer need from a course.
type Course struct {
	ID             uint
	Name           string
	CreatedAt      time.Time
	InstructorName string
	Outline        Outline
}

// Facts are the render inputs for one certificate.
type Facts struct {
	Learner     Learner
	Course      Course
	Number      string
	CompletedAt time.Time
	RenderedAt  time.Time
}

func (f Facts) Validate() error {
	if !ValidNumber(f.Number) {
		return fmt.Errorf("invalid certificate number %q", f.Number)
	}
	if strings.TrimSpace(f.Course.Name) == "" {
		return fmt.Errorf("course %d has no name", f.Course.ID)
	}
	if f.Learner.FullName() == "" && strings.TrimSpace(f.Learner.Email) == "" {
		return fmt.Errorf("learner %d has no display name", f.Learner.ID)
	}
	if f.RenderedAt.IsZero() {
		return fmt.Errorf("render time not set")
	}
	return nil
}
