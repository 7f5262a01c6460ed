package certificate

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers an absent course, enrollment, progress record,
	// certificate record or rendered artifact.
	ErrNotFound = errors.New("not found")
	// ErrIncomplete means the learner has not finished every course item.
	ErrIncomplete = errors.New("course not completed")
	// ErrConflict is a uniqueness violation on the certificate pair or number.
	ErrConflict = errors.New("certificate already exists")
	// ErrIOFailure wraps render and artifact storage failures.
	ErrIOFailure = errors.New("artifact i/o failure")
	// ErrRevoked rejects issuance for a pair whose certificate was revoked.
	ErrRevoked = errors.New("certificate revoked")
)

// ErrNoProgress is the ErrNotFound reported when the learner has no progress
// record for the course.
var ErrNoProgress = fmt.Errorf("course progress %w", ErrNotFound)
