package certificate

import (
	"context"
	"errors"
	"fmt"
	"time"

	courseModels "studybyte/models/course"

	"gorm.io/gorm"
)

// RecordStore persists certificate records. Implementations must enforce at
// most one record per (user, course) pair and globally unique numbers,
// reporting violations as ErrConflict.
type RecordStore interface {
	FindByPair(ctx context.Context, userID, courseID uint) (*courseModels.Certificate, error)
	FindByNumber(ctx context.Context, number string) (*courseModels.Certificate, error)
	Create(ctx context.Context, userID, courseID uint, number string, completedAt time.Time) (*courseModels.Certificate, error)
	ListByUser(ctx context.Context, userID uint) ([]courseModels.Certificate, error)
	ListActive(ctx context.Context) ([]courseModels.Certificate, error)
	Revoke(ctx context.Context, number string, at time.Time) (*courseModels.Certificate, error)
}

// Records is the GORM backed RecordStore. The *gorm.DB must be opened with
// TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
type Records struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRecords(db *gorm.DB) *Records {
	return &Records{db: db, now: time.Now}
}

func (r *Records) FindByPair(ctx context.Context, userID, courseID uint) (*courseModels.Certificate, error) {
	var cert courseModels.Certificate
	err := r.db.WithContext(ctx).Where("user_id = ? AND course_id = ?", userID, courseID).First(&cert).Error
	if err != nil {
		return nil, lookupError("find certificate by pair", err)
	}
	return &cert, nil
}

func (r *Records) FindByNumber(ctx context.Context, number string) (*courseModels.Certificate, error) {
	var cert courseModels.Certificate
	err := r.db.WithContext(ctx).Where("certificate_number = ?", number).First(&cert).Error
	if err != nil {
		return nil, lookupError("find certificate by number", err)
	}
	return &cert, nil
}

func (r *Records) Create(ctx context.Context, userID, courseID uint, number string, completedAt time.Time) (*courseModels.Certificate, error) {
	cert := courseModels.Certificate{
		UserID:            userID,
		CourseID:          courseID,
		CertificateNumber: number,
		IssueDate:         r.now(),
		CompletionDate:    completedAt,
		Status:            courseModels.CertificateActive,
	}
	if err := r.db.WithContext(ctx).Create(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("create certificate %s: %w", number, ErrConflict)
		}
		return nil, fmt.Errorf("create certificate %s: %w", number, err)
	}
	return &cert, nil
}

func (r *Records) ListByUser(ctx context.Context, userID uint) ([]courseModels.Certificate, error) {
	var certs []courseModels.Certificate
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("issue_date desc").Find(&certs).Error; err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	return certs, nil
}

func (r *Records) ListActive(ctx context.Context) ([]courseModels.Certificate, error) {
	var certs []courseModels.Certificate
	if err := r.db.WithContext(ctx).Where("status = ?", courseModels.CertificateActive).Order("id asc").Find(&certs).Error; err != nil {
		return nil, fmt.Errorf("list active certificates: %w", err)
	}
	return certs, nil
}

// Revoke flips an active certificate to revoked. Revoking twice keeps the
// first revocation time.
func (r *Records) Revoke(ctx context.Context, number string, at time.Time) (*courseModels.Certificate, error) {
	cert, err := r.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if cert.IsRevoked() {
		return cert, nil
	}
	res := r.db.WithContext(ctx).Model(&courseModels.Certificate{}).
		Where("id = ? AND status = ?", cert.ID, courseModels.CertificateActive).
		Updates(map[string]interface{}{"status": courseModels.CertificateRevoked, "revoked_at": at})
	if res.Error != nil {
		return nil, fmt.Errorf("revoke certificate %s: %w", number, res.Error)
	}
	return r.FindByNumber(ctx, number)
}

func lookupError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
