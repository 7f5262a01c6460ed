package certificate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"studybyte/logger"
	"studybyte/metrics"
	courseModels "studybyte/models/course"
)

// Issuance is the outcome of a successful Issue call.
type Issuance struct {
	Certificate *courseModels.Certificate
	Location    string
	// Created is true when this call inserted the record.
	Created bool
	// Rendered is true when this call produced the PDF, either for a new
	// record or because the stored artifact was missing.
	Rendered bool
}

// Verification is the public view of a certificate looked up by number.
type Verification struct {
	CertificateNumber string     `json:"certificate_number"`
	Status            string     `json:"status"`
	IssueDate         time.Time  `json:"issue_date"`
	CompletionDate    time.Time  `json:"completion_date"`
	RevokedAt         *time.Time `json:"revoked_at,omitempty"`
	LearnerName       string     `json:"learner_name"`
	CourseName        string     `json:"course_name"`
}

// Listing pairs a learner's certificate with its course name.
type Listing struct {
	courseModels.Certificate
	CourseName string `json:"course_name"`
	PDFPath    string `json:"pdf_path"`
}

// AuditReport counts active certificates whose artifact is gone.
type AuditReport struct {
	Checked int
	Missing []string
}

// Issuer runs certificate issuance and retrieval. It holds no per-request
// state and takes no locks; record uniqueness is left to the RecordStore.
type Issuer struct {
	catalog   Catalog
	records   RecordStore
	artifacts ArtifactStore
	renderer  *Renderer
	numbers   *NumberGenerator
	now       func() time.Time
	log       *logger.Logger
}

type IssuerOption func(*Issuer)

func WithClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) { i.now = now }
}

func WithNumberGenerator(g *NumberGenerator) IssuerOption {
	return func(i *Issuer) { i.numbers = g }
}

func NewIssuer(catalog Catalog, records RecordStore, artifacts ArtifactStore, renderer *Renderer, log *logger.Logger, opts ...IssuerOption) *Issuer {
	i := &Issuer{
		catalog:   catalog,
		records:   records,
		artifacts: artifacts,
		renderer:  renderer,
		numbers:   NewNumberGenerator(),
		now:       time.Now,
		log:       log.With("component", "certificate_issuer"),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue returns the learner's certificate for the course, creating the
// record on first completion and re-rendering the PDF whenever it is
// missing. A render failure leaves the record in place so a repeated call
// only re-renders.
func (i *Issuer) Issue(ctx context.Context, userID, courseID uint) (*Issuance, error) {
	log := i.log.With("user_id", userID, "course_id", courseID)

	course, completedAt, err := i.checkEligibility(ctx, userID, courseID)
	if err != nil {
		result := outcome(err)
		metrics.CertificateRequests.WithLabelValues(result).Inc()
		if result == "failed" {
			log.Error("certificate eligibility check failed", "error", err)
		} else {
			log.Info("certificate rejected", "reason", err.Error())
		}
		return nil, err
	}

	cert, created, err := i.resolveRecord(ctx, userID, courseID, completedAt)
	if err != nil {
		metrics.CertificateRequests.WithLabelValues("failed").Inc()
		log.Error("resolve certificate record failed", "error", err)
		return nil, err
	}
	if cert.IsRevoked() {
		metrics.CertificateRequests.WithLabelValues("rejected_revoked").Inc()
		return nil, fmt.Errorf("certificate %s: %w", cert.CertificateNumber, ErrRevoked)
	}
	log = log.With("certificate_number", cert.CertificateNumber)

	rendered, err := i.ensureArtifact(ctx, cert, course, created)
	if err != nil {
		metrics.CertificateRequests.WithLabelValues("failed").Inc()
		log.Error("ensure certificate artifact failed", "error", err)
		return nil, err
	}

	if created {
		metrics.CertificateRequests.WithLabelValues("created").Inc()
		log.Info("certificate issued")
	} else {
		metrics.CertificateRequests.WithLabelValues("reused").Inc()
		log.Debug("certificate reused", "regenerated", rendered)
	}
	return &Issuance{
		Certificate: cert,
		Location:    i.artifacts.Location(cert.CertificateNumber),
		Created:     created,
		Rendered:    rendered,
	}, nil
}

func (i *Issuer) checkEligibility(ctx context.Context, userID, courseID uint) (*Course, time.Time, error) {
	course, err := i.catalog.CourseForLearner(ctx, userID, courseID)
	if err != nil {
		return nil, time.Time{}, err
	}
	progress, lastCompleted, err := i.catalog.Progress(ctx, userID, courseID)
	if err != nil {
		return nil, time.Time{}, err
	}
	if err := Evaluate(course.Outline, progress); err != nil {
		return nil, time.Time{}, err
	}
	if lastCompleted.IsZero() {
		lastCompleted = i.now()
	}
	return course, lastCompleted, nil
}

// createAttempts bounds retries when a freshly allocated number collides
// with another pair's certificate.
const createAttempts = 3

// resolveRecord looks up the pair's record or creates it. Losing a create
// race to a concurrent request is not an error: the winner's record is
// re-read and used.
func (i *Issuer) resolveRecord(ctx context.Context, userID, courseID uint, completedAt time.Time) (*courseModels.Certificate, bool, error) {
	cert, err := i.records.FindByPair(ctx, userID, courseID)
	if err == nil {
		return cert, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	for attempt := 0; attempt < createAttempts; attempt++ {
		cert, err = i.records.Create(ctx, userID, courseID, i.numbers.Next(), completedAt)
		if err == nil {
			return cert, true, nil
		}
		if !errors.Is(err, ErrConflict) {
			return nil, false, err
		}

		metrics.CertificateCreateConflicts.Inc()
		cert, err = i.records.FindByPair(ctx, userID, courseID)
		if err == nil {
			return cert, false, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, false, err
		}
		// The collision was on the number, not the pair: allocate again.
	}
	return nil, false, fmt.Errorf("allocate certificate number for user %d course %d: %w", userID, courseID, ErrConflict)
}

func (i *Issuer) ensureArtifact(ctx context.Context, cert *courseModels.Certificate, course *Course, created bool) (bool, error) {
	exists, err := i.artifacts.Exists(ctx, cert.CertificateNumber)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	reason := "regenerated"
	if created {
		reason = "new"
	}
	learner, err := i.catalog.Learner(ctx, cert.UserID)
	if err != nil {
		metrics.ArtifactRenders.WithLabelValues(reason, "error").Inc()
		return false, err
	}
	facts := Facts{
		Learner:     *learner,
		Course:      *course,
		Number:      cert.CertificateNumber,
		CompletedAt: cert.CompletionDate,
		RenderedAt:  i.now(),
	}
	if lossy := i.renderer.LossyFields(facts); len(lossy) > 0 {
		i.log.Warn("certificate text has characters the PDF font cannot draw",
			"certificate_number", cert.CertificateNumber, "fields", lossy)
	}

	start := time.Now()
	_, err = i.artifacts.Write(ctx, cert.CertificateNumber, func(w io.Writer) error {
		return i.renderer.Render(w, facts)
	})
	metrics.ArtifactRenderDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ArtifactRenders.WithLabelValues(reason, "error").Inc()
		return false, err
	}
	metrics.ArtifactRenders.WithLabelValues(reason, "ok").Inc()
	if !created {
		i.log.Warn("regenerated missing certificate artifact", "certificate_number", cert.CertificateNumber)
	}
	return true, nil
}

// Retrieve opens the stored PDF for the learner's certificate. It never
// creates a record or renders: either absence is ErrNotFound.
func (i *Issuer) Retrieve(ctx context.Context, userID, courseID uint) (*courseModels.Certificate, io.ReadCloser, error) {
	cert, err := i.records.FindByPair(ctx, userID, courseID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := i.artifacts.Open(ctx, cert.CertificateNumber)
	if err != nil {
		return cert, nil, err
	}
	return cert, rc, nil
}

// Preview draws a PNG of an existing certificate without storing it.
func (i *Issuer) Preview(ctx context.Context, userID, courseID uint, w io.Writer) (*courseModels.Certificate, error) {
	cert, err := i.records.FindByPair(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	course, err := i.catalog.Course(ctx, courseID)
	if err != nil {
		return nil, err
	}
	learner, err := i.catalog.Learner(ctx, userID)
	if err != nil {
		return nil, err
	}
	facts := Facts{
		Learner:     *learner,
		Course:      *course,
		Number:      cert.CertificateNumber,
		CompletedAt: cert.CompletionDate,
		RenderedAt:  i.now(),
	}
	if err := i.renderer.Preview(w, facts); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return cert, nil
}

// Verify looks a certificate up by number for third parties.
func (i *Issuer) Verify(ctx context.Context, number string) (*Verification, error) {
	if !ValidNumber(number) {
		return nil, fmt.Errorf("certificate %q: %w", number, ErrNotFound)
	}
	cert, err := i.records.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	v := &Verification{
		CertificateNumber: cert.CertificateNumber,
		Status:            cert.Status,
		IssueDate:         cert.IssueDate,
		CompletionDate:    cert.CompletionDate,
		RevokedAt:         cert.RevokedAt,
	}
	if course, err := i.catalog.Course(ctx, cert.CourseID); err == nil {
		v.CourseName = course.Name
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if learner, err := i.catalog.Learner(ctx, cert.UserID); err == nil {
		v.LearnerName = learner.FullName()
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return v, nil
}

// List returns the learner's certificates, newest first.
func (i *Issuer) List(ctx context.Context, userID uint) ([]Listing, error) {
	certs, err := i.records.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]Listing, len(certs))
	for n, cert := range certs {
		out[n] = Listing{Certificate: cert, PDFPath: i.artifacts.Location(cert.CertificateNumber)}
		course, err := i.catalog.Course(ctx, cert.CourseID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		out[n].CourseName = course.Name
	}
	return out, nil
}

// Revoke marks a certificate revoked. The record and its PDF are kept.
func (i *Issuer) Revoke(ctx context.Context, number string) (*courseModels.Certificate, error) {
	if !ValidNumber(number) {
		return nil, fmt.Errorf("certificate %q: %w", number, ErrNotFound)
	}
	cert, err := i.records.Revoke(ctx, number, i.now())
	if err != nil {
		return nil, err
	}
	i.log.Info("certificate revoked", "certificate_number", number)
	return cert, nil
}

// AuditArtifacts reports active certificates with no stored PDF. Missing
// artifacts are left for the next issuance call to re-render.
func (i *Issuer) AuditArtifacts(ctx context.Context) (AuditReport, error) {
	certs, err := i.records.ListActive(ctx)
	if err != nil {
		return AuditReport{}, err
	}
	report := AuditReport{Checked: len(certs)}
	for _, cert := range certs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		ok, err := i.artifacts.Exists(ctx, cert.CertificateNumber)
		if err != nil {
			return report, err
		}
		if !ok {
			report.Missing = append(report.Missing, cert.CertificateNumber)
		}
	}
	metrics.ArtifactsMissing.Set(float64(len(report.Missing)))
	return report, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "rejected_not_found"
	case errors.Is(err, ErrIncomplete):
		return "rejected_incomplete"
	default:
		return "failed"
	}
}
