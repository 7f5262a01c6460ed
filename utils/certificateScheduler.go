package utils

import (
	"context"
	"time"

	"studybyte/certificate"
	"studybyte/logger"

	"github.com/robfig/cron/v3"
)

// auditTimeout bounds a single audit run.
const auditTimeout = 10 * time.Minute

// InitializeCertificateAuditScheduler starts the cron job that checks every
// active certificate still has its PDF. The caller stops the returned cron.
func InitializeCertificateAuditScheduler(schedule string, issuer *certificate.Issuer, log *logger.Logger) (*cron.Cron, error) {
	log = log.With("component", "certificate_audit")
	log.Info("initializing certificate audit scheduler", "schedule", schedule)

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
		defer cancel()
		RunCertificateAudit(ctx, issuer, log)
	}); err != nil {
		return nil, err
	}

	c.Start()
	log.Info("certificate audit scheduler started")
	return c, nil
}

// RunCertificateAudit logs active certificates whose PDF is missing. The
// PDFs are re-rendered by the next generate request, not here.
func RunCertificateAudit(ctx context.Context, issuer *certificate.Issuer, log *logger.Logger) certificate.AuditReport {
	log.Info("running certificate audit")

	report, err := issuer.AuditArtifacts(ctx)
	if err != nil {
		log.Error("certificate audit failed", "checked", report.Checked, "error", err)
		return report
	}
	for _, number := range report.Missing {
		log.Warn("certificate pdf missing", "certificate_number", number)
	}
	log.Info("certificate audit completed", "checked", report.Checked, "missing", len(report.Missing))
	return report
}
