package controllers

import (
	"bytes"
	"errors"
	"fmt"

	"studybyte/certificate"
	"studybyte/logger"
	"studybyte/middleware"

	"github.com/gofiber/fiber/v2"
)

// CertificateController serves certificate issuance, download and lookup.
type CertificateController struct {
	Issuer *certificate.Issuer
	Log    *logger.Logger
}

func NewCertificateController(issuer *certificate.Issuer, log *logger.Logger) *CertificateController {
	return &CertificateController{Issuer: issuer, Log: log}
}

// GenerateCertificate issues the caller's certificate for a completed
// course, or returns the existing one.
func (h *CertificateController) GenerateCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	issued, err := h.Issuer.Issue(c.UserContext(), userID, courseID)
	if err != nil {
		switch {
		case errors.Is(err, certificate.ErrNoProgress):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course progress not found", nil)
		case errors.Is(err, certificate.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or user not enrolled", nil)
		case errors.Is(err, certificate.ErrIncomplete):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course not completed yet", nil)
		case errors.Is(err, certificate.ErrRevoked):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Certificate has been revoked", nil)
		default:
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Error generating certificate", err)
		}
	}

	message := "Certificate already exists"
	if issued.Created {
		message = "Certificate generated successfully"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"certificate": issued.Certificate,
		"pdfPath":     issued.Location,
	})
}

// GetCertificate streams the stored PDF. It never generates one.
func (h *CertificateController) GetCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	cert, pdf, err := h.Issuer.Retrieve(c.UserContext(), userID, courseID)
	if err != nil {
		if errors.Is(err, certificate.ErrNotFound) {
			if cert == nil {
				return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found", nil)
			}
			h.Log.Warn("certificate pdf missing", "certificate_number", cert.CertificateNumber)
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate PDF not found", nil)
		}
		h.Log.Error("open certificate failed", "user_id", userID, "course_id", courseID, "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving certificate", err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=Certificate-%s.pdf", cert.CertificateNumber))
	return c.SendStream(pdf)
}

// PreviewCertificate renders a PNG of the caller's existing certificate.
func (h *CertificateController) PreviewCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	var buf bytes.Buffer
	if _, err := h.Issuer.Preview(c.UserContext(), userID, courseID, &buf); err != nil {
		if errors.Is(err, certificate.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found", nil)
		}
		h.Log.Error("certificate preview failed", "user_id", userID, "course_id", courseID, "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Error previewing certificate", err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(buf.Bytes())
}

// VerifyCertificate is the public lookup by certificate number.
func (h *CertificateController) VerifyCertificate(c *fiber.Ctx) error {
	number := c.Locals("certificateNumber").(string)

	v, err := h.Issuer.Verify(c.UserContext(), number)
	if err != nil {
		if errors.Is(err, certificate.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found", nil)
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Error verifying certificate", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate verified", v)
}

// GetUserCertificates gets all certificates for the current user
func (h *CertificateController) GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certificates, err := h.Issuer.List(c.UserContext(), userID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch certificates!", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
		"total":        len(certificates),
	})
}

// RevokeCertificate marks a certificate revoked. Admin only.
func (h *CertificateController) RevokeCertificate(c *fiber.Ctx) error {
	number := c.Locals("certificateNumber").(string)

	cert, err := h.Issuer.Revoke(c.UserContext(), number)
	if err != nil {
		if errors.Is(err, certificate.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found", nil)
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to revoke certificate!", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate revoked successfully!", cert)
}
