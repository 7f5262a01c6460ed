package courseValidator

import (
	"strings"

	"studybyte/middleware"

	"github.com/gofiber/fiber/v2"
)

type generateCertificateRequest struct {
	CourseID flexibleID `json:"courseId" validate:"required,gt=0"`
}

// GenerateCertificate validates the certificate generation body and stores
// the course ID as "courseID".
func GenerateCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(generateCertificateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("courseID", uint(reqData.CourseID))
		return c.Next()
	}
}

// CertificateCourse validates the :courseId parameter of certificate reads.
func CertificateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := idParam(c, "courseId")
		if !ok {
			return invalidID(c, "Course")
		}
		c.Locals("courseID", courseID)
		return c.Next()
	}
}

type certificateNumberParam struct {
	Number string `json:"number" validate:"required,certnumber"`
}

// CertificateNumber validates the :number parameter and stores it as
// "certificateNumber".
func CertificateNumber() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &certificateNumberParam{Number: strings.TrimSpace(c.Params("number"))}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("certificateNumber", reqData.Number)
		return c.Next()
	}
}
