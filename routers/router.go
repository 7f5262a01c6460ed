package routers

import (
	"errors"
	"time"

	"studybyte/certificate"
	"studybyte/config"
	controllers "studybyte/controllers/course"
	"studybyte/logger"
	"studybyte/middleware"
	"studybyte/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// NewIssuer wires the certificate issuer from configuration.
func NewIssuer(cfg *config.Config, db *gorm.DB, log *logger.Logger) *certificate.Issuer {
	tmpl := certificate.DefaultTemplate()
	tmpl.IssuerName = cfg.IssuerName
	tmpl.SupportEmail = cfg.SupportEmail
	tmpl.Compress = cfg.CompressArtifact

	return certificate.NewIssuer(
		certificate.NewGormCatalog(db),
		certificate.NewRecords(db),
		certificate.NewFileStore(cfg.CertificateDir, cfg.CertificateURL),
		certificate.NewRenderer(tmpl),
		log,
	)
}

// NewApp builds the HTTP server with every route mounted.
func NewApp(cfg *config.Config, db *gorm.DB, issuer *certificate.Issuer, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${locals:requestid} ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Rendered certificates are readable at their pdfPath
	app.Static(cfg.CertificateURL, cfg.CertificateDir, fiber.Static{
		MaxAge: int((24 * time.Hour).Seconds()),
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "Database unavailable", err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", nil)
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	auth := middleware.JWTMiddleware(cfg.JWTKey)
	certificates := controllers.NewCertificateController(issuer, log)
	courses := controllers.NewCourseController(db, certificate.NewGormCatalog(db), log)

	courseRoutes.SetupCertificateRoutes(app, auth, certificates)
	courseRoutes.SetupAdminCertificateRoutes(app, auth, db, certificates)
	courseRoutes.SetupCourseRoutes(app, auth, courses)

	return app
}

func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		}
		return middleware.ErrorResponse(c, code, "Request failed", err)
	}
}
