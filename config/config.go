package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port    string `env:"PORT" envDefault:"3000"`
	LogMode string `env:"LOG_MODE" envDefault:"development"`

	DBDriver   string `env:"DB_DRIVER" envDefault:"postgres"` // postgres, mysql, sqlite
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"studybyte"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBLogLevel string `env:"DB_LOG_LEVEL" envDefault:"warn"`

	JWTKey string `env:"JWT_SECRET_KEY" envDefault:"defaultSecret"`

	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`

	CertificateDir   string `env:"CERTIFICATE_DIR" envDefault:"./certificates"`
	CertificateURL   string `env:"CERTIFICATE_URL_PREFIX" envDefault:"/certificates"`
	IssuerName       string `env:"CERTIFICATE_ISSUER" envDefault:"Study Byte"`
	SupportEmail     string `env:"CERTIFICATE_SUPPORT_EMAIL" envDefault:"support@studybyte.com"`
	AuditSchedule    string `env:"CERTIFICATE_AUDIT_SCHEDULE" envDefault:"0 3 * * *"`
	CompressArtifact bool   `env:"CERTIFICATE_COMPRESS" envDefault:"true"`
}

// LoadConfig reads an optional .env file and then the process environment.
// The returned warnings mirror settings that are still on insecure defaults.
func LoadConfig(files ...string) (*Config, []string, error) {
	var warnings []string

	if err := godotenv.Load(files...); err != nil {
		warnings = append(warnings, ".env file not found, using system environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, warnings, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return nil, warnings, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if cfg.JWTKey == "defaultSecret" {
		warnings = append(warnings, "using default JWT_SECRET_KEY, update it in your environment")
	}

	return cfg, warnings, nil
}
