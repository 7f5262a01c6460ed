package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, warnings, err := LoadConfig("testdata/missing.env")
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "./certificates", cfg.CertificateDir)
	assert.Equal(t, "/certificates", cfg.CertificateURL)
	assert.Equal(t, "Study Byte", cfg.IssuerName)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.True(t, cfg.CompressArtifact)
	assert.Len(t, warnings, 2)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_NAME", "test.db")
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("CERTIFICATE_DIR", "/var/lib/certs")
	t.Setenv("HTTP_WRITE_TIMEOUT", "5s")

	cfg, warnings, err := LoadConfig("testdata/missing.env")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "test.db", cfg.DBName)
	assert.Equal(t, "/var/lib/certs", cfg.CertificateDir)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
	assert.Len(t, warnings, 1)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, _, err := LoadConfig("testdata/missing.env")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestLoadConfigParseError(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "soon")

	_, _, err := LoadConfig("testdata/missing.env")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
