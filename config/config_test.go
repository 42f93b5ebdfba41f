package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("API_SERVER_MODE", "test")
	t.Setenv("API_STORAGE_DRIVER", "memory")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.OTP.TTL)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.NotEmpty(t, cfg.JWT.Secret, "test mode falls back to a development secret")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.Server.Mode = "release"
		c.JWT.Secret = "s3cret"
		c.JWT.Expiration = time.Hour
		c.Storage.Driver = "postgres"
		c.Uploads.Driver = "local"
		return c
	}
	require.NoError(t, valid().Validate())

	c := valid()
	c.JWT.Secret = ""
	assert.Error(t, c.Validate())

	c = valid()
	c.Storage.Driver = "sqlite"
	assert.Error(t, c.Validate())

	c = valid()
	c.Uploads.Driver = "s3"
	assert.Error(t, c.Validate())

	c = valid()
	c.JWT.Expiration = 0
	assert.Error(t, c.Validate())

	c = valid()
	c.Server.Mode = "debug"
	c.JWT.Secret = ""
	require.NoError(t, c.Validate())
	assert.NotEmpty(t, c.JWT.Secret)
}

func TestDSN(t *testing.T) {
	c := DBConfig{User: "u", Password: "p", Host: "db", Port: 5432, Name: "jobs", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/jobs?sslmode=disable", c.DSN())
}
