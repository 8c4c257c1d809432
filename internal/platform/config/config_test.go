// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/weavepost/internal/platform/config"
)

// noDotenv points Load at a file that does not exist.
func noDotenv(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

/*
TestLoad_Defaults checks the documented defaults.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cret")

	cfg, err := config.Load(noDotenv(t))
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.ServerPort)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, config.DriverWeaviate, cfg.StoreDriver)
	assert.Equal(t, "http://localhost:8080", cfg.WeaviateURL)
	assert.NotContains(t, cfg.WeaviateURL, ":"+cfg.ServerPort, "the API and Weaviate must not share a port")
	assert.Equal(t, 100, cfg.PostListLimit)
	assert.False(t, cfg.CacheEnabled())
	assert.True(t, cfg.IsDevelopment())
}

/*
TestLoad_RequiresSecret fails fast without a signing key.
*/
func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	_, err := config.Load(noDotenv(t))
	assert.Error(t, err)
}

/*
TestLoad_Dotenv reads values from a .env file without overriding the process environment.
*/
func TestLoad_Dotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SECRET_KEY=from-file\nSERVER_PORT=9090\n"), 0o600))

	t.Setenv("SERVER_PORT", "7070")
	// Registered so the variable is restored after the test.
	t.Setenv("SECRET_KEY", "")
	require.NoError(t, os.Unsetenv("SECRET_KEY"))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.SecretKey)
	assert.Equal(t, "7070", cfg.ServerPort)
}

/*
TestValidate covers the driver-specific rules.
*/
func TestValidate(t *testing.T) {
	base := func() config.Config {
		return config.Config{
			Environment:    "development",
			SecretKey:      "s3cret",
			AccessTokenTTL: time.Minute,
			PostListLimit:  10,
			StoreDriver:    config.DriverWeaviate,
			WeaviateURL:    "http://localhost:8080",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"weaviate_ok", func(*config.Config) {}, false},
		{"weaviate_bad_url", func(c *config.Config) { c.WeaviateURL = "localhost" }, true},
		{"postgres_without_dsn", func(c *config.Config) { c.StoreDriver = config.DriverPostgres }, true},
		{"postgres_ok", func(c *config.Config) {
			c.StoreDriver = config.DriverPostgres
			c.DatabaseURL = "postgres://u:p@localhost/db"
		}, false},
		{"memory_dev", func(c *config.Config) { c.StoreDriver = config.DriverMemory }, false},
		{"memory_prod", func(c *config.Config) {
			c.StoreDriver = config.DriverMemory
			c.Environment = "production"
		}, true},
		{"unknown_driver", func(c *config.Config) { c.StoreDriver = "mongo" }, true},
		{"zero_ttl", func(c *config.Config) { c.AccessTokenTTL = 0 }, true},
		{"zero_limit", func(c *config.Config) { c.PostListLimit = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestOriginAllowed is open in development and strict elsewhere.
*/
func TestOriginAllowed(t *testing.T) {
	dev := &config.Config{Environment: "development"}
	assert.True(t, dev.OriginAllowed("https://evil.example"))

	prod := &config.Config{
		Environment:    "production",
		AllowedOrigins: []string{"https://blog.example", " https://admin.example"},
	}
	assert.True(t, prod.OriginAllowed("https://blog.example"))
	assert.True(t, prod.OriginAllowed("https://admin.example"))
	assert.False(t, prod.OriginAllowed("https://evil.example"))
}
