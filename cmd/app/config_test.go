package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, data string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeEnvFile(t, `
PORT=:8080
ENVIRONMENT=production
VERSION=1.0.0
TRUSTED_ORIGINS="http://localhost:3000,http://localhost:3001"
MONGODB_URI=mongodb://localhost:27017
MONGODB_DB=testdb
SECRET=topsecret
TOKEN_TTL=30m
RATE_LIMIT_ENABLED=true
RATE_LIMIT_RPS=2.5
RATE_LIMIT_BURST=4
`)

	config, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", config.Port)
	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, "1.0.0", config.Version)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, config.TrustedOrigins)
	assert.Equal(t, "mongodb://localhost:27017", config.DB.URI)
	assert.Equal(t, "testdb", config.DB.Name)
	assert.Equal(t, "topsecret", config.Secret)
	assert.Equal(t, 30*time.Minute, config.TokenTTL)
	assert.True(t, config.RateLimitEnabled)
	assert.Equal(t, 2.5, config.RateLimitRPS)
	assert.Equal(t, 4, config.RateLimitBurst)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeEnvFile(t, `
MONGODB_URI=mongodb://localhost:27017
SECRET=topsecret
`)

	config, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":3003", config.Port)
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "bloglist", config.DB.Name)
	assert.Equal(t, time.Hour, config.TokenTTL)
	assert.Equal(t, []string{"*"}, config.TrustedOrigins)
	assert.Equal(t, "dist", config.StaticDir)
	assert.False(t, config.RateLimitEnabled)
	assert.Equal(t, 20, config.RateLimitBurst)
}

func TestLoadConfig_EnvironmentOnly(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("SECRET", "from-env")
	t.Setenv("PORT", ":9000")

	config, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db:27017", config.DB.URI)
	assert.Equal(t, "from-env", config.Secret)
	assert.Equal(t, ":9000", config.Port)
}

func TestLoadConfig_Required(t *testing.T) {
	testCases := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "missing uri", data: "SECRET=topsecret\n", wantErr: "MONGODB_URI must be set"},
		{name: "missing secret", data: "MONGODB_URI=mongodb://localhost:27017\n", wantErr: "SECRET must be set"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadConfig(writeEnvFile(t, tc.data))
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}
