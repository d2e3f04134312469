package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredUPSEnv(t *testing.T) {
	t.Helper()
	os.Setenv("UPS_ACCESS_KEY", "XMLKEY123")
	os.Setenv("UPS_USER_ID", "shipper_login")
	os.Setenv("UPS_PASSWORD", "secret")
	t.Cleanup(func() {
		os.Unsetenv("UPS_ACCESS_KEY")
		os.Unsetenv("UPS_USER_ID")
		os.Unsetenv("UPS_PASSWORD")
	})
}

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("APP_ENV")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SERVER_PORT")

	setRequiredUPSEnv(t)

	cfg, err := Load(".")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.True(t, cfg.UPS.TestMode)
	assert.Equal(t, "daily_pickup", cfg.UPS.PickupType)
	assert.Equal(t, "GIF", cfg.UPS.LabelPrintCode)
	assert.Equal(t, "Mozilla/4.5", cfg.UPS.HTTPUserAgent)
	assert.Equal(t, 300, cfg.Redis.RateQuoteTTLSeconds)
}

// TestLoad_EnvVars verifies that environment variables override defaults.
func TestLoad_EnvVars(t *testing.T) {
	os.Setenv("APP_ENV", "production")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("UPS_TEST_MODE", "false")
	os.Setenv("UPS_ORIGIN_ACCOUNT", "A1B2C3")
	os.Setenv("REDIS_URL", "redis://cache:6379/1")
	setRequiredUPSEnv(t)
	defer func() {
		os.Unsetenv("APP_ENV")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("UPS_TEST_MODE")
		os.Unsetenv("UPS_ORIGIN_ACCOUNT")
		os.Unsetenv("REDIS_URL")
	}()

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.False(t, cfg.UPS.TestMode)
	assert.Equal(t, "A1B2C3", cfg.UPS.OriginAccount)
	assert.Equal(t, "XMLKEY123", cfg.UPS.AccessKey)
	assert.Equal(t, "redis://cache:6379/1", cfg.Redis.URL)
}

// TestLoad_File verifies that values are loaded from a .env file.
func TestLoad_File(t *testing.T) {
	content := []byte(`
APP_ENV=staging
LOG_LEVEL=warn
SERVER_PORT=7070
UPS_ACCESS_KEY=filekey
UPS_USER_ID=fileuser
UPS_PASSWORD=filepass
UPS_PICKUP_TYPE=customer_counter
`)
	err := os.WriteFile(".env", content, 0644)
	require.NoError(t, err)
	defer os.Remove(".env")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7070, cfg.ServerPort)
	assert.Equal(t, "customer_counter", cfg.UPS.PickupType)
}

// TestLoad_ValidationFailure verifies that missing required fields return an error.
func TestLoad_ValidationFailure(t *testing.T) {
	os.Unsetenv("UPS_ACCESS_KEY")
	os.Unsetenv("UPS_USER_ID")
	os.Unsetenv("UPS_PASSWORD")

	cfg, err := Load(".")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "missing required configuration")
}
