package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	os.Clearenv()
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "shell", cfg.Mode)
	assert.Equal(t, "parking_layout.json", cfg.LayoutPath)
	assert.Equal(t, "parking-lot-service", cfg.OTelServiceName)
	assert.Equal(t, "http://localhost:4318", cfg.OTelEndpoint)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_MODE", "server")
	t.Setenv("PARKING_LAYOUT_PATH", "/etc/parking/layout.json")
	t.Setenv("OTEL_SERVICE_NAME", "garage-svc")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4318")
	t.Setenv("APP_ENV", "production")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "server", cfg.Mode)
	assert.Equal(t, "/etc/parking/layout.json", cfg.LayoutPath)
	assert.Equal(t, "garage-svc", cfg.OTelServiceName)
	assert.Equal(t, "http://collector:4318", cfg.OTelEndpoint)
	assert.Equal(t, "production", cfg.Environment)
}
