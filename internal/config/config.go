package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	Mode            string
	LayoutPath      string
	OTelServiceName string
	OTelEndpoint    string
	Environment     string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Could not load .env file: %v", err)
	}

	return &Config{
		Port:            envOr("APP_PORT", "8080"),
		Mode:            envOr("APP_MODE", "shell"),
		LayoutPath:      envOr("PARKING_LAYOUT_PATH", "parking_layout.json"),
		OTelServiceName: envOr("OTEL_SERVICE_NAME", "parking-lot-service"),
		OTelEndpoint:    envOr("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
		Environment:     envOr("APP_ENV", "development"),
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
