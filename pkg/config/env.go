package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnv overrides project settings from KTLINT_* environment variables
func (p *Project) ApplyEnv() {
	p.Skip = getEnvBool("KTLINT_SKIP", p.Skip)
	p.Experimental = getEnvBool("KTLINT_EXPERIMENTAL", p.Experimental)
	p.Android = getEnvBool("KTLINT_ANDROID", p.Android)
	p.OutputDirectory = getEnv("KTLINT_OUTPUT_DIR", p.OutputDirectory)
	p.LogLevel = getEnv("KTLINT_LOG_LEVEL", p.LogLevel)
	p.MetricsFile = getEnv("KTLINT_METRICS_FILE", p.MetricsFile)

	// Cache
	p.Cache.Enabled = getEnvBool("KTLINT_CACHE_ENABLED", p.Cache.Enabled)
	p.Cache.Size = getEnvInt("KTLINT_CACHE_SIZE", p.Cache.Size)
	p.Cache.TTL = getEnvDuration("KTLINT_CACHE_TTL", p.Cache.TTL)
	p.Cache.RedisURL = getEnv("KTLINT_REDIS_URL", p.Cache.RedisURL)

	// History
	p.History.DSN = getEnv("KTLINT_HISTORY_DSN", p.History.DSN)

	// Publishing
	p.Publish.Bucket = getEnv("KTLINT_S3_BUCKET", p.Publish.Bucket)
	p.Publish.Prefix = getEnv("KTLINT_S3_PREFIX", p.Publish.Prefix)
	p.Publish.Region = getEnv("KTLINT_S3_REGION", p.Publish.Region)
	p.Publish.Endpoint = getEnv("KTLINT_S3_ENDPOINT", p.Publish.Endpoint)
	p.Publish.AccessKey = getEnv("KTLINT_S3_ACCESS_KEY", p.Publish.AccessKey)
	p.Publish.SecretKey = getEnv("KTLINT_S3_SECRET_KEY", p.Publish.SecretKey)
	p.Publish.UsePathStyle = getEnvBool("KTLINT_S3_USE_PATH_STYLE", p.Publish.UsePathStyle)

	// Telemetry
	p.Telemetry.Enabled = getEnvBool("KTLINT_OTEL_ENABLED", p.Telemetry.Enabled)
	p.Telemetry.Endpoint = getEnv("KTLINT_OTEL_ENDPOINT", p.Telemetry.Endpoint)
	p.Telemetry.Insecure = getEnvBool("KTLINT_OTEL_INSECURE", p.Telemetry.Insecure)
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
