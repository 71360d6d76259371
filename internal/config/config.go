package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"confstore/internal/adapter/schema"
	"confstore/internal/errinfo"
)

// Config holds the process configuration consumed by the error/logging core
// and its host: sink thresholds, audit store and retention.
type Config struct {
	Env string `validate:"required,oneof=dev prod"`
	Log struct {
		StderrLevel string `validate:"required,oneof=none error warning info debug"`
		SyslogLevel string `validate:"required,oneof=none error warning info debug"`
		File        string `validate:"required"`
	}
	Audit struct {
		Enabled           bool
		DB                string `validate:"required_if=Enabled true"`
		Migrations        string `validate:"required_if=Enabled true"`
		RetentionSchedule string `validate:"required_if=Enabled true"`
		RetentionMaxAge   time.Duration
	}
	Metrics struct {
		Addr string
	}
}

// Load reads configuration from environment variables and optional .env
// file. Validation runs through the schema engine adapter; on failure the
// harvested chain is returned as the error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	c.Env = getenv("ENV", "prod")
	c.Log.StderrLevel = strings.ToLower(getenv("LOG_STDERR_LEVEL", "error"))
	c.Log.SyslogLevel = strings.ToLower(getenv("LOG_SYSLOG_LEVEL", "none"))
	c.Log.File = getenv("LOG_FILE", "data/logs/confstore.log")
	c.Audit.Enabled = getenv("AUDIT_ENABLED", "false") == "true"
	c.Audit.DB = getenv("AUDIT_DB", "data/confstore_audit.db")
	c.Audit.Migrations = getenv("AUDIT_MIGRATIONS", "file://migrations/sqlite")
	c.Audit.RetentionSchedule = getenv("AUDIT_RETENTION_SCHEDULE", "0 3 * * *")
	c.Metrics.Addr = os.Getenv("METRICS_ADDR")

	maxAge, err := time.ParseDuration(getenv("AUDIT_MAX_AGE", "720h"))
	if err != nil || maxAge <= 0 {
		var ei *errinfo.ErrInfo
		ei = ei.Errf(errinfo.CodeInvalidArg, "Invalid AUDIT_MAX_AGE value %q.", getenv("AUDIT_MAX_AGE", "720h"))
		return Config{}, ei
	}
	c.Audit.RetentionMaxAge = maxAge

	eng := schema.New()
	if !eng.ValidateStruct(c) {
		var ei *errinfo.ErrInfo
		ei = errinfo.HarvestAll(ei, eng, nil)
		return Config{}, ei
	}
	return c, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
