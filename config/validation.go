package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidateConfig checks that the configuration is usable for the current
// environment. All problems are reported together.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		errors = append(errors, fmt.Sprintf("SERVER_PORT %q is not a valid port", cfg.ServerPort))
	}
	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required")
	}
	if cfg.UploadDir == "" && cfg.S3Bucket == "" {
		errors = append(errors, "either UPLOAD_DIR or S3_BUCKET_NAME must be set")
	}

	if IsProduction() {
		if cfg.JWTSecret == "dev-secret-key" {
			errors = append(errors, "JWT_SECRET must be set explicitly in production")
		}
		if cfg.DBPassword == "postgres" {
			errors = append(errors, "DB_PASSWORD must be set explicitly in production")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}

	return nil
}
