package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration can start a server.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "must not be empty"}.Error())
	} else if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		errs = append(errs, ValidationError{"SERVER_PORT", fmt.Sprintf("invalid port %q", cfg.ServerPort)}.Error())
	}

	if cfg.DatasetFromS3() {
		if cfg.DatasetS3Key == "" {
			errs = append(errs, ValidationError{"DATASET_S3_KEY", "required when DATASET_S3_BUCKET is set"}.Error())
		}
	} else if cfg.DatasetPath == "" {
		errs = append(errs, ValidationError{"DATASET_PATH", "must not be empty"}.Error())
	}

	if cfg.DBPath == "" {
		errs = append(errs, ValidationError{"DB_PATH", "must not be empty"}.Error())
	}

	if cfg.LLMAPIKey != "" && cfg.LLMAPIURL == "" {
		errs = append(errs, ValidationError{"LLM_API_URL", "required when LLM_API_KEY is set"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
