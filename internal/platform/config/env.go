// Package config reads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every environment variable read by the sheet binaries.
const EnvPrefix = "SHEET_"

// ParseEnvPrefixed fills target from SHEET_-prefixed environment variables.
// Struct tags name variables without the prefix.
func ParseEnvPrefixed(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
