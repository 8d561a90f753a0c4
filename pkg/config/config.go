// Package config decodes YAML configuration files. Values may reference
// environment variables with ${VAR} syntax; references are expanded
// before decoding, which keeps secrets out of the file itself.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Validator is implemented by configuration types that can check
// themselves after decoding.
type Validator interface {
	Validate() error
}

// Load reads filename, expands environment variable references, and
// decodes the result into target. Fields absent from the file keep
// whatever values target already holds, so callers pass a prefilled
// defaults struct. If target implements Validator, the decoded
// configuration is validated before Load returns.
func Load[T any](filename string, target *T) error {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	if err := decode(raw, target); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	if v, ok := any(target).(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}
	return nil
}

func decode[T any](raw []byte, target *T) error {
	expanded := os.ExpandEnv(string(raw))
	return yaml.Unmarshal([]byte(expanded), target)
}
