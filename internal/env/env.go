package env

import (
	"os"
	"strings"

	"github.com/ekisa-team/narrator/internal/envvar"
)

// Environment is the runtime environment the process is deployed in.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
	Test        Environment = "test"
)

// FromEnv reads the environment from NARRATOR_ENV, defaulting to development.
func FromEnv() Environment {
	return Parse(os.Getenv(envvar.NarratorEnv))
}

// Parse converts a raw value into an Environment. Unknown values map to development.
func Parse(v string) Environment {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "prod", "production":
		return Production
	case "test", "testing":
		return Test
	default:
		return Development
	}
}

// IsProduction reports whether e is the production environment.
func (e Environment) IsProduction() bool {
	return e == Production
}
