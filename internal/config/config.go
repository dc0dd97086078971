package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	CorsConfig
	PlatformConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFile() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Platform
	Security
}

// New loads configuration from the environment. A .env file in the working
// directory is applied first when present.
func New() (Config, error) {
	_ = godotenv.Load()

	values := envValues{}
	if err := env.Parse(&values); err != nil {
		return nil, fmt.Errorf("[config New] failed to parse environment: %w", err)
	}

	return mainConfig{
		EnvVars:  EnvVars{values: values},
		Cors:     Cors{values: values},
		Platform: Platform{values: values},
		Security: Security{values: values},
	}, nil
}
