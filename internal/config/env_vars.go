package config

import (
	"fmt"
	"time"
)

// envValues is the struct-tag mapping of every environment variable the
// server reads. It is parsed once at startup and shared by the config
// sub-interfaces.
type envValues struct {
	Port     string `env:"PORT" envDefault:"8080"`
	AppName  string `env:"APP_NAME" envDefault:"Floor Plan Server"`
	Env      string `env:"ENV" envDefault:"DEV"`
	DataFile string `env:"DATA_FILE" envDefault:"./data/floorplan.db"`

	// External platform credentials. ClientSecret doubles as the HMAC
	// shared secret for signed redirect verification.
	PlatformURL  string `env:"PLATFORM_URL"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURI  string `env:"REDIRECT_URI"`

	ExchangeTimeout time.Duration `env:"EXCHANGE_TIMEOUT" envDefault:"10s"`

	// Session credential signing
	SessionSigningSecret string        `env:"SESSION_SIGNING_SECRET"`
	SessionTokenTTL      time.Duration `env:"SESSION_TOKEN_TTL" envDefault:"1h"`
	AuthMaxAge           time.Duration `env:"AUTH_MAX_AGE" envDefault:"24h"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	AllowedMethods string   `env:"ALLOWED_METHODS" envDefault:"GET, POST, PUT, PATCH, DELETE"`
	AllowedHeaders string   `env:"ALLOWED_HEADERS" envDefault:"Content-Type, Authorization"`
}

type EnvVars struct {
	values envValues
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.values.Port
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.values.AppName
}

func (e EnvVars) GetDataFile() string {
	return e.values.DataFile
}

func (e EnvVars) GetEnv() string {
	return e.values.Env
}
