package config

import "time"

type SecurityConfig interface {
	GetSessionSigningSecret() string
	GetSessionTokenTTL() time.Duration
	GetAuthMaxAge() time.Duration
}

type Security struct {
	values envValues
}

var _ SecurityConfig = Security{}

func (s Security) GetSessionSigningSecret() string {
	if s.values.SessionSigningSecret == "" {
		// Fall back to the platform secret so a minimal deployment
		// only needs one secret configured.
		return s.values.ClientSecret
	}
	return s.values.SessionSigningSecret
}

func (s Security) GetSessionTokenTTL() time.Duration {
	return s.values.SessionTokenTTL
}

// GetAuthMaxAge bounds how old a signed redirect's timestamp may be before
// it is rejected as a replay.
func (s Security) GetAuthMaxAge() time.Duration {
	return s.values.AuthMaxAge
}
