package config

import "time"

// PlatformConfig exposes the credentials and endpoints of the external
// e-commerce platform that delegates authentication to this app.
type PlatformConfig interface {
	GetPlatformURL() string
	GetClientID() string
	GetClientSecret() string
	GetRedirectURI() string
	GetExchangeTimeout() time.Duration
}

type Platform struct {
	values envValues
}

var _ PlatformConfig = Platform{}

func (p Platform) GetPlatformURL() string {
	return p.values.PlatformURL
}

func (p Platform) GetClientID() string {
	return p.values.ClientID
}

// GetClientSecret returns the shared secret used both as the OAuth client
// secret and as the HMAC key for signed redirect verification.
// Security: never log or expose this value
func (p Platform) GetClientSecret() string {
	return p.values.ClientSecret
}

func (p Platform) GetRedirectURI() string {
	return p.values.RedirectURI
}

func (p Platform) GetExchangeTimeout() time.Duration {
	return p.values.ExchangeTimeout
}
