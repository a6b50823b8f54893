package config

import (
	"encoding/base64"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// NpmEnv holds the npm related variables of the release environment.
type NpmEnv struct {
	Token      string `env:"NPM_TOKEN"`
	Username   string `env:"NPM_USERNAME"`
	Password   string `env:"NPM_PASSWORD"`
	Email      string `env:"NPM_EMAIL"`
	Registry   string `env:"NPM_CONFIG_REGISTRY"`
	UserConfig string `env:"NPM_CONFIG_USERCONFIG"`
	Home       string `env:"HOME"`
}

// LoadNpmEnv decodes NpmEnv from an environment map.
//
// The map is used as the only source; the process environment is not read.
//
// Parameters:
//   - environ: Release environment, typically release.Context.Env
//
// Returns:
//   - *NpmEnv: Decoded variables
//   - error: Decoding error
func LoadNpmEnv(environ map[string]string) (*NpmEnv, error) {
	if environ == nil {
		environ = map[string]string{}
	}

	var e NpmEnv
	if err := env.ParseWithOptions(&e, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse npm environment: %w", err)
	}
	return &e, nil
}

// HasLegacyAuth reports whether username, password and email are all set.
func (e *NpmEnv) HasLegacyAuth() bool {
	return e.Username != "" && e.Password != "" && e.Email != ""
}

// HasCredentials reports whether any supported credentials are set.
func (e *NpmEnv) HasCredentials() bool {
	return e.HasLegacyAuth() || e.Token != ""
}

// LegacyToken returns base64("username:password") for the _auth setting.
func (e *NpmEnv) LegacyToken() string {
	return base64.StdEncoding.EncodeToString([]byte(e.Username + ":" + e.Password))
}
