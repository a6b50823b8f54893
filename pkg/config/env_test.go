package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadNpmEnv tests the behavior of LoadNpmEnv.
//
// It verifies:
//   - Variables are read from the given map only
//   - Legacy auth requires all three variables
func TestLoadNpmEnv(t *testing.T) {
	t.Setenv("NPM_TOKEN", "from-process")

	e, err := LoadNpmEnv(map[string]string{
		"NPM_USERNAME":        "user",
		"NPM_PASSWORD":        "pass",
		"NPM_CONFIG_REGISTRY": "https://npm.example.com",
		"HOME":                "/home/ci",
	})
	require.NoError(t, err)

	assert.Empty(t, e.Token)
	assert.Equal(t, "https://npm.example.com", e.Registry)
	assert.Equal(t, "/home/ci", e.Home)
	assert.False(t, e.HasLegacyAuth())
	assert.False(t, e.HasCredentials())

	e.Email = "ci@example.com"
	assert.True(t, e.HasLegacyAuth())
	assert.Equal(t, "dXNlcjpwYXNz", e.LegacyToken())
}

// TestLoadNpmEnvNil tests that a nil map does not fall back to the process environment.
func TestLoadNpmEnvNil(t *testing.T) {
	t.Setenv("NPM_TOKEN", "from-process")

	e, err := LoadNpmEnv(nil)
	require.NoError(t, err)
	assert.Empty(t, e.Token)
}

// TestHasCredentialsToken tests that a token alone is enough.
func TestHasCredentialsToken(t *testing.T) {
	e, err := LoadNpmEnv(map[string]string{"NPM_TOKEN": "t"})
	require.NoError(t, err)
	assert.True(t, e.HasCredentials())
}
