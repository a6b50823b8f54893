package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests ensure the test utility functions are covered.

func TestConfigBuilder(t *testing.T) {
	cfg := NewConfig().WithRule("< 1", "old").WithSkipAuth().WithPkgRoot("dist").Build()

	require.Len(t, cfg.Deprecations, 1)
	assert.Equal(t, "< 1", cfg.Deprecations[0].Version)
	assert.True(t, cfg.SkipAuth)
	assert.Equal(t, "dist", cfg.PkgRoot)
}

func TestPackageBuilder(t *testing.T) {
	pkg := NewPackage("test-pkg").WithRule("0.x", "m").WithRegistry("https://r.example.com").Build()

	assert.Equal(t, "test-pkg", pkg.Name)
	assert.Len(t, pkg.Deprecations, 1)
	assert.Equal(t, "https://r.example.com", pkg.PublishConfig.Registry)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := WriteFile(t, dir, "sub/package.json", `{"name": "p"}`)

	assert.Equal(t, filepath.Join(dir, "sub", "package.json"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"name": "p"}`, string(data))
}

func TestNewContext(t *testing.T) {
	rc := NewContext(t, "2.0.0", map[string]string{"NPM_TOKEN": "t"})

	assert.DirExists(t, rc.Cwd)
	assert.Equal(t, "v2.0.0", rc.NextRelease.GitTag)
	assert.Equal(t, "t", rc.Env["NPM_TOKEN"])
	assert.NotEmpty(t, rc.Env["HOME"])
}

func TestCapture(t *testing.T) {
	out := CaptureStdout(t, func() { fmt.Print("to stdout") })
	assert.Equal(t, "to stdout", out)

	stdout, stderr := CaptureOutput(t, func() {
		fmt.Print("a")
		fmt.Fprint(os.Stderr, "b")
	})
	assert.Equal(t, "a", stdout)
	assert.Equal(t, "b", stderr)
}

// TestCaptureLargeOutput tests that output beyond a pipe buffer does not block.
func TestCaptureLargeOutput(t *testing.T) {
	line := strings.Repeat("x", 1023) + "\n"
	out := CaptureStdout(t, func() {
		for i := 0; i < 256; i++ {
			fmt.Print(line)
		}
	})
	assert.Len(t, out, 256*1024)
}
