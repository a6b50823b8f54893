package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/deprecation"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/plugin"
)

// TestParseFormat tests the behavior of ParseFormat.
func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"csv", FormatCSV},
		{"CSV", FormatCSV},
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"table", FormatTable},
		{"", FormatTable},
		{"xml", FormatTable},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseFormat(tt.input))
		})
	}
}

func samplePlan() *plugin.Plan {
	return &plugin.Plan{
		Package:  "test-package",
		Registry: "https://registry.npmjs.org/",
		Auth:     true,
		Steps: []plugin.Step{
			{
				Source:   "config",
				Template: deprecation.Rule{Version: "< ${nextRelease.version}", Message: "Please use ^1."},
				Rule:     deprecation.Rule{Version: "< 1", Message: "Please use ^1."},
				Command:  `npm deprecate --userconfig $TMPDIR/.npmrc --registry https://registry.npmjs.org/ test-package@"< 1" "Please use ^1."`,
			},
			{
				Source:  "package.json",
				Rule:    deprecation.Rule{Version: "1.0.0"},
				Command: `npm deprecate --userconfig $TMPDIR/.npmrc --registry https://registry.npmjs.org/ test-package@"1.0.0" ""`,
			},
		},
	}
}

// TestWritePlanJSON tests JSON output, including unescaped version ranges.
func TestWritePlanJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlan(&buf, samplePlan(), FormatJSON))

	assert.Contains(t, buf.String(), `"version": "< 1"`)
	assert.NotContains(t, buf.String(), `\u003c`)

	var decoded plugin.Plan
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *samplePlan(), decoded)
}

// TestWritePlanCSV tests CSV output.
func TestWritePlanCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlan(&buf, samplePlan(), FormatCSV))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "source,version,message,command", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "config,< 1,Please use ^1.,"))
}

// TestWritePlanTable tests table output.
func TestWritePlanTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlan(&buf, samplePlan(), FormatTable))

	out := buf.String()
	assert.Contains(t, out, "Package: test-package\nRegistry: https://registry.npmjs.org/\n")
	assert.Contains(t, out, "#  STATUS      SOURCE        VERSION  MESSAGE\n")
	assert.Contains(t, out, "1  🟠 Planned  config        < 1      Please use ^1.\n")
	assert.Contains(t, out, "2  🟠 Planned  package.json  1.0.0    (empty)\n")
	assert.Contains(t, out, "Commands:\n  npm deprecate --userconfig")
}

// TestWritePlanTableEmpty tests the message for an empty plan.
func TestWritePlanTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlan(&buf, &plugin.Plan{Package: "p", Steps: []plugin.Step{}}, FormatTable))
	assert.Equal(t, "🔵 No deprecations configured for p\n", buf.String())
}

// TestWritePlanTableSkipAuth tests the registry line without auth.
func TestWritePlanTableSkipAuth(t *testing.T) {
	plan := samplePlan()
	plan.Auth = false
	plan.Registry = ""

	var buf bytes.Buffer
	require.NoError(t, WritePlan(&buf, plan, FormatTable))
	assert.Contains(t, buf.String(), "Registry: ambient npm config\n")
}
