package template

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/iancoleman/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// releaseScope returns the binding scope used by most tests.
func releaseScope() map[string]any {
	return map[string]any{
		"nextRelease": map[string]any{
			"version": "1.2.3",
			"gitTag":  "v1.2.3",
			"channel": nil,
			"notes":   "<b>fixes</b> & more",
		},
		"branch": map[string]any{"name": "main", "prerelease": false},
		"commits": []any{
			map[string]any{"hash": "abc"},
			map[string]any{"hash": "def"},
		},
		"count":  float64(2),
		"labels": []string{"a", "b"},
	}
}

// TestRender tests the behavior of Render with valid templates.
//
// It verifies:
//   - Plain text passes through unchanged
//   - Field paths, indexing and allow-listed methods are evaluated
//   - Nullish and missing values render as empty strings
//   - Values are formatted like string interpolation
func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		expected string
	}{
		{name: "plain text", template: "Please upgrade.", expected: "Please upgrade."},
		{name: "empty", template: "", expected: ""},
		{name: "field path", template: "< ${nextRelease.version}", expected: "< 1.2.3"},
		{name: "split and index", template: "< ${nextRelease.version.split('.')[0]}", expected: "< 1"},
		{name: "message with major", template: "Please use ^${nextRelease.version.split('.')[0]}.0.0.", expected: "Please use ^1.0.0."},
		{name: "double quoted args", template: `${nextRelease.version.split(".")[1]}`, expected: "2"},
		{name: "split limit", template: "${nextRelease.version.split('.', 2)}", expected: "1,2"},
		{name: "split no args", template: "${nextRelease.version.split()}", expected: "1.2.3"},
		{name: "split into chars", template: "${branch.name.split('').join('-')}", expected: "m-a-i-n"},
		{name: "bracket field", template: "${nextRelease['gitTag']}", expected: "v1.2.3"},
		{name: "nested index", template: "${commits[1].hash}", expected: "def"},
		{name: "length", template: "${commits.length}/${branch.name.length}", expected: "2/4"},
		{name: "upper", template: "${branch.name.toUpperCase()}", expected: "MAIN"},
		{name: "lower", template: "${nextRelease.gitTag.toUpperCase().toLowerCase()}", expected: "v1.2.3"},
		{name: "trim", template: "[${'  x  '.trim()}]", expected: "[x]"},
		{name: "replace first", template: "${nextRelease.version.replace('.', '-')}", expected: "1-2.3"},
		{name: "string slice", template: "${nextRelease.gitTag.slice(1)}", expected: "1.2.3"},
		{name: "negative slice", template: "${nextRelease.version.slice(-1)}", expected: "3"},
		{name: "array slice", template: "${nextRelease.version.split('.').slice(0, 2).join('.')}", expected: "1.2"},
		{name: "predicates", template: "${nextRelease.gitTag.startsWith('v')} ${branch.name.endsWith('x')} ${branch.name.includes('ai')}", expected: "true false true"},
		{name: "array includes", template: "${labels.includes('b')}", expected: "true"},
		{name: "null renders empty", template: "[${nextRelease.channel}]", expected: "[]"},
		{name: "missing property renders empty", template: "[${nextRelease.missing}]", expected: "[]"},
		{name: "out of range index renders empty", template: "[${commits[5]}]", expected: "[]"},
		{name: "boolean", template: "${branch.prerelease}", expected: "false"},
		{name: "number", template: "${count}", expected: "2"},
		{name: "object", template: "${branch}", expected: "[object Object]"},
		{name: "string slice of go strings", template: "${labels}", expected: "a,b"},
		{name: "literal", template: "${'lit'}${42}", expected: "lit42"},
		{name: "erb interpolate", template: "<%= nextRelease.version %>", expected: "1.2.3"},
		{name: "erb escape", template: "<%- nextRelease.notes %>", expected: "&lt;b&gt;fixes&lt;/b&gt; &amp; more"},
		{name: "interpolate does not escape", template: "${nextRelease.notes}", expected: "<b>fixes</b> & more"},
		{name: "brace inside string", template: "${'}'}", expected: "}"},
		{name: "dollar without brace", template: "costs $5", expected: "costs $5"},
		{name: "unicode text", template: "≥ ${nextRelease.version} ✔", expected: "≥ 1.2.3 ✔"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.template, releaseScope())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestRenderErrors tests the behavior of Render with invalid templates.
//
// It verifies:
//   - Syntax errors and disallowed constructs are rejected
//   - Unknown identifiers and reads from null are runtime errors
//   - Errors report the template and offset
func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name     string
		template string
		contains string
	}{
		{name: "unknown identifier", template: "${process.env.HOME}", contains: "process is not defined"},
		{name: "read from undefined", template: "${nextRelease.missing.value}", contains: `cannot read property "value" of undefined`},
		{name: "read from null", template: "${nextRelease.channel.name}", contains: `cannot read property "name" of null`},
		{name: "method on null", template: "${nextRelease.channel.split('.')}", contains: `cannot read property "split" of null`},
		{name: "disallowed method", template: "${nextRelease.version.constructor()}", contains: `method "constructor" is not allowed on string`},
		{name: "method on object", template: "${branch.toString()}", contains: `method "toString" is not allowed on object`},
		{name: "free function call", template: "${eval('1')}", contains: "only allow-listed methods can be called"},
		{name: "operator", template: "${count + 1}", contains: "unexpected character '+'"},
		{name: "code block", template: "<% print(1) %>", contains: "code blocks"},
		{name: "unterminated", template: "< ${nextRelease.version", contains: "unterminated ${ block"},
		{name: "unterminated string", template: "${'abc}", contains: "unterminated ${ block"},
		{name: "dangling opener", template: "cost ${", contains: "unterminated ${ block"},
		{name: "dangling opener after text", template: "price $5 or ${", contains: "unterminated ${ block"},
		{name: "empty expression", template: "${ }", contains: "empty expression"},
		{name: "wrong arity", template: "${nextRelease.version.replace('.')}", contains: "replace() expects 2 arguments, got 1"},
		{name: "wrong argument type", template: "${nextRelease.version.split(1)}", contains: "argument 1 must be a string"},
		{name: "missing bracket", template: "${commits[0}", contains: `expected "]"`},
		{name: "trailing tokens", template: "${count count}", contains: `unexpected identifier "count"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.template, releaseScope())
			require.Error(t, err)

			var tmplErr *Error
			require.ErrorAs(t, err, &tmplErr)
			assert.Equal(t, tt.template, tmplErr.Template)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

// TestErrorOffset tests that error offsets point into the template text.
func TestErrorOffset(t *testing.T) {
	_, err := Render("< ${nextRelease.nope.x}", releaseScope())
	var tmplErr *Error
	require.ErrorAs(t, err, &tmplErr)
	assert.Equal(t, strings.Index("< ${nextRelease.nope.x}", ".x")+1, tmplErr.Pos)

	// A dangling opener points at the opener itself.
	_, err = Render("cost ${", releaseScope())
	require.ErrorAs(t, err, &tmplErr)
	assert.Equal(t, 5, tmplErr.Pos)
}

// TestRenderOrderedMapScope tests rendering against a JSON document decoded
// into an ordered map, as the release context loader produces.
func TestRenderOrderedMapScope(t *testing.T) {
	doc := orderedmap.New()
	require.NoError(t, json.Unmarshal([]byte(`{
		"nextRelease": {"version": "2.0.0", "channel": "next"},
		"commits": [{"subject": "feat: x"}, {"subject": "fix: y"}]
	}`), doc))

	got, err := Render("${nextRelease.channel}@${nextRelease.version.split('.')[0]} ${commits[1].subject}", doc)
	require.NoError(t, err)
	assert.Equal(t, "next@2 fix: y", got)
}

// TestParseReuse tests that a parsed template can be executed repeatedly.
func TestParseReuse(t *testing.T) {
	tmpl, err := Parse("< ${nextRelease.version}")
	require.NoError(t, err)
	assert.Equal(t, "< ${nextRelease.version}", tmpl.String())

	for _, version := range []string{"1.0.0", "2.5.1"} {
		got, err := tmpl.Execute(map[string]any{"nextRelease": map[string]any{"version": version}})
		require.NoError(t, err)
		assert.Equal(t, "< "+version, got)
	}

	_, err = tmpl.Execute(nil)
	assert.ErrorContains(t, err, "nextRelease is not defined")
}

// TestRenderLiteralTextProperty checks that text without delimiters is
// returned unchanged.
func TestRenderLiteralTextProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z0-9 .^<>=|~*-]{0,40}`).Draw(t, "text")
		if strings.Contains(text, "<%") {
			t.Skip("contains a delimiter")
		}
		got, err := Render(text, releaseScope())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != text {
			t.Fatalf("got %q, want %q", got, text)
		}
	})
}

// TestRenderMajorVersionProperty checks split/index against arbitrary versions.
func TestRenderMajorVersionProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		major := rapid.IntRange(0, 999).Draw(t, "major")
		minor := rapid.IntRange(0, 999).Draw(t, "minor")
		patch := rapid.IntRange(0, 999).Draw(t, "patch")
		version := strings.Join([]string{itoa(major), itoa(minor), itoa(patch)}, ".")

		got, err := Render("< ${nextRelease.version.split('.')[0]}", map[string]any{
			"nextRelease": map[string]any{"version": version},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "< "+itoa(major) {
			t.Fatalf("got %q for version %s", got, version)
		}
	})
}

func itoa(i int) string {
	return formatNumber(float64(i))
}
