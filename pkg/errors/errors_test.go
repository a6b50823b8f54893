package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetExitCode tests the behavior of GetExitCode.
//
// It verifies:
//   - nil maps to ExitSuccess
//   - ExitError codes are returned as-is, even when wrapped
//   - Configuration plugin errors map to ExitConfigError
//   - Everything else maps to ExitFailure
func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil", err: nil, expected: ExitSuccess},
		{name: "exit error", err: NewExitError(ExitConfigError, nil), expected: ExitConfigError},
		{name: "wrapped exit error", err: fmt.Errorf("outer: %w", NewExitError(7, nil)), expected: 7},
		{name: "no token", err: NewPluginError(CodeNoNpmToken, nil, "no token"), expected: ExitConfigError},
		{name: "no package", err: NewPluginError(CodeNoPackage, nil, "missing"), expected: ExitConfigError},
		{name: "deprecate failure", err: NewPluginError(CodeDeprecate, nil, "failed"), expected: ExitFailure},
		{name: "template failure", err: NewPluginError(CodeInvalidTemplate, nil, "bad"), expected: ExitFailure},
		{name: "plain error", err: stderrors.New("boom"), expected: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetExitCode(tt.err))
		})
	}
}

// TestExitErrorMessage tests the behavior of ExitError.Error.
//
// It verifies:
//   - Message wins over the wrapped error
//   - The wrapped error is used when no message is set
//   - A default message is produced otherwise
func TestExitErrorMessage(t *testing.T) {
	assert.Equal(t, "custom", (&ExitError{Code: 2, Message: "custom", Err: stderrors.New("inner")}).Error())
	assert.Equal(t, "inner", (&ExitError{Code: 2, Err: stderrors.New("inner")}).Error())
	assert.Equal(t, "exit code 2", (&ExitError{Code: 2}).Error())

	exitErr, ok := IsExitError(fmt.Errorf("wrap: %w", NewExitError(3, nil)))
	require.True(t, ok)
	assert.Equal(t, 3, exitErr.Code)

	_, ok = IsExitError(stderrors.New("plain"))
	assert.False(t, ok)
}

// TestPluginError tests the behavior of PluginError.
//
// It verifies:
//   - The message is prefixed by the code and suffixed by the cause
//   - Details are filled from the code table
//   - errors.Is reaches the wrapped cause
func TestPluginError(t *testing.T) {
	cause := stderrors.New("exit status 1")
	err := NewPluginError(CodeDeprecate, cause, "deprecating %s@%q", "pkg", "< 1")

	assert.Equal(t, `EDEPRECATE: deprecating pkg@"< 1": exit status 1`, err.Error())
	assert.NotEmpty(t, err.Details)
	assert.True(t, stderrors.Is(err, cause))

	pe, ok := IsPluginError(fmt.Errorf("outer: %w", err))
	require.True(t, ok)
	assert.Equal(t, CodeDeprecate, pe.Code)
}

// TestHasCode tests the behavior of HasCode.
//
// It verifies:
//   - Codes are found through wrapping and errors.Join
//   - Missing codes and nil errors report false
func TestHasCode(t *testing.T) {
	joined := stderrors.Join(
		NewPluginError(CodeNoNpm, nil, "npm missing"),
		fmt.Errorf("ctx: %w", NewPluginError(CodeNoNpmToken, nil, "no token")),
	)

	assert.True(t, HasCode(joined, CodeNoNpm))
	assert.True(t, HasCode(joined, CodeNoNpmToken))
	assert.False(t, HasCode(joined, CodeDeprecate))
	assert.False(t, HasCode(nil, CodeDeprecate))
}

// TestPrintErrorWithHints tests the behavior of PrintErrorWithHints.
//
// It verifies:
//   - Joined errors are printed one per entry
//   - Details are printed only in verbose mode
//   - Known patterns get a hint line
func TestPrintErrorWithHints(t *testing.T) {
	errs := []error{
		stderrors.Join(
			NewPluginError(CodeNoNpmToken, nil, "no npm token specified"),
			stderrors.New("npm ERR! code E403"),
		),
		nil,
	}

	var quiet bytes.Buffer
	PrintErrorWithHints(&quiet, errs, false)
	assert.Contains(t, quiet.String(), "Error: ENONPMTOKEN: no npm token specified\n")
	assert.Contains(t, quiet.String(), "Error: npm ERR! code E403\n")
	assert.Contains(t, quiet.String(), "Hint: Access forbidden")
	assert.Contains(t, quiet.String(), "Hint: No npm credentials")
	assert.NotContains(t, quiet.String(), "CI environment")

	var loud bytes.Buffer
	PrintErrorWithHints(&loud, errs, true)
	assert.Contains(t, loud.String(), "CI environment")
}

// TestGetHintForCommand tests the behavior of GetHintForCommand.
func TestGetHintForCommand(t *testing.T) {
	assert.Contains(t, GetHintForCommand("npm"), "nodejs.org")
	assert.Empty(t, GetHintForCommand("unknown-tool"))
	assert.Empty(t, GetHint(nil))
}
