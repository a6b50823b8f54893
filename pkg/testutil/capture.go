// Package testutil provides shared test utilities for semrel-npm-deprecate packages.
package testutil

import (
	"bytes"
	"io"
	"os"
	"testing"
)

// CaptureStdout returns what fn writes to os.Stdout.
//
// Parameters:
//   - t: Testing instance; pipe errors fail the test
//   - fn: Function to run while os.Stdout is redirected
//
// Returns:
//   - string: Captured output
func CaptureStdout(t *testing.T, fn func()) string {
	t.Helper()
	stdout, _ := capture(t, true, false, fn)
	return stdout
}

// CaptureOutput returns what fn writes to os.Stdout and os.Stderr.
//
// cobra commands without an explicit writer resolve os.Stdout and os.Stderr
// at write time, so whole CLI runs can be captured this way.
//
// Parameters:
//   - t: Testing instance; pipe errors fail the test
//   - fn: Function to run while both streams are redirected
//
// Returns:
//   - stdout: Captured standard output
//   - stderr: Captured standard error
func CaptureOutput(t *testing.T, fn func()) (stdout, stderr string) {
	t.Helper()
	return capture(t, true, true, fn)
}

// capture swaps the selected streams for pipes drained concurrently, so fn
// never blocks on a full pipe buffer.
func capture(t *testing.T, out, errOut bool, fn func()) (string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	var restore []func()
	var done []chan struct{}

	redirect := func(stream **os.File, buf *bytes.Buffer) {
		r, w, err := os.Pipe()
		if err != nil {
			t.Fatalf("create pipe: %v", err)
		}
		old := *stream
		*stream = w

		ch := make(chan struct{})
		go func() {
			_, _ = io.Copy(buf, r)
			_ = r.Close()
			close(ch)
		}()

		restore = append(restore, func() {
			_ = w.Close()
			*stream = old
		})
		done = append(done, ch)
	}

	if out {
		redirect(&os.Stdout, &stdout)
	}
	if errOut {
		redirect(&os.Stderr, &stderr)
	}

	func() {
		defer func() {
			for _, r := range restore {
				r()
			}
			for _, ch := range done {
				<-ch
			}
		}()
		fn()
	}()

	return stdout.String(), stderr.String()
}
