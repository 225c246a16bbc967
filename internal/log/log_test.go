package log

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stderr = w

	fn()

	_ = w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestSetDebugMode(t *testing.T) {
	original := debugMode
	defer func() { debugMode = original }()

	SetDebugMode(true)
	assert.True(t, debugMode)

	SetDebugMode(false)
	assert.False(t, debugMode)
}

func TestDebugEnabled(t *testing.T) {
	original := debugMode
	defer func() { debugMode = original }()

	SetDebugMode(true)
	output := captureStdout(t, func() {
		Debug("resolved %d team(s)", 3)
	})

	assert.Contains(t, output, "resolved 3 team(s)")
	assert.Contains(t, output, "[debug]")
}

func TestDebugDisabled(t *testing.T) {
	original := debugMode
	defer func() { debugMode = original }()

	SetDebugMode(false)
	output := captureStdout(t, func() {
		Debug("should not appear")
	})

	assert.Empty(t, output)
}

func TestInfo(t *testing.T) {
	output := captureStdout(t, func() {
		Info("syncing %s", "admin/owners")
	})

	assert.Contains(t, output, "syncing admin/owners")
	assert.Contains(t, output, "[+]")
}

func TestInfoH2Indented(t *testing.T) {
	output := captureStdout(t, func() {
		InfoH2("added alice")
	})

	assert.Contains(t, output, "  [+] ")
	assert.Contains(t, output, "added alice")
}

func TestWarnGoesToStderr(t *testing.T) {
	stdout := captureStdout(t, func() {
		stderr := captureStderr(t, func() {
			Warn("group %q skipped", "adm")
		})
		assert.Contains(t, stderr, `group "adm" skipped`)
		assert.Contains(t, stderr, "[!]")
	})

	assert.Empty(t, stdout)
}

func TestErrorGoesToStderr(t *testing.T) {
	stderr := captureStderr(t, func() {
		Error("failed to add %s: %v", "alice", os.ErrPermission)
	})

	assert.Contains(t, stderr, "failed to add alice")
	assert.Contains(t, stderr, "[x]")
}
