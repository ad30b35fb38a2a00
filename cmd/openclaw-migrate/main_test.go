package main

import (
	"bytes"
	"errors"
	"io"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runMainWith(t *testing.T, err error) (code int, stderr string) {
	t.Helper()
	restore := executeFunc
	executeFunc = func([]string, io.Writer, io.Writer) error { return err }
	defer func() { executeFunc = restore }()

	code = -1
	errBuf := &bytes.Buffer{}
	runMain([]string{"openclaw-migrate"}, &bytes.Buffer{}, errBuf, func(c int) { code = c })
	return code, errBuf.String()
}

func TestRunMainSuccess(t *testing.T) {
	code, stderr := runMainWith(t, nil)
	assert.Equal(t, -1, code, "exit not called on success")
	assert.Empty(t, stderr)
}

func TestRunMainSilentExit(t *testing.T) {
	code, stderr := runMainWith(t, &SilentExitError{Code: 3})
	assert.Equal(t, 3, code)
	assert.Empty(t, stderr, "silent exits write nothing")
}

func TestRunMainCommandExitCodePropagates(t *testing.T) {
	err := exec.Command("sh", "-c", "exit 7").Run()
	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))

	code, stderr := runMainWith(t, err)
	assert.Equal(t, 7, code)
	assert.NotEmpty(t, stderr)
}

func TestRunMainGenericError(t *testing.T) {
	code, stderr := runMainWith(t, errors.New("scan failed"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "scan failed")
}

func TestVersionString(t *testing.T) {
	s := versionString()
	assert.True(t, strings.HasPrefix(s, Version))
	assert.Contains(t, s, Commit)
	assert.Contains(t, s, BuildDate)
}
