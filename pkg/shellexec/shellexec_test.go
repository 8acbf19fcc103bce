// pkg/shellexec/shellexec_test.go
// TEST TYPE: Integration Test (spawns real processes)
// DEPENDENCIES: POSIX sh
// PURPOSE: Test synchronous, asynchronous, and streaming command execution

package shellexec_test

import (
	"bytes"
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitmi/k-utils/pkg/errors"
	"github.com/kitmi/k-utils/pkg/shellexec"
)

func requirePOSIX(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestRunCapturesOutput(t *testing.T) {
	requirePOSIX(t)

	result, err := shellexec.Run(context.Background(), shellexec.Options{}, "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", result.Stdout)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "echo", result.Command)
}

func TestRunShellSeparatesStreams(t *testing.T) {
	requirePOSIX(t)

	result, err := shellexec.RunShell(context.Background(), shellexec.Options{},
		"echo out; echo err >&2")
	require.NoError(t, err)
	assert.Equal(t, "out\n", result.Stdout)
	assert.Equal(t, "err\n", result.Stderr)
}

func TestRunNonZeroExit(t *testing.T) {
	requirePOSIX(t)

	result, err := shellexec.RunShell(context.Background(), shellexec.Options{},
		"echo oops >&2; exit 3")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExecFailed))
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "oops\n", result.Stderr, "output is still available on failure")

	details := errors.GetErrorDetails(err)
	assert.Equal(t, 3, details["exitCode"])
	assert.Equal(t, "oops", details["stderr"])
}

func TestRunMissingBinary(t *testing.T) {
	requirePOSIX(t)

	_, err := shellexec.Run(context.Background(), shellexec.Options{},
		"definitely-not-a-real-binary-kutils")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExecStart))
}

func TestRunOptions(t *testing.T) {
	requirePOSIX(t)

	dir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	result, err := shellexec.RunShell(context.Background(), shellexec.Options{
		Dir: dir,
		Env: []string{"KUTILS_TEST_VAR=xyz"},
	}, "pwd; printf %s \"$KUTILS_TEST_VAR\"")
	require.NoError(t, err)

	pwd := strings.SplitN(result.Stdout, "\n", 2)[0]
	pwdResolved, err := filepath.EvalSymlinks(pwd)
	require.NoError(t, err)
	assert.Equal(t, resolved, pwdResolved)
	assert.True(t, strings.HasSuffix(result.Stdout, "xyz"))
}

func TestRunStdin(t *testing.T) {
	requirePOSIX(t)

	result, err := shellexec.Run(context.Background(),
		shellexec.Options{Stdin: strings.NewReader("from stdin")}, "cat")
	require.NoError(t, err)
	assert.Equal(t, "from stdin", result.Stdout)
}

func TestRunContextTimeout(t *testing.T) {
	requirePOSIX(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := shellexec.RunShell(ctx, shellexec.Options{}, "sleep 5")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExecFailed))
}

func TestRunLiveStreams(t *testing.T) {
	requirePOSIX(t)

	var stdout, stderr bytes.Buffer
	result, err := shellexec.RunLive(context.Background(), shellexec.Options{},
		&stdout, &stderr, "sh", "-c", "echo live; echo liveerr >&2")
	require.NoError(t, err)
	assert.Equal(t, "live\n", stdout.String())
	assert.Equal(t, "liveerr\n", stderr.String())
	assert.Empty(t, result.Stdout, "streamed output is not also captured")
}

func TestStartWait(t *testing.T) {
	requirePOSIX(t)

	handle, err := shellexec.Start(context.Background(), shellexec.Options{},
		"sh", "-c", "echo async")
	require.NoError(t, err)

	result, err := handle.Wait()
	require.NoError(t, err)
	assert.Equal(t, "async\n", result.Stdout)
	assert.Equal(t, 0, result.ExitCode)
}

func TestStartMissingBinary(t *testing.T) {
	requirePOSIX(t)

	_, err := shellexec.Start(context.Background(), shellexec.Options{},
		"definitely-not-a-real-binary-kutils")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExecStart))
}
