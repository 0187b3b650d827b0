package executor

import (
	"bytes"
	"errors"
	"io"
	"os"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpkotak/hostbud/internal/log"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{"enter with default yes", "\n", true, true},
		{"enter with default no", "\n", false, false},
		{"explicit y", "y\n", false, true},
		{"explicit Y", "Y\n", false, true},
		{"explicit yes", "yes\n", false, true},
		{"explicit n", "n\n", true, false},
		{"explicit no", "no\n", true, false},
		{"explicit N", "N\n", true, false},
		{"garbage input", "asdf\n", true, false},
		{"empty input with spaces", "  \n", true, true},
		{"eof", "", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := strings.NewReader(tt.input)
			out := &bytes.Buffer{}
			got := Confirm("Test?", tt.defaultYes, in, out)
			if got != tt.want {
				t.Errorf("Confirm(%q, defaultYes=%v) = %v, want %v",
					tt.input, tt.defaultYes, got, tt.want)
			}
		})
	}
}

func TestConfirmPrintsHint(t *testing.T) {
	out := &bytes.Buffer{}
	Confirm("Run this?", false, strings.NewReader("y\n"), out)
	assert.Equal(t, "Run this? [y/N]: ", out.String())
}

// exitCommand returns an argv that exits with the given status.
func exitCommand(code string) (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/c", "exit " + code}
	}
	return "sh", []string{"-c", "exit " + code}
}

func TestRunProcessExitCodes(t *testing.T) {
	for _, code := range []struct {
		arg  string
		want int
	}{
		{"0", 0},
		{"1", 1},
		{"3", 3},
	} {
		t.Run(code.arg, func(t *testing.T) {
			exe, args := exitCommand(code.arg)
			res := RunProcess(exe, args...)
			require.NoError(t, res.Err)
			assert.True(t, res.Launched())
			assert.Equal(t, code.want, res.ExitCode)
		})
	}
}

func TestRunProcessDiscardsOutput(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	origStdout, origStderr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = w, w
	defer func() { os.Stdout, os.Stderr = origStdout, origStderr }()

	exe, args := exitCommand("0")
	args[len(args)-1] = "echo noisy && echo noisy 1>&2"
	res := RunProcess(exe, args...)

	os.Stdout, os.Stderr = origStdout, origStderr
	require.NoError(t, w.Close())
	captured, err := io.ReadAll(r)
	require.NoError(t, err)

	require.NoError(t, res.Err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Empty(t, string(captured), "child output leaked to the parent's stdout/stderr")
}

func TestRunProcessLaunchFailure(t *testing.T) {
	orig := log.L()
	defer log.Set(orig)
	var buf bytes.Buffer
	log.Set(log.New(&buf))

	res := RunProcess("definitely-not-a-real-binary")

	require.Error(t, res.Err)
	assert.True(t, errors.Is(res.Err, ErrLaunch))
	assert.False(t, res.Launched())
	assert.Equal(t, Sentinel, res.ExitCode)
	assert.Contains(t, res.Err.Error(), "definitely-not-a-real-binary")
	assert.Contains(t, buf.String(), "process launch failed")
}

func TestSystem(t *testing.T) {
	assert.Equal(t, Sentinel, System("definitely-not-a-real-binary"))

	exe, args := exitCommand("2")
	assert.Equal(t, 2, System(exe, args...))
}

func TestSentinelIsMinInt32(t *testing.T) {
	assert.Equal(t, -2147483648, Sentinel)
}
