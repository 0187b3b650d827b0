// Package executor launches external processes and prompts for confirmation.
// Confirm uses injectable io.Reader/io.Writer for testability.
package executor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/hpkotak/hostbud/internal/log"
)

// Sentinel is the exit code reported when a process could not be launched.
const Sentinel = math.MinInt32

// ErrLaunch wraps every failure that happens before the child exits on its own.
var ErrLaunch = errors.New("launching process")

// Result is the outcome of RunProcess.
type Result struct {
	// ExitCode is the child's exit status, or Sentinel when Err is set.
	ExitCode int
	// Err is nil when the child ran to completion, whatever its exit status.
	Err error
}

// Launched reports whether the child process ran to completion.
func (r Result) Launched() bool {
	return r.Err == nil
}

// Confirm prompts the user for yes/no confirmation.
// defaultYes controls what happens when the user presses Enter without input.
// in and out are injectable for testing.
func Confirm(prompt string, defaultYes bool, in io.Reader, out io.Writer) bool {
	hint := "[Y/n]"
	if !defaultYes {
		hint = "[y/N]"
	}
	_, _ = fmt.Fprintf(out, "%s %s: ", prompt, hint)

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}

	input := strings.TrimSpace(strings.ToLower(scanner.Text()))

	switch input {
	case "":
		return defaultYes
	case "y", "yes":
		return true
	default:
		return false
	}
}

// RunProcess runs executable with args and waits for it to exit. The child
// inherits the working directory and environment; its stdout and stderr are
// discarded. A non-zero exit status is data, not an error.
func RunProcess(executable string, args ...string) Result {
	cmd := exec.Command(executable, args...)
	// Nil Stdout and Stderr connect the child to the null device.

	runErr := cmd.Run()
	if runErr == nil {
		return Result{ExitCode: cmd.ProcessState.ExitCode()}
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return Result{ExitCode: exitErr.ExitCode()}
	}

	log.L().Error("process launch failed",
		zap.String("executable", executable),
		zap.Strings("args", args),
		zap.Error(runErr),
	)
	return Result{
		ExitCode: Sentinel,
		Err:      fmt.Errorf("%w %q: %w", ErrLaunch, executable, runErr),
	}
}

// System runs executable like RunProcess and returns only the exit code.
// Launch failures collapse to Sentinel; use RunProcess to tell them apart.
func System(executable string, args ...string) int {
	return RunProcess(executable, args...).ExitCode
}
