package cmd

import (
	"fmt"

	"github.com/hpkotak/hostbud/internal/executor"
	"github.com/hpkotak/hostbud/internal/safety"
	"github.com/spf13/cobra"
)

var yesFlag bool

var runCmd = &cobra.Command{
	Use:   "run <executable> [args...]",
	Short: "Run a process and print its exit code",
	Long: `Run an executable with the given arguments, discarding its output, and
print the exit code. Flags after the executable are passed through to it.

Destructive invocations (rm, sudo, shutdown, ...) ask for confirmation
unless --yes is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "skip confirmation for destructive commands")
	runCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(runCmd)
}

func runRun(_ *cobra.Command, args []string) error {
	exe, rest := args[0], args[1:]

	if safety.Classify(exe, rest...) == safety.Destructive && !yesFlag {
		_, _ = fmt.Fprintln(ioOut, "  Warning: this is a destructive command.")
		if !executor.Confirm("  Are you sure?", false, ioIn, ioOut) {
			_, _ = fmt.Fprintln(ioOut, "  Cancelled.")
			return nil
		}
	}

	res := runProcess(exe, rest...)
	if !res.Launched() {
		return res.Err
	}

	_, _ = fmt.Fprintf(ioOut, "exit code: %d\n", res.ExitCode)
	return nil
}
