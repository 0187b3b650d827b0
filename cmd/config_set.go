package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hpkotak/hostbud/internal/config"
	"github.com/spf13/cobra"
)

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update a configuration value",
	Long: `Update a configuration value. Supported keys:
  os_name         OS name to classify instead of the host's ("" to clear)
  status_command  Command run on Windows hosts (e.g., "sc query")
  output          Report format (text/yaml)
  log.level       Diagnostic log level (debug/info/warn/error)
  log.file        Rotating log file path ("" logs to stderr)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

func runConfigSet(_ *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	if err := config.SetPath(configFlag); err != nil {
		return err
	}

	// Read the file alone so environment overrides are never persisted.
	cfg, err := config.LoadFile()
	if err != nil {
		if !errors.Is(err, config.ErrNotFound) {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = config.Default()
	}

	switch key {
	case "os_name":
		cfg.OSName = strings.TrimSpace(value)
	case "status_command":
		cfg.StatusCommand = strings.Fields(value)
	case "output":
		cfg.Output = strings.ToLower(strings.TrimSpace(value))
	case "log.level":
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(value))
	case "log.file":
		cfg.Log.File = strings.TrimSpace(value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(ioOut, "Set %s = %s\n", key, value)
	return nil
}
