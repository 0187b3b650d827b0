package cmd

import (
	"errors"
	"fmt"

	"github.com/hpkotak/hostbud/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	if err := config.SetPath(configFlag); err != nil {
		return err
	}

	path, err := config.Path()
	if err != nil {
		return fmt.Errorf("locating config: %w", err)
	}

	note := ""
	if _, err := config.LoadFile(); err != nil {
		if !errors.Is(err, config.ErrNotFound) {
			return fmt.Errorf("loading config: %w", err)
		}
		note = " (not found, showing defaults)"
	}

	cfg, err := config.LoadOrDefault()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	_, _ = fmt.Fprintf(ioOut, "Config file: %s%s\n\n", path, note)
	_, _ = fmt.Fprint(ioOut, string(data))
	return nil
}
