package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/color-dash/internal/config"
)

var flagConfigInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or install the default game config",
	Long: `Print the default game configuration as YAML.

With --init the file is written to ~/.colordash/configs/colordash.yaml,
where it is picked up automatically. Existing files are never overwritten.

Examples:
  colordash config > my-colordash.yaml
  colordash config --init`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigInit, "init", false, "Write the default config to the user config directory")
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) {
	if !flagConfigInit {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	path := config.UserConfigPath(config.FileName)
	if path == "" {
		fatal("cannot determine home directory")
	}
	if _, err := os.Stat(path); err == nil {
		fatal("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fatal("%v", err)
	}
	if err := os.WriteFile(path, config.DefaultYAML(), 0o644); err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Wrote %s\n", path)
}
