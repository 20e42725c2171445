package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/color-dash/internal/level"
	"github.com/vovakirdan/color-dash/internal/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List, import and export levels",
	Long: `Manage the level collection. Levels live in the database, or in the
directory given by --levels-dir. An empty collection falls back to the
built-in sample levels.

Examples:
  colordash levels list
  colordash levels export level-2 level-2.json
  colordash levels import ./my-levels.json
  colordash levels samples --levels-dir ./levels`,
}

var levelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available levels",
	Args:  cobra.NoArgs,
	Run:   runLevelsList,
}

var levelsExportCmd = &cobra.Command{
	Use:   "export <level-id> [file]",
	Short: "Export a level as JSON (stdout when no file is given)",
	Args:  cobra.RangeArgs(1, 2),
	Run:   runLevelsExport,
}

var levelsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import levels from a JSON or YAML file",
	Args:  cobra.ExactArgs(1),
	Run:   runLevelsImport,
}

var levelsSamplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Write the built-in sample levels into the level store",
	Args:  cobra.NoArgs,
	Run:   runLevelsSamples,
}

func init() {
	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsExportCmd)
	levelsCmd.AddCommand(levelsImportCmd)
	levelsCmd.AddCommand(levelsSamplesCmd)
}

// openLevelStore opens the stores for a non-interactive command.
func openLevelStore() (*storage.Store, level.Store, *log.Logger) {
	logger, _, err := newLogger(false)
	if err != nil {
		fatal("%v", err)
	}
	db, store := openStores(logger)
	return db, store, logger
}

func runLevelsList(_ *cobra.Command, _ []string) {
	db, store, logger := openLevelStore()
	if db != nil {
		defer db.Close()
	}

	levels := loadLevels(store, logger)
	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxNameLen := 4
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
		maxNameLen = max(maxNameLen, len(l.Title()))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %9s  %6s\n", maxIDLen, "ID", maxNameLen, "Name", "Obstacles", "Length")
	fmt.Printf("  %-*s  %-*s  %9s  %6s\n", maxIDLen, "--", maxNameLen, "----", "---------", "------")

	for _, l := range levels {
		fmt.Printf("  %-*s  %-*s  %9d  %6.0f\n", maxIDLen, l.ID, maxNameLen, l.Title(), len(l.Obstacles), l.EffectiveLength())
	}

	fmt.Println()
	fmt.Println("Run 'colordash play <id>' to play a level.")
}

func runLevelsExport(_ *cobra.Command, args []string) {
	db, store, logger := openLevelStore()
	if db != nil {
		defer db.Close()
	}

	l, err := level.Find(loadLevels(store, logger), args[0])
	if err != nil {
		fatal("%v", err)
	}
	data, err := level.EncodeJSON([]level.Level{l})
	if err != nil {
		fatal("%v", err)
	}

	if len(args) < 2 {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(args[1], data, 0o644); err != nil {
		fatal("writing %s: %v", args[1], err)
	}
	fmt.Printf("Exported %s to %s\n", l.ID, args[1])
}

func runLevelsImport(_ *cobra.Command, args []string) {
	data, err := os.ReadFile(args[0])
	if err != nil {
		fatal("reading %s: %v", args[0], err)
	}
	imported, err := level.Decode(data, filepath.Ext(args[0]))
	if err != nil {
		fatal("%v", err)
	}

	db, store, _ := openLevelStore()
	if db != nil {
		defer db.Close()
	}

	for _, l := range imported {
		if err := level.SaveLevel(store, l); err != nil {
			fatal("saving %s: %v", l.ID, err)
		}
		fmt.Printf("Imported %s\n", l)
	}
}

func runLevelsSamples(_ *cobra.Command, _ []string) {
	db, store, _ := openLevelStore()
	if db != nil {
		defer db.Close()
	}

	for _, l := range level.Samples() {
		if err := level.SaveLevel(store, l); err != nil {
			fatal("saving %s: %v", l.ID, err)
		}
		fmt.Printf("Wrote %s\n", l)
	}
}
