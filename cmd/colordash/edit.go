package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/color-dash/internal/level"
	"github.com/vovakirdan/color-dash/internal/platform/tui"
)

var flagExportDir string

var editCmd = &cobra.Command{
	Use:   "edit [level-id]",
	Short: "Open the level editor",
	Long: `Edit a level while an autopilot runs it in a looping preview.
Without a level id the editor starts on a new blank level.

When --levels-dir is set, level files changed on disk are reloaded into
the editor as long as there are no unsaved edits.

Controls:
  h/l, H/L      - Move cursor
  Enter/Space   - Place obstacle
  X             - Remove obstacle under cursor
  T             - Cycle tool (block, spike, gap)
  +/- and ]/[   - Resize tool
  C             - Cycle colour
  >/<           - Change level length
  N             - Rename
  S             - Save
  E             - Export as JSON
  1/2/3         - Load sample level
  ?             - Toggle help

Examples:
  colordash edit
  colordash edit level-2
  colordash edit my-level --levels-dir ./levels`,
	Args: cobra.MaximumNArgs(1),
	Run:  runEdit,
}

func init() {
	editCmd.Flags().StringVar(&flagExportDir, "export-dir", ".", "Directory JSON exports are written to")
}

func runEdit(_ *cobra.Command, args []string) {
	logger, closer, err := newLogger(true)
	if err != nil {
		fatal("%v", err)
	}
	defer closer.Close()

	cfg, err := loadGameConfig("")
	if err != nil {
		fatal("%v", err)
	}

	db, levelStore := openStores(logger)
	if db != nil {
		defer db.Close()
	}

	opts := tui.EditorOptions{
		Config:    cfg,
		Runtime:   runtimeConfig(),
		Store:     levelStore,
		WatchDir:  flagLevelsDir,
		ExportDir: flagExportDir,
		Logger:    logger,
	}
	if len(args) > 0 {
		levels := loadLevels(levelStore, logger)
		l, findErr := level.Find(levels, args[0])
		if findErr != nil {
			// Unknown ids start a new level with that id.
			l = level.Level{ID: args[0], Name: args[0], Length: cfg.Preview.DefaultLength}
		}
		opts.Level = l
	}

	if err := tui.RunEditor(opts); err != nil {
		fatal("running editor: %v", err)
	}
}
