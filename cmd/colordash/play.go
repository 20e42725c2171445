package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/color-dash/internal/config"
	"github.com/vovakirdan/color-dash/internal/level"
	"github.com/vovakirdan/color-dash/internal/platform/tui"
	"github.com/vovakirdan/color-dash/internal/sim"
)

var (
	flagDifficulty string
	flagEndless    bool
	flagSkin       string
	flagController string
)

var playCmd = &cobra.Command{
	Use:   "play [level-id]",
	Short: "Play a level",
	Long: `Start a run of the given level, or of the first level when none is given.

Controls:
  Space/Up/Click - Jump
  R              - Restart
  Esc/B          - Back
  Ctrl+S         - Save screenshot
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - Slower start, gentler speed-up
  normal - Configured speed curve
  hard   - Faster start, steeper speed-up
  fixed  - No speed-up at all

Examples:
  colordash play level-1
  colordash play --endless --difficulty hard
  colordash play level-3 --skin violet
  colordash play level-2 --controller autopilot`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Play a generated endless course")
	playCmd.Flags().StringVar(&flagSkin, "skin", "", "Runner skin id")
	playCmd.Flags().StringVar(&flagController, "controller", "manual", "Who jumps: manual or autopilot")
}

// resolvePlayLevel picks the level to play. Endless runs get a generated
// course seeded from the run seed.
func resolvePlayLevel(levels []level.Level, id string, endless bool, seed int64) (level.Level, error) {
	if endless || id == tui.EndlessLevelID {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return tui.EndlessLevel(seed), nil
	}
	if id == "" {
		if len(levels) == 0 {
			return level.Level{}, fmt.Errorf("no levels available")
		}
		return levels[0], nil
	}
	return level.Find(levels, id)
}

func runPlay(_ *cobra.Command, args []string) {
	logger, closer, err := newLogger(true)
	if err != nil {
		fatal("%v", err)
	}
	defer closer.Close()

	if _, ctrlErr := sim.NewController(flagController, config.DefaultConfig()); ctrlErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", ctrlErr)
		fmt.Fprintln(os.Stderr, "Available controllers:")
		for _, c := range sim.Controllers() {
			fmt.Fprintf(os.Stderr, "  %-10s  %s\n", c.ID, c.Title)
		}
		os.Exit(1)
	}

	cfg, err := loadGameConfig(flagDifficulty)
	if err != nil {
		fatal("%v", err)
	}
	if flagSkin != "" {
		cfg.Runner.Skin = flagSkin
	}

	db, levelStore := openStores(logger)

	id := ""
	if len(args) > 0 {
		id = args[0]
	}
	rt := runtimeConfig()
	l, err := resolvePlayLevel(loadLevels(levelStore, logger), id, flagEndless, rt.Seed)
	if err != nil {
		if db != nil {
			db.Close()
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'colordash levels list' to see available levels.")
		os.Exit(1)
	}

	runErr := tui.Run(tui.PlayOptions{
		Config:     cfg,
		Runtime:    rt,
		Level:      l,
		Controller: flagController,
		Store:      db,
		Logger:     logger,
	})

	// Close store before potential exit
	if db != nil {
		db.Close()
	}

	if runErr != nil {
		fatal("running game: %v", runErr)
	}
}
