// colordash is a terminal side-scroller: jump a coloured square over blocks,
// spikes and gaps, and build your own levels with a live autopilot preview.
//
// Usage:
//
//	colordash                    - Start the level picker menu
//	colordash play [level-id]    - Play a level directly
//	colordash edit [level-id]    - Open the level editor
//	colordash levels list        - List available levels
//	colordash scores [level-id]  - Show best distances
//	colordash serve              - Start SSH server for remote play
//	colordash config             - Print the default game config
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.colordash/colordash.db)
//	--levels-dir <path>   - Read and write levels as files in a directory
//	--config <path>       - Load a custom game config YAML
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/color-dash/internal/config"
	"github.com/vovakirdan/color-dash/internal/core"
	"github.com/vovakirdan/color-dash/internal/level"
	"github.com/vovakirdan/color-dash/internal/platform/tui"
	"github.com/vovakirdan/color-dash/internal/storage"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagLevelsDir string
	flagConfig    string
	flagLogLevel  string
	flagLogFile   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "colordash",
	Short: "Color Dash - a side-scrolling runner for your terminal",
	Long: `Color Dash is a terminal side-scroller. Jump over blocks and spikes,
don't fall into gaps, and see how far you get.

Available commands:
  play     - Play a level directly
  edit     - Build levels with a live autopilot preview
  levels   - List, import and export levels
  scores   - View best distances
  serve    - Start SSH server for remote play

Running colordash without a command opens the level picker.

Examples:
  colordash
  colordash play level-1
  colordash play --endless --difficulty hard
  colordash edit level-2
  colordash serve --ssh :2222`,
	Run: runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.colordash/colordash.db", "Path to scores and levels database")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory of level files (overrides levels stored in the database)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (default: ~/.colordash/colordash.log for interactive commands)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the process logger. Interactive commands log to a file so
// output does not corrupt the alternate screen.
func newLogger(interactive bool) (*log.Logger, io.Closer, error) {
	name := flagLogLevel
	if name == "" {
		name = "info"
	}
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)

	path := flagLogFile
	if path == "" && interactive {
		if home, homeErr := os.UserHomeDir(); homeErr == nil {
			path = filepath.Join(home, ".colordash", "colordash.log")
		}
	}
	if path != "" {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", mkErr)
		}
		f, openErr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		w, closer = f, f
	} else if interactive {
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "colordash",
	})
	return logger, closer, nil
}

// loadGameConfig loads the YAML config and applies the difficulty preset.
func loadGameConfig(difficulty string) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	if flagFPS <= 0 {
		flagFPS = cfg.Scheduler.FPS
	}
	return cfg, nil
}

// runtimeConfig reads the terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStores opens the database and picks the level store: the levels
// directory when given, otherwise the database, otherwise memory.
// The database may be nil when it cannot be opened.
func openStores(logger *log.Logger) (*storage.Store, level.Store) {
	db, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database", "path", flagDBPath, "error", err)
		db = nil
	}

	switch {
	case flagLevelsDir != "":
		return db, level.NewDirStore(flagLevelsDir, logger)
	case db != nil:
		return db, db
	default:
		return nil, level.NewMemStore()
	}
}

// loadLevels returns the level list, falling back to the samples.
func loadLevels(store level.Store, logger *log.Logger) []level.Level {
	levels, err := level.LoadOrSamples(store)
	if err != nil {
		logger.Warn("using sample levels", "error", err)
	}
	return levels
}

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func runMenu(_ *cobra.Command, _ []string) {
	if err := menuLoop(); err != nil {
		fatal("%v", err)
	}
}

func menuLoop() error {
	logger, closer, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	cfg, err := loadGameConfig("")
	if err != nil {
		return err
	}

	db, levelStore := openStores(logger)
	if db != nil {
		defer db.Close()
	}

	rt := runtimeConfig()

	// Menu loop
	for {
		levels := loadLevels(levelStore, logger)

		menuResult, err := tui.RunMenu(levels, db, rt)
		if err != nil {
			return err
		}
		rt = menuResult.Config

		switch {
		case menuResult.Quit:
			return nil

		case menuResult.WantsScoreboard:
			goBack, sbErr := tui.RunScoreboard(levels, db, rt.ScreenW, rt.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if !goBack {
				return nil
			}

		case menuResult.Edit:
			opts := tui.EditorOptions{
				Config:    cfg,
				Runtime:   rt,
				Store:     levelStore,
				WatchDir:  flagLevelsDir,
				ExportDir: ".",
				Logger:    logger,
			}
			if !menuResult.NewLevel {
				l, findErr := level.Find(levels, menuResult.LevelID)
				if findErr != nil {
					return findErr
				}
				opts.Level = l
			}
			if err := tui.RunEditor(opts); err != nil {
				return err
			}

		default:
			l, findErr := resolvePlayLevel(levels, menuResult.LevelID, menuResult.Endless, rt.Seed)
			if findErr != nil {
				return findErr
			}
			if err := tui.Run(tui.PlayOptions{
				Config:  cfg,
				Runtime: rt,
				Level:   l,
				Store:   db,
				Logger:  logger,
			}); err != nil {
				return err
			}
		}
	}
}
