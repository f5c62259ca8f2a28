package cli

import (
	"context"
	"fmt"

	"github.com/mgpai22/textsync/internal/config"
	"github.com/mgpai22/textsync/internal/logging"
	"github.com/mgpai22/textsync/internal/project"
	"github.com/mgpai22/textsync/internal/timeline"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	configPath  string
	projectPath string
	cfg         *config.Config
	logger      *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "textsync",
	Short: "Exchange subtitles with text overlays on an editing timeline",
	Long: `Textsync moves subtitle text between SRT files and the text overlay
elements of a named timeline track.

Elements of the track are numbered 1..N in timeline order. Export writes
them to an SRT file; update writes SRT text back into the element with the
same number, leaving timing untouched.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, _, _, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if projectPath != "" {
			expanded, err := config.ExpandPath(projectPath)
			if err != nil {
				return err
			}
			loaded.Project.Path = expanded
		}
		cfg = loaded
		logger = logging.NewLogger(verbose || cfg.Verbose())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", "", "Config file path (default ~/.config/textsync/config.toml)")
	rootCmd.PersistentFlags().
		StringVarP(&projectPath, "project", "p", "", "Project database path (overrides config)")
}

// opens the configured project, failing fast when it cannot be reached
func openProject(ctx context.Context) (*project.Store, *timeline.Synchronizer, error) {
	store, err := project.Open(ctx, cfg.Project.Path)
	if err != nil {
		return nil, nil, err
	}
	sync, err := timeline.NewSynchronizer(store, timeline.Options{
		TrackKind:   cfg.Timeline.TrackKind,
		ElementKind: cfg.Timeline.ElementKind,
	})
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	logger.Debugw("Opened project", "path", store.Path())
	return store, sync, nil
}

func closeProject(store *project.Store) {
	if err := store.Close(); err != nil {
		logger.Warnw("Failed to close project", "path", store.Path(), "error", err)
	}
}

func checkArgs(path, track string) error {
	if path == "" {
		return fmt.Errorf("subtitle path is required")
	}
	if track == "" {
		return fmt.Errorf("track name is required")
	}
	return nil
}
