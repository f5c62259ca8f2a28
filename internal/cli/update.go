package cli

import (
	"context"
	"fmt"

	"github.com/mgpai22/textsync/internal/subtitle"
	"github.com/mgpai22/textsync/internal/timeline"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update <path> <track>",
	Short: "Update a timeline track with text from an SRT file",
	Long: `Write the text of each SRT entry into the track element with the same
number. Element k (counting text overlays from 1 in timeline order) receives
the text of the first entry whose id is k. Elements with no matching entry
keep their text; timing is never changed.

Examples:
  textsync update subs.srt Subtitles`,
	Args: cobra.ExactArgs(2),
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	path, track := args[0], args[1]
	if err := checkArgs(path, track); err != nil {
		return err
	}
	ctx := context.Background()

	store, sync, err := openProject(ctx)
	if err != nil {
		return err
	}
	defer closeProject(store)

	if _, err := updateTrack(ctx, cmd, sync, path, track); err != nil {
		return err
	}
	return nil
}

// shared by update and render
func updateTrack(
	ctx context.Context,
	cmd *cobra.Command,
	sync *timeline.Synchronizer,
	path, track string,
) (timeline.UpdateResult, error) {
	logger.Infow("Parsing subtitle file", "input", path)
	seq, err := subtitle.ParseFile(path)
	if err != nil {
		return timeline.UpdateResult{}, fmt.Errorf("failed to parse subtitle file: %w", err)
	}
	logger.Infow("Parsed subtitle file", "entries", len(seq))

	result, err := sync.Update(ctx, track, seq)
	if err != nil {
		return result, fmt.Errorf("failed to update track: %w", err)
	}
	if !result.TrackFound {
		logger.Warnw("Track not found, nothing updated", "track", track)
	}

	logger.Infow("Update complete",
		"track", track,
		"elements", result.Elements,
		"updated", result.Updated,
		"unmatched", result.Unmatched,
	)

	fmt.Fprintf(cmd.OutOrStdout(), "Track updated: %s\n", track)
	fmt.Fprintf(cmd.OutOrStdout(), "  Updated: %d of %d\n", result.Updated, result.Elements)
	return result, nil
}
