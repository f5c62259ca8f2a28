package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mgpai22/textsync/internal/subtitle"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <path> <track>",
	Short: "Export text from a timeline track to an SRT file",
	Long: `Export the text overlay elements of a track to an SRT file.

Elements are numbered from 1 in timeline order. A track that does not exist
or holds no text overlays produces an empty file.

Examples:
  textsync export subs.srt Subtitles
  textsync export -p ~/edits/promo.db out/promo.srt "Lower thirds"`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
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

	logger.Infow("Exporting track",
		"track", track,
		"output", path,
	)

	seq, err := sync.Export(ctx, track)
	if err != nil {
		return fmt.Errorf("failed to export track: %w", err)
	}
	if len(seq) == 0 {
		logger.Warnw("No text elements found", "track", track)
	}

	if err := subtitle.WriteFile(path, seq); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	absOutput, _ := filepath.Abs(path)
	fmt.Fprintf(cmd.OutOrStdout(), "Subtitles exported successfully: %s\n", absOutput)
	fmt.Fprintf(cmd.OutOrStdout(), "  Entries: %d\n", len(seq))
	return nil
}
