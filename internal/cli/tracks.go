package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mgpai22/textsync/internal/subtitle"
	"github.com/spf13/cobra"
)

var tracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "List timeline tracks and their text overlays",
	Args:  cobra.NoArgs,
	RunE:  runTracks,
}

func init() {
	rootCmd.AddCommand(tracksCmd)
}

func runTracks(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, sync, err := openProject(ctx)
	if err != nil {
		return err
	}
	defer closeProject(store)

	names, err := store.TrackNames(ctx, cfg.Timeline.TrackKind)
	if err != nil {
		return fmt.Errorf("failed to list tracks: %w", err)
	}

	rows := make([][]string, 0, len(names))
	seen := make(map[string]bool)
	for i, name := range names {
		// later tracks sharing a name are unreachable by name
		if seen[name] {
			rows = append(rows, []string{strconv.Itoa(i + 1), name, "-", "", ""})
			continue
		}
		seen[name] = true

		seq, err := sync.Export(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to read track %q: %w", name, err)
		}
		first, last := "", ""
		if len(seq) > 0 {
			first, _ = subtitle.FormatTimecode(seq[0].Start)
			last, _ = subtitle.FormatTimecode(seq[len(seq)-1].End)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			name,
			strconv.Itoa(len(seq)),
			first,
			last,
		})
	}

	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintf(out, "No %s tracks\n", cfg.Timeline.TrackKind)
		return nil
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Track", "Text", "Start", "End"},
		rows,
		[]int{1, 3},
		isTerminal(out),
	))
	return nil
}
