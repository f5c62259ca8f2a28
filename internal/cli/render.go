package cli

import (
	"context"
	"fmt"

	"github.com/mgpai22/textsync/internal/timeline"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <path> <track>",
	Short: "Update a timeline track from an SRT file and queue a render",
	Args:  cobra.ExactArgs(2),
	RunE:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
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

	jobID, err := submitRender(ctx, store)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Render job: %s\n", jobID)
	return nil
}

func submitRender(ctx context.Context, renderer timeline.Renderer) (string, error) {
	jobID, err := renderer.SubmitRender(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to submit render job: %w", err)
	}
	logger.Infow("Render job queued", "job", jobID)
	return jobID, nil
}
