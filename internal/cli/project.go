package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mgpai22/textsync/internal/project"
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Create and edit project databases",
}

var projectInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty project",
	Args:  cobra.NoArgs,
	RunE:  runProjectInit,
}

var projectAddTextCmd = &cobra.Command{
	Use:   "add-text <track> <start-frame> <end-frame> [text]",
	Short: "Append a text overlay element to a track",
	Long: `Append a text overlay element to a track, creating the track if needed.

Examples:
  textsync project add-text Subtitles 0 48 "Hello"
  textsync project add-text Subtitles 48 96 --no-text`,
	Args: cobra.RangeArgs(3, 4),
	RunE: runProjectAddText,
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectInitCmd)
	projectCmd.AddCommand(projectAddTextCmd)

	projectInitCmd.Flags().
		String("name", "Timeline 1", "Timeline name")
	projectInitCmd.Flags().
		Float64("frame-rate", 24, "Timeline frame rate")

	projectAddTextCmd.Flags().
		Bool("no-text", false, "Create the element without a text sub-resource")
}

func runProjectInit(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	frameRate, _ := cmd.Flags().GetFloat64("frame-rate")

	store, err := project.Create(context.Background(), cfg.Project.Path, name, frameRate)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	defer closeProject(store)

	logger.Infow("Created project",
		"path", store.Path(),
		"timeline", name,
		"frame_rate", frameRate,
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Project created: %s\n", store.Path())
	return nil
}

func runProjectAddText(cmd *cobra.Command, args []string) error {
	track := args[0]
	start, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid start frame %q: %w", args[1], err)
	}
	end, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid end frame %q: %w", args[2], err)
	}
	noText, _ := cmd.Flags().GetBool("no-text")
	text := ""
	if len(args) == 4 {
		if noText {
			return fmt.Errorf("text cannot be given with --no-text")
		}
		text = args[3]
	}

	ctx := context.Background()
	store, _, err := openProject(ctx)
	if err != nil {
		return err
	}
	defer closeProject(store)

	el, err := store.AddElement(ctx, cfg.Timeline.TrackKind, track, project.NewElement{
		Kind:    cfg.Timeline.ElementKind,
		Start:   start,
		End:     end,
		Text:    text,
		HasText: !noText,
	})
	if err != nil {
		return fmt.Errorf("failed to add element: %w", err)
	}

	logger.Infow("Added element",
		"track", track,
		"element", el.ID,
		"start", el.Start,
		"end", el.End,
	)
	return nil
}
