package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aetherlearn/pathweaver/internal/observability"
	"github.com/aetherlearn/pathweaver/internal/types"
)

const statusPollInterval = 500 * time.Millisecond

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Discover resources and build a learning path for a topic",
	Long: `Run a single search end to end: discover educational content for the
query, score and rank it, and print the resulting learning path.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("config", "", "Path to JSON config file")
	searchCmd.Flags().String("difficulty", "", "Preferred difficulty (beginner, intermediate, advanced)")
	searchCmd.Flags().StringSlice("formats", nil, "Preferred resource formats (video, article, course, ...)")
	searchCmd.Flags().StringSlice("styles", nil, "Preferred learning styles (visual, reading, hands-on, ...)")
	searchCmd.Flags().Int("max-time", 0, "Maximum minutes per resource (0 for no limit)")
	searchCmd.Flags().String("time-range", "", "Preferred time commitment per resource (short, medium, long)")
	searchCmd.Flags().Bool("enrich", false, "Fetch content pages to fill missing metadata")
	searchCmd.Flags().BoolP("verbose", "v", false, "Print progress and ranked content details")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	enrich, _ := cmd.Flags().GetBool("enrich")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if enrich {
		cfg.EnrichResults = true
	}
	if verbose {
		cfg.Verbose = true
	}

	manager, cleanup, err := buildManager(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	req := &types.SearchRequest{
		Query:       args[0],
		Preferences: preferencesFromFlags(cmd),
	}

	searchID, err := manager.StartSearch(cmd.Context(), req)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)

	// Poll the ledger until the run settles, echoing each progress change.
	last := -1
	var final *types.SearchStatus
	for {
		status, err := manager.GetStatus(cmd.Context(), searchID)
		if err != nil {
			return fmt.Errorf("failed to read search status: %w", err)
		}
		if status == nil {
			return fmt.Errorf("search %s vanished from the status ledger", searchID)
		}
		if cfg.Verbose && status.Progress != last {
			printer.PrintStatus(status)
			last = status.Progress
		}
		if status.State.Terminal() {
			final = status
			break
		}
		time.Sleep(statusPollInterval)
	}

	if final.State == types.StateFailed {
		return fmt.Errorf("search failed: %s", final.Message)
	}

	path, err := manager.GetPath(cmd.Context(), final.LearningPathID)
	if err != nil {
		return fmt.Errorf("failed to load learning path: %w", err)
	}
	if path == nil {
		return fmt.Errorf("learning path %s was not stored", final.LearningPathID)
	}

	printer.PrintLearningPath(path)
	return nil
}

// preferencesFromFlags assembles user preferences from the CLI surface.
// Returns nil when nothing was requested.
func preferencesFromFlags(cmd *cobra.Command) *types.Preferences {
	difficulty, _ := cmd.Flags().GetString("difficulty")
	formats, _ := cmd.Flags().GetStringSlice("formats")
	styles, _ := cmd.Flags().GetStringSlice("styles")
	maxTime, _ := cmd.Flags().GetInt("max-time")
	timeRange, _ := cmd.Flags().GetString("time-range")

	prefs := &types.Preferences{
		Difficulty:         types.Difficulty(strings.ToLower(strings.TrimSpace(difficulty))),
		MaxTimeMinutes:     maxTime,
		PreferredTimeRange: strings.ToLower(strings.TrimSpace(timeRange)),
		LearningStyle:      styles,
	}
	for _, f := range formats {
		prefs.Formats = append(prefs.Formats, types.CoerceResourceType(f))
	}
	if prefs.Empty() {
		return nil
	}
	return prefs
}
