package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifeupmcp/internal/lifeup"
)

var matchCategory int

// matchCmd ranks achievements against a task description
var matchCmd = &cobra.Command{
	Use:   "match <task name>",
	Short: "Rank existing achievements for a task name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().IntVar(&matchCategory, "category", 0, "Prefer achievements of this category id")
}

func runMatch(cmd *cobra.Command, args []string) error {
	taskName := strings.Join(args, " ")
	var category *int
	if cmd.Flags().Changed("category") {
		category = &matchCategory
	}

	svc := lifeup.NewService(newClient())
	matches, err := svc.MatchAchievements(cmd.Context(), taskName, category)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(matches) == 0 {
		fmt.Fprintf(out, "No achievements match %q\n", taskName)
		return nil
	}
	for _, m := range matches {
		fmt.Fprintf(out, "%3d%%  %s (#%d, category %d)\n", m.Confidence, m.Achievement.Name, m.Achievement.ID, m.Achievement.CategoryID)
		for _, r := range m.Reasons {
			fmt.Fprintf(out, "      - %s\n", r)
		}
	}
	return nil
}
