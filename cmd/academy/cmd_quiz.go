package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ehpadacademy/cmd/academy/ui"
	"ehpadacademy/internal/catalog"
	"ehpadacademy/internal/types"
)

// themesCmd lists the training themes with completion and locking state.
var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the training themes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := initStore(ctx)
		if err != nil {
			return err
		}

		themes := catalog.FetchThemes(ctx, store.Client())
		var completed []string
		if user := store.User(); user != nil {
			completed = user.CompletedThemes
		}

		for i, th := range themes {
			state := " "
			switch {
			case store.User() != nil && store.User().HasCompletedTheme(th.ID):
				state = "✓"
			case types.ThemeLocked(themes, completed, i):
				state = "🔒"
			}
			fmt.Printf("%s %s %-20s %s\n", state, th.Icon, th.ID, th.Name)
		}
		return nil
	},
}

// quizCmd opens the interactive quiz for one theme.
var quizCmd = &cobra.Command{
	Use:   "quiz [theme]",
	Short: "Start the quiz for a theme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		return ui.RunFrom(store, logger, ui.PageQuiz, args[0])
	},
}

// budgetCmd opens the interactive budget simulation.
var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Open the budget simulation",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		return ui.RunFrom(store, logger, ui.PageBudget, "")
	},
}
