package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ehpadacademy/internal/activities"
)

var (
	actSearch       string
	actCategory     string
	actTitle        string
	actCat          string
	actDuration     string
	actParticipants string
	actDescription  string
	actDifficulty   string
	actMaterial     string
	actObjectives   string
	actPrivate      bool
	actOutput       string
)

// activitiesCmd groups the activity-sheet library commands.
var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "Browse and manage the activity-sheet library",
}

var activitiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the public activity sheets",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := initStore(ctx)
		if err != nil {
			return err
		}

		lib := activities.NewController(store, logger)
		if err := lib.Fetch(ctx); err != nil {
			return err
		}
		lib.SearchTerm = actSearch
		lib.CategoryFilter = actCategory

		for _, a := range lib.Filtered() {
			fmt.Printf("%-24s  %-10s %-10s %-10s %s\n", a.ID, a.Category, a.Duration, a.Difficulty, a.Title)
		}
		return nil
	},
}

var activitiesShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one activity sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := initStore(ctx)
		if err != nil {
			return err
		}
		activity, err := store.Client().GetActivity(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(activities.Render(activity, 80))
		return nil
	},
}

var activitiesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an activity sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveActivity(cmd, "")
	},
}

var activitiesEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Update an activity sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveActivity(cmd, args[0])
	},
}

func saveActivity(cmd *cobra.Command, id string) error {
	ctx := cmd.Context()
	store, err := initStore(ctx)
	if err != nil {
		return err
	}

	lib := activities.NewController(store, logger)
	draft := activities.Draft{
		Title:        actTitle,
		Category:     actCat,
		Duration:     actDuration,
		Participants: actParticipants,
		Description:  actDescription,
		Difficulty:   actDifficulty,
		Material:     actMaterial,
		Objectives:   actObjectives,
		IsPublic:     !actPrivate,
	}
	if err := lib.Save(ctx, id, draft); err != nil {
		return err
	}
	if id == "" {
		fmt.Println("Fiche créée.")
	} else {
		fmt.Println("Fiche mise à jour.")
	}
	return nil
}

var activitiesDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an activity sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := initStore(ctx)
		if err != nil {
			return err
		}
		lib := activities.NewController(store, logger)
		if err := lib.Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("Fiche supprimée.")
		return nil
	},
}

var activitiesExportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export an activity sheet as Markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := initStore(ctx)
		if err != nil {
			return err
		}
		activity, err := store.Client().GetActivity(ctx, args[0])
		if err != nil {
			return err
		}

		md := activities.Markdown(activity)
		if actOutput == "" {
			fmt.Print(md)
			return nil
		}
		if err := os.WriteFile(actOutput, []byte(md), 0o644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Printf("Fiche exportée vers %s\n", actOutput)
		return nil
	},
}

func init() {
	activitiesListCmd.Flags().StringVar(&actSearch, "search", "", "filter by title or description")
	activitiesListCmd.Flags().StringVar(&actCategory, "category", "all", "filter by category (Cognitive, Physique, Sociale, all)")

	for _, c := range []*cobra.Command{activitiesCreateCmd, activitiesEditCmd} {
		c.Flags().StringVar(&actTitle, "title", "", "sheet title")
		c.Flags().StringVar(&actCat, "category", "", "category (Cognitive, Physique, Sociale)")
		c.Flags().StringVar(&actDuration, "duration", "", "duration, e.g. '45 min'")
		c.Flags().StringVar(&actParticipants, "participants", "", "participant count, e.g. '4-8'")
		c.Flags().StringVar(&actDescription, "description", "", "description")
		c.Flags().StringVar(&actDifficulty, "difficulty", "", "difficulty (Facile, Moyenne, Difficile)")
		c.Flags().StringVar(&actMaterial, "material", "", "comma-separated material list")
		c.Flags().StringVar(&actObjectives, "objectives", "", "comma-separated objectives")
		c.Flags().BoolVar(&actPrivate, "private", false, "keep the sheet private")
	}

	activitiesExportCmd.Flags().StringVarP(&actOutput, "output", "o", "", "write to file instead of stdout")

	activitiesCmd.AddCommand(activitiesListCmd)
	activitiesCmd.AddCommand(activitiesShowCmd)
	activitiesCmd.AddCommand(activitiesCreateCmd)
	activitiesCmd.AddCommand(activitiesEditCmd)
	activitiesCmd.AddCommand(activitiesDeleteCmd)
	activitiesCmd.AddCommand(activitiesExportCmd)
}
