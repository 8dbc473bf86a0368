package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/academic-tracker/internal/types"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Project the GPA needed over the remaining credits to reach a target CGPA",
	Args:  cobra.NoArgs,
	RunE:  runGoal,
}

var (
	goalTarget    float64
	goalRemaining float64
)

func init() {
	goalCmd.Flags().Float64VarP(&goalTarget, "target", "t", 0, "Target CGPA (required)")
	goalCmd.Flags().Float64VarP(&goalRemaining, "remaining", "r", 0, "Remaining credits (required)")
	_ = goalCmd.MarkFlagRequired("target")
	_ = goalCmd.MarkFlagRequired("remaining")

	rootCmd.AddCommand(goalCmd)
}

func runGoal(cmd *cobra.Command, _ []string) error {
	goal, err := app.tracker.Goal(cmd.Context(), &types.GoalRequest{
		TargetCGPA:       goalTarget,
		RemainingCredits: goalRemaining,
	})
	if err != nil {
		return err
	}
	return render(goal, func() { app.printer.PrintGoal(goal, goalTarget, goalRemaining) })
}
