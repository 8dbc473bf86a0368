package main

import (
	"github.com/spf13/cobra"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show highest, lowest and average semester GPA with the recent trend",
	Args:  cobra.NoArgs,
	RunE:  runAnalytics,
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
}

func runAnalytics(cmd *cobra.Command, _ []string) error {
	sum, err := app.tracker.Analytics(cmd.Context())
	if err != nil {
		return err
	}
	return render(sum, func() { app.printer.PrintAnalytics(sum) })
}
