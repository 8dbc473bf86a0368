package main

import (
	"github.com/spf13/cobra"
)

var standingCmd = &cobra.Command{
	Use:   "standing",
	Short: "Show CGPA, total credits, latest GPA and academic class",
	Args:  cobra.NoArgs,
	RunE:  runStanding,
}

func init() {
	rootCmd.AddCommand(standingCmd)
}

func runStanding(cmd *cobra.Command, _ []string) error {
	snap, err := app.tracker.Snapshot(cmd.Context())
	if err != nil {
		return err
	}
	return render(snap.Standing, func() { app.printer.PrintStanding(&snap.Standing, snap.Semesters) })
}
