package main

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded semesters in entry order",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show <semester-id>",
	Short: "Show a semester with its courses",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	semesters, err := app.tracker.ListSemesters(cmd.Context())
	if err != nil {
		return err
	}
	return render(semesters, func() { app.printer.PrintSemesters(semesters) })
}

func runShow(cmd *cobra.Command, args []string) error {
	semester, err := app.tracker.GetSemester(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return render(semester, func() { app.printer.PrintSemester(semester) })
}
