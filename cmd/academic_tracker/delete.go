package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <semester-id>",
	Short: "Delete a semester",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if err := app.tracker.DeleteSemester(cmd.Context(), args[0]); err != nil {
		return err
	}
	result := map[string]string{"deleted": args[0]}
	return render(result, func() {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted semester %s\n", args[0])
	})
}
