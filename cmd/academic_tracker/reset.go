package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all semesters and restore default settings",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

var resetConfirm bool

func init() {
	resetCmd.Flags().BoolVarP(&resetConfirm, "yes", "y", false, "Confirm erasing all data")

	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	if !resetConfirm {
		return errors.New("reset erases every semester; re-run with --yes to confirm")
	}
	if err := app.tracker.Reset(cmd.Context()); err != nil {
		return err
	}
	return render(map[string]bool{"reset": true}, func() {
		fmt.Fprintln(cmd.OutOrStdout(), "All data erased; settings restored to defaults")
	})
}
