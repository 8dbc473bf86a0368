package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/academic-tracker/internal/types"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the grading scale and theme",
	Long: `Without flags, prints the current settings and the active grade table.

Changing the grading scale affects future entries only; stored semesters keep the
grade points and GPA they were recorded with.`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

var (
	settingsScale float64
	settingsTheme string
)

func init() {
	settingsCmd.Flags().Float64VarP(&settingsScale, "scale", "s", 0, "Grading scale ceiling: 4 or 5")
	settingsCmd.Flags().StringVar(&settingsTheme, "theme", "", "Theme: light or dark")

	rootCmd.AddCommand(settingsCmd)
}

func runSettings(cmd *cobra.Command, _ []string) error {
	var (
		settings *types.AppSettings
		err      error
	)

	flags := cmd.Flags()
	if flags.Changed("scale") || flags.Changed("theme") {
		req := &types.UpdateSettingsRequest{}
		if flags.Changed("scale") {
			req.GradingScale = &settingsScale
		}
		if flags.Changed("theme") {
			req.Theme = &settingsTheme
		}
		settings, err = app.tracker.UpdateSettings(cmd.Context(), req)
	} else {
		settings, err = app.tracker.Settings(cmd.Context())
	}
	if err != nil {
		return err
	}

	return render(settings, func() { app.printer.PrintSettings(settings) })
}
