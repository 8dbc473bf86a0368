package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/academic-tracker/internal/types"
)

var editCmd = &cobra.Command{
	Use:   "edit <semester-id>",
	Short: "Rename a semester or replace its courses",
	Long: `Edits a stored semester. --course flags or a JSON request file replace the whole
course list; GPA and total credits are recomputed with the active grading scale.
The semester keeps its id, recorded date and position.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editName    string
	editCourses courseList
	editInput   string
)

func init() {
	editCmd.Flags().StringVarP(&editName, "name", "n", "", "New semester name")
	editCmd.Flags().VarP(&editCourses, "course", "c", "Replacement course as Name:credits:grade (repeatable)")
	editCmd.Flags().StringVarP(&editInput, "in", "i", "", "Path to a JSON update request (name, courses)")
	editCmd.MarkFlagsMutuallyExclusive("in", "course")

	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	req := &types.UpdateSemesterRequest{Courses: editCourses}
	if editInput != "" {
		if err := readRequest(editInput, req); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("name") {
		req.Name = &editName
	}

	semester, err := app.tracker.UpdateSemester(cmd.Context(), args[0], req)
	if err != nil {
		return err
	}
	return render(semester, func() { app.printer.PrintSemester(semester) })
}
