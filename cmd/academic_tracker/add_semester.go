package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/academic-tracker/internal/types"
)

var addSemesterCmd = &cobra.Command{
	Use:   "add-semester",
	Short: "Record a new semester",
	Long: `Records a semester from repeated --course flags or from a JSON request file.

Incomplete rows (empty name, zero credits, unknown grade) are dropped; at least one
complete course is required. Grade points are assigned from the active grading scale.

Example:
  academic_tracker add-semester --name "Fall 2024" --course "Calculus:3:A" --course "Physics:4:B+"`,
	RunE: runAddSemester,
}

var (
	addName    string
	addCourses courseList
	addInput   string
)

func init() {
	addSemesterCmd.Flags().StringVarP(&addName, "name", "n", "", "Semester name")
	addSemesterCmd.Flags().VarP(&addCourses, "course", "c", "Course as Name:credits:grade (repeatable)")
	addSemesterCmd.Flags().StringVarP(&addInput, "in", "i", "", "Path to a JSON semester request (name, courses)")
	addSemesterCmd.MarkFlagsMutuallyExclusive("in", "course")

	rootCmd.AddCommand(addSemesterCmd)
}

func runAddSemester(cmd *cobra.Command, _ []string) error {
	req := &types.CreateSemesterRequest{Name: addName, Courses: addCourses}
	if addInput != "" {
		if err := readRequest(addInput, req); err != nil {
			return err
		}
		if addName != "" {
			req.Name = addName
		}
	}

	semester, err := app.tracker.AddSemester(cmd.Context(), req)
	if err != nil {
		return err
	}

	return render(semester, func() { app.printer.PrintSemester(semester) })
}

// readRequest decodes a JSON request file into v.
func readRequest(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read request file: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse request file %s: %w", path, err)
	}
	return nil
}
