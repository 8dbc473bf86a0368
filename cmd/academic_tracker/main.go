// Package main provides the academic_tracker command line interface.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "academic_tracker",
	Short: "Personal GPA/CGPA tracker",
	Long: "academic_tracker records semesters of courses and grades, computes GPA and CGPA on a 4.0 or 5.0 scale, " +
		"projects the GPA needed to reach a target CGPA, and classifies academic standing.",
	SilenceUsage:       true,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: teardownApp,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
