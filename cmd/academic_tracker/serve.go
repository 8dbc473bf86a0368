package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/academic-tracker/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server that exposes the tracker via a REST API.

Endpoints:
  GET    /health            - Health check
  GET    /semesters         - List semesters
  POST   /semesters         - Record a semester
  GET    /semesters/{id}    - Get a semester
  PUT    /semesters/{id}    - Edit a semester
  DELETE /semesters/{id}    - Delete a semester
  GET    /standing          - CGPA, credits and academic class
  GET    /analytics         - GPA summary and trend
  POST   /goal              - Required GPA for a target CGPA
  GET    /settings          - Current settings and grade table
  PUT    /settings          - Update grading scale or theme
  POST   /reset             - Erase all data
  GET    /export.xlsx       - Download the transcript workbook

Example:
  academic_tracker serve --port 8080
  academic_tracker serve --store postgres --db-url postgres://localhost/tracker`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var servePort int

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from TRACKER_SERVER_PORT or 8080)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port := app.cfg.Server.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}

	srv := server.New(server.Config{Port: port}, app.tracker, app.logger)
	return srv.Start()
}
