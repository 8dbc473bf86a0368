package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/academic-tracker/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the transcript as an Excel workbook",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var exportOut string

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file or directory (default: transcript_<date>.xlsx in the working directory)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	snap, err := app.tracker.Snapshot(cmd.Context())
	if err != nil {
		return err
	}

	buf, filename, err := export.Transcript(snap.Semesters, snap.Standing, time.Now())
	if err != nil {
		return err
	}

	path := filename
	if exportOut != "" {
		path = exportOut
		if info, statErr := os.Stat(exportOut); statErr == nil && info.IsDir() {
			path = filepath.Join(exportOut, filename)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}
	app.logger.Debug("transcript written", zap.String("path", path), zap.Int("bytes", buf.Len()))

	return render(map[string]any{"path": path, "semesters": len(snap.Semesters)}, func() {
		fmt.Fprintf(cmd.OutOrStdout(), "Transcript written to %s (%d semesters)\n", path, len(snap.Semesters))
	})
}
