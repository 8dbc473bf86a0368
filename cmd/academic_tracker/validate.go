package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/academic-tracker/internal/schemas"
	"github.com/jonathan/academic-tracker/internal/store"
	schemasembed "github.com/jonathan/academic-tracker/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the persisted data documents against their JSON schemas",
	Long: `Validates semesters.json and settings.json in the data directory. A missing
document is reported and skipped; any schema violation fails the command.

With --file, checks a single document instead, for example an import before copying it
into the data directory. --schema names a built-in schema (semesters or settings) or
points at a JSON Schema file.

Example:
  academic_tracker validate
  academic_tracker validate --file backup/semesters.json --schema semesters`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

var (
	validateFile   string
	validateSchema string
)

// builtinSchemas maps --schema names to the embedded schemas.
var builtinSchemas = map[string]string{
	"semesters": schemasembed.Semesters,
	"settings":  schemasembed.Settings,
}

func init() {
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "Validate a single JSON document instead of the data directory")
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "semesters", "Schema for --file: semesters, settings, or a path to a JSON Schema file")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if validateFile != "" {
		return validateSingle(cmd, validateFile, validateSchema)
	}

	documents := []struct {
		file   string
		schema string
	}{
		{store.SemestersFile, schemasembed.Semesters},
		{store.SettingsFile, schemasembed.Settings},
	}

	out := cmd.OutOrStdout()
	var failed int
	for _, doc := range documents {
		path := filepath.Join(app.cfg.DataDir, doc.file)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(out, "- %s: not present\n", doc.file)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		if err := schemas.ValidateDocument(doc.file, doc.schema, data); err != nil {
			failed++
			fmt.Fprintf(out, "✗ %s\n%s\n", doc.file, strings.TrimRight(err.Error(), "\n"))
			continue
		}
		fmt.Fprintf(out, "✓ %s\n", doc.file)
	}

	if failed > 0 {
		return fmt.Errorf("%d document(s) failed validation", failed)
	}
	return nil
}

// validateSingle checks one document against a built-in schema or a schema file on disk.
func validateSingle(cmd *cobra.Command, file, schema string) error {
	var err error
	if content, ok := builtinSchemas[schema]; ok {
		data, readErr := os.ReadFile(file)
		if readErr != nil {
			return fmt.Errorf("failed to read %s: %w", file, readErr)
		}
		err = schemas.ValidateJSONString(content, string(data))
	} else {
		err = schemas.ValidateJSON(schema, file)
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		fmt.Fprintf(cmd.OutOrStdout(), "✗ %s\n%s\n", file, strings.TrimRight(err.Error(), "\n"))
		return fmt.Errorf("%s failed validation", file)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", file)
	return nil
}
