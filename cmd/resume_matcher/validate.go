package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an analysis or ranking JSON file against its schema",
	RunE:  runValidate,
}

var (
	validateSchema string
	validateJSON   string
)

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Schema name: analysis or rank")
	validateCmd.Flags().StringVar(&validateJSON, "json", "", "Path to the JSON file to validate")

	_ = validateCmd.MarkFlagRequired("schema")
	_ = validateCmd.MarkFlagRequired("json")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	err := schemas.ValidateFile(validateSchema, validateJSON)
	if err == nil {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Validation passed")
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Validation failed\n%s", validationErr.Error())
		return fmt.Errorf("%s does not match the %s schema", validateJSON, validateSchema)
	}
	return err
}
