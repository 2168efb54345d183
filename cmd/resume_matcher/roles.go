package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/observability"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the role templates available for gap analysis",
	RunE:  runRoles,
}

var rolesJSON bool

func init() {
	rolesCmd.Flags().BoolVar(&rolesJSON, "json", false, "Print the roles as a JSON array")
	rootCmd.AddCommand(rolesCmd)
}

func runRoles(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	names := cat.RoleNames()
	switch {
	case rolesJSON:
		return writeJSON(cmd, "", names)
	case verbose:
		observability.NewPrinter(cmd.OutOrStdout()).PrintRoles(names)
	default:
		for _, name := range names {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
				return err
			}
		}
	}
	return nil
}
