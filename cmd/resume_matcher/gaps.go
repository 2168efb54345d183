package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/catalog"
	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/gaps"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/roadmap"
	"github.com/jonathan/resume-matcher/internal/types"
)

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "Compare a skill list with a role template and build a learning roadmap",
	Long: `Report which required and preferred skills of a catalog role the candidate is missing,
their readiness score, and a roadmap for the missing required skills.

No job description or embedding provider is needed.`,
	RunE: runGaps,
}

var (
	gapsRole    string
	gapsSkills  []string
	gapsProfile string
	gapsOut     string
)

func init() {
	gapsCmd.Flags().StringVar(&gapsRole, "role", "", "Target role (see the roles command)")
	gapsCmd.Flags().StringSliceVar(&gapsSkills, "skills", nil, "Candidate skills (comma-separated)")
	gapsCmd.Flags().StringVarP(&gapsProfile, "profile", "p", "", "Path to candidate profile JSON; its skills are used")
	gapsCmd.Flags().StringVarP(&gapsOut, "out", "o", "", "Write the report JSON to this file instead of stdout")

	_ = gapsCmd.MarkFlagRequired("role")

	rootCmd.AddCommand(gapsCmd)
}

func runGaps(cmd *cobra.Command, _ []string) error {
	profile, err := readProfile(gapsProfile)
	if err != nil {
		return err
	}
	skills := append(profile.Skills, gapsSkills...)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	report, err := gaps.NewAnalyzer(cat).IdentifyGapsByRole(skills, gapsRole)
	if err != nil {
		var roleErr *gaps.RoleNotFoundError
		if errors.As(err, &roleErr) {
			if writeErr := writeJSON(cmd, gapsOut, gaps.ErrorPayload(roleErr)); writeErr != nil {
				return writeErr
			}
		}
		return err
	}

	resp := &types.RoleGapResponse{
		Gaps:    report,
		Roadmap: roadmap.NewGenerator(cat).ForSkills(report.MissingRequired),
	}
	if err := writeJSON(cmd, gapsOut, resp); err != nil {
		return err
	}
	if verbose {
		observability.NewPrinter(summaryWriter(cmd, gapsOut)).PrintRoleGap(resp)
	}
	return nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default()
	}
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}
