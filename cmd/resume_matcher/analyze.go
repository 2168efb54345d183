package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score one resume against a job description",
	Long: `Score a resume against a job description and print the analysis as JSON.

The job description is read from a file (--job) or fetched from a job board URL (--job-url).
The candidate profile (name, contact, skills, experience, education) is read from --profile;
--skills adds to the profile's skills.`,
	RunE: runAnalyze,
}

var (
	analyzeResume  string
	analyzeJob     string
	analyzeJobURL  string
	analyzeBrowser bool
	analyzeProfile string
	analyzeSkills  []string
	analyzeRole    string
	analyzeLabel   string
	analyzeOut     string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to resume file (.txt, .md, .html)")
	analyzeCmd.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to job description file (mutually exclusive with --job-url)")
	analyzeCmd.Flags().StringVar(&analyzeJobURL, "job-url", "", "URL to fetch the job description from (mutually exclusive with --job)")
	analyzeCmd.Flags().BoolVar(&analyzeBrowser, "browser", false, "Render JavaScript job pages in headless Chrome when needed")
	analyzeCmd.Flags().StringVarP(&analyzeProfile, "profile", "p", "", "Path to candidate profile JSON")
	analyzeCmd.Flags().StringSliceVar(&analyzeSkills, "skills", nil, "Additional candidate skills (comma-separated)")
	analyzeCmd.Flags().StringVar(&analyzeRole, "role", "", "Target role for a role gap analysis")
	analyzeCmd.Flags().StringVar(&analyzeLabel, "label", "", "Candidate label (defaults to the resume file name)")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Write the analysis JSON to this file instead of stdout")

	_ = analyzeCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	resumeText, _, err := ingestion.ExtractText(analyzeResume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	profile, err := readProfile(analyzeProfile)
	if err != nil {
		return err
	}
	profile.Skills = append(profile.Skills, analyzeSkills...)

	a, err := newApp(ctx, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	jobText, err := loadJob(ctx, analyzeJob, analyzeJobURL, analyzeBrowser, a.logger)
	if err != nil {
		return err
	}

	label := analyzeLabel
	if label == "" {
		label = filepath.Base(analyzeResume)
	}

	analysis, err := a.pipeline.Analyze(ctx, types.AnalyzeRequest{
		ResumeText:     resumeText,
		JobDescription: jobText,
		Profile:        profile,
		TargetRole:     analyzeRole,
		Label:          label,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeOut != "" {
		if err := schemas.ValidateValue(schemas.Analysis, analysis); err != nil {
			return fmt.Errorf("analysis does not match schema: %w", err)
		}
	}
	if err := writeJSON(cmd, analyzeOut, analysis); err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(summaryWriter(cmd, analyzeOut)).PrintAnalysis(analysis)
	}
	return nil
}
