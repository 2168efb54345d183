package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank RESUME...",
	Short: "Rank several resumes against one job description",
	Long: `Score every resume against the job description and print them ordered by final score.

Profiles are read from --profiles, a JSON object mapping resume file names to candidate profiles.
A resume that cannot be read is reported in place instead of failing the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRank,
}

var (
	rankJob      string
	rankJobURL   string
	rankBrowser  bool
	rankProfiles string
	rankOut      string
)

func init() {
	rankCmd.Flags().StringVarP(&rankJob, "job", "j", "", "Path to job description file (mutually exclusive with --job-url)")
	rankCmd.Flags().StringVar(&rankJobURL, "job-url", "", "URL to fetch the job description from (mutually exclusive with --job)")
	rankCmd.Flags().BoolVar(&rankBrowser, "browser", false, "Render JavaScript job pages in headless Chrome when needed")
	rankCmd.Flags().StringVar(&rankProfiles, "profiles", "", "Path to JSON object of file name -> candidate profile")
	rankCmd.Flags().StringVarP(&rankOut, "out", "o", "", "Write the ranking JSON to this file instead of stdout")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	profiles, err := readProfiles(rankProfiles)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	jobText, err := loadJob(ctx, rankJob, rankJobURL, rankBrowser, a.logger)
	if err != nil {
		return err
	}

	var (
		reqs    []types.AnalyzeRequest
		skipped []types.RankedCandidate
	)
	for _, path := range args {
		label := filepath.Base(path)
		text, _, err := ingestion.ExtractText(path)
		if err != nil {
			a.logger.Warn("skipping resume", zap.String("path", path), zap.Error(err))
			skipped = append(skipped, types.RankedCandidate{Label: label, Error: err.Error()})
			continue
		}
		reqs = append(reqs, types.AnalyzeRequest{
			ResumeText:     text,
			JobDescription: jobText,
			Profile:        profiles[label],
			Label:          label,
		})
	}

	resp := &types.RankResponse{BatchID: uuid.New(), Candidates: []types.RankedCandidate{}}
	if len(reqs) > 0 {
		if resp, err = a.pipeline.AnalyzeBatch(ctx, reqs); err != nil {
			return fmt.Errorf("ranking failed: %w", err)
		}
	}
	resp.Candidates = append(resp.Candidates, skipped...)
	resp.TotalCandidates = len(resp.Candidates)

	if rankOut != "" {
		if err := schemas.ValidateValue(schemas.Rank, resp); err != nil {
			return fmt.Errorf("ranking does not match schema: %w", err)
		}
	}
	if err := writeJSON(cmd, rankOut, resp); err != nil {
		return err
	}
	if verbose {
		observability.NewPrinter(summaryWriter(cmd, rankOut)).PrintRanking(resp)
	}
	return nil
}

func readProfiles(path string) (map[string]types.CandidateProfile, error) {
	profiles := map[string]types.CandidateProfile{}
	if path == "" {
		return profiles, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profiles %s: %w", path, err)
	}
	return profiles, nil
}
