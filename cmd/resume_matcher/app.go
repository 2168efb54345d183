package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/types"
)

// app bundles what every scoring command needs.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	pipeline *pipeline.Pipeline
	oracle   embedding.Oracle
}

func (a *app) Close() {
	if a.oracle != nil {
		if err := a.oracle.Close(); err != nil {
			a.logger.Warn("failed to close embedding oracle", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

// loadConfig merges the config file and environment, then applies flags
// that were explicitly set.
func loadConfig() (*config.Config, error) {
	v := config.New()
	if providerFlag != "" {
		v.Set("embedding.provider", providerFlag)
	}
	if debug {
		v.Set("log.level", "debug")
	}
	if jsonLogs {
		v.Set("log.json", true)
	}
	cfg, err := config.LoadWith(v, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// newApp loads configuration, builds the embedding oracle and confirms it
// answers. An unreachable oracle is fatal.
func newApp(ctx context.Context, metrics *observability.Metrics) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	embCfg := cfg.EmbeddingOracleConfig()
	oracle, err := embedding.NewOracle(ctx, &embCfg, cfg.APIKey)
	if err != nil {
		return nil, err
	}
	if err := embedding.Probe(ctx, oracle, embCfg.Provider); err != nil {
		_ = oracle.Close()
		return nil, err
	}
	logger.Debug("embedding oracle ready",
		zap.String("provider", string(embCfg.Provider)), zap.String("model", embCfg.Model))

	p, err := pipeline.New(oracle, cat, pipeline.Options{
		Workers:        cfg.Pipeline.Workers,
		RequestTimeout: cfg.Pipeline.RequestTimeout,
		MaxChars:       cfg.Pipeline.MaxChars,
		TopSentences:   cfg.Pipeline.TopSentences,
		Logger:         logger,
		Metrics:        metrics,
	})
	if err != nil {
		_ = oracle.Close()
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, pipeline: p, oracle: oracle}, nil
}

// loadJob reads the job description from a file or fetches it from a URL.
func loadJob(ctx context.Context, path, url string, useBrowser bool, logger *zap.Logger) (string, error) {
	switch {
	case path == "" && url == "":
		return "", fmt.Errorf("either --job or --job-url must be provided")
	case path != "" && url != "":
		return "", fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	case path != "":
		text, _, err := ingestion.ExtractText(path)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return text, nil
	default:
		text, meta, err := ingestion.IngestFromURL(ctx, url, ingestion.URLOptions{UseBrowser: useBrowser, Logger: logger})
		if err != nil {
			return "", fmt.Errorf("failed to fetch job description: %w", err)
		}
		logger.Debug("fetched job description",
			zap.String("platform", meta.Platform), zap.Bool("rendered", meta.Rendered), zap.Int("words", meta.Words))
		return text, nil
	}
}

// readProfile loads a candidate profile JSON file. An empty path yields an
// empty profile.
func readProfile(path string) (types.CandidateProfile, error) {
	var profile types.CandidateProfile
	if path == "" {
		return profile, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("failed to read profile: %w", err)
	}
	if err := json.Unmarshal(data, &profile); err != nil {
		return profile, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return profile, nil
}

// writeJSON prints v to the command's stdout, or to path when set.
func writeJSON(cmd *cobra.Command, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// summaryWriter is where verbose summaries go: stdout when JSON went to a
// file, stderr otherwise so piped JSON stays clean.
func summaryWriter(cmd *cobra.Command, outPath string) io.Writer {
	if outPath != "" {
		return cmd.OutOrStdout()
	}
	return cmd.ErrOrStderr()
}
