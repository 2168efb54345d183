// Package pipeline orchestrates the scoring of one or many resumes against a
// job description.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/ats"
	"github.com/jonathan/resume-matcher/internal/catalog"
	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/explain"
	"github.com/jonathan/resume-matcher/internal/gaps"
	"github.com/jonathan/resume-matcher/internal/lexical"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/roadmap"
	"github.com/jonathan/resume-matcher/internal/semantic"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Names of the optional steps, used in logs and the degraded-steps metric.
const (
	StepSemantic          = "semantic"
	StepSentences         = "sentences"
	StepSectionSimilarity = "section_similarity"
	StepRoleGap           = "role_gap"
)

// ProgressEvent represents a progress update during an analysis
type ProgressEvent struct {
	Step    string `json:"step"`
	Label   string `json:"label,omitempty"`
	Message string `json:"message"`
}

// ProgressCallback is called when pipeline progress occurs. It may be called
// from several goroutines at once.
type ProgressCallback func(event ProgressEvent)

type progressKey struct{}

// WithProgress attaches a per-request progress callback to ctx. It is called
// in addition to Options.OnProgress.
func WithProgress(ctx context.Context, cb ProgressCallback) context.Context {
	return context.WithValue(ctx, progressKey{}, cb)
}

// Options holds configuration for the pipeline
type Options struct {
	// Workers bounds concurrent analyses in a batch.
	Workers int
	// RequestTimeout bounds one analysis; 0 disables it.
	RequestTimeout time.Duration
	// MaxChars rejects resume or job texts longer than this many characters; 0 disables it.
	MaxChars int
	// TopSentences is the number of resume sentences quoted in the explanation.
	TopSentences int
	Logger       *zap.Logger
	Metrics      *observability.Metrics
	OnProgress   ProgressCallback
}

// DefaultOptions returns the default pipeline options
func DefaultOptions() Options {
	return Options{
		Workers:        4,
		RequestTimeout: 60 * time.Second,
		MaxChars:       200_000,
		TopSentences:   3,
	}
}

// Pipeline scores resumes. It holds no per-request state and is safe for
// concurrent use.
type Pipeline struct {
	opts      Options
	catalog   *catalog.Catalog
	semantic  *semantic.Engine
	blender   *ranking.Blender
	ats       *ats.Scorer
	gaps      *gaps.Analyzer
	roadmap   *roadmap.Generator
	explainer *explain.Synthesizer
	logger    *zap.Logger
}

// New builds a pipeline. The oracle is required; without it construction
// fails with *embedding.OracleUnavailableError. A nil catalog uses the
// embedded default.
func New(oracle embedding.Oracle, cat *catalog.Catalog, opts Options) (*Pipeline, error) {
	if oracle == nil {
		return nil, &embedding.OracleUnavailableError{Message: "pipeline requires an embedding oracle"}
	}
	if cat == nil {
		var err error
		if cat, err = catalog.Default(); err != nil {
			return nil, err
		}
	}

	defaults := DefaultOptions()
	if opts.Workers <= 0 {
		opts.Workers = defaults.Workers
	}
	if opts.TopSentences <= 0 {
		opts.TopSentences = defaults.TopSentences
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.Metrics != nil {
		oracle = embedding.NewInstrumentedOracle(oracle, opts.Metrics.ObserveEmbed)
	}
	engine, err := semantic.NewEngine(oracle)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		opts:      opts,
		catalog:   cat,
		semantic:  engine,
		blender:   ranking.NewBlender(engine, skills.NewOverlapScorer(cat), lexical.NewScorer(lexical.SimilarityFeatures)),
		ats:       ats.NewScorer(cat),
		gaps:      gaps.NewAnalyzer(cat),
		roadmap:   roadmap.NewGenerator(cat),
		explainer: explain.NewSynthesizer(lexical.NewScorer(lexical.TermFeatures)),
		logger:    logger,
	}, nil
}

// Catalog returns the catalog the pipeline scores against.
func (p *Pipeline) Catalog() *catalog.Catalog {
	return p.catalog
}

// Analyze scores one resume against one job description. Only an invalid
// request or cancellation of ctx (including the request timeout) fails the
// analysis; optional enrichment steps degrade to empty results.
func (p *Pipeline) Analyze(ctx context.Context, req types.AnalyzeRequest) (analysis *types.Analysis, err error) {
	start := time.Now()
	defer func() {
		score := 0.0
		if analysis != nil {
			score = analysis.FinalScore / 100
		}
		p.opts.Metrics.ObserveAnalysis(time.Since(start), score, err)
	}()

	if err := p.validate(&req); err != nil {
		return nil, err
	}

	if p.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.RequestTimeout)
		defer cancel()
	}
	ctx, span := observability.StartSpan(ctx, "pipeline.Analyze", attribute.String("label", req.Label))
	defer func() { observability.EndSpan(span, err) }()

	logger := p.logger.With(zap.String("label", req.Label))
	profile := req.Profile.Normalized()

	var (
		match     ranking.MatchResult
		sentences []types.SentenceRelevance
		section   *float64
	)

	g, gCtx := errgroup.WithContext(ctx)

	// Blended score (mandatory)
	g.Go(func() error {
		p.emit(ctx, req.Label, "blend", "Scoring semantic and skill overlap")
		result, err := p.blender.Blend(gCtx, req.ResumeText, req.JobDescription)
		if err != nil {
			return fmt.Errorf("match scoring failed: %w", err)
		}
		if result.SemanticErr != nil {
			p.degraded(logger, StepSemantic, result.SemanticErr)
		}
		match = result
		return nil
	})

	// Top sentences (optional)
	g.Go(func() error {
		p.emit(ctx, req.Label, StepSentences, "Ranking resume sentences")
		top, err := p.semantic.TopRelevantSentences(gCtx, req.ResumeText, req.JobDescription, p.opts.TopSentences)
		if err != nil {
			p.degraded(logger, StepSentences, err)
			top = []types.SentenceRelevance{}
		}
		sentences = top
		return nil
	})

	// Section similarity (optional, informational)
	g.Go(func() error {
		p.emit(ctx, req.Label, StepSectionSimilarity, "Scoring resume sections")
		sim, err := p.semantic.SectionSimilarity(gCtx, req.ResumeText, req.JobDescription)
		if err != nil {
			p.degraded(logger, StepSectionSimilarity, err)
			return nil
		}
		pct := types.Percent(sim)
		section = &pct
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.emit(ctx, req.Label, "ats", "Scoring ATS compliance")
	atsTotal, atsBreakdown := p.ats.Score(req.ResumeText, profile)

	p.emit(ctx, req.Label, "gaps", "Analyzing skill gaps")
	gapReport := p.gaps.IdentifyGaps(profile.Skills, req.JobDescription)

	analysis = &types.Analysis{
		ID:           uuid.New(),
		Label:        req.Label,
		Candidate:    profile,
		FinalScore:   types.Percent(match.Final),
		ATSTotal:     atsTotal,
		ATSBreakdown: atsBreakdown,
		GapReport:    gapReport,
		Roadmap:      p.roadmap.Generate(gapReport),
	}

	if role := strings.TrimSpace(req.TargetRole); role != "" {
		report, err := p.gaps.IdentifyGapsByRole(profile.Skills, role)
		var notFound *gaps.RoleNotFoundError
		switch {
		case errors.As(err, &notFound):
			p.degraded(logger, StepRoleGap, err)
			analysis.RoleGapError = gaps.ErrorPayload(notFound)
		case err != nil:
			p.degraded(logger, StepRoleGap, err)
		default:
			analysis.RoleGap = &report
		}
	}

	breakdown := match.Breakdown
	breakdown.SectionSimilarity = section
	analysis.ScoreBreakdown = breakdown

	p.emit(ctx, req.Label, "explain", "Writing explanation")
	analysis.Explanation = p.explainer.Explain(
		req.ResumeText, req.JobDescription,
		match.Final, &breakdown,
		sentences, explain.SkillTerms(match.MatchedSkills),
	)

	logger.Debug("analysis complete",
		zap.Float64("final_score", analysis.FinalScore),
		zap.Int("ats_total", atsTotal),
		zap.String("semantic_source", breakdown.SemanticSource),
	)
	return analysis, nil
}

// AnalyzeBatch analyzes each request on a bounded worker pool and returns
// the entries ranked by final score. A failed request is reported in place;
// only cancellation of ctx fails the batch.
func (p *Pipeline) AnalyzeBatch(ctx context.Context, reqs []types.AnalyzeRequest) (*types.RankResponse, error) {
	ctx, span := observability.StartSpan(ctx, "pipeline.AnalyzeBatch", attribute.Int("candidates", len(reqs)))
	defer span.End()

	entries := make([]types.RankedCandidate, len(reqs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)
	for i := range reqs {
		g.Go(func() error {
			entries[i].Label = reqs[i].Label
			analysis, err := p.Analyze(gCtx, reqs[i])
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				p.logger.Warn("candidate analysis failed", zap.String("label", reqs[i].Label), zap.Error(err))
				entries[i].Error = err.Error()
				return nil
			}
			entries[i].Analysis = analysis
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &types.RankResponse{
		BatchID:         uuid.New(),
		Candidates:      ranking.RankCandidates(entries),
		TotalCandidates: len(entries),
	}, nil
}

// RoleGaps compares a skill list against a role template and builds a
// roadmap from the missing required skills.
func (p *Pipeline) RoleGaps(skillList []string, role string) (*types.RoleGapResponse, error) {
	report, err := p.gaps.IdentifyGapsByRole(skillList, role)
	if err != nil {
		return nil, err
	}
	return &types.RoleGapResponse{
		Gaps:    report,
		Roadmap: p.roadmap.ForSkills(report.MissingRequired),
	}, nil
}

// Roles lists the role templates known to the catalog.
func (p *Pipeline) Roles() []string {
	return p.catalog.RoleNames()
}

func (p *Pipeline) validate(req *types.AnalyzeRequest) error {
	if strings.TrimSpace(req.JobDescription) == "" {
		return &InputError{Field: "job_description", Message: "must not be empty"}
	}
	if err := req.Validate(); err != nil {
		return &InputError{Message: "request validation failed", Cause: err}
	}
	if p.opts.MaxChars > 0 {
		if utf8.RuneCountInString(req.ResumeText) > p.opts.MaxChars {
			return &InputError{Field: "resume_text", Message: fmt.Sprintf("exceeds %d characters", p.opts.MaxChars)}
		}
		if utf8.RuneCountInString(req.JobDescription) > p.opts.MaxChars {
			return &InputError{Field: "job_description", Message: fmt.Sprintf("exceeds %d characters", p.opts.MaxChars)}
		}
	}
	return nil
}

func (p *Pipeline) degraded(logger *zap.Logger, step string, err error) {
	logger.Warn("analysis step degraded", zap.String("step", step), zap.Error(err))
	p.opts.Metrics.ObserveDegraded(step)
}

func (p *Pipeline) emit(ctx context.Context, label, step, message string) {
	event := ProgressEvent{Step: step, Label: label, Message: message}
	if p.opts.OnProgress != nil {
		p.opts.OnProgress(event)
	}
	if cb, ok := ctx.Value(progressKey{}).(ProgressCallback); ok {
		cb(event)
	}
}
