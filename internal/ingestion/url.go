package ingestion

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/fetch"
)

// URLOptions configures IngestFromURL.
type URLOptions struct {
	// UseBrowser re-renders pages whose static text is too short (JavaScript boards).
	UseBrowser bool
	// Renderer defaults to a chromedp BrowserRenderer when UseBrowser is set.
	Renderer fetch.Renderer
	Fetch    *fetch.Options
	Logger   *zap.Logger
}

// IngestFromURL fetches a job posting page and returns its cleaned text.
// Board-specific selectors are applied when the host is a known job board.
// A failed browser render falls back to the static page text.
func IngestFromURL(ctx context.Context, urlStr string, opts URLOptions) (string, *Metadata, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	platform := fetch.DetectPlatform(urlStr)
	logger = logger.With(zap.String("url", urlStr), zap.String("platform", string(platform)))

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return "", nil, err
	}
	logger.Debug("fetched page", zap.Int("bytes", len(result.HTML)))

	if result.IsPlainText() {
		text := CleanText(result.HTML)
		return text, NewMetadata(SourceURL, urlStr, FormatText, text), nil
	}

	contentSelectors := platform.ContentSelectors()
	noiseSelectors := platform.NoiseSelectors()

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, &ExtractionError{Path: urlStr, Cause: err}
	}

	rendered := false
	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		renderer := opts.Renderer
		if renderer == nil {
			renderer = fetch.NewBrowserRenderer(logger)
		}
		logger.Debug("static text too short, rendering in browser",
			zap.Int("chars", len(text)), zap.Int("min_chars", fetch.MinContentLength))

		html, renderErr := renderer.Render(ctx, urlStr)
		switch {
		case renderErr != nil:
			if ctx.Err() != nil {
				return "", nil, fmt.Errorf("browser rendering interrupted: %w", ctx.Err())
			}
			logger.Warn("browser rendering failed, using static page text", zap.Error(renderErr))
		default:
			browserText, extractErr := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
			if extractErr != nil {
				logger.Warn("browser content extraction failed", zap.Error(extractErr))
			} else {
				text = browserText
				rendered = true
			}
		}
	}

	cleaned := CleanText(text)
	meta := NewMetadata(SourceURL, urlStr, FormatHTML, cleaned)
	meta.Platform = string(platform)
	meta.Rendered = rendered
	logger.Debug("ingested posting", zap.Int("chars", meta.Chars), zap.Bool("rendered", rendered))
	return cleaned, meta, nil
}
