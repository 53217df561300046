package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dkrasnov/claimflow/internal/cache"
	"github.com/dkrasnov/claimflow/internal/extract"
	"github.com/dkrasnov/claimflow/internal/ingest"
	"github.com/dkrasnov/claimflow/internal/llm"
	"github.com/dkrasnov/claimflow/internal/model"
	"github.com/dkrasnov/claimflow/internal/route"
)

// Processor orchestrates the full pass over one claim document:
// convert to text, extract, route, assemble the result.
type Processor struct {
	extractor  *extract.FieldExtractor
	router     *route.Router
	converter  *ingest.Converter
	summarizer *llm.Summarizer // nil when summary generation is disabled
	config     *model.Config
}

// NewProcessor creates a processor with the given configuration
func NewProcessor(cfg *model.Config) *Processor {
	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			zap.L().Warn("summary generation disabled", zap.Error(err))
		} else {
			summarizer = s
		}
	}

	return &Processor{
		extractor:  extract.NewFieldExtractor(),
		router:     route.NewRouter(cfg.Router),
		converter:  ingest.NewConverter(store, cfg.Cache.TTL, cfg.Ingest.MaxFileBytes),
		summarizer: summarizer,
		config:     cfg,
	}
}

// ProcessText runs extraction and routing over raw document text and
// assembles the processing result. The missing-field list is recomputed
// from the router's mandatory-field check, independently of the
// extractor's confidence map.
func (p *Processor) ProcessText(text string) *model.ClaimProcessingResult {
	claim := p.extractor.ExtractFromText(text)
	decision := p.router.RouteClaim(claim)

	missing := p.router.MissingFields(claim)
	if missing == nil {
		missing = []string{}
	}

	return &model.ClaimProcessingResult{
		ExtractedFields:     claim,
		MissingFields:       missing,
		RecommendedRoute:    decision.RecommendedRoute,
		Reasoning:           decision.Reasoning,
		Flags:               decision.Flags,
		ConfidenceScore:     decision.ConfidenceScore,
		ProcessingTimestamp: time.Now().UTC(),
	}
}

// ProcessFile converts the document at path to text and processes it
func (p *Processor) ProcessFile(ctx context.Context, path string) (*model.ClaimProcessingResult, error) {
	text, err := p.converter.Text(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("convert document: %w", err)
	}
	return p.ProcessText(text), nil
}

// MissingFields exposes the router's mandatory-field check for callers
// that hold a ClaimData directly
func (p *Processor) MissingFields(claim *model.ClaimData) []string {
	return p.router.MissingFields(claim)
}

// Summarize generates the optional adjuster summary for a result. It
// returns empty output when summary generation is disabled and never
// influences the routing decision already recorded on the result.
func (p *Processor) Summarize(ctx context.Context, result *model.ClaimProcessingResult) (string, error) {
	if p.summarizer == nil {
		return "", nil
	}
	return p.summarizer.Summarize(ctx, result)
}
