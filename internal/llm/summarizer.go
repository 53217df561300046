package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/dkrasnov/claimflow/internal/model"
)

// Summarizer generates optional adjuster summaries of processing results.
// It runs strictly after routing and its output is kept out of the result
// object, so it can never influence a decision.
type Summarizer struct {
	provider Provider
	config   Config
	limiter  *rate.Limiter
}

// NewSummarizer creates a summarizer for the configured provider
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("no LLM provider configured")
	}

	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := config.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Summarizer{
		provider: provider,
		config:   config,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

// Summarize generates a summary for one result. Requests are rate-limited
// so batch runs do not flood the provider.
func (s *Summarizer) Summarize(ctx context.Context, result *model.ClaimProcessingResult) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Result:    result,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}

	return resp.Summary, nil
}

// RenderMarkdown wraps a generated summary in the sidecar document layout
func RenderMarkdown(summary string, result *model.ClaimProcessingResult) string {
	return fmt.Sprintf("# Claim Summary\n\nRoute: `%s`\n\n%s\n", result.RecommendedRoute, summary)
}
