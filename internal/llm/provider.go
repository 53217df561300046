package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/dkrasnov/claimflow/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates an adjuster-facing summary of a processing result
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for summary generation
type SummarizeRequest struct {
	// Result is the claim processing result to summarize
	Result *model.ClaimProcessingResult

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the summary output
type SummarizeResponse struct {
	// Summary is the generated summary text
	Summary string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai" or "" (disabled)
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the provider
	APIKey string

	// BaseURL for custom endpoints (e.g., a local OpenAI-compatible server)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// RequestsPerSecond rate-limits summary requests in batch runs
	RequestsPerSecond float64

	// Burst for the rate limiter
	Burst int
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(cfg model.LLMConfig) Config {
	return Config{
		Provider:          cfg.Provider,
		Model:             cfg.Model,
		APIKey:            cfg.APIKey,
		BaseURL:           cfg.BaseURL,
		Timeout:           cfg.Timeout,
		MaxTokens:         cfg.MaxTokens,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
	}
}

// BuildPrompt assembles the default summary prompt. Only data already on
// the result goes in; the decision it describes is final and the summary
// can never change it.
func BuildPrompt(result *model.ClaimProcessingResult) string {
	var sb strings.Builder

	sb.WriteString("Summarize this insurance claim triage result for an adjuster in a short paragraph.\n")
	sb.WriteString("Do not second-guess the routing decision; explain it.\n\n")
	sb.WriteString(fmt.Sprintf("Route: %s (confidence %.2f)\n", result.RecommendedRoute, result.ConfidenceScore))
	sb.WriteString(fmt.Sprintf("Reasoning: %s\n", result.Reasoning))
	if len(result.Flags) > 0 {
		sb.WriteString(fmt.Sprintf("Flags: %s\n", strings.Join(result.Flags, ", ")))
	}
	if len(result.MissingFields) > 0 {
		sb.WriteString(fmt.Sprintf("Missing fields: %s\n", strings.Join(result.MissingFields, ", ")))
	}

	if claim := result.ExtractedFields; claim != nil {
		sb.WriteString(fmt.Sprintf("Claim type: %s\n", claim.ClaimType))
		if claim.PolicyInfo.PolicyNumber != "" {
			sb.WriteString(fmt.Sprintf("Policy: %s\n", claim.PolicyInfo.PolicyNumber))
		}
		if claim.IncidentInfo.IncidentDate != "" {
			sb.WriteString(fmt.Sprintf("Incident date: %s\n", claim.IncidentInfo.IncidentDate))
		}
		if claim.AssetDetails.EstimatedDamage != 0 {
			sb.WriteString(fmt.Sprintf("Estimated damage: $%.2f\n", claim.AssetDetails.EstimatedDamage))
		}
	}

	return sb.String()
}
