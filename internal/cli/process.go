package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dkrasnov/claimflow/internal/llm"
	"github.com/dkrasnov/claimflow/internal/model"
	"github.com/dkrasnov/claimflow/internal/pipeline"
)

var (
	outJSON     string
	display     bool
	outFormat   string
	procTimeout time.Duration
	noCache     bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Process a single FNOL document",
	Long: `Process extracts structured claim fields from one document and routes
the claim to a processing queue:
- Convert the document to text (txt, md, pdf, html)
- Run the pattern-cascade field extraction
- Evaluate the routing rule tiers
- Report the route, reasoning, flags, and missing mandatory fields

Example:
  claimflow process claim.txt
  claimflow process claim.pdf --json result.json
  claimflow process claim.txt --display --format pretty
  claimflow process claim.txt --summary --llm-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	// Output flags
	processCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	processCmd.Flags().BoolVar(&display, "display", false, "display result in console")
	processCmd.Flags().StringVar(&outFormat, "format", "json", "display format (json or pretty)")

	// Processing flags
	processCmd.Flags().DurationVar(&procTimeout, "timeout", 2*time.Minute, "overall processing timeout")
	processCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the converted-text cache")

	// Summary flags
	processCmd.Flags().BoolVar(&llmEnabled, "summary", false, "generate an adjuster summary (never affects routing)")
	processCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	processCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runProcess(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), procTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache
	if err := configureLLM(cfg); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Processing: %s\n", path)
	}

	processor := pipeline.NewProcessor(cfg)
	result, err := processor.ProcessFile(ctx, path)
	if err != nil {
		return fmt.Errorf("process %s: %w", path, err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Route: %s (confidence %.2f)\n", result.RecommendedRoute, result.ConfidenceScore)
		fmt.Fprintf(os.Stderr, "✓ Missing fields: %d\n", len(result.MissingFields))
	}

	renderer := pipeline.NewRenderer()

	if outJSON != "" {
		if err := renderer.RenderJSON(result, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
	}

	if cfg.LLM.Provider != "" {
		summary, err := processor.Summarize(ctx, result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: summary generation failed: %v\n", err)
		} else if summary != "" {
			sidecar := summaryPath(outJSON, path)
			if err := renderer.RenderSummary(llm.RenderMarkdown(summary, result), sidecar); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to write summary: %v\n", err)
			} else {
				fmt.Fprintf(os.Stderr, "✓ Wrote summary: %s\n", sidecar)
			}
		}
	}

	if display || outJSON == "" {
		if err := renderer.Display(os.Stdout, []*model.ClaimProcessingResult{result}, outFormat); err != nil {
			return err
		}
	}

	return nil
}

// configureLLM wires the summary flags and provider API key from the
// environment into the configuration
func configureLLM(cfg *model.Config) error {
	if !llmEnabled {
		if cfg.LLM.Provider == "" {
			return nil
		}
		// Provider set in config file without the flag: leave enabled.
	} else {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
	}

	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	return nil
}

// summaryPath places the sidecar summary next to the JSON output, or next
// to the input document when no JSON path was given
func summaryPath(jsonPath, docPath string) string {
	base := jsonPath
	if base == "" {
		base = docPath
	}
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base + ".summary.md"
}
