package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dkrasnov/claimflow/internal/model"
)

// Export formats
const (
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// Renderer formats processing results for files and the console
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Export formats a single result. Unsupported format names are an
// explicit error, the one place this layer fails loudly.
func (r *Renderer) Export(result *model.ClaimProcessingResult, format string) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal result: %w", err)
		}
		return string(data), nil

	case FormatPretty:
		var sb strings.Builder
		r.writePretty(&sb, result)
		return sb.String(), nil

	default:
		return "", fmt.Errorf("unsupported export format: %q (supported: json, pretty)", format)
	}
}

// RenderJSON writes a single result as indented JSON to path
func (r *Renderer) RenderJSON(result *model.ClaimProcessingResult, path string) error {
	return r.writeFile(path, func(f io.Writer) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	})
}

// RenderBatchJSON writes a list of results as one JSON array to path
func (r *Renderer) RenderBatchJSON(results []*model.ClaimProcessingResult, path string) error {
	return r.writeFile(path, func(f io.Writer) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	})
}

// RenderSummary writes an optional adjuster summary as a sidecar
// markdown file
func (r *Renderer) RenderSummary(markdown string, path string) error {
	return r.writeFile(path, func(f io.Writer) error {
		_, err := io.WriteString(f, markdown)
		return err
	})
}

func (r *Renderer) writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := write(f); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// Display writes results to w in the requested format
func (r *Renderer) Display(w io.Writer, results []*model.ClaimProcessingResult, format string) error {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintln(w, "CLAIM PROCESSING RESULTS")
	fmt.Fprintln(w, strings.Repeat("=", 70))

	for i, result := range results {
		fmt.Fprintf(w, "\n--- Claim #%d ---\n", i+1)
		out, err := r.Export(result, format)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, out)
	}

	return nil
}

func (r *Renderer) writePretty(w io.Writer, result *model.ClaimProcessingResult) {
	fmt.Fprintf(w, "Recommended Route: %s\n", strings.ToUpper(string(result.RecommendedRoute)))
	fmt.Fprintf(w, "Confidence Score: %.1f%%\n", result.ConfidenceScore*100)
	fmt.Fprintf(w, "\nReasoning: %s\n", result.Reasoning)

	if len(result.Flags) > 0 {
		fmt.Fprintf(w, "\nFlags Raised:\n")
		for _, flag := range result.Flags {
			fmt.Fprintf(w, "  - %s\n", flag)
		}
	}

	fmt.Fprintf(w, "\nMissing Fields (%d):\n", len(result.MissingFields))
	if len(result.MissingFields) > 0 {
		for _, field := range result.MissingFields {
			fmt.Fprintf(w, "  ! %s\n", field)
		}
	} else {
		fmt.Fprintf(w, "  all mandatory fields present\n")
	}

	claim := result.ExtractedFields
	if claim == nil {
		return
	}

	fmt.Fprintf(w, "\nExtracted Fields Summary:\n")
	if claim.PolicyInfo.PolicyNumber != "" {
		fmt.Fprintf(w, "  Policy: %s\n", claim.PolicyInfo.PolicyNumber)
	}
	if claim.PolicyInfo.PolicyholderName != "" {
		fmt.Fprintf(w, "  Policyholder: %s\n", claim.PolicyInfo.PolicyholderName)
	}
	if claim.IncidentInfo.IncidentDate != "" {
		fmt.Fprintf(w, "  Incident Date: %s\n", claim.IncidentInfo.IncidentDate)
	}
	if claim.AssetDetails.EstimatedDamage != 0 {
		fmt.Fprintf(w, "  Estimated Damage: $%.2f\n", claim.AssetDetails.EstimatedDamage)
	}
}
