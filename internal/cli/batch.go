package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dkrasnov/claimflow/internal/ingest"
	"github.com/dkrasnov/claimflow/internal/pipeline"
	"github.com/dkrasnov/claimflow/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	docTimeout   time.Duration
	combinedOut  string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <folder|manifest>",
	Short: "Process multiple FNOL documents in parallel",
	Long: `Batch processes claim documents concurrently:
- Enumerate documents in a folder (txt, md, pdf, html), or read paths
  from a manifest file (one per line)
- Fan documents out over a configurable worker pool
- Write one JSON result per document; failures are reported and skipped
  without aborting the batch

Example:
  claimflow batch ./claims/
  claimflow batch ./claims/ --concurrency 10 --output-dir ./results
  claimflow batch manifest.txt --doc-timeout 30s`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./claimflow-results", "output directory for results")
	batchCmd.Flags().StringVar(&combinedOut, "combined", "", "also write all results as one JSON array to this path")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().DurationVar(&docTimeout, "doc-timeout", 30*time.Second, "timeout for individual documents")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency
	cfg.Ingest.DocTimeout = docTimeout

	paths, err := collectPaths(input)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no claim documents found in: %s", input)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input:       %s\n", input)
	fmt.Fprintf(os.Stderr, "  Documents:   %d\n", len(paths))
	fmt.Fprintf(os.Stderr, "  Workers:     %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:  %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	processor := pipeline.NewProcessor(cfg)
	batch := worker.NewBatchProcessor(processor, cfg.Concurrency.Workers, cfg.Ingest.DocTimeout)

	results := batch.ProcessPaths(ctx, paths)

	renderer := pipeline.NewRenderer()
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		successCount++
		jsonPath := filepath.Join(outputDir, resultFilename(result.Path))
		if err := renderer.RenderJSON(result.Result, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s -> %s (%s)\n", result.Path, jsonPath, result.Result.RecommendedRoute)
	}

	if combinedOut != "" {
		if err := renderer.RenderBatchJSON(worker.Successful(results), combinedOut); err != nil {
			return fmt.Errorf("write combined output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote combined results: %s\n", combinedOut)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d documents\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// collectPaths enumerates claim documents: a directory argument is
// scanned for supported extensions, anything else is treated as a
// manifest file listing one path per line
func collectPaths(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	if !info.IsDir() {
		return worker.ReadPathsFromFile(input)
	}

	supported := make(map[string]bool, len(ingest.Extensions))
	for _, ext := range ingest.Extensions {
		supported[ext] = true
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if supported[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(input, entry.Name()))
		}
	}
	sort.Strings(paths)

	return paths, nil
}

// resultFilename names the output after the input document. The original
// extension stays in the name so documents sharing a stem (claim.txt and
// claim.pdf) never overwrite each other's results.
func resultFilename(docPath string) string {
	return filepath.Base(docPath) + ".json"
}
