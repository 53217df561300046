package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dkrasnov/claimflow/internal/model"
)

// Processor processes one claim document identified by path
type Processor interface {
	ProcessFile(ctx context.Context, path string) (*model.ClaimProcessingResult, error)
}

// DocumentJob is one claim document to process
type DocumentJob struct {
	Path       string
	Processor  Processor
	DocTimeout time.Duration // zero means no per-document timeout
}

// Execute processes the document. A failure is recorded on the result and
// never aborts the rest of the batch.
func (j *DocumentJob) Execute(ctx context.Context) Result {
	if j.DocTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.DocTimeout)
		defer cancel()
	}

	result, err := j.Processor.ProcessFile(ctx, j.Path)
	return &DocumentResult{Path: j.Path, Result: result, Error: err}
}

// DocumentResult pairs an input path with its processing outcome
type DocumentResult struct {
	Path   string
	Result *model.ClaimProcessingResult
	Error  error
}

// GetError returns the error from the document result
func (r *DocumentResult) GetError() error {
	return r.Error
}

// BatchProcessor fans claim documents out over a worker pool. Documents
// are independent, so no ordering is imposed between them; only the
// path-to-result association is preserved.
type BatchProcessor struct {
	processor   Processor
	concurrency int
	docTimeout  time.Duration
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(processor Processor, concurrency int, docTimeout time.Duration) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
		docTimeout:  docTimeout,
	}
}

// ProcessPaths processes the documents concurrently and returns one
// DocumentResult per input path. Per-document failures are logged and
// recorded; they never affect the other documents.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*DocumentResult {
	if len(paths) == 0 {
		return []*DocumentResult{}
	}

	pool := NewPoolContext(ctx, b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&DocumentJob{
			Path:       path,
			Processor:  b.processor,
			DocTimeout: b.docTimeout,
		})
	}

	results := pool.Wait()

	docResults := make([]*DocumentResult, len(results))
	for i, result := range results {
		dr := result.(*DocumentResult)
		if dr.Error != nil {
			zap.L().Warn("document processing failed",
				zap.String("path", dr.Path),
				zap.Error(dr.Error),
			)
		}
		docResults[i] = dr
	}

	return docResults
}

// ProcessManifest reads document paths from a manifest file and processes
// them concurrently
func (b *BatchProcessor) ProcessManifest(ctx context.Context, manifestPath string) ([]*DocumentResult, error) {
	paths, err := ReadPathsFromFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// Successful filters a batch down to the results that processed cleanly.
// Failed documents are reported out-of-band, so the returned list may be
// shorter than the input batch.
func Successful(results []*DocumentResult) []*model.ClaimProcessingResult {
	ok := make([]*model.ClaimProcessingResult, 0, len(results))
	for _, r := range results {
		if r.Error == nil && r.Result != nil {
			ok = append(ok, r.Result)
		}
	}
	return ok
}

// ReadPathsFromFile reads document paths from a file (one per line).
// Blank lines and # comments are skipped, duplicates removed.
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
