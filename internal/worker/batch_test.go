package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dkrasnov/claimflow/internal/model"
)

// fakeProcessor fails any path containing "bad" and succeeds otherwise
type fakeProcessor struct{}

func (p *fakeProcessor) ProcessFile(ctx context.Context, path string) (*model.ClaimProcessingResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.Contains(path, "bad") {
		return nil, fmt.Errorf("process %s: unreadable document", path)
	}
	return &model.ClaimProcessingResult{
		RecommendedRoute: model.RouteStandardProcessing,
		MissingFields:    []string{},
		Flags:            []string{},
	}, nil
}

func TestProcessPaths(t *testing.T) {
	batch := NewBatchProcessor(&fakeProcessor{}, 2, 0)
	paths := []string{"a.txt", "b.txt", "c.txt"}

	results := batch.ProcessPaths(context.Background(), paths)
	if len(results) != len(paths) {
		t.Fatalf("Expected %d results, got %d", len(paths), len(results))
	}

	seen := make(map[string]bool)
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("Expected success for %s, got %v", r.Path, r.Error)
		}
		seen[r.Path] = true
	}
	for _, p := range paths {
		if !seen[p] {
			t.Errorf("Expected a result for %s", p)
		}
	}
}

func TestProcessPaths_FailureIsolation(t *testing.T) {
	batch := NewBatchProcessor(&fakeProcessor{}, 2, 0)
	paths := []string{"good1.txt", "bad.txt", "good2.txt"}

	results := batch.ProcessPaths(context.Background(), paths)
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	failures := 0
	for _, r := range results {
		if r.Error != nil {
			failures++
			if r.Path != "bad.txt" {
				t.Errorf("Expected only bad.txt to fail, got failure for %s", r.Path)
			}
		}
	}
	if failures != 1 {
		t.Errorf("Expected 1 failure, got %d", failures)
	}
}

// countingFakeProcessor records how many documents it was asked to process
type countingFakeProcessor struct {
	calls atomic.Int64
}

func (p *countingFakeProcessor) ProcessFile(ctx context.Context, path string) (*model.ClaimProcessingResult, error) {
	p.calls.Add(1)
	return &model.ClaimProcessingResult{MissingFields: []string{}, Flags: []string{}}, nil
}

func TestProcessPaths_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processor := &countingFakeProcessor{}
	batch := NewBatchProcessor(processor, 2, 0)

	results := batch.ProcessPaths(ctx, []string{"a.txt", "b.txt", "c.txt"})
	if len(results) != 0 {
		t.Errorf("Expected no results for a cancelled context, got %d", len(results))
	}
	if processor.calls.Load() != 0 {
		t.Errorf("Expected no documents processed after cancellation, got %d", processor.calls.Load())
	}
}

func TestProcessPaths_DeadlineStopsBatch(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	batch := NewBatchProcessor(&fakeProcessor{}, 2, 0)
	results := batch.ProcessPaths(ctx, []string{"a.txt", "b.txt"})
	if len(results) != 0 {
		t.Errorf("Expected no results past the deadline, got %d", len(results))
	}
}

func TestProcessPaths_Empty(t *testing.T) {
	batch := NewBatchProcessor(&fakeProcessor{}, 2, 0)

	results := batch.ProcessPaths(context.Background(), nil)
	if results == nil {
		t.Error("Expected empty slice, got nil")
	}
	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}

func TestSuccessful(t *testing.T) {
	batch := NewBatchProcessor(&fakeProcessor{}, 2, 0)
	results := batch.ProcessPaths(context.Background(), []string{"good.txt", "bad.txt"})

	ok := Successful(results)
	if len(ok) != 1 {
		t.Errorf("Expected 1 successful result, got %d", len(ok))
	}
}

func TestProcessManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "manifest.txt")
	content := "good1.txt\n\n# a comment\ngood2.txt\ngood1.txt\n"
	if err := os.WriteFile(manifest, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	batch := NewBatchProcessor(&fakeProcessor{}, 2, 0)
	results, err := batch.ProcessManifest(context.Background(), manifest)
	if err != nil {
		t.Fatalf("ProcessManifest failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 results after dedup, got %d", len(results))
	}
}

func TestProcessManifest_MissingFile(t *testing.T) {
	batch := NewBatchProcessor(&fakeProcessor{}, 2, 0)
	_, err := batch.ProcessManifest(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Error("Expected error for missing manifest")
	}
}

func TestReadPathsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paths.txt")
	content := "first.txt\n# skip me\n\nsecond.txt\nfirst.txt\n  third.txt  \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	paths, err := ReadPathsFromFile(path)
	if err != nil {
		t.Fatalf("ReadPathsFromFile failed: %v", err)
	}

	want := []string{"first.txt", "second.txt", "third.txt"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Expected %v, got %v", want, paths)
	}
}
