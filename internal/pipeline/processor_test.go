package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dkrasnov/claimflow/internal/model"
)

const sampleDocument = `First Notice of Loss

Policy Number: POL-2024-001234
Policyholder Name: John Smith
Date of Loss: 03/15/2024
Location of Loss: 123 Main Street, Springfield
Description of Loss: The insured vehicle was struck from behind while stopped at a red light on Main Street.
Type of Claim: Collision
Type of Property: Sedan vehicle
Estimated Damage: $15,000
`

func newTestProcessor() *Processor {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	return NewProcessor(cfg)
}

func TestProcessText_CompleteDocument(t *testing.T) {
	processor := newTestProcessor()
	result := processor.ProcessText(sampleDocument)

	if result.ExtractedFields == nil {
		t.Fatal("Expected extracted claim, got nil")
	}
	if result.ExtractedFields.PolicyInfo.PolicyNumber != "POL-2024-001234" {
		t.Errorf("Expected policy number, got %q", result.ExtractedFields.PolicyInfo.PolicyNumber)
	}
	if result.RecommendedRoute != model.RouteFastTrack {
		t.Errorf("Expected fast_track for a complete $15,000 claim, got %q", result.RecommendedRoute)
	}
	if len(result.MissingFields) != 0 {
		t.Errorf("Expected no missing fields, got %v", result.MissingFields)
	}
	if result.ProcessingTimestamp.IsZero() {
		t.Error("Expected processing timestamp to be set")
	}
}

func TestProcessText_MissingFieldsNeverNil(t *testing.T) {
	processor := newTestProcessor()
	result := processor.ProcessText(sampleDocument)

	if result.MissingFields == nil {
		t.Error("Expected empty slice, got nil")
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if string(decoded["missingFields"]) != "[]" {
		t.Errorf("Expected missingFields to serialize as [], got %s", decoded["missingFields"])
	}
}

func TestProcessText_ResultJSONKeys(t *testing.T) {
	processor := newTestProcessor()
	result := processor.ProcessText(sampleDocument)

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	for _, key := range []string{
		"extractedFields",
		"missingFields",
		"recommendedRoute",
		"reasoning",
		"flags",
		"confidenceScore",
		"processingTimestamp",
	} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("Expected top-level key %q in result JSON", key)
		}
	}
}

func TestMissingFields_AgreesWithResult(t *testing.T) {
	processor := newTestProcessor()

	// Incomplete document: both read paths must report the same fields.
	result := processor.ProcessText("Policy Number: POL-1234-AB\nSome unrelated text.\n")
	direct := processor.MissingFields(result.ExtractedFields)
	if !reflect.DeepEqual(direct, result.MissingFields) {
		t.Errorf("Expected %v to match assembled missing fields %v", direct, result.MissingFields)
	}
	if len(direct) == 0 {
		t.Error("Expected fields missing from a near-empty document")
	}

	// Complete document: both read paths must agree the claim is complete.
	result = processor.ProcessText(sampleDocument)
	if len(processor.MissingFields(result.ExtractedFields)) != 0 {
		t.Errorf("Expected no missing fields, result reported %v", result.MissingFields)
	}
}

func TestProcessText_EmptyInput(t *testing.T) {
	processor := newTestProcessor()
	result := processor.ProcessText("")

	if result.RecommendedRoute != model.RouteManualReview {
		t.Errorf("Expected manual_review for an empty document, got %q", result.RecommendedRoute)
	}
	if len(result.MissingFields) != len(model.MandatoryFields()) {
		t.Errorf("Expected all mandatory fields missing, got %v", result.MissingFields)
	}
}

func TestProcessText_Deterministic(t *testing.T) {
	processor := newTestProcessor()

	first := processor.ProcessText(sampleDocument)
	second := processor.ProcessText(sampleDocument)

	// The timestamp is the only field allowed to differ between runs.
	first.ProcessingTimestamp = second.ProcessingTimestamp
	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical results for identical input")
	}
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fnol.txt")
	if err := os.WriteFile(path, []byte(sampleDocument), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	processor := newTestProcessor()
	result, err := processor.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if result.RecommendedRoute != model.RouteFastTrack {
		t.Errorf("Expected fast_track, got %q", result.RecommendedRoute)
	}
}

func TestProcessFile_MissingFile(t *testing.T) {
	processor := newTestProcessor()
	_, err := processor.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "no-such-file.txt"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestSummarize_DisabledReturnsEmpty(t *testing.T) {
	processor := newTestProcessor()
	result := processor.ProcessText(sampleDocument)

	summary, err := processor.Summarize(context.Background(), result)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary != "" {
		t.Errorf("Expected empty summary when disabled, got %q", summary)
	}
}
