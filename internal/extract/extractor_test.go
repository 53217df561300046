package extract

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dkrasnov/claimflow/internal/model"
)

const proseDocument = `First Notice of Loss

Policy Number: POL-2024-001234
Policyholder Name: John Smith
Date of Loss: 03/15/2024
Location of Loss: 123 Main Street, Springfield
Description of Loss: The insured vehicle was struck from behind while stopped at a red light, resulting in rear bumper harm.
Type of Claim: Collision
Type of Property: Sedan vehicle
Estimated Damage: $45,000
Attachments: repair_estimate.pdf, scene_photo_1.jpg
`

const formDocument = `POLICY NUMBER
POL-9981-XA

Name of Policyholder
Jane Doe

DATE OF LOSS (MM/DD/YYYY)
04/02/2024

TIME OF LOSS
14:30

LOCATION OF LOSS STREET:
456 Oak Avenue
CITY: Springfield

DESCRIPTION OF LOSS
Vehicle slid on ice and
struck a guardrail.

ESTIMATED DAMAGE
$8,250.00

Claimant Name
Jane Doe

Contact Phone
555-123-4567

Contact Email
jane.doe@example.com

Third Party Driver Name
Bob Miller

Third Party Phone
555-987-6543
`

func TestFieldExtractor_ProseDocument(t *testing.T) {
	extractor := NewFieldExtractor()
	claim := extractor.ExtractFromText(proseDocument)

	if claim.PolicyInfo.PolicyNumber != "POL-2024-001234" {
		t.Errorf("Expected policy number POL-2024-001234, got %q", claim.PolicyInfo.PolicyNumber)
	}
	if claim.PolicyInfo.PolicyholderName != "John Smith" {
		t.Errorf("Expected policyholder John Smith, got %q", claim.PolicyInfo.PolicyholderName)
	}
	if claim.IncidentInfo.IncidentDate != "03/15/2024" {
		t.Errorf("Expected incident date 03/15/2024, got %q", claim.IncidentInfo.IncidentDate)
	}
	if claim.IncidentInfo.IncidentLocation != "123 Main Street, Springfield" {
		t.Errorf("Expected location, got %q", claim.IncidentInfo.IncidentLocation)
	}
	if !strings.Contains(claim.IncidentInfo.IncidentDescription, "struck from behind") {
		t.Errorf("Expected description to be captured, got %q", claim.IncidentInfo.IncidentDescription)
	}
	if claim.ClaimType != model.ClaimTypeCollision {
		t.Errorf("Expected collision claim type, got %q", claim.ClaimType)
	}
	if claim.AssetDetails.AssetType != "Sedan vehicle" {
		t.Errorf("Expected asset type Sedan vehicle, got %q", claim.AssetDetails.AssetType)
	}
	if claim.AssetDetails.EstimatedDamage != 45000.0 {
		t.Errorf("Expected estimated damage 45000.0, got %v", claim.AssetDetails.EstimatedDamage)
	}
	if claim.InitialEstimate != 45000.0 {
		t.Errorf("Expected initial estimate 45000.0, got %v", claim.InitialEstimate)
	}
}

func TestFieldExtractor_FormDocument(t *testing.T) {
	extractor := NewFieldExtractor()
	claim := extractor.ExtractFromText(formDocument)

	if claim.PolicyInfo.PolicyNumber != "POL-9981-XA" {
		t.Errorf("Expected policy number POL-9981-XA, got %q", claim.PolicyInfo.PolicyNumber)
	}
	if claim.PolicyInfo.PolicyholderName != "Jane Doe" {
		t.Errorf("Expected policyholder Jane Doe, got %q", claim.PolicyInfo.PolicyholderName)
	}
	if claim.IncidentInfo.IncidentDate != "04/02/2024" {
		t.Errorf("Expected incident date 04/02/2024, got %q", claim.IncidentInfo.IncidentDate)
	}
	if claim.IncidentInfo.IncidentTime != "14:30" {
		t.Errorf("Expected incident time 14:30, got %q", claim.IncidentInfo.IncidentTime)
	}
	if claim.IncidentInfo.IncidentLocation != "456 Oak Avenue" {
		t.Errorf("Expected location 456 Oak Avenue, got %q", claim.IncidentInfo.IncidentLocation)
	}
	if claim.IncidentInfo.IncidentDescription != "Vehicle slid on ice and\nstruck a guardrail." {
		t.Errorf("Expected multi-line description, got %q", claim.IncidentInfo.IncidentDescription)
	}
	if claim.AssetDetails.EstimatedDamage != 8250.0 {
		t.Errorf("Expected estimated damage 8250.0, got %v", claim.AssetDetails.EstimatedDamage)
	}
}

func TestFieldExtractor_Parties(t *testing.T) {
	extractor := NewFieldExtractor()
	claim := extractor.ExtractFromText(formDocument)

	if len(claim.InvolvedParties) != 2 {
		t.Fatalf("Expected 2 parties, got %d", len(claim.InvolvedParties))
	}

	claimant := claim.InvolvedParties[0]
	if claimant.Relationship != model.RelationshipClaimant {
		t.Errorf("Expected claimant first, got %q", claimant.Relationship)
	}
	if claimant.Name != "Jane Doe" {
		t.Errorf("Expected claimant Jane Doe, got %q", claimant.Name)
	}
	if claimant.ContactPhone != "555-123-4567" {
		t.Errorf("Expected claimant phone, got %q", claimant.ContactPhone)
	}
	if claimant.ContactEmail != "jane.doe@example.com" {
		t.Errorf("Expected claimant email, got %q", claimant.ContactEmail)
	}

	third := claim.InvolvedParties[1]
	if third.Relationship != model.RelationshipThirdParty {
		t.Errorf("Expected third party second, got %q", third.Relationship)
	}
	if third.Name != "Bob Miller" {
		t.Errorf("Expected third party Bob Miller, got %q", third.Name)
	}
	if third.ContactPhone != "555-987-6543" {
		t.Errorf("Expected third party phone, got %q", third.ContactPhone)
	}
}

func TestFieldExtractor_NoPartiesNoPlaceholders(t *testing.T) {
	extractor := NewFieldExtractor()
	claim := extractor.ExtractFromText("Policy Number: POL-1234-XY\nSome other text follows.\n")

	if len(claim.InvolvedParties) != 0 {
		t.Errorf("Expected no placeholder parties, got %d", len(claim.InvolvedParties))
	}
}

func TestFieldExtractor_ClaimTypeAlwaysDefined(t *testing.T) {
	valid := map[model.ClaimType]bool{
		model.ClaimTypePropertyDamage: true,
		model.ClaimTypeBodilyInjury:   true,
		model.ClaimTypeTheft:          true,
		model.ClaimTypeCollision:      true,
		model.ClaimTypeComprehensive:  true,
		model.ClaimTypeLiability:      true,
		model.ClaimTypeUnknown:        true,
	}

	extractor := NewFieldExtractor()
	inputs := []string{
		"",
		"no recognizable content at all",
		proseDocument,
		formDocument,
		"Type of Claim: Gibberish Category\nMore text.\n",
	}

	for _, input := range inputs {
		claim := extractor.ExtractFromText(input)
		if !valid[claim.ClaimType] {
			t.Errorf("Claim type %q not in the defined tag set (input %q)", claim.ClaimType, input)
		}
	}
}

func TestFieldExtractor_ClaimTypeFallbackPriority(t *testing.T) {
	extractor := NewFieldExtractor()

	// No explicit label: the keyword cascade runs over the whole document,
	// and injury outranks collision.
	claim := extractor.ExtractFromText("The collision caused a neck injury to the driver.\n")
	if claim.ClaimType != model.ClaimTypeBodilyInjury {
		t.Errorf("Expected bodily_injury from fallback priority, got %q", claim.ClaimType)
	}

	claim = extractor.ExtractFromText("The vehicle was reported stolen. Theft occurred overnight.\n")
	if claim.ClaimType != model.ClaimTypeTheft {
		t.Errorf("Expected theft from fallback, got %q", claim.ClaimType)
	}
}

func TestFieldExtractor_ClaimTypeLabelWins(t *testing.T) {
	extractor := NewFieldExtractor()

	// Explicit label takes priority over document-wide keywords
	claim := extractor.ExtractFromText("Type of Claim: Liability\nThe theft of the bicycle was mentioned elsewhere.\n")
	if claim.ClaimType != model.ClaimTypeLiability {
		t.Errorf("Expected liability from explicit label, got %q", claim.ClaimType)
	}
}

func TestFieldExtractor_MalformedDamageDegradesSilently(t *testing.T) {
	extractor := NewFieldExtractor()
	claim := extractor.ExtractFromText("Estimated Damage: $1.2.3.4\nPolicy Number: POL-1234-AB\n")

	if claim.AssetDetails.EstimatedDamage != 0 {
		t.Errorf("Expected malformed amount to degrade to absent, got %v", claim.AssetDetails.EstimatedDamage)
	}
}

func TestFieldExtractor_AttachmentDedup(t *testing.T) {
	extractor := NewFieldExtractor()
	claim := extractor.ExtractFromText("Attachments: scene_photo_1.jpg, scene_photo_1.jpg, police_report.pdf\n")

	count := 0
	for _, a := range claim.Attachments {
		if a == "scene_photo_1.jpg" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected scene_photo_1.jpg exactly once, got %d (attachments %v)", count, claim.Attachments)
	}
}

func TestFieldExtractor_AttachmentOrderPreserved(t *testing.T) {
	extractor := NewFieldExtractor()
	claim := extractor.ExtractFromText("Attachments: first_document.pdf, second_document.pdf, third_document.pdf\n")

	want := []string{"first_document.pdf", "second_document.pdf", "third_document.pdf"}
	if !reflect.DeepEqual(claim.Attachments, want) {
		t.Errorf("Expected first-seen order %v, got %v", want, claim.Attachments)
	}
}

func TestFieldExtractor_ConfidenceMap(t *testing.T) {
	extractor := NewFieldExtractor()
	claim := extractor.ExtractFromText(proseDocument)

	for _, name := range model.MandatoryFields() {
		score, ok := claim.ExtractionConfidence[name]
		if !ok {
			t.Errorf("Expected confidence entry for %s", name)
			continue
		}
		if score != 0.0 && score != MatchConfidence {
			t.Errorf("Expected binary confidence for %s, got %v", name, score)
		}
	}

	if claim.ExtractionConfidence["policy_number"] != MatchConfidence {
		t.Errorf("Expected policy_number present with confidence %v", MatchConfidence)
	}
}

func TestFieldExtractor_MissingFieldsScoreZero(t *testing.T) {
	extractor := NewFieldExtractor()
	claim := extractor.ExtractFromText("just some unstructured text with nothing recognizable\n")

	if claim.ExtractionConfidence["policy_number"] != 0.0 {
		t.Errorf("Expected absent policy_number to score 0.0, got %v", claim.ExtractionConfidence["policy_number"])
	}
}

func TestFieldExtractor_Idempotent(t *testing.T) {
	extractor := NewFieldExtractor()

	first := extractor.ExtractFromText(formDocument)
	second := extractor.ExtractFromText(formDocument)

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical extraction for identical input")
	}
}
