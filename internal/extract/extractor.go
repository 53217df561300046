package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dkrasnov/claimflow/internal/model"
)

// MatchConfidence is the score recorded when any pattern in a cascade
// fires. It encodes "a recognized pattern matched", not a calibrated
// probability; a miss scores 0.0.
const MatchConfidence = 0.95

// formLabelRe matches an ALL-CAPS form label line, used to trim
// multi-line description blocks.
var formLabelRe = regexp.MustCompile(`^[A-Z][A-Z /]*[A-Z]:?$`)

// FieldExtractor maps normalized FNOL text onto the claim schema using
// ordered per-field pattern cascades.
type FieldExtractor struct {
	patterns *fieldPatterns
	types    []typeKeyword
}

// NewFieldExtractor compiles the pattern tables once
func NewFieldExtractor() *FieldExtractor {
	return &FieldExtractor{
		patterns: newFieldPatterns(),
		types:    newTypeKeywords(),
	}
}

// ExtractFromText extracts a complete ClaimData from raw document text.
// Extraction never fails: every field independently degrades to absent
// when no pattern matches.
func (e *FieldExtractor) ExtractFromText(text string) *model.ClaimData {
	normalized := Normalize(text)

	claim := model.NewClaimData()
	claim.PolicyInfo = e.extractPolicyInfo(normalized)
	claim.IncidentInfo = e.extractIncidentInfo(normalized)
	claim.AssetDetails = e.extractAssetDetails(normalized)
	claim.ClaimType = e.classifyClaimType(normalized)
	claim.InvolvedParties = e.extractParties(normalized)
	claim.InitialEstimate = claim.AssetDetails.EstimatedDamage
	claim.Attachments = e.extractAttachments(normalized)
	claim.ExtractionConfidence = confidenceScores(claim)

	return claim
}

// extractField tries each pattern in order and returns the first capture.
// A hit scores MatchConfidence, a miss scores 0.0.
func extractField(text string, patterns cascade) (string, float64) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1]), MatchConfidence
		}
	}
	return "", 0.0
}

func (e *FieldExtractor) extractPolicyInfo(text string) model.PolicyInfo {
	info := model.PolicyInfo{}
	info.PolicyNumber, _ = extractField(text, e.patterns.policyNumber)
	info.PolicyholderName, _ = extractField(text, e.patterns.policyholderName)
	info.PolicyEffectiveDate, _ = extractField(text, e.patterns.effectiveDate)
	info.PolicyExpirationDate, _ = extractField(text, e.patterns.expirationDate)
	return info
}

func (e *FieldExtractor) extractIncidentInfo(text string) model.IncidentInfo {
	info := model.IncidentInfo{}
	info.IncidentDate, _ = extractField(text, e.patterns.incidentDate)
	info.IncidentTime, _ = extractField(text, e.patterns.incidentTime)
	info.IncidentLocation, _ = extractField(text, e.patterns.incidentLocation)

	desc, _ := extractField(text, e.patterns.incidentDescription)
	info.IncidentDescription = trimAtFormLabel(desc)

	return info
}

// trimAtFormLabel cuts a captured description block at the first line that
// looks like the next ALL-CAPS form label
func trimAtFormLabel(block string) string {
	if !strings.Contains(block, "\n") {
		return block
	}
	lines := strings.Split(block, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if formLabelRe.MatchString(strings.TrimSpace(line)) {
			break
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func (e *FieldExtractor) extractAssetDetails(text string) model.AssetDetails {
	details := model.AssetDetails{}
	details.AssetType, _ = extractField(text, e.patterns.assetType)
	details.AssetID, _ = extractField(text, e.patterns.assetID)

	if raw, _ := extractField(text, e.patterns.estimatedDamage); raw != "" {
		if amount, ok := parseAmount(raw); ok {
			details.EstimatedDamage = amount
		}
	}

	return details
}

// parseAmount converts a captured damage figure to a float after
// stripping thousands separators and a currency symbol. Unparsable text
// degrades to absent rather than surfacing an error.
func parseAmount(raw string) (float64, bool) {
	clean := strings.ReplaceAll(raw, ",", "")
	clean = strings.ReplaceAll(clean, "$", "")
	amount, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

// classifyClaimType first tries the explicit "claim type" label cascade.
// If a value is captured it is classified by keyword priority; otherwise
// the same keyword cascade runs over the entire document text. No hit at
// either stage leaves the claim unknown.
func (e *FieldExtractor) classifyClaimType(text string) model.ClaimType {
	if label, _ := extractField(text, e.patterns.claimType); label != "" {
		return e.classifyKeywords(label)
	}
	return e.classifyKeywords(text)
}

func (e *FieldExtractor) classifyKeywords(text string) model.ClaimType {
	lower := strings.ToLower(text)
	for _, tk := range e.types {
		for _, word := range tk.words {
			if strings.Contains(lower, word) {
				return tk.claimType
			}
		}
	}
	return model.ClaimTypeUnknown
}

// extractParties finds the claimant and a third party, in that order.
// Contact lookups run over the whole document, not a vicinity window.
// Absent parties are omitted, never recorded as placeholders.
func (e *FieldExtractor) extractParties(text string) []model.InvolvedParty {
	parties := []model.InvolvedParty{}

	if name, _ := extractField(text, e.patterns.claimantName); name != "" {
		party := model.InvolvedParty{Name: name, Relationship: model.RelationshipClaimant}
		if m := e.patterns.claimantPhone.FindStringSubmatch(text); m != nil {
			party.ContactPhone = strings.TrimSpace(m[1])
		}
		if m := e.patterns.claimantEmail.FindStringSubmatch(text); m != nil {
			party.ContactEmail = strings.TrimSpace(m[1])
		}
		parties = append(parties, party)
	}

	if name, _ := extractField(text, e.patterns.thirdPartyName); name != "" {
		party := model.InvolvedParty{Name: name, Relationship: model.RelationshipThirdParty}
		if m := e.patterns.thirdPartyPhone.FindStringSubmatch(text); m != nil {
			party.ContactPhone = strings.TrimSpace(m[1])
		}
		parties = append(parties, party)
	}

	return parties
}

// extractAttachments collects every match of every attachment pattern,
// splits comma-separated values, and deduplicates preserving first-seen
// order.
func (e *FieldExtractor) extractAttachments(text string) []string {
	seen := make(map[string]bool)
	attachments := []string{}

	add := func(token string) {
		token = strings.TrimSpace(token)
		if token == "" || seen[token] {
			return
		}
		seen[token] = true
		attachments = append(attachments, token)
	}

	for _, re := range e.patterns.attachments {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			value := strings.TrimSpace(m[1])
			if value == "" {
				continue
			}
			if strings.Contains(value, ",") {
				for _, part := range strings.Split(value, ",") {
					add(part)
				}
			} else {
				add(value)
			}
		}
	}

	return attachments
}

// confidenceScores records the binary presence signal for each mandatory
// field. This map is informational metadata; routing recomputes missing
// fields independently.
func confidenceScores(claim *model.ClaimData) map[string]float64 {
	scores := make(map[string]float64, 8)
	for _, name := range model.MandatoryFields() {
		if claim.HasField(name) {
			scores[name] = MatchConfidence
		} else {
			scores[name] = 0.0
		}
	}
	return scores
}
