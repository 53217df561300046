package model

import "time"

// RoutingDecision is the outcome of evaluating one claim against the
// routing rule tiers
type RoutingDecision struct {
	RecommendedRoute ClaimRoute `json:"recommended_route"`
	Reasoning        string     `json:"reasoning"`
	Flags            []string   `json:"flags"`
	ConfidenceScore  float64    `json:"confidence_score"`
}

// Routing flags. These are informational and are emitted even when a
// higher-priority tier already decided the route.
const (
	FlagMissingMandatoryFields = "MISSING_MANDATORY_FIELDS"
	FlagFraud                  = "FRAUD_FLAG"
	FlagInvestigation          = "INVESTIGATION_FLAG"
	FlagSpecializationRequired = "SPECIALIZATION_REQUIRED"
)

// Mandatory field names, in the order they are reported when missing
const (
	FieldPolicyNumber        = "policy_number"
	FieldPolicyholderName    = "policyholder_name"
	FieldIncidentDate        = "incident_date"
	FieldIncidentLocation    = "incident_location"
	FieldIncidentDescription = "incident_description"
	FieldAssetType           = "asset_type"
	FieldEstimatedDamage     = "estimated_damage"
	FieldClaimType           = "claim_type"
)

// MandatoryFields returns the fixed set of fields required for automated
// processing, in reporting order
func MandatoryFields() []string {
	return []string{
		FieldPolicyNumber,
		FieldPolicyholderName,
		FieldIncidentDate,
		FieldIncidentLocation,
		FieldIncidentDescription,
		FieldAssetType,
		FieldEstimatedDamage,
		FieldClaimType,
	}
}

// HasField reports whether a mandatory field carries a usable value.
// Empty strings and a zero damage amount count as absent, and an
// unclassified claim type counts as a missing claim_type.
func (c *ClaimData) HasField(name string) bool {
	switch name {
	case FieldPolicyNumber:
		return c.PolicyInfo.PolicyNumber != ""
	case FieldPolicyholderName:
		return c.PolicyInfo.PolicyholderName != ""
	case FieldIncidentDate:
		return c.IncidentInfo.IncidentDate != ""
	case FieldIncidentLocation:
		return c.IncidentInfo.IncidentLocation != ""
	case FieldIncidentDescription:
		return c.IncidentInfo.IncidentDescription != ""
	case FieldAssetType:
		return c.AssetDetails.AssetType != ""
	case FieldEstimatedDamage:
		return c.AssetDetails.EstimatedDamage != 0
	case FieldClaimType:
		return c.ClaimType != ClaimTypeUnknown
	default:
		return false
	}
}

// ClaimProcessingResult is the unit handed to display and persistence
// layers. The JSON key set is part of the external contract.
type ClaimProcessingResult struct {
	ExtractedFields     *ClaimData `json:"extractedFields"`
	MissingFields       []string   `json:"missingFields"`
	RecommendedRoute    ClaimRoute `json:"recommendedRoute"`
	Reasoning           string     `json:"reasoning"`
	Flags               []string   `json:"flags"`
	ConfidenceScore     float64    `json:"confidenceScore"`
	ProcessingTimestamp time.Time  `json:"processingTimestamp"`
}
