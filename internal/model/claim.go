package model

// ClaimType categorizes the nature of the loss described in an FNOL document
type ClaimType string

const (
	ClaimTypePropertyDamage ClaimType = "property_damage"
	ClaimTypeBodilyInjury   ClaimType = "bodily_injury"
	ClaimTypeTheft          ClaimType = "theft"
	ClaimTypeCollision      ClaimType = "collision"
	ClaimTypeComprehensive  ClaimType = "comprehensive"
	ClaimTypeLiability      ClaimType = "liability"
	ClaimTypeUnknown        ClaimType = "unknown"
)

// ClaimRoute is the processing queue a claim is assigned to
type ClaimRoute string

const (
	RouteFastTrack          ClaimRoute = "fast_track"
	RouteStandardProcessing ClaimRoute = "standard_processing"
	RouteManualReview       ClaimRoute = "manual_review"
	RouteInvestigationFlag  ClaimRoute = "investigation_flag"
	RouteSpecialistQueue    ClaimRoute = "specialist_queue"
)

// Party relationship tags
const (
	RelationshipClaimant   = "claimant"
	RelationshipThirdParty = "third_party"
	RelationshipWitness    = "witness"
)

// PolicyInfo holds policy-level fields recognized in the document.
// Empty string means the field was not found in the text; that is not an error.
type PolicyInfo struct {
	PolicyNumber         string `json:"policy_number,omitempty"`
	PolicyholderName     string `json:"policyholder_name,omitempty"`
	PolicyEffectiveDate  string `json:"policy_effective_date,omitempty"`
	PolicyExpirationDate string `json:"policy_expiration_date,omitempty"`
	InsuranceCompany     string `json:"insurance_company,omitempty"`
}

// IncidentInfo holds fields describing the loss event
type IncidentInfo struct {
	IncidentDate        string `json:"incident_date,omitempty"`
	IncidentTime        string `json:"incident_time,omitempty"`
	IncidentLocation    string `json:"incident_location,omitempty"`
	IncidentDescription string `json:"incident_description,omitempty"` // may span multiple lines
	WeatherConditions   string `json:"weather_conditions,omitempty"`
}

// InvolvedParty is a person referenced by the claim
type InvolvedParty struct {
	Name         string `json:"name,omitempty"`
	Relationship string `json:"relationship,omitempty"` // claimant, third_party, witness
	ContactPhone string `json:"contact_phone,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	Address      string `json:"address,omitempty"`
}

// AssetDetails holds fields describing the damaged asset
type AssetDetails struct {
	AssetType         string  `json:"asset_type,omitempty"`
	AssetID           string  `json:"asset_id,omitempty"` // VIN or similar identifier
	AssetDescription  string  `json:"asset_description,omitempty"`
	EstimatedDamage   float64 `json:"estimated_damage,omitempty"` // zero means not found
	DamageDescription string  `json:"damage_description,omitempty"`
}

// ClaimData is the complete structured form of one FNOL document.
// It is populated once by the extraction pass and only read afterwards;
// routing never mutates it.
type ClaimData struct {
	ClaimType            ClaimType          `json:"claim_type"`
	PolicyInfo           PolicyInfo         `json:"policy_info"`
	IncidentInfo         IncidentInfo       `json:"incident_info"`
	InvolvedParties      []InvolvedParty    `json:"involved_parties"`
	AssetDetails         AssetDetails       `json:"asset_details"`
	InitialEstimate      float64            `json:"initial_estimate,omitempty"`
	Attachments          []string           `json:"attachments"`
	ProcessingNotes      string             `json:"processing_notes,omitempty"`
	ExtractionConfidence map[string]float64 `json:"extraction_confidence"`
}

// NewClaimData returns an empty claim with the unknown type tag set
func NewClaimData() *ClaimData {
	return &ClaimData{
		ClaimType:            ClaimTypeUnknown,
		InvolvedParties:      []InvolvedParty{},
		Attachments:          []string{},
		ExtractionConfidence: map[string]float64{},
	}
}
