package route

import (
	"fmt"
	"strings"

	"github.com/dkrasnov/claimflow/internal/model"
)

// Tier confidence constants. Each expresses the engine's certainty in the
// chosen route, not the quality of the underlying data.
const (
	confidenceSpecialist    = 0.95
	confidenceInvestigation = 0.90
	confidenceManualReview  = 0.85
	confidenceFastTrack     = 0.95
	confidenceStandard      = 0.80
)

// Router assigns claims to processing queues through a fixed priority
// cascade of business rules. It is pure and deterministic: the same
// ClaimData always yields the same decision.
type Router struct {
	cfg model.RouterConfig
	// fraudSet speeds up subset membership checks during the keyword scan
	fraudSet map[string]bool
}

// NewRouter builds a router from the rule configuration
func NewRouter(cfg model.RouterConfig) *Router {
	fraudSet := make(map[string]bool, len(cfg.FraudKeywords))
	for _, k := range cfg.FraudKeywords {
		fraudSet[strings.ToLower(k)] = true
	}
	return &Router{cfg: cfg, fraudSet: fraudSet}
}

// RouteClaim evaluates the claim against the rule tiers, first match wins:
//
//	1. bodily injury            -> specialist queue
//	2. investigation keyword    -> investigation flag
//	3. missing mandatory fields -> manual review
//	4. damage below threshold   -> fast track
//	default                     -> standard processing
//
// Flags are accumulated independently of the winning tier, so a bodily
// injury claim with missing fields still carries MISSING_MANDATORY_FIELDS.
func (r *Router) RouteClaim(claim *model.ClaimData) model.RoutingDecision {
	flags := []string{}
	var reasoning []string

	missing := r.MissingFields(claim)
	if len(missing) > 0 {
		flags = append(flags, model.FlagMissingMandatoryFields)
		reasoning = append(reasoning, "Missing mandatory fields: "+strings.Join(missing, ", "))
	}

	keywordFlag := r.scanIndicators(claim)
	if keywordFlag != "" {
		flags = append(flags, keywordFlag)
	}

	if claim.ClaimType == model.ClaimTypeBodilyInjury {
		flags = append(flags, model.FlagSpecializationRequired)
		reasoning = append(reasoning, "Bodily injury claims require specialist review")
	}

	if damage := claim.AssetDetails.EstimatedDamage; damage != 0 && damage < r.cfg.FastTrackThreshold {
		reasoning = append(reasoning, fmt.Sprintf("Estimated damage ($%.2f) qualifies for fast-track processing", damage))
	}

	routeTag, confidence := r.decide(claim, keywordFlag, missing)

	finalReasoning := "Standard processing route"
	if len(reasoning) > 0 {
		finalReasoning = strings.Join(reasoning, " | ")
	}

	return model.RoutingDecision{
		RecommendedRoute: routeTag,
		Reasoning:        finalReasoning,
		Flags:            flags,
		ConfidenceScore:  confidence,
	}
}

// MissingFields reports absent mandatory fields in fixed order. An
// unknown claim type counts as a missing claim_type.
func (r *Router) MissingFields(claim *model.ClaimData) []string {
	var missing []string
	for _, name := range model.MandatoryFields() {
		if !claim.HasField(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// scanIndicators searches the concatenated free-text fields for
// investigation keywords in fixed set order. The scan stops at the first
// hit; a hit in the fraud subset raises FRAUD_FLAG, any other hit raises
// INVESTIGATION_FLAG. At most one of the two is ever returned.
func (r *Router) scanIndicators(claim *model.ClaimData) string {
	combined := strings.ToLower(strings.Join([]string{
		claim.IncidentInfo.IncidentDescription,
		claim.AssetDetails.DamageDescription,
		claim.ProcessingNotes,
	}, " "))

	for _, keyword := range r.cfg.InvestigationKeywords {
		if strings.Contains(combined, strings.ToLower(keyword)) {
			if r.fraudSet[strings.ToLower(keyword)] {
				return model.FlagFraud
			}
			return model.FlagInvestigation
		}
	}
	return ""
}

// decide picks the route by tier priority
func (r *Router) decide(claim *model.ClaimData, keywordFlag string, missing []string) (model.ClaimRoute, float64) {
	if claim.ClaimType == model.ClaimTypeBodilyInjury {
		return model.RouteSpecialistQueue, confidenceSpecialist
	}

	if keywordFlag != "" {
		return model.RouteInvestigationFlag, confidenceInvestigation
	}

	if len(missing) > 0 {
		return model.RouteManualReview, confidenceManualReview
	}

	if damage := claim.AssetDetails.EstimatedDamage; damage != 0 && damage < r.cfg.FastTrackThreshold {
		return model.RouteFastTrack, confidenceFastTrack
	}

	return model.RouteStandardProcessing, confidenceStandard
}

// ValidateRouting is an advisory check: manual review is always
// acceptable, and any other route is invalid while mandatory fields are
// missing. It is not invoked by RouteClaim and can disagree with tier 1
// and tier 2 outcomes, which deliberately override the missing-fields
// condition.
func (r *Router) ValidateRouting(claim *model.ClaimData, routeTag model.ClaimRoute) bool {
	if len(r.MissingFields(claim)) == 0 {
		return true
	}
	return routeTag == model.RouteManualReview
}
