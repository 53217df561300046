package extract

import (
	"regexp"

	"github.com/dkrasnov/claimflow/internal/model"
)

// cascade is an ordered list of candidate patterns for one field.
// The most structurally specific layout (ACORD-style form label on its own
// line, value on the next) comes first, the most generic inline
// "Label: value" form last. The first pattern that matches wins.
type cascade []*regexp.Regexp

func compileCascade(patterns ...string) cascade {
	c := make(cascade, 0, len(patterns))
	for _, p := range patterns {
		c = append(c, regexp.MustCompile(`(?i)`+p))
	}
	return c
}

// fieldPatterns holds the per-field cascades, compiled once at extractor
// construction.
type fieldPatterns struct {
	policyNumber     cascade
	policyholderName cascade
	effectiveDate    cascade
	expirationDate   cascade

	incidentDate        cascade
	incidentTime        cascade
	incidentLocation    cascade
	incidentDescription cascade

	assetType       cascade
	assetID         cascade
	estimatedDamage cascade

	claimType cascade

	claimantName    cascade
	claimantPhone   *regexp.Regexp
	claimantEmail   *regexp.Regexp
	thirdPartyName  cascade
	thirdPartyPhone *regexp.Regexp

	attachments cascade
}

func newFieldPatterns() *fieldPatterns {
	return &fieldPatterns{
		policyNumber: compileCascade(
			`POLICY\s+NUMBER\s*\n\s*([A-Z0-9\-]{5,})`,
			`(?:Policy\s*(?:Number|No\.?|#))\s*[:=]?\s*([A-Z0-9\-]+)`,
			`(?:Policy)\s+([A-Z0-9\-]{6,})`,
		),
		policyholderName: compileCascade(
			`Name\s+of\s+Policyholder\s*\n\s*([A-Za-z][A-Za-z \.\-']+?)\n`,
			`Name\s+of\s+(?:Insured|Policyholder)\s*\n\s*([A-Za-z][A-Za-z \.\-']+?)\n`,
			`(?:Policyholder\s+Name|Insured(?:'s)?\s+Name|Named\s+Insured)\s*[:=]?\s*([A-Za-z \.\-']+?)\n`,
			`(?:Policyholder|Insured)\s*[:=]?\s*([A-Za-z \.\-']+?)(?:\n|,|;|Address)`,
		),
		effectiveDate: compileCascade(
			`Policy\s+Effective\s+Date\s*\n\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
			`(?:Effective\s+Date|Policy\s+Effective)\s*[:=]?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
		),
		expirationDate: compileCascade(
			`Policy\s+Expiration\s+Date\s*\n\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
			`(?:Expiration\s+Date|Policy\s+Expir(?:es|ation))\s*[:=]?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
		),

		incidentDate: compileCascade(
			`DATE\s+OF\s+LOSS[^\n]*\n\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|[A-Za-z]+\s+\d{1,2},\s+\d{4})`,
			`(?:Date\s+of\s+Loss)\s*\n\s*([A-Za-z]+\s+\d{1,2},\s+\d{4})`,
			`(?:Date\s+of\s+(?:Loss|Occurrence|Accident))\s*[:=]?\s*([A-Za-z]+\s+\d{1,2},\s+\d{4})`,
			`(?:Date\s+of\s+(?:Loss|Occurrence|Accident))\s*[:=]?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
		),
		incidentTime: compileCascade(
			`TIME\s+OF\s+LOSS[^\n]*\n\s*(\d{1,2}:\d{2}\s*(?:AM|PM)?)`,
			`(?:Time\s+of\s+(?:Loss|Occurrence))\s*[:=]?\s*(\d{1,2}:\d{2}\s*(?:AM|PM))`,
			`(?:Time)\s*[:=]?\s*(\d{1,2}:\d{2}\s*(?:AM|PM))`,
		),
		incidentLocation: compileCascade(
			`LOCATION\s+OF\s+LOSS[^\n]*STREET:\s*\n?\s*([^\n]{5,}?)(?:\n|CITY)`,
			`(?:Location\s+of\s+(?:Loss|Accident))\s*[:=]?\s*([^\n]+?)\n`,
			`(?:Location|Place)\s*[:=]?\s*([^\n]{10,150}?)\n`,
		),
		// RE2 has no lookahead, so the form-layout pattern captures up to
		// the next blank line and the extractor trims the block at the
		// first ALL-CAPS form label line.
		incidentDescription: compileCascade(
			`(?:DESCRIPTION\s+OF\s+(?:LOSS|ACCIDENT|INCIDENT))\s*\n([^\n]+(?:\n[^\n]+)*?)(?:\n\n|\n?\z)`,
			`(?:Description\s+of\s+(?:Loss|Accident|Incident))\s*[:=]?\s*([^\n]{20,500}?)(?:\n\n|\n[A-Z])`,
			`(?:What\s+happened|Description)\s*[:=]?\s*([^\n]{20,}?)(?:\n|\z)`,
		),

		assetType: compileCascade(
			`Year/Make/Model\s*\n\s*([^\n]+?)\n`,
			`MAKE\s*\n\s*([A-Za-z0-9 \-]{2,50}?)\s*(?:\n|YEAR)`,
			`(?:Type\s+of\s+(?:Property|Asset))\s*[:=]?\s*([A-Za-z \d]+?)(?:\n|;|,)`,
			`(?:Property|Asset)\s+Type\s*[:=]?\s*([A-Za-z \-\d]+?)(?:\n|\z)`,
		),
		assetID: compileCascade(
			`Vehicle\s+Identification\s+Number\s+\(VIN\)\s*\n\s*([A-Z0-9]{10,})`,
			`(?:VIN|Asset\s+ID)\s*\n\s*([A-Z0-9\-]{6,})`,
			`(?:VIN|Asset\s+ID)\s*[:=]?\s*([A-Z0-9\-]{6,})`,
		),
		estimatedDamage: compileCascade(
			`ESTIMATED\s+DAMAGE\s*\n\s*\$?\s*([\d,\.]+)`,
			`(?:Estimated\s+Damage\s+Amount)\s*[:=]?\s*\$?\s*([\d,\.]+)`,
			`(?:Estimated|Est\.)\s+(?:Damage|Loss)\s*[:=]?\s*\$?\s*([\d,\.]+)`,
			`Damage\s+Estimate\s*[:=]?\s*\$?\s*([\d,\.]+)`,
		),

		claimType: compileCascade(
			`(?:Type\s+of\s+Claim)\s*[:=]?\s*([A-Za-z ]+?)\n`,
			`(?:Claim\s+Type)\s*[:=]?\s*([A-Za-z \-]+?)(?:\n|\z)`,
		),

		claimantName: compileCascade(
			`Claimant\s+Name\s*\n\s*([A-Za-z][A-Za-z \.\-']{2,50}?)\n`,
			`(?:Claimant|Named\s+Insured)\s*[:=]\s*([A-Za-z \.\-']+?)(?:\n|,)`,
		),
		claimantPhone: regexp.MustCompile(`(?i)Contact\s+Phone\s*\n\s*([\d\-]+)`),
		claimantEmail: regexp.MustCompile(`(?i)Contact\s+Email\s*\n\s*([^\n]+)`),
		thirdPartyName: compileCascade(
			`Third\s+Party\s+Driver\s+Name\s*\n\s*([A-Za-z][A-Za-z \.\-']{2,50}?)\n`,
			`(?:Third\s+Party|Other\s+Driver)\s+Name\s*[:=]?\s*([A-Za-z \.\-']+?)\n`,
		),
		thirdPartyPhone: regexp.MustCompile(`(?i)Third\s+Party\s+(?:Telephone|Phone)\s*\n\s*([\d\-]+)`),

		attachments: compileCascade(
			`ATTACHMENTS\s*\n\s*([^\n]{10,})`,
			`(?:Attachments?|Exhibits?|Documents?)\s*[:=]?\s*([^\n]{20,}?)(?:\n|\z)`,
			`(?:Photos?|Images?|Documents?)\s+(?:attached|included)\s*[:=]?\s*([^\n]{20,}?)(?:\n|\z)`,
		),
	}
}

// typeKeyword maps claim-type tags to the substrings that identify them.
// Order is the classification priority; the same table is used for the
// explicit "claim type" label value and for the whole-document fallback.
type typeKeyword struct {
	claimType model.ClaimType
	words     []string
}

func newTypeKeywords() []typeKeyword {
	return []typeKeyword{
		{model.ClaimTypeBodilyInjury, []string{"injury", "bodily"}},
		{model.ClaimTypeTheft, []string{"theft"}},
		{model.ClaimTypeCollision, []string{"collision"}},
		{model.ClaimTypeComprehensive, []string{"comprehensive"}},
		{model.ClaimTypePropertyDamage, []string{"property", "damage"}},
		{model.ClaimTypeLiability, []string{"liability"}},
	}
}
