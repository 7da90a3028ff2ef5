package compliance

import "regexp"

// lawRequirement is one checklist row for a statute. The requirement is
// missing when SatisfiedBy matches nowhere in the document.
type lawRequirement struct {
	Requirement    string
	Recommendation string
	SatisfiedBy    *regexp.Regexp
}

// lawGates decide whether a statute is worth checking at all for a given
// document. A services agreement with no data handling gets no PDPA issue.
var lawGates = map[LawID]func(meta ContractMetadata, text string) bool{
	LawEmploymentActMY: func(meta ContractMetadata, _ string) bool {
		return meta.ContractType == TypeEmployment
	},
	LawPDPAMY: dataGate,
	LawPDPASG: dataGate,
	LawGDPREU: dataGate,
	LawCCPAUS: func(meta ContractMetadata, text string) bool {
		return meta.Flags.HasDataProcessing ||
			regexp.MustCompile(`(?i)personal\s+information`).MatchString(text)
	},
}

func dataGate(meta ContractMetadata, text string) bool {
	return meta.Flags.HasDataProcessing ||
		regexp.MustCompile(`(?i)personal\s+(?:data|information)`).MatchString(text)
}

var lawChecklists = map[LawID][]lawRequirement{
	LawEmploymentActMY: {
		{
			Requirement:    "Minimum notice periods for termination (Section 12)",
			Recommendation: "Add a termination clause specifying notice periods of at least 4 to 8 weeks depending on length of service",
			SatisfiedBy:    regexp.MustCompile(`(?i)notice\s+period|(?:weeks?|months?)['\x{2019}]?\s+(?:written\s+)?notice`),
		},
		{
			Requirement:    "Paid annual leave entitlement (Section 60E)",
			Recommendation: "State an annual leave entitlement of at least 8 days per year of service",
			SatisfiedBy:    regexp.MustCompile(`(?i)annual\s+leave`),
		},
		{
			Requirement:    "Paid sick leave entitlement (Section 60F)",
			Recommendation: "State a paid sick leave entitlement of at least 14 days per calendar year",
			SatisfiedBy:    regexp.MustCompile(`(?i)sick\s+leave|medical\s+leave`),
		},
		{
			Requirement:    "Weekly rest day provision (Section 59)",
			Recommendation: "Guarantee at least one whole rest day per week",
			SatisfiedBy:    regexp.MustCompile(`(?i)rest\s+day`),
		},
		{
			Requirement:    "Overtime payment terms (Section 60A)",
			Recommendation: "Specify overtime compensation at not less than 1.5 times the hourly rate",
			SatisfiedBy:    regexp.MustCompile(`(?i)overtime`),
		},
		{
			Requirement:    "EPF and SOCSO statutory contributions",
			Recommendation: "Add clauses confirming employer EPF and SOCSO contributions as required by law",
			SatisfiedBy:    regexp.MustCompile(`(?i)\bepf\b|provident\s+fund|\bsocso\b|social\s+security`),
		},
	},
	LawPDPAMY: {
		{
			Requirement:    "General consent principle (Section 6)",
			Recommendation: "Obtain explicit consent from data subjects before processing personal data",
			SatisfiedBy:    regexp.MustCompile(`(?i)consent`),
		},
		{
			Requirement:    "Notice and choice principle (Section 7)",
			Recommendation: "Inform data subjects of the purposes for which personal data is collected and processed",
			SatisfiedBy:    regexp.MustCompile(`(?i)purpose[s]?\s+(?:of|for)\s+(?:the\s+)?(?:collection|processing)|notif\w+\s+of\s+the\s+purpose`),
		},
		{
			Requirement:    "Security principle (Section 9)",
			Recommendation: "Describe practical steps taken to protect personal data from loss, misuse, or unauthorized access",
			SatisfiedBy:    regexp.MustCompile(`(?i)security\s+(?:measures?|safeguards?)|safeguard|protect\w*\s+(?:the\s+)?personal\s+data`),
		},
		{
			Requirement:    "Retention principle (Section 10)",
			Recommendation: "State that personal data is not kept longer than necessary for the processing purpose",
			SatisfiedBy:    regexp.MustCompile(`(?i)retention|retain\w*\s+(?:the\s+)?(?:personal\s+)?data|no\s+longer\s+than\s+necessary`),
		},
		{
			Requirement:    "Data access and correction rights (Sections 30-31)",
			Recommendation: "Grant data subjects the right to access and correct their personal data",
			SatisfiedBy:    regexp.MustCompile(`(?i)right\s+(?:of|to)\s+access|access\s+and\s+correct|correction\s+of\s+(?:their\s+)?personal\s+data`),
		},
	},
	LawPDPASG: {
		{
			Requirement:    "Consent obligation (Sections 13-17)",
			Recommendation: "Obtain consent before collecting, using, or disclosing personal data",
			SatisfiedBy:    regexp.MustCompile(`(?i)consent`),
		},
		{
			Requirement:    "Purpose limitation obligation (Section 18)",
			Recommendation: "Limit collection and use of personal data to purposes a reasonable person would consider appropriate",
			SatisfiedBy:    regexp.MustCompile(`(?i)purpose[s]?\s+(?:of|for)\s+(?:the\s+)?(?:collection|processing|use)`),
		},
		{
			Requirement:    "Notification obligation (Section 20)",
			Recommendation: "Notify individuals of the purposes for which their personal data will be used",
			SatisfiedBy:    regexp.MustCompile(`(?i)notif\w+\s+(?:the\s+)?individual|inform\w*\s+(?:the\s+)?(?:individual|data\s+subject)`),
		},
		{
			Requirement:    "Access and correction obligation (Sections 21-22)",
			Recommendation: "Provide individuals with access to and correction of their personal data on request",
			SatisfiedBy:    regexp.MustCompile(`(?i)right\s+(?:of|to)\s+access|access\s+and\s+correct|correction`),
		},
		{
			Requirement:    "Protection obligation (Section 24)",
			Recommendation: "Make reasonable security arrangements to protect personal data",
			SatisfiedBy:    regexp.MustCompile(`(?i)security\s+(?:measures?|arrangements?)|safeguard|protect\w*\s+(?:the\s+)?personal\s+data`),
		},
		{
			Requirement:    "Data breach notification obligation (Section 26D)",
			Recommendation: "Add a clause requiring notification of notifiable data breaches to the PDPC and affected individuals",
			SatisfiedBy:    regexp.MustCompile(`(?i)(?:data\s+)?breach\s+notif`),
		},
	},
	LawGDPREU: {
		{
			Requirement:    "Lawful basis for processing (Article 6)",
			Recommendation: "Identify the lawful basis relied upon for each processing activity",
			SatisfiedBy:    regexp.MustCompile(`(?i)lawful\s+basis|legal\s+basis|legitimate\s+interest`),
		},
		{
			Requirement:    "Conditions for consent (Article 7)",
			Recommendation: "Ensure consent is freely given, specific, informed, and unambiguous, and withdrawable at any time",
			SatisfiedBy:    regexp.MustCompile(`(?i)(?:explicit|freely\s+given|informed)\s+consent|withdraw\w*\s+(?:their\s+|the\s+)?consent`),
		},
		{
			Requirement:    "Data subject rights (Articles 15-20)",
			Recommendation: "Grant access, rectification, erasure, and portability rights to data subjects",
			SatisfiedBy:    regexp.MustCompile(`(?i)right\s+(?:of|to)\s+access|rectification|erasure|right\s+to\s+be\s+forgotten|data\s+portability`),
		},
		{
			Requirement:    "Personal data breach notification (Articles 33-34)",
			Recommendation: "Require breach notification to the supervisory authority within 72 hours",
			SatisfiedBy:    regexp.MustCompile(`(?i)(?:data\s+)?breach\s+notif|72\s+hours`),
		},
		{
			Requirement:    "Data protection by design and by default (Article 25)",
			Recommendation: "Add appropriate technical and organisational measures implementing data protection principles",
			SatisfiedBy:    regexp.MustCompile(`(?i)by\s+design|technical\s+and\s+organi[sz]ational\s+measures`),
		},
		{
			Requirement:    "Safeguards for international transfers (Articles 44-46)",
			Recommendation: "Condition transfers outside the EEA on adequacy decisions or standard contractual clauses",
			SatisfiedBy:    regexp.MustCompile(`(?i)standard\s+contractual\s+clauses|adequacy\s+decision|transfer\w*\s+outside\s+the\s+(?:eu|eea|union)`),
		},
	},
	LawCCPAUS: {
		{
			Requirement:    "Right to know what personal information is collected (Section 1798.100)",
			Recommendation: "Disclose the categories and purposes of personal information collected",
			SatisfiedBy:    regexp.MustCompile(`(?i)right\s+to\s+know|categories\s+of\s+personal\s+information`),
		},
		{
			Requirement:    "Right to opt out of sale of personal information (Section 1798.120)",
			Recommendation: "Provide a clear mechanism for consumers to opt out of the sale of their personal information",
			SatisfiedBy:    regexp.MustCompile(`(?i)opt[\s-]?out`),
		},
		{
			Requirement:    "Right to delete personal information (Section 1798.105)",
			Recommendation: "Allow consumers to request deletion of their personal information",
			SatisfiedBy:    regexp.MustCompile(`(?i)right\s+to\s+delete|deletion\s+of\s+personal\s+information`),
		},
		{
			Requirement:    "Non-discrimination for exercising consumer rights (Section 1798.125)",
			Recommendation: "State that consumers will not be discriminated against for exercising their privacy rights",
			SatisfiedBy:    regexp.MustCompile(`(?i)non[\s-]?discriminat|not\s+(?:be\s+)?discriminat`),
		},
	},
}

// AnalyzeGaps checks the document against the requirement checklists of every
// law applicable in the jurisdiction. Laws from other jurisdictions are never
// consulted, and a law produces an issue only when at least one requirement
// is missing.
func AnalyzeGaps(text string, meta ContractMetadata, jur Jurisdiction) []ComplianceIssue {
	var issues []ComplianceIssue
	for _, law := range ApplicableLaws(jur) {
		gate := lawGates[law]
		if gate != nil && !gate(meta, text) {
			continue
		}
		var missing, recs []string
		for _, req := range lawChecklists[law] {
			if !req.SatisfiedBy.MatchString(text) {
				missing = append(missing, req.Requirement)
				recs = append(recs, req.Recommendation)
			}
		}
		if len(missing) == 0 {
			continue
		}
		issues = append(issues, ComplianceIssue{
			Law:                 law,
			MissingRequirements: missing,
			Recommendations:     recs,
		})
	}
	return issues
}
