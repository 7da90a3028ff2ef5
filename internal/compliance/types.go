package compliance

const Disclaimer = "This is an automated compliance screen, not legal advice. " +
	"Pattern-based findings are heuristic and jurisdiction rules are a closed, " +
	"hand-curated set. Consult qualified counsel before contract execution."

const (
	// MinSubstantialChars is the normalized-text length below which a
	// document is treated as insubstantial.
	MinSubstantialChars = 100
	MaxContractChars    = 1_000_000
	MaxFlaggedClauses   = 10
	MaxSections         = 10
)

type Jurisdiction string

const (
	JurisdictionMY Jurisdiction = "MY"
	JurisdictionSG Jurisdiction = "SG"
	JurisdictionEU Jurisdiction = "EU"
	JurisdictionUS Jurisdiction = "US"
)

// DefaultJurisdiction is applied when a request omits or misspells the code.
const DefaultJurisdiction = JurisdictionMY

func NormalizeJurisdiction(raw string) Jurisdiction {
	switch Jurisdiction(raw) {
	case JurisdictionMY, JurisdictionSG, JurisdictionEU, JurisdictionUS:
		return Jurisdiction(raw)
	}
	return DefaultJurisdiction
}

type ContractType string

const (
	TypeEmployment  ContractType = "employment"
	TypeService     ContractType = "service"
	TypeNDA         ContractType = "nda"
	TypeRental      ContractType = "rental"
	TypeSales       ContractType = "sales"
	TypePartnership ContractType = "partnership"
	TypeGeneral     ContractType = "general"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

func severityWeight(s Severity) int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	default:
		return 1
	}
}

type LawID string

const (
	LawEmploymentActMY LawID = "EMPLOYMENT_ACT_MY"
	LawPDPAMY          LawID = "PDPA_MY"
	LawPDPASG          LawID = "PDPA_SG"
	LawGDPREU          LawID = "GDPR_EU"
	LawCCPAUS          LawID = "CCPA_US"
)

// applicableLaws is the closed jurisdiction→law mapping. A law must never be
// attached to a document whose jurisdiction is not listed here.
var applicableLaws = map[Jurisdiction][]LawID{
	JurisdictionMY: {LawEmploymentActMY, LawPDPAMY},
	JurisdictionSG: {LawPDPASG},
	JurisdictionEU: {LawGDPREU},
	JurisdictionUS: {LawCCPAUS},
}

func ApplicableLaws(j Jurisdiction) []LawID {
	laws := applicableLaws[j]
	out := make([]LawID, len(laws))
	copy(out, laws)
	return out
}

func LawApplies(law LawID, j Jurisdiction) bool {
	for _, l := range applicableLaws[j] {
		if l == law {
			return true
		}
	}
	return false
}

// LawForJurisdiction resolves an ambiguous or templated law reference to the
// single jurisdiction-appropriate law of the same family, if any.
func LawForJurisdiction(candidates []LawID, j Jurisdiction) (LawID, bool) {
	for _, c := range candidates {
		if LawApplies(c, j) {
			return c, true
		}
	}
	return "", false
}

type AnalyzeRequest struct {
	Text         string `json:"text"`
	Jurisdiction string `json:"jurisdiction,omitempty"`
}

// ContractDocument is the immutable per-request input to the engine.
type ContractDocument struct {
	Text              string
	Jurisdiction      Jurisdiction
	JurisdictionHints []Jurisdiction
}

type ContentFlags struct {
	HasDataProcessing    bool `json:"has_data_processing"`
	HasTerminationClause bool `json:"has_termination_clauses"`
	HasPaymentTerms      bool `json:"has_payment_terms"`
	HasLiabilityClause   bool `json:"has_liability_clauses"`
	HasIPClause          bool `json:"has_ip_clauses"`
}

// ContractMetadata is derived once per analysis and read-only thereafter.
type ContractMetadata struct {
	ContractType      ContractType   `json:"contract_type"`
	Confidence        int            `json:"confidence"`
	Flags             ContentFlags   `json:"content_flags"`
	WordCount         int            `json:"word_count"`
	SentenceCount     int            `json:"sentence_count"`
	IsSubstantial     bool           `json:"is_substantial"`
	JurisdictionHints []Jurisdiction `json:"jurisdiction_hints,omitempty"`
}

type ContractSection struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	WordCount int    `json:"word_count"`
}

type FlaggedClause struct {
	ClauseText string   `json:"clause_text"`
	Issue      string   `json:"issue"`
	Severity   Severity `json:"severity"`
}

type ComplianceIssue struct {
	Law                 LawID    `json:"law"`
	MissingRequirements []string `json:"missing_requirements"`
	Recommendations     []string `json:"recommendations"`
}

// AnalysisResult is the externally visible artifact. It is constructed once
// and never mutated.
type AnalysisResult struct {
	Summary          string            `json:"summary"`
	FlaggedClauses   []FlaggedClause   `json:"flagged_clauses"`
	ComplianceIssues []ComplianceIssue `json:"compliance_issues"`
	Jurisdiction     Jurisdiction      `json:"jurisdiction"`
}

type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// RiskScore is derived deterministically from an AnalysisResult.
type RiskScore struct {
	OverallScore          int                  `json:"overall_score"`
	FinancialRiskEstimate float64              `json:"financial_risk_estimate"`
	ViolationCategories   []LawID              `json:"violation_categories"`
	JurisdictionRisks     map[Jurisdiction]int `json:"jurisdiction_risks"`
	RiskLevel             RiskLevel            `json:"risk_level"`
}

type BulkPriority string

const (
	PriorityNormal BulkPriority = "normal"
	PriorityUrgent BulkPriority = "urgent"
)

type BulkRequest struct {
	Contracts []AnalyzeRequest `json:"contracts"`
	Priority  BulkPriority     `json:"priority,omitempty"`
}
