package compliance

import "regexp"

// Threshold constants. The statutory values are stable; the contract-law
// heuristics (liability floor) are tunable configuration rather than hard
// invariants.
const (
	MaxDailyWorkingHours  = 8
	MaxWeeklyWorkingHours = 48
	MinAnnualLeaveDays    = 8
	MaxProbationMonths    = 6
	MinMonthlyWageMYR     = 1500
	MinLiabilityCapUnits  = 1000
)

// ViolationRule is one row of the clause-violation battery. Empty
// Jurisdictions or ContractTypes means the rule applies to all. A rule fires
// when Pattern matches, the NotNear guard (if any) is absent from the match
// context, the Threshold (if any) holds for the captured number, and the
// AbsentPattern (if any) appears nowhere in the document.
type ViolationRule struct {
	ID            string
	Jurisdictions []Jurisdiction
	ContractTypes []ContractType
	RequiresFlag  func(ContentFlags) bool
	Pattern       *regexp.Regexp
	NotNear       *regexp.Regexp
	AbsentPattern *regexp.Regexp
	Threshold     func(value int) bool
	Severity      Severity
	Issue         string
}

var violationRules = []ViolationRule{
	{
		ID:            "my_employment_termination_no_notice",
		Jurisdictions: []Jurisdiction{JurisdictionMY},
		ContractTypes: []ContractType{TypeEmployment},
		Pattern:       regexp.MustCompile(`(?i)terminat\w*[^.\n]{0,60}without\s+(?:prior\s+|any\s+)?notice`),
		NotNear:       regexp.MustCompile(`(?i)misconduct|due\s+inquiry`),
		Severity:      SeverityHigh,
		Issue:         "Termination without notice outside misconduct violates Employment Act 1955 Section 12 minimum notice requirements",
	},
	{
		ID:            "my_employment_daily_hours",
		Jurisdictions: []Jurisdiction{JurisdictionMY},
		ContractTypes: []ContractType{TypeEmployment},
		Pattern:       regexp.MustCompile(`(?i)(\d{1,2})\s+hours?\s+(?:per|a|each)\s+day`),
		Threshold:     func(v int) bool { return v > MaxDailyWorkingHours },
		Severity:      SeverityHigh,
		Issue:         "Daily working hours exceed the 8-hour limit mandated by Employment Act 1955 Section 60A",
	},
	{
		ID:            "my_employment_weekly_hours",
		Jurisdictions: []Jurisdiction{JurisdictionMY},
		ContractTypes: []ContractType{TypeEmployment},
		Pattern:       regexp.MustCompile(`(?i)(\d{1,3})\s+hours?\s+(?:per|a|each)\s+week`),
		Threshold:     func(v int) bool { return v > MaxWeeklyWorkingHours },
		Severity:      SeverityHigh,
		Issue:         "Weekly working hours exceed the 48-hour limit mandated by Employment Act 1955 Section 60A",
	},
	{
		ID:            "my_employment_overtime_rate",
		Jurisdictions: []Jurisdiction{JurisdictionMY},
		ContractTypes: []ContractType{TypeEmployment},
		Pattern:       regexp.MustCompile(`(?i)overtime`),
		AbsentPattern: regexp.MustCompile(`(?i)1\.5|one\s+and\s+(?:a\s+)?half|150%`),
		Severity:      SeverityMedium,
		Issue:         "Overtime provision omits the mandatory 1.5x rate under Employment Act 1955 Section 60A(3)",
	},
	{
		ID:            "my_employment_annual_leave",
		Jurisdictions: []Jurisdiction{JurisdictionMY},
		ContractTypes: []ContractType{TypeEmployment},
		Pattern:       regexp.MustCompile(`(?i)(\d{1,2})\s+days?\s+(?:of\s+)?(?:paid\s+)?annual\s+leave`),
		Threshold:     func(v int) bool { return v < MinAnnualLeaveDays },
		Severity:      SeverityHigh,
		Issue:         "Annual leave entitlement falls below the statutory minimum of 8 days under Employment Act 1955 Section 60E",
	},
	{
		ID:            "my_employment_probation",
		Jurisdictions: []Jurisdiction{JurisdictionMY},
		ContractTypes: []ContractType{TypeEmployment},
		Pattern:       regexp.MustCompile(`(?i)probation(?:ary)?\s+period\s+of\s+(\d{1,2})\s+months?`),
		Threshold:     func(v int) bool { return v > MaxProbationMonths },
		Severity:      SeverityMedium,
		Issue:         "Probationary period exceeds the 6-month guidance applied under the Employment Act 1955",
	},
	{
		ID:            "my_employment_minimum_wage",
		Jurisdictions: []Jurisdiction{JurisdictionMY},
		ContractTypes: []ContractType{TypeEmployment},
		Pattern:       regexp.MustCompile(`(?i)(?:salary|wage|remuneration)[^.\n]{0,40}rm\s?([\d,]+)`),
		Threshold:     func(v int) bool { return v < MinMonthlyWageMYR },
		Severity:      SeverityHigh,
		Issue:         "Stated salary falls below the RM1,500 floor and violates the Minimum Wages Order 2022 read with the Employment Act 1955",
	},
	{
		ID:            "my_employment_statutory_contributions",
		Jurisdictions: []Jurisdiction{JurisdictionMY},
		ContractTypes: []ContractType{TypeEmployment},
		Pattern:       regexp.MustCompile(`(?i)salary|wages|remuneration`),
		AbsentPattern: regexp.MustCompile(`(?i)\bepf\b|employees?\s+provident\s+fund|\bsocso\b|social\s+security`),
		Severity:      SeverityMedium,
		Issue:         "No reference to mandatory EPF and SOCSO statutory contributions required by the EPF Act 1991 and Employees' Social Security Act 1969",
	},
	{
		ID:            "eu_data_consent",
		Jurisdictions: []Jurisdiction{JurisdictionEU},
		RequiresFlag:  func(f ContentFlags) bool { return f.HasDataProcessing },
		Pattern:       regexp.MustCompile(`(?i)personal\s+(?:data|information)`),
		AbsentPattern: regexp.MustCompile(`(?i)(?:explicit|written|informed|freely\s+given)\s+consent|consent\s+of\s+the\s+data\s+subject|lawful\s+basis`),
		Severity:      SeverityHigh,
		Issue:         "Data processing lacks explicit consent or lawful-basis language and violates GDPR Articles 6 and 7",
	},
	{
		ID:            "eu_data_subject_rights",
		Jurisdictions: []Jurisdiction{JurisdictionEU},
		RequiresFlag:  func(f ContentFlags) bool { return f.HasDataProcessing },
		Pattern:       regexp.MustCompile(`(?i)personal\s+(?:data|information)`),
		AbsentPattern: regexp.MustCompile(`(?i)right\s+(?:of|to)\s+access|rectification|erasure|right\s+to\s+be\s+forgotten|data\s+portability`),
		Severity:      SeverityHigh,
		Issue:         "No data-subject rights provisions (access, rectification, erasure, portability) as mandatory under GDPR Articles 15-20",
	},
	{
		ID:            "generic_data_consent",
		Jurisdictions: []Jurisdiction{JurisdictionMY, JurisdictionSG, JurisdictionUS},
		RequiresFlag:  func(f ContentFlags) bool { return f.HasDataProcessing },
		Pattern:       regexp.MustCompile(`(?i)personal\s+(?:data|information)`),
		AbsentPattern: regexp.MustCompile(`(?i)(?:explicit|written|informed)\s+consent|consent\s+(?:of|from)\s+the\s+(?:individual|data\s+subject|consumer)`),
		Severity:      SeverityMedium,
		Issue:         "Personal data handling omits explicit or written consent language mandatory under applicable data protection law (PDPA/CCPA)",
	},
	{
		ID:            "generic_data_subject_rights",
		Jurisdictions: []Jurisdiction{JurisdictionMY, JurisdictionSG, JurisdictionUS},
		RequiresFlag:  func(f ContentFlags) bool { return f.HasDataProcessing },
		Pattern:       regexp.MustCompile(`(?i)personal\s+(?:data|information)`),
		AbsentPattern: regexp.MustCompile(`(?i)right\s+(?:of|to)\s+access|right\s+to\s+correct|correction\s+of\s+personal|withdraw\s+consent`),
		Severity:      SeverityMedium,
		Issue:         "No access, correction, or consent-withdrawal rights for individuals as mandatory under applicable data protection law",
	},
	{
		ID:        "general_low_liability_cap",
		Pattern:   regexp.MustCompile(`(?i)liab\w*[^.\n]{0,80}(?:rm|usd|eur|sgd|\$|€)\s?([\d,]+)`),
		Threshold: func(v int) bool { return v < MinLiabilityCapUnits },
		Severity:  SeverityMedium,
		Issue:     "Liability cap below 1,000 currency units is unconscionably low and risks being struck down; violates fair-dealing principles of general contract law",
	},
	{
		ID:       "general_unilateral_modification",
		Pattern:  regexp.MustCompile(`(?i)(?:sole\s+discretion|unilaterally|reserves?\s+the\s+right)[^.\n]{0,60}(?:modify|amend|change|vary)`),
		NotNear:  regexp.MustCompile(`(?i)consideration|mutual\s+(?:agreement|consent)|written\s+(?:agreement|consent)\s+of\s+both`),
		Severity: SeverityMedium,
		Issue:    "Unilateral modification clause without fresh consideration violates the consideration doctrine of general contract law",
	},
}

// criticalTerms give a priority bonus when present in a flagged clause,
// per jurisdiction.
var criticalTerms = map[Jurisdiction][]string{
	JurisdictionMY: {"employment act", "pdpa", "epf", "socso", "minimum wage"},
	JurisdictionSG: {"pdpa", "notification obligation"},
	JurisdictionEU: {"gdpr", "data subject", "supervisory authority"},
	JurisdictionUS: {"ccpa", "opt-out", "right to know"},
}

var legalSignificanceTerms = []string{
	"violat", "mandatory", "statutory", "penalty", "fine", "breach",
	"unlawful", "prohibited", "non-compliance",
}
