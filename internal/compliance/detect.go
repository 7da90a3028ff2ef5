package compliance

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	contextWindowChars = 150
	maxClauseChars     = 200
	minClauseChars     = 20
)

// legalReferencePattern decides whether an issue actually cites law. A flag
// whose issue carries no statutory or normative anchor is noise.
var legalReferencePattern = regexp.MustCompile(
	`(?i)\bact\b|section\s+\d+|article[s]?\s+\d+|violat|mandatory|statutory|regulation|pdpa|gdpr|ccpa|contract\s+law`)

var clauseMetadataPattern = regexp.MustCompile(
	`(?i)^\s*page\s+\d+|generated\s+by|confidential\s+document|copyright|all\s+rights\s+reserved`)

// DetectViolations runs the clause-violation battery against the normalized
// contract text. Rules outside the document's jurisdiction or contract type
// never fire. Each rule contributes at most one flagged clause, and the
// result is capped at MaxFlaggedClauses ordered by legal priority.
func DetectViolations(text string, meta ContractMetadata, jur Jurisdiction) []FlaggedClause {
	var flags []FlaggedClause
	for _, rule := range violationRules {
		if !ruleApplies(rule, meta, jur) {
			continue
		}
		if fc, ok := evaluateRule(rule, text); ok {
			flags = append(flags, fc)
		}
	}
	flags = filterSubstantive(flags)
	return rankByPriority(flags, jur)
}

func ruleApplies(rule ViolationRule, meta ContractMetadata, jur Jurisdiction) bool {
	if len(rule.Jurisdictions) > 0 && !containsJurisdiction(rule.Jurisdictions, jur) {
		return false
	}
	if len(rule.ContractTypes) > 0 && !containsType(rule.ContractTypes, meta.ContractType) {
		return false
	}
	if rule.RequiresFlag != nil && !rule.RequiresFlag(meta.Flags) {
		return false
	}
	return true
}

func evaluateRule(rule ViolationRule, text string) (FlaggedClause, bool) {
	if rule.AbsentPattern != nil && rule.AbsentPattern.MatchString(text) {
		return FlaggedClause{}, false
	}
	for _, loc := range rule.Pattern.FindAllStringSubmatchIndex(text, 20) {
		window := contextWindow(text, loc[0], loc[1])
		if rule.NotNear != nil && rule.NotNear.MatchString(window) {
			continue
		}
		if rule.Threshold != nil {
			v, ok := capturedInt(text, loc)
			if !ok || !rule.Threshold(v) {
				continue
			}
		}
		return FlaggedClause{
			ClauseText: clauseExcerpt(window),
			Issue:      rule.Issue,
			Severity:   rule.Severity,
		}, true
	}
	return FlaggedClause{}, false
}

// capturedInt parses the first capture group of a submatch index slice,
// tolerating thousands separators.
func capturedInt(text string, loc []int) (int, bool) {
	if len(loc) < 4 || loc[2] < 0 {
		return 0, false
	}
	raw := strings.ReplaceAll(text[loc[2]:loc[3]], ",", "")
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func contextWindow(text string, start, end int) string {
	lo := start - contextWindowChars
	if lo < 0 {
		lo = 0
	}
	hi := end + contextWindowChars
	if hi > len(text) {
		hi = len(text)
	}
	return collapseSpaces(text[lo:hi])
}

func clauseExcerpt(window string) string {
	if len(window) <= maxClauseChars {
		return window
	}
	cut := window[:maxClauseChars]
	if i := strings.LastIndex(cut, " "); i > maxClauseChars/2 {
		cut = cut[:i]
	}
	return cut + "..."
}

// filterSubstantive drops flags whose clause text is too short or looks like
// document metadata, and flags whose issue cites no legal authority.
func filterSubstantive(flags []FlaggedClause) []FlaggedClause {
	out := flags[:0]
	for _, fc := range flags {
		if len(fc.ClauseText) < minClauseChars {
			continue
		}
		if clauseMetadataPattern.MatchString(fc.ClauseText) {
			continue
		}
		if !legalReferencePattern.MatchString(fc.Issue) {
			continue
		}
		out = append(out, fc)
	}
	return out
}

// rankByPriority orders flags by severity weight, legal-significance
// vocabulary, and jurisdiction-critical terms, then truncates to the cap.
func rankByPriority(flags []FlaggedClause, jur Jurisdiction) []FlaggedClause {
	score := func(fc FlaggedClause) int {
		s := severityWeight(fc.Severity) * 10
		combined := strings.ToLower(fc.ClauseText + " " + fc.Issue)
		for _, term := range legalSignificanceTerms {
			if strings.Contains(combined, term) {
				s += 2
			}
		}
		for _, term := range criticalTerms[jur] {
			if strings.Contains(combined, term) {
				s += 3
			}
		}
		return s
	}
	sort.SliceStable(flags, func(i, j int) bool {
		return score(flags[i]) > score(flags[j])
	})
	if len(flags) > MaxFlaggedClauses {
		flags = flags[:MaxFlaggedClauses]
	}
	return flags
}

func containsJurisdiction(list []Jurisdiction, j Jurisdiction) bool {
	for _, v := range list {
		if v == j {
			return true
		}
	}
	return false
}

func containsType(list []ContractType, t ContractType) bool {
	for _, v := range list {
		if v == t {
			return true
		}
	}
	return false
}
