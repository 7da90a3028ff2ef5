package compliance

import (
	"log"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	minimalIssueCount   = 2
	minimalSummaryChars = 100
)

var bracketedPlaceholderPattern = regexp.MustCompile(`\[[A-Z_ ]{3,}\]|\{[A-Z_ ]{3,}\}`)

// MergeWithModelOutput reconciles raw model output with the deterministic
// findings. The model output is advisory: when it is unparseable, templated,
// or thinner than the rule results, the deterministic findings win. This
// function never fails; the worst case is returning ruleResult unchanged.
func MergeWithModelOutput(raw string, ruleResult AnalysisResult) AnalysisResult {
	parsed, ok := parseModelJSON(raw)
	if !ok {
		log.Printf("merge: model output unparseable after repair, using deterministic findings")
		return ruleResult
	}

	model := extractModelResult(parsed, ruleResult.Jurisdiction)
	if isMinimal(model) {
		return mergePreferringRules(ruleResult, model)
	}
	return mergePreferringRules(model, ruleResult)
}

// parseModelJSON strips code fences, attempts a direct parse, then a bounded
// bracket-balancing repair for truncated output.
func parseModelJSON(raw string) (gjson.Result, bool) {
	s := stripFences(strings.TrimSpace(raw))
	if s == "" {
		return gjson.Result{}, false
	}
	if gjson.Valid(s) {
		return gjson.Parse(s), true
	}
	repaired := repairTruncatedJSON(s)
	if repaired != "" && gjson.Valid(repaired) {
		return gjson.Parse(repaired), true
	}
	return gjson.Result{}, false
}

func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// repairTruncatedJSON closes unmatched brackets in order and removes a
// dangling trailing comma. It handles clean truncation only; anything cut
// mid-string is abandoned.
func repairTruncatedJSON(s string) string {
	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = inString
		case '"':
			inString = !inString
		case '{', '[':
			if !inString {
				stack = append(stack, c)
			}
		case '}', ']':
			if !inString {
				if len(stack) == 0 {
					return ""
				}
				stack = stack[:len(stack)-1]
			}
		}
	}
	if inString {
		return ""
	}
	s = strings.TrimRight(s, " \t\n")
	s = strings.TrimSuffix(s, ",")
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			s += "}"
		} else {
			s += "]"
		}
	}
	return s
}

// extractModelResult converts tolerant JSON into an AnalysisResult, dropping
// placeholder issues and repairing ambiguous law identifiers.
func extractModelResult(r gjson.Result, jur Jurisdiction) AnalysisResult {
	out := AnalysisResult{
		Summary:      r.Get("summary").String(),
		Jurisdiction: jur,
	}
	for _, fc := range asList(r.Get("flagged_clauses")) {
		clause := FlaggedClause{
			ClauseText: fc.Get("clause_text").String(),
			Issue:      fc.Get("issue").String(),
			Severity:   normalizeSeverity(fc.Get("severity").String()),
		}
		if isPlaceholderText(clause.ClauseText) || isPlaceholderText(clause.Issue) {
			continue
		}
		if clause.ClauseText == "" || clause.Issue == "" {
			continue
		}
		out.FlaggedClauses = append(out.FlaggedClauses, clause)
	}
	for _, ci := range asList(r.Get("compliance_issues")) {
		law, ok := resolveLaw(ci.Get("law").String(), jur)
		if !ok {
			log.Printf("merge: dropping issue with unresolvable law %q for jurisdiction %s", ci.Get("law").String(), jur)
			continue
		}
		issue := ComplianceIssue{
			Law:                 law,
			MissingRequirements: stringList(ci.Get("missing_requirements")),
			Recommendations:     stringList(ci.Get("recommendations")),
		}
		if len(issue.MissingRequirements) == 0 {
			continue
		}
		out.ComplianceIssues = append(out.ComplianceIssues, issue)
	}
	return out
}

// asList coerces a scalar or object value into a single-element list.
func asList(r gjson.Result) []gjson.Result {
	if !r.Exists() {
		return nil
	}
	if r.IsArray() {
		return r.Array()
	}
	return []gjson.Result{r}
}

func stringList(r gjson.Result) []string {
	var out []string
	for _, v := range asList(r) {
		s := strings.TrimSpace(v.String())
		if s == "" || isPlaceholderText(s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// resolveLaw maps a model-supplied law identifier to a known LawID valid for
// the jurisdiction. Pipe-joined alternatives and template tokens are repaired
// by selecting the jurisdiction-appropriate candidate.
func resolveLaw(raw string, jur Jurisdiction) (LawID, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Contains(raw, "SPECIFIC_LAW") || bracketedPlaceholderPattern.MatchString(raw) {
		laws := ApplicableLaws(jur)
		if len(laws) == 0 {
			return "", false
		}
		return laws[0], true
	}
	var candidates []LawID
	for _, part := range strings.Split(raw, "|") {
		candidates = append(candidates, LawID(strings.TrimSpace(part)))
	}
	if law, ok := LawForJurisdiction(candidates, jur); ok {
		return law, true
	}
	return "", false
}

func isPlaceholderText(s string) bool {
	if strings.Contains(s, "SPECIFIC_LAW") {
		return true
	}
	return bracketedPlaceholderPattern.MatchString(s)
}

func normalizeSeverity(raw string) Severity {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high":
		return SeverityHigh
	case "low":
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// isMinimal reports whether the model produced too little to stand alone.
func isMinimal(r AnalysisResult) bool {
	total := len(r.FlaggedClauses) + len(r.ComplianceIssues)
	return total < minimalIssueCount && len(r.Summary) < minimalSummaryChars
}

// mergePreferringRules keeps the primary result's findings and tops up from
// the secondary without duplicating laws or clause issues. The combined
// clause list is re-ranked and capped regardless of which side contributed.
func mergePreferringRules(primary, secondary AnalysisResult) AnalysisResult {
	out := primary
	if out.Summary == "" {
		out.Summary = secondary.Summary
	}
	seenIssues := make(map[string]bool, len(out.FlaggedClauses))
	for _, fc := range out.FlaggedClauses {
		seenIssues[fc.Issue] = true
	}
	for _, fc := range secondary.FlaggedClauses {
		if seenIssues[fc.Issue] {
			continue
		}
		seenIssues[fc.Issue] = true
		out.FlaggedClauses = append(out.FlaggedClauses, fc)
	}
	seenLaws := make(map[LawID]bool, len(out.ComplianceIssues))
	for _, ci := range out.ComplianceIssues {
		seenLaws[ci.Law] = true
	}
	for _, ci := range secondary.ComplianceIssues {
		if seenLaws[ci.Law] {
			continue
		}
		seenLaws[ci.Law] = true
		out.ComplianceIssues = append(out.ComplianceIssues, ci)
	}
	out.FlaggedClauses = rankByPriority(out.FlaggedClauses, out.Jurisdiction)
	return out
}
