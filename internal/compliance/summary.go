package compliance

import (
	"fmt"
	"strings"
)

// BuildSummary composes the human-readable analysis summary from the
// deterministic findings. Zero findings is not an error state and gets a
// neutral sentence.
func BuildSummary(meta ContractMetadata, flags []FlaggedClause, issues []ComplianceIssue, jur Jurisdiction) string {
	if !meta.IsSubstantial {
		return "The provided text is too short or insubstantial to analyze as a contract. " + Disclaimer
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Reviewed this %s contract under %s jurisdiction. ", meta.ContractType, jur)

	if len(flags) == 0 && len(issues) == 0 {
		sb.WriteString("No clause violations or compliance gaps were detected against the applicable statutory checklists. ")
	} else {
		if n := countBySeverity(flags, SeverityHigh); n > 0 {
			fmt.Fprintf(&sb, "Found %d high-severity clause violation(s) requiring immediate attention. ", n)
		}
		if rest := len(flags) - countBySeverity(flags, SeverityHigh); rest > 0 {
			fmt.Fprintf(&sb, "Found %d further clause concern(s) of lower severity. ", rest)
		}
		if len(issues) > 0 {
			fmt.Fprintf(&sb, "Identified compliance gaps under %s. ", lawList(issues))
		}
	}

	sb.WriteString(Disclaimer)
	return sb.String()
}

func countBySeverity(flags []FlaggedClause, s Severity) int {
	n := 0
	for _, fc := range flags {
		if fc.Severity == s {
			n++
		}
	}
	return n
}

func lawList(issues []ComplianceIssue) string {
	names := make([]string, 0, len(issues))
	for _, ci := range issues {
		names = append(names, string(ci.Law))
	}
	return strings.Join(names, ", ")
}
