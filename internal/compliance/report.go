package compliance

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// BuildMarkdownReport renders a Report as a standalone markdown document
// suitable for PDF rendering or direct review.
func BuildMarkdownReport(report Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Contract Compliance Report\n\n")
	fmt.Fprintf(&b, "- Jurisdiction: %s\n", report.Result.Jurisdiction)
	fmt.Fprintf(&b, "- Contract type: %s\n", report.Metadata.ContractType)
	fmt.Fprintf(&b, "- Date: %s\n\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "%s\n\n", Disclaimer)

	fmt.Fprintf(&b, "## Executive Summary\n\n")
	fmt.Fprintf(&b, "%s\n\n", report.Result.Summary)
	fmt.Fprintf(&b, "Overall risk: **%s** (score %d/100, estimated financial exposure %.0f).\n\n",
		report.Risk.RiskLevel, report.Risk.OverallScore, report.Risk.FinancialRiskEstimate)

	fmt.Fprintf(&b, "## Flagged Clauses\n\n")
	if len(report.Result.FlaggedClauses) == 0 {
		fmt.Fprintf(&b, "- No clause violations detected.\n")
	}
	for _, fc := range report.Result.FlaggedClauses {
		fmt.Fprintf(&b, "### %s severity\n\n", strings.ToUpper(string(fc.Severity)))
		fmt.Fprintf(&b, "> %s\n\n", fc.ClauseText)
		fmt.Fprintf(&b, "%s\n\n", fc.Issue)
	}

	fmt.Fprintf(&b, "## Compliance Gaps\n\n")
	if len(report.Result.ComplianceIssues) == 0 {
		fmt.Fprintf(&b, "- No missing mandatory provisions for the applicable laws.\n")
	}
	for _, ci := range report.Result.ComplianceIssues {
		fmt.Fprintf(&b, "### %s\n\n", ci.Law)
		fmt.Fprintf(&b, "Missing requirements:\n\n")
		for _, m := range ci.MissingRequirements {
			fmt.Fprintf(&b, "- %s\n", m)
		}
		fmt.Fprintf(&b, "\nRecommendations:\n\n")
		for _, r := range ci.Recommendations {
			fmt.Fprintf(&b, "- %s\n", r)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Risk Breakdown\n\n")
	for jur, v := range report.Risk.JurisdictionRisks {
		fmt.Fprintf(&b, "- %s: %d/100 risk contribution\n", jur, v)
	}
	if len(report.Risk.ViolationCategories) > 0 {
		fmt.Fprintf(&b, "- Violation categories: %s\n", lawNames(report.Risk.ViolationCategories))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Appendix\n\n")
	fmt.Fprintf(&b, "### Document Metadata (JSON)\n\n```json\n%s\n```\n", prettyJSON(report.Metadata))
	if len(report.Sections) > 0 {
		fmt.Fprintf(&b, "\n### Extracted Sections\n\n")
		for _, s := range report.Sections {
			fmt.Fprintf(&b, "- %s (%d words)\n", s.Title, s.WordCount)
		}
	}

	return b.String()
}

func lawNames(laws []LawID) string {
	names := make([]string, 0, len(laws))
	for _, l := range laws {
		names = append(names, string(l))
	}
	return strings.Join(names, ", ")
}

func prettyJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("marshal error: %v", err)
	}
	return string(data)
}
