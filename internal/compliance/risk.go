package compliance

// Monetary base risk per law, in the contract's own currency units. The
// ordering reflects statutory penalty exposure, GDPR highest.
var lawBaseRisk = map[LawID]float64{
	LawGDPREU:          50000,
	LawCCPAUS:          35000,
	LawPDPAMY:          25000,
	LawPDPASG:          25000,
	LawEmploymentActMY: 5000,
}

const (
	defaultLawBaseRisk   = 1000
	riskScalingFactor    = 0.5
	severeMissingCount   = 4
	moderateMissingCount = 2
)

var clauseDeductions = map[Severity]int{
	SeverityHigh:   20,
	SeverityMedium: 12,
	SeverityLow:    5,
}

var clauseDollarEstimates = map[Severity]float64{
	SeverityHigh:   10000,
	SeverityMedium: 5000,
	SeverityLow:    1000,
}

// ScoreRisk derives a RiskScore from an AnalysisResult. The computation is
// pure arithmetic over the result's findings, so identical input always
// yields an identical score.
func ScoreRisk(result AnalysisResult) RiskScore {
	score := 100
	var financial float64
	var categories []LawID

	for _, issue := range result.ComplianceIssues {
		score -= issueDeduction(issue)
		categories = append(categories, issue.Law)

		base, ok := lawBaseRisk[issue.Law]
		if !ok {
			base = defaultLawBaseRisk
		}
		financial += base * (1 + float64(len(issue.MissingRequirements))*riskScalingFactor)
	}

	for _, fc := range result.FlaggedClauses {
		score -= clauseDeductions[fc.Severity]
		financial += clauseDollarEstimates[fc.Severity]
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return RiskScore{
		OverallScore:          score,
		FinancialRiskEstimate: financial,
		ViolationCategories:   categories,
		JurisdictionRisks: map[Jurisdiction]int{
			result.Jurisdiction: 100 - score,
		},
		RiskLevel: riskLevelFor(score),
	}
}

// issueDeduction scales with how much of the checklist is missing. CCPA
// carries heavier statutory per-violation penalties than the other laws.
func issueDeduction(issue ComplianceIssue) int {
	n := len(issue.MissingRequirements)
	if issue.Law == LawCCPAUS {
		switch {
		case n >= severeMissingCount:
			return 40
		case n >= moderateMissingCount:
			return 25
		default:
			return 15
		}
	}
	switch {
	case n >= severeMissingCount:
		return 25
	case n >= moderateMissingCount:
		return 15
	default:
		return 8
	}
}

func riskLevelFor(score int) RiskLevel {
	switch {
	case score >= 80:
		return RiskLow
	case score >= 60:
		return RiskMedium
	case score >= 40:
		return RiskHigh
	default:
		return RiskCritical
	}
}
