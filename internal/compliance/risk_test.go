package compliance

import "testing"

func TestScoreRiskCleanResult(t *testing.T) {
	rs := ScoreRisk(AnalysisResult{Jurisdiction: JurisdictionMY})
	if rs.OverallScore != 100 {
		t.Errorf("score = %d, want 100", rs.OverallScore)
	}
	if rs.RiskLevel != RiskLow {
		t.Errorf("level = %s, want Low", rs.RiskLevel)
	}
	if rs.FinancialRiskEstimate != 0 {
		t.Errorf("financial estimate = %f, want 0", rs.FinancialRiskEstimate)
	}
	if rs.JurisdictionRisks[JurisdictionMY] != 0 {
		t.Errorf("jurisdiction risk = %d, want 0", rs.JurisdictionRisks[JurisdictionMY])
	}
}

func TestScoreRiskDeductions(t *testing.T) {
	result := AnalysisResult{
		Jurisdiction: JurisdictionEU,
		FlaggedClauses: []FlaggedClause{
			{Issue: "a", Severity: SeverityHigh},
		},
		ComplianceIssues: []ComplianceIssue{
			{Law: LawGDPREU, MissingRequirements: []string{"r1", "r2"}},
		},
	}
	rs := ScoreRisk(result)
	// 100 - 20 (high clause) - 15 (two missing requirements).
	if rs.OverallScore != 65 {
		t.Errorf("score = %d, want 65", rs.OverallScore)
	}
	if rs.RiskLevel != RiskMedium {
		t.Errorf("level = %s, want Medium", rs.RiskLevel)
	}
	// GDPR base 50000 * (1 + 2*0.5) + 10000 clause estimate.
	if rs.FinancialRiskEstimate != 110000 {
		t.Errorf("financial estimate = %f, want 110000", rs.FinancialRiskEstimate)
	}
	if len(rs.ViolationCategories) != 1 || rs.ViolationCategories[0] != LawGDPREU {
		t.Errorf("categories = %v", rs.ViolationCategories)
	}
	if rs.JurisdictionRisks[JurisdictionEU] != 35 {
		t.Errorf("jurisdiction risk = %d, want 35", rs.JurisdictionRisks[JurisdictionEU])
	}
}

func TestScoreRiskCCPAWeightedHeavier(t *testing.T) {
	four := []string{"a", "b", "c", "d"}
	ccpa := ScoreRisk(AnalysisResult{
		Jurisdiction:     JurisdictionUS,
		ComplianceIssues: []ComplianceIssue{{Law: LawCCPAUS, MissingRequirements: four}},
	})
	gdpr := ScoreRisk(AnalysisResult{
		Jurisdiction:     JurisdictionEU,
		ComplianceIssues: []ComplianceIssue{{Law: LawGDPREU, MissingRequirements: four}},
	})
	if ccpa.OverallScore != 60 {
		t.Errorf("CCPA score = %d, want 60", ccpa.OverallScore)
	}
	if gdpr.OverallScore != 75 {
		t.Errorf("GDPR score = %d, want 75", gdpr.OverallScore)
	}
}

func TestScoreRiskClampedAtZero(t *testing.T) {
	var clauses []FlaggedClause
	for i := 0; i < 10; i++ {
		clauses = append(clauses, FlaggedClause{Severity: SeverityHigh})
	}
	rs := ScoreRisk(AnalysisResult{Jurisdiction: JurisdictionMY, FlaggedClauses: clauses})
	if rs.OverallScore != 0 {
		t.Errorf("score = %d, want 0", rs.OverallScore)
	}
	if rs.RiskLevel != RiskCritical {
		t.Errorf("level = %s, want Critical", rs.RiskLevel)
	}
}

func TestScoreRiskMonotonicInHighSeverityClauses(t *testing.T) {
	result := AnalysisResult{
		Jurisdiction: JurisdictionMY,
		ComplianceIssues: []ComplianceIssue{
			{Law: LawEmploymentActMY, MissingRequirements: []string{"r1"}},
		},
	}
	prev := ScoreRisk(result).OverallScore
	for i := 0; i < 8; i++ {
		result.FlaggedClauses = append(result.FlaggedClauses, FlaggedClause{Severity: SeverityHigh})
		cur := ScoreRisk(result).OverallScore
		if cur > prev {
			t.Fatalf("score increased from %d to %d after adding a high-severity clause", prev, cur)
		}
		prev = cur
	}
}

func TestRiskLevelBands(t *testing.T) {
	tests := []struct {
		score int
		want  RiskLevel
	}{
		{100, RiskLow}, {80, RiskLow},
		{79, RiskMedium}, {60, RiskMedium},
		{59, RiskHigh}, {40, RiskHigh},
		{39, RiskCritical}, {0, RiskCritical},
	}
	for _, tt := range tests {
		if got := riskLevelFor(tt.score); got != tt.want {
			t.Errorf("riskLevelFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
