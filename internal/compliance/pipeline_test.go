package compliance

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestAnalyzeDeterministicIdempotence(t *testing.T) {
	a := NewAnalyzer(nil)
	req := AnalyzeRequest{Text: myEmploymentContract, Jurisdiction: "MY"}
	first := a.Analyze(context.Background(), req)
	second := a.Analyze(context.Background(), req)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical input produced different reports")
	}
}

func TestAnalyzeInsubstantialInput(t *testing.T) {
	a := NewAnalyzer(nil)
	report := a.Analyze(context.Background(), AnalyzeRequest{Text: "too short to be a contract", Jurisdiction: "MY"})

	if len(report.Result.FlaggedClauses) != 0 || len(report.Result.ComplianceIssues) != 0 {
		t.Errorf("findings emitted for insubstantial input: %+v", report.Result)
	}
	if !strings.Contains(report.Result.Summary, "insubstantial") {
		t.Errorf("summary does not indicate insubstantial input: %q", report.Result.Summary)
	}
	if report.Risk.OverallScore != 100 {
		t.Errorf("risk score = %d for empty findings", report.Risk.OverallScore)
	}
}

func TestAnalyzeDefaultsJurisdiction(t *testing.T) {
	a := NewAnalyzer(nil)
	for _, raw := range []string{"", "XX", "germany"} {
		report := a.Analyze(context.Background(), AnalyzeRequest{Text: myEmploymentContract, Jurisdiction: raw})
		if report.Result.Jurisdiction != DefaultJurisdiction {
			t.Errorf("jurisdiction %q resolved to %s, want %s", raw, report.Result.Jurisdiction, DefaultJurisdiction)
		}
	}
}

func TestAnalyzeFullMalaysianEmployment(t *testing.T) {
	a := NewAnalyzer(nil)
	report := a.Analyze(context.Background(), AnalyzeRequest{Text: myEmploymentContract, Jurisdiction: "MY"})

	if report.Metadata.ContractType != TypeEmployment {
		t.Errorf("type = %s", report.Metadata.ContractType)
	}
	if _, ok := findFlag(report.Result.FlaggedClauses, "Employment Act 1955 Section 12"); !ok {
		t.Error("Section 12 violation not surfaced end to end")
	}
	if _, ok := findIssue(report.Result.ComplianceIssues, LawEmploymentActMY); !ok {
		t.Error("Employment Act gaps not surfaced end to end")
	}
	if report.Risk.OverallScore >= 80 {
		t.Errorf("risk score %d too lenient for a contract this defective", report.Risk.OverallScore)
	}
	if !strings.Contains(report.Result.Summary, "high-severity") {
		t.Errorf("summary does not mention high-severity findings: %q", report.Result.Summary)
	}
}

func TestAnalyzeModelMergedIntoResult(t *testing.T) {
	model := `{"summary": "The agreement carries material statutory exposure across employment terms, with several clauses falling short of mandatory minimums.", "flagged_clauses": [{"clause_text": "salary of RM 1,200 per month", "issue": "Below the statutory wage floor", "severity": "high"}, {"clause_text": "5 days of annual leave", "issue": "Below minimum leave", "severity": "high"}], "compliance_issues": []}`
	a := NewAnalyzer(&fakeCaller{responses: []string{model}})
	report := a.Analyze(context.Background(), AnalyzeRequest{Text: myEmploymentContract, Jurisdiction: "MY"})

	if !strings.Contains(report.Result.Summary, "material statutory exposure") {
		t.Errorf("model summary not used: %q", report.Result.Summary)
	}
	if _, ok := findFlag(report.Result.FlaggedClauses, "Section 12"); !ok {
		t.Error("deterministic flag lost after merge")
	}
}

func TestAnalyzeModelFailureFallsBack(t *testing.T) {
	a := NewAnalyzer(&fakeCaller{errs: []error{errTransport400}})
	report := a.Analyze(context.Background(), AnalyzeRequest{Text: myEmploymentContract, Jurisdiction: "MY"})
	if _, ok := findFlag(report.Result.FlaggedClauses, "Section 12"); !ok {
		t.Error("deterministic analysis lost when model unavailable")
	}
}

func TestAnalyzeForeignModelLawDropped(t *testing.T) {
	model := `{"summary": "Extended review of the employment terms identifies several statutory shortfalls and one data protection exposure described below.", "flagged_clauses": [{"clause_text": "without notice for any reason whatsoever", "issue": "Notice breach", "severity": "high"}, {"clause_text": "probationary period of 9 months", "issue": "Probation excessive", "severity": "medium"}], "compliance_issues": [{"law": "GDPR_EU", "missing_requirements": ["Lawful basis"], "recommendations": ["State basis"]}]}`
	a := NewAnalyzer(&fakeCaller{responses: []string{model}})
	report := a.Analyze(context.Background(), AnalyzeRequest{Text: myEmploymentContract, Jurisdiction: "MY"})
	for _, ci := range report.Result.ComplianceIssues {
		if !LawApplies(ci.Law, JurisdictionMY) {
			t.Errorf("foreign law %s leaked into MY result", ci.Law)
		}
	}
}
