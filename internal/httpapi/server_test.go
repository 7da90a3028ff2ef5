package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/legalguard/regtech/internal/compliance"
	"github.com/legalguard/regtech/internal/regstore"
)

const sampleContract = `EMPLOYMENT CONTRACT

This contract of employment is made between Acme Sdn Bhd (the Employer) and the Employee for work performed in Kuala Lumpur, Malaysia. The parties agree to the terms below.

The Employer shall pay the Employee a salary of RM 1,200 per month. The Employee shall work 10 hours per day as directed by the Employer. The Employee is entitled to 5 days of annual leave for each year of completed service. The Employer may terminate this agreement without notice for any reason whatsoever.`

func newServerForTest(t *testing.T) http.Handler {
	t.Helper()
	regs, err := regstore.New(filepath.Join(t.TempDir(), "regs.db"))
	if err != nil {
		t.Fatalf("open regulation store: %v", err)
	}
	t.Cleanup(func() { _ = regs.Close() })
	return NewServer(compliance.NewAnalyzer(nil), regs)
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	blob, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(blob))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func getPath(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return out
}

func TestAnalyzeEndpoint(t *testing.T) {
	h := newServerForTest(t)
	rec := postJSON(t, h, "/v1/contracts/analyze", compliance.AnalyzeRequest{
		Text:         sampleContract,
		Jurisdiction: "MY",
	})
	if rec.Code != 200 {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	report, ok := body["report"].(map[string]any)
	if !ok {
		t.Fatalf("no report in response: %v", body)
	}
	result, ok := report["result"].(map[string]any)
	if !ok {
		t.Fatalf("no result in report: %v", report)
	}
	if result["jurisdiction"] != "MY" {
		t.Errorf("jurisdiction = %v, want MY", result["jurisdiction"])
	}
	if flags, ok := result["flagged_clauses"].([]any); !ok || len(flags) == 0 {
		t.Errorf("expected flagged clauses for a defective contract, got %v", result["flagged_clauses"])
	}
	if _, ok := report["risk"].(map[string]any); !ok {
		t.Errorf("report has no risk score: %v", report)
	}
}

func TestAnalyzeEndpointRejectsEmptyText(t *testing.T) {
	h := newServerForTest(t)
	rec := postJSON(t, h, "/v1/contracts/analyze", compliance.AnalyzeRequest{Text: "   "})
	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeEndpointRejectsInsubstantialText(t *testing.T) {
	h := newServerForTest(t)
	rec := postJSON(t, h, "/v1/contracts/analyze", compliance.AnalyzeRequest{
		Text:         "hello world this is not a contract",
		Jurisdiction: "MY",
	})
	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
	}
	errBody := decodeBody(t, rec)["error"].(map[string]any)
	if errBody["code"] != CodeValidation {
		t.Errorf("error code = %v", errBody["code"])
	}
}

func TestAnalyzeEndpointRejectsGet(t *testing.T) {
	h := newServerForTest(t)
	rec := getPath(t, h, "/v1/contracts/analyze")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestRiskScoreEndpoint(t *testing.T) {
	h := newServerForTest(t)
	rec := postJSON(t, h, "/v1/contracts/risk-score", compliance.AnalysisResult{
		Jurisdiction: compliance.JurisdictionEU,
		FlaggedClauses: []compliance.FlaggedClause{
			{ClauseText: "liability is excluded entirely", Issue: "unbalanced liability", Severity: compliance.SeverityHigh},
		},
	})
	if rec.Code != 200 {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	risk := decodeBody(t, rec)["risk"].(map[string]any)
	if got := risk["overall_score"].(float64); got != 80 {
		t.Errorf("overall_score = %v, want 80", got)
	}
	if risk["risk_level"] != string(compliance.RiskLow) {
		t.Errorf("risk_level = %v", risk["risk_level"])
	}
}

func TestRegulationsEndpoints(t *testing.T) {
	h := newServerForTest(t)

	rec := getPath(t, h, "/v1/regulations")
	if rec.Code != 200 {
		t.Fatalf("list status = %d", rec.Code)
	}
	if regs := decodeBody(t, rec)["regulations"].([]any); len(regs) != 5 {
		t.Errorf("regulations = %d, want 5", len(regs))
	}

	rec = getPath(t, h, "/v1/regulations?jurisdiction=MY")
	if regs := decodeBody(t, rec)["regulations"].([]any); len(regs) != 2 {
		t.Errorf("MY regulations = %d, want 2", len(regs))
	}

	rec = getPath(t, h, "/v1/regulations/GDPR_EU")
	if rec.Code != 200 {
		t.Fatalf("single status = %d", rec.Code)
	}
	reg := decodeBody(t, rec)["regulation"].(map[string]any)
	if reg["law_id"] != "GDPR_EU" {
		t.Errorf("law_id = %v", reg["law_id"])
	}

	rec = getPath(t, h, "/v1/regulations/NO_SUCH_LAW")
	if rec.Code != 404 {
		t.Errorf("unknown law status = %d, want 404", rec.Code)
	}
}

func TestRegulationsSearchEndpoint(t *testing.T) {
	h := newServerForTest(t)

	rec := postJSON(t, h, "/v1/regulations/search", map[string]string{
		"jurisdiction":    "MY",
		"regulation_type": "Data Protection",
	})
	if rec.Code != 200 {
		t.Fatalf("search status = %d, body = %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	regs := body["regulations"].([]any)
	if len(regs) != 1 || regs[0].(map[string]any)["law_id"] != "PDPA_MY" {
		t.Fatalf("search results = %v", regs)
	}
	if body["total_count"].(float64) != 1 {
		t.Errorf("total_count = %v, want 1", body["total_count"])
	}
	if jurs := body["jurisdictions"].([]any); len(jurs) != 1 || jurs[0] != "MY" {
		t.Errorf("jurisdictions = %v", body["jurisdictions"])
	}

	rec = postJSON(t, h, "/v1/regulations/search", map[string]string{"search_term": "breach notification"})
	body = decodeBody(t, rec)
	if got := body["total_count"].(float64); got != 2 {
		t.Errorf("breach notification matches = %v, want 2", got)
	}

	rec = postJSON(t, h, "/v1/regulations/search", map[string]string{"jurisdiction": "SG", "regulation_type": "Employment"})
	body = decodeBody(t, rec)
	if regs, ok := body["regulations"].([]any); !ok || len(regs) != 0 {
		t.Errorf("no-match search should return an empty list, got %v", body["regulations"])
	}

	rec = getPath(t, h, "/v1/regulations/search")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET search status = %d, want 405", rec.Code)
	}
}

func TestRegulationsReloadEndpoint(t *testing.T) {
	h := newServerForTest(t)
	rec := postJSON(t, h, "/v1/regulations/reload", nil)
	if rec.Code != 200 {
		t.Fatalf("reload status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestJurisdictionsEndpoint(t *testing.T) {
	h := newServerForTest(t)
	rec := getPath(t, h, "/v1/jurisdictions")
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	jurs := decodeBody(t, rec)["jurisdictions"].(map[string]any)
	if len(jurs) != 4 {
		t.Errorf("jurisdictions = %d, want 4", len(jurs))
	}
	if my, ok := jurs["MY"].([]any); !ok || len(my) != 2 {
		t.Errorf("MY laws = %v", jurs["MY"])
	}
}

func TestHealthEndpoint(t *testing.T) {
	h := newServerForTest(t)
	rec := getPath(t, h, "/v1/health")
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "ok" {
		t.Errorf("health body = %s", rec.Body.String())
	}
}
