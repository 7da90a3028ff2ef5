package httpapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/legalguard/regtech/internal/compliance"
)

func pollTask(t *testing.T, h http.Handler, taskID string) map[string]any {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		rec := getPath(t, h, "/v1/contracts/bulk/"+taskID)
		if rec.Code != 200 {
			t.Fatalf("task status = %d, body = %s", rec.Code, rec.Body.String())
		}
		task := decodeBody(t, rec)["task"].(map[string]any)
		if task["status"] == string(TaskCompleted) {
			return task
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("bulk task did not complete in time")
	return nil
}

func TestBulkAnalyzeLifecycle(t *testing.T) {
	h := newServerForTest(t)

	rec := postJSON(t, h, "/v1/contracts/analyze/bulk", compliance.BulkRequest{
		Contracts: []compliance.AnalyzeRequest{
			{Text: sampleContract, Jurisdiction: "MY"},
			{Text: sampleContract, Jurisdiction: "SG"},
			{Text: sampleContract, Jurisdiction: "EU"},
		},
	})
	if rec.Code != 202 {
		t.Fatalf("submit status = %d, body = %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	taskID, ok := body["task_id"].(string)
	if !ok || taskID == "" {
		t.Fatalf("no task_id in response: %v", body)
	}
	if body["total"].(float64) != 3 {
		t.Errorf("total = %v, want 3", body["total"])
	}

	task := pollTask(t, h, taskID)
	reports, ok := task["reports"].([]any)
	if !ok || len(reports) != 3 {
		t.Fatalf("reports = %v", task["reports"])
	}
	// Input order is preserved across the batch.
	wantJurs := []string{"MY", "SG", "EU"}
	for i, raw := range reports {
		result := raw.(map[string]any)["result"].(map[string]any)
		if result["jurisdiction"] != wantJurs[i] {
			t.Errorf("report %d jurisdiction = %v, want %s", i, result["jurisdiction"], wantJurs[i])
		}
	}
}

func TestBulkAnalyzeUrgentPriority(t *testing.T) {
	h := newServerForTest(t)

	contracts := make([]compliance.AnalyzeRequest, 8)
	for i := range contracts {
		contracts[i] = compliance.AnalyzeRequest{Text: sampleContract, Jurisdiction: "MY"}
	}
	rec := postJSON(t, h, "/v1/contracts/analyze/bulk", compliance.BulkRequest{
		Contracts: contracts,
		Priority:  compliance.PriorityUrgent,
	})
	if rec.Code != 202 {
		t.Fatalf("submit status = %d", rec.Code)
	}
	taskID := decodeBody(t, rec)["task_id"].(string)

	task := pollTask(t, h, taskID)
	if reports := task["reports"].([]any); len(reports) != 8 {
		t.Errorf("reports = %d, want 8", len(reports))
	}
}

func TestBulkAnalyzeRejectsEmptyBatch(t *testing.T) {
	h := newServerForTest(t)
	rec := postJSON(t, h, "/v1/contracts/analyze/bulk", compliance.BulkRequest{})
	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBulkStatusUnknownTask(t *testing.T) {
	h := newServerForTest(t)
	rec := getPath(t, h, "/v1/contracts/bulk/no-such-task")
	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	errBody := decodeBody(t, rec)["error"].(map[string]any)
	if errBody["code"] != CodeNotFound {
		t.Errorf("error code = %v", errBody["code"])
	}
	if errBody["transient"] != false {
		t.Errorf("transient = %v, want false", errBody["transient"])
	}
}

func TestErrorEnvelopeShape(t *testing.T) {
	h := newServerForTest(t)
	rec := postJSON(t, h, "/v1/contracts/analyze", map[string]any{})
	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["ok"] != false {
		t.Errorf("ok = %v, want false", body["ok"])
	}
	errBody, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("no error object: %v", body)
	}
	for _, key := range []string{"code", "message", "transient"} {
		if _, ok := errBody[key]; !ok {
			t.Errorf("error envelope missing %q", key)
		}
	}
}
