package compliance

import (
	"context"
	"testing"
)

func TestAnalyzeBulkSequentialOrder(t *testing.T) {
	a := NewAnalyzer(nil)
	req := BulkRequest{
		Priority: PriorityNormal,
		Contracts: []AnalyzeRequest{
			{Text: myEmploymentContract, Jurisdiction: "MY"},
			{Text: usServiceContract, Jurisdiction: "US"},
			{Text: myEmploymentContract, Jurisdiction: "EU"},
		},
	}
	reports := a.AnalyzeBulk(context.Background(), req)
	if len(reports) != 3 {
		t.Fatalf("got %d reports", len(reports))
	}
	want := []Jurisdiction{JurisdictionMY, JurisdictionUS, JurisdictionEU}
	for i, w := range want {
		if reports[i].Result.Jurisdiction != w {
			t.Errorf("report %d jurisdiction = %s, want %s", i, reports[i].Result.Jurisdiction, w)
		}
	}
}

func TestAnalyzeBulkUrgentConcurrent(t *testing.T) {
	a := NewAnalyzer(nil)
	var contracts []AnalyzeRequest
	for i := 0; i < BulkConcurrency*2; i++ {
		contracts = append(contracts, AnalyzeRequest{Text: usServiceContract, Jurisdiction: "US"})
	}
	reports := a.AnalyzeBulk(context.Background(), BulkRequest{Priority: PriorityUrgent, Contracts: contracts})
	if len(reports) != len(contracts) {
		t.Fatalf("got %d reports", len(reports))
	}
	for i, r := range reports {
		if r.Result.Jurisdiction != JurisdictionUS {
			t.Errorf("report %d missing result, jurisdiction = %q", i, r.Result.Jurisdiction)
		}
	}
}

func TestAnalyzeBulkCancelledContext(t *testing.T) {
	a := NewAnalyzer(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reports := a.AnalyzeBulk(ctx, BulkRequest{
		Priority:  PriorityNormal,
		Contracts: []AnalyzeRequest{{Text: usServiceContract, Jurisdiction: "US"}},
	})
	if len(reports) != 1 {
		t.Fatalf("got %d report slots", len(reports))
	}
	if reports[0].Result.Jurisdiction != "" {
		t.Errorf("analysis ran despite cancelled context")
	}
}

func TestAnalyzeBulkEmpty(t *testing.T) {
	a := NewAnalyzer(nil)
	if reports := a.AnalyzeBulk(context.Background(), BulkRequest{}); len(reports) != 0 {
		t.Errorf("got %d reports for empty batch", len(reports))
	}
}
