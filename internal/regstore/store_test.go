package regstore

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "regs.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSeedRegulationsLoaded(t *testing.T) {
	s := openTestStore(t)
	snap := s.Snapshot()

	for _, lawID := range []string{"EMPLOYMENT_ACT_MY", "PDPA_MY", "PDPA_SG", "GDPR_EU", "CCPA_US"} {
		r, ok := snap.Law(lawID)
		if !ok {
			t.Errorf("seed law %s missing", lawID)
			continue
		}
		if len(r.MandatoryProvisions) == 0 {
			t.Errorf("%s has no mandatory provisions", lawID)
		}
	}
	if got := len(snap.All()); got != len(seedRegulations) {
		t.Errorf("All() = %d regulations, want %d", got, len(seedRegulations))
	}
}

func TestSnapshotJurisdictionMapping(t *testing.T) {
	snap := openTestStore(t).Snapshot()

	my := snap.LawsFor("MY")
	if len(my) != 2 {
		t.Fatalf("MY laws = %d, want 2", len(my))
	}
	for _, r := range my {
		if r.Jurisdiction != "MY" {
			t.Errorf("law %s has jurisdiction %s under MY", r.LawID, r.Jurisdiction)
		}
	}
	if got := snap.Jurisdictions(); len(got) != 4 {
		t.Errorf("jurisdictions = %v, want 4 entries", got)
	}
}

func TestUpsertAndReload(t *testing.T) {
	s := openTestStore(t)
	old := s.Snapshot()

	err := s.Upsert(Regulation{
		LawID:               "PDPA_SG",
		Jurisdiction:        "SG",
		Name:                "Personal Data Protection Act 2012 (Singapore, amended)",
		MandatoryProvisions: []string{"Consent obligation"},
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	r, ok := s.Snapshot().Law("PDPA_SG")
	if !ok {
		t.Fatal("PDPA_SG missing after upsert")
	}
	if r.Name != "Personal Data Protection Act 2012 (Singapore, amended)" {
		t.Errorf("name not updated: %q", r.Name)
	}

	// The previously handed-out snapshot is unchanged.
	oldR, _ := old.Law("PDPA_SG")
	if oldR.Name == r.Name {
		t.Error("old snapshot mutated by reload")
	}
}

func TestSeedSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regs.db")

	s, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Upsert(Regulation{
		LawID:        "GDPR_EU",
		Jurisdiction: "EU",
		Name:         "GDPR (operator edited)",
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	s.Close()

	s2, err := New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	r, ok := s2.Snapshot().Law("GDPR_EU")
	if !ok {
		t.Fatal("GDPR_EU missing after reopen")
	}
	if r.Name != "GDPR (operator edited)" {
		t.Errorf("operator edit overwritten by seed: %q", r.Name)
	}
}

func TestSnapshotSearch(t *testing.T) {
	snap := openTestStore(t).Snapshot()

	tests := []struct {
		name           string
		jurisdiction   string
		regulationType string
		term           string
		wantIDs        []string
	}{
		{"type filter", "", "Employment", "", []string{"EMPLOYMENT_ACT_MY"}},
		{"type filter is case-insensitive", "", "employment", "", []string{"EMPLOYMENT_ACT_MY"}},
		{"jurisdiction only", "MY", "", "", []string{"EMPLOYMENT_ACT_MY", "PDPA_MY"}},
		{"jurisdiction and type", "MY", "Data Protection", "", []string{"PDPA_MY"}},
		{"term in key provisions", "", "", "consent", []string{"GDPR_EU", "PDPA_MY", "PDPA_SG"}},
		{"term in name", "", "", "california", []string{"CCPA_US"}},
		{"no match", "SG", "Employment", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snap.Search(tt.jurisdiction, tt.regulationType, tt.term)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d regulations, want %d: %+v", len(got), len(tt.wantIDs), got)
			}
			for i, r := range got {
				if r.LawID != tt.wantIDs[i] {
					t.Errorf("result %d = %s, want %s", i, r.LawID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestSeedRegulationTypes(t *testing.T) {
	snap := openTestStore(t).Snapshot()
	for _, r := range snap.All() {
		if r.RegulationType == "" {
			t.Errorf("%s has no regulation type", r.LawID)
		}
	}
}
