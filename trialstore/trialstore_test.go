package trialstore

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trials.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndSuccessRate(t *testing.T) {
	s := openTestStore(t)

	trials := []Trial{
		{Scenario: "SubprefixHijack", Settings: "ROV", AdoptionPercent: 50, TrialIndex: 0, Success: true, SnapshotDigest: "a"},
		{Scenario: "SubprefixHijack", Settings: "ROV", AdoptionPercent: 50, TrialIndex: 1, Success: false, SnapshotDigest: "b"},
		{Scenario: "SubprefixHijack", Settings: "ROV", AdoptionPercent: 50, TrialIndex: 2, Success: true, SnapshotDigest: "c"},
	}
	for _, tr := range trials {
		if _, err := s.Record(tr); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	rate, err := s.SuccessRate("SubprefixHijack", "ROV", 50)
	if err != nil {
		t.Fatalf("SuccessRate: %v", err)
	}
	want := 2.0 / 3.0
	if rate != want {
		t.Errorf("SuccessRate = %v, want %v", rate, want)
	}
}

func TestSuccessRateNoTrials(t *testing.T) {
	s := openTestStore(t)

	rate, err := s.SuccessRate("LegitimatePrefixOnly", "BGP", 10)
	if err != nil {
		t.Fatalf("SuccessRate: %v", err)
	}
	if rate != 0 {
		t.Errorf("SuccessRate with no trials = %v, want 0", rate)
	}
}

func TestTrialsOrderedByAdoptionThenIndex(t *testing.T) {
	s := openTestStore(t)

	seed := []Trial{
		{Scenario: "PrefixHijack", Settings: "BGP", AdoptionPercent: 80, TrialIndex: 0, Success: true, SnapshotDigest: "x"},
		{Scenario: "PrefixHijack", Settings: "BGP", AdoptionPercent: 10, TrialIndex: 1, Success: false, SnapshotDigest: "y"},
		{Scenario: "PrefixHijack", Settings: "BGP", AdoptionPercent: 10, TrialIndex: 0, Success: true, SnapshotDigest: "z"},
	}
	for _, tr := range seed {
		if _, err := s.Record(tr); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := s.Trials("PrefixHijack", "BGP")
	if err != nil {
		t.Fatalf("Trials: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(Trials) = %d, want 3", len(got))
	}
	wantOrder := []string{"z", "y", "x"}
	for i, digest := range wantOrder {
		if got[i].SnapshotDigest != digest {
			t.Errorf("Trials[%d].SnapshotDigest = %q, want %q", i, got[i].SnapshotDigest, digest)
		}
	}
}

func TestRecordAssignsIncreasingIDs(t *testing.T) {
	s := openTestStore(t)

	id1, err := s.Record(Trial{Scenario: "S", Settings: "BGP", AdoptionPercent: 1, TrialIndex: 0, SnapshotDigest: "d1"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	id2, err := s.Record(Trial{Scenario: "S", Settings: "BGP", AdoptionPercent: 1, TrialIndex: 1, SnapshotDigest: "d2"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if id2 <= id1 {
		t.Errorf("expected increasing IDs, got %d then %d", id1, id2)
	}
}
