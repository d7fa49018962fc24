package regioncount

import (
	"errors"
	"testing"
)

func TestAssignWriteOnce(t *testing.T) {
	ledger := NewLedger()

	if err := ledger.Assign(1, 2); err != nil {
		t.Fatal(err)
	}
	err := ledger.Assign(1, 1)
	if !errors.Is(err, ErrAlreadyAssigned) {
		t.Errorf("expected ErrAlreadyAssigned, got %v", err)
	}
	region, ok := ledger.RegionOf(1)
	if !ok || region != 2 {
		t.Errorf("assignment changed after rejected reassign: region=%d ok=%v", region, ok)
	}
	if ledger.Total() != 1 {
		t.Errorf("rejected reassign leaked into counts: total=%d", ledger.Total())
	}
}

func TestRegionOfUnassigned(t *testing.T) {
	ledger := NewLedger()

	if ledger.IsAssigned(5) {
		t.Error("fresh ledger reports identity 5 as assigned")
	}
	if region, ok := ledger.RegionOf(5); ok || region != 0 {
		t.Errorf("expected (0, false) for unassigned identity, got (%d, %v)", region, ok)
	}
}

func TestCountConsistency(t *testing.T) {
	ledger := NewLedger()

	assignments := map[ID]int{1: 1, 2: 2, 3: 1, 4: 1, 5: 2}
	for id, region := range assignments {
		if err := ledger.Assign(id, region); err != nil {
			t.Fatal(err)
		}
	}

	counts := ledger.CountsByRegion()
	if counts[1] != 3 || counts[2] != 2 {
		t.Errorf("expected counts {1:3 2:2}, got %v", counts)
	}
	if counts[1]+counts[2] != ledger.Total() {
		t.Errorf("per-region counts sum to %d but total is %d", counts[1]+counts[2], ledger.Total())
	}

	exported := ledger.Assignments()
	if len(exported) != len(assignments) {
		t.Fatalf("expected %d exported assignments, got %d", len(assignments), len(exported))
	}
	for id, region := range assignments {
		if exported[id] != region {
			t.Errorf("identity %d: expected region %d, got %d", id, region, exported[id])
		}
	}
}
