package regioncount

import "github.com/pkg/errors"

// Ledger records, per stable identity, the at most one region it has been
// assigned to. Assignments are write-once: created on the first positive
// region verdict, never mutated, never deleted.
type Ledger struct {
	assignments map[ID]int
	perRegion   map[int]int
}

func NewLedger() *Ledger {
	return &Ledger{
		assignments: make(map[ID]int),
		perRegion:   make(map[int]int),
	}
}

// IsAssigned reports whether the identity has a frozen region assignment.
func (l *Ledger) IsAssigned(id ID) bool {
	_, ok := l.assignments[id]
	return ok
}

// RegionOf returns the identity's assigned region index, or (0, false) when
// the identity is unassigned.
func (l *Ledger) RegionOf(id ID) (int, bool) {
	region, ok := l.assignments[id]
	return region, ok
}

// Assign freezes the identity's region. Assigning an already-assigned
// identity returns ErrAlreadyAssigned and leaves the ledger untouched;
// callers are expected to check IsAssigned first.
func (l *Ledger) Assign(id ID, region int) error {
	if existing, ok := l.assignments[id]; ok {
		return errors.Wrapf(ErrAlreadyAssigned, "identity %d is frozen to region %d, refusing region %d", id, existing, region)
	}
	l.assignments[id] = region
	l.perRegion[region]++
	return nil
}

// CountsByRegion returns a copy of the per-region assignment counts.
func (l *Ledger) CountsByRegion() map[int]int {
	out := make(map[int]int, len(l.perRegion))
	for region, count := range l.perRegion {
		out[region] = count
	}
	return out
}

// Total returns the number of identities with a frozen assignment.
func (l *Ledger) Total() int {
	return len(l.assignments)
}

// Assignments returns a copy of the full identity to region mapping, for
// end-of-run export.
func (l *Ledger) Assignments() map[ID]int {
	out := make(map[ID]int, len(l.assignments))
	for id, region := range l.assignments {
		out[id] = region
	}
	return out
}
