package regioncount

// ID is a stable long-lived object identity, unique for the lifetime of a
// run. IDs are positive and strictly increasing in issuance order.
type ID int64

// Registry maps volatile frame-local track identifiers to stable identities.
// Entries are never removed for the lifetime of the run.
//
// Known limitation: if the external tracker drops a frame-local id and later
// reuses the same raw id for a different physical object, both objects merge
// into one stable identity. The registry has no gap-bridging logic.
type Registry struct {
	byTrackID  map[int]ID
	lastIssued ID
}

func NewRegistry() *Registry {
	return &Registry{
		byTrackID: make(map[int]ID),
	}
}

// Resolve returns the stable identity for a frame-local track id, issuing a
// new one on first sight. Resolving the same id twice always yields the same
// identity.
func (r *Registry) Resolve(frameLocalID int) ID {
	if id, ok := r.byTrackID[frameLocalID]; ok {
		return id
	}
	r.lastIssued++
	r.byTrackID[frameLocalID] = r.lastIssued
	return r.lastIssued
}

// Seen returns the number of distinct stable identities issued so far.
func (r *Registry) Seen() int {
	return len(r.byTrackID)
}
