package engine

// ScentRegistry remembers every cell and heading from which a robot was lost.
// It only grows; a fresh run starts with an empty registry.
type ScentRegistry struct {
	entries []ScentEntry
	index   map[ScentEntry]struct{}
}

// NewScentRegistry creates an empty registry
func NewScentRegistry() *ScentRegistry {
	return &ScentRegistry{index: make(map[ScentEntry]struct{})}
}

// Contains reports whether a robot was already lost leaving p while facing o
func (r *ScentRegistry) Contains(p Position, o Orientation) bool {
	_, ok := r.index[ScentEntry{Position: p, Orientation: o}]
	return ok
}

// Record adds a scent. Recording the same pair twice has no further effect.
func (r *ScentRegistry) Record(p Position, o Orientation) {
	e := ScentEntry{Position: p, Orientation: o}
	if _, ok := r.index[e]; ok {
		return
	}
	r.index[e] = struct{}{}
	r.entries = append(r.entries, e)
}

// Len returns the number of distinct scents
func (r *ScentRegistry) Len() int {
	return len(r.entries)
}

// Entries returns a copy of the scents in the order they were first recorded
func (r *ScentRegistry) Entries() []ScentEntry {
	out := make([]ScentEntry, len(r.entries))
	copy(out, r.entries)
	return out
}
