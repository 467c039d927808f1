// Ordered selection set; order is compositing paint order
package region

// Set is the ordered collection of regions for one image. The order is the
// paint order: later entries composite on top of earlier ones. The set is
// treated as immutable by its consumers; every mutation produces a new set.
type Set []Region

// Clone returns a shallow copy of the set. Regions are value types, so a
// copied set shares no mutable state with the original.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s))
	copy(out, s)
	return out
}

// TopmostAt returns the index of the topmost region containing (x, y),
// searching in reverse paint order so later regions win.
func (s Set) TopmostAt(x, y float64) (int, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if Contains(s[i], x, y) {
			return i, true
		}
	}
	return -1, false
}

// IndexOf returns the index of the region with the given ID.
func (s Set) IndexOf(id string) (int, bool) {
	for i, r := range s {
		if r.Shared().ID == id {
			return i, true
		}
	}
	return -1, false
}

// Replace returns a new set with the region at index i replaced.
// Out-of-range indexes return the set unchanged.
func (s Set) Replace(i int, r Region) Set {
	if i < 0 || i >= len(s) {
		return s
	}
	out := s.Clone()
	out[i] = r
	return out
}

// Append returns a new set with r appended as the topmost region.
func (s Set) Append(r Region) Set {
	out := make(Set, len(s), len(s)+1)
	copy(out, s)
	return append(out, r)
}

// Remove returns a new set without the region at index i.
// Out-of-range indexes return the set unchanged.
func (s Set) Remove(i int) Set {
	if i < 0 || i >= len(s) {
		return s
	}
	out := make(Set, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}
