package geo

import "fmt"

// Entry is a single geographic object in the hierarchy: an id, a type, a set
// of normalized names (interned in the shared NameDict, main name first),
// and an ordered ancestor chain (root first). An entry never appears in its
// own ancestor chain.
type Entry struct {
	ID        GeoObjectId
	Type      Type
	Names     []int // indices into the shared NameDict; Names[0] is the main name
	Ancestors []GeoObjectId
}

// MainName returns the entry's primary normalized name, resolved through
// dict. FillBuildingsLayer (spec §4.5) uses this to retrieve a building's
// house-number text.
func (e Entry) MainName(dict *NameDict) string {
	if len(e.Names) == 0 {
		return ""
	}
	return dict.Get(e.Names[0])
}

// BadHierarchyError reports a construction-time inconsistency in a
// Hierarchy: a duplicate id or an ancestor referencing an id that was never
// loaded. It is fatal to the Geocoder instance being built (spec §4.1, §7).
type BadHierarchyError struct {
	Reason string
	ID     GeoObjectId
}

func (e *BadHierarchyError) Error() string {
	return fmt.Sprintf("bad hierarchy: %s (id %s)", e.Reason, e.ID)
}

// Hierarchy is an immutable, id-indexed store of Entries plus the shared
// NameDict used to resolve their names. Once built it is safe for
// concurrent, unsynchronized reads by any number of queries (spec §5).
type Hierarchy struct {
	entries map[GeoObjectId]Entry
	dict    *NameDict
}

// BuildHierarchy constructs an immutable Hierarchy from entries. It fails
// with a *BadHierarchyError if two entries share an id or if an ancestor id
// is not present among entries (spec §4.1).
func BuildHierarchy(entries []Entry, dict *NameDict) (*Hierarchy, error) {
	byID := make(map[GeoObjectId]Entry, len(entries))
	for _, e := range entries {
		if _, exists := byID[e.ID]; exists {
			return nil, &BadHierarchyError{Reason: "duplicate id", ID: e.ID}
		}
		byID[e.ID] = e
	}

	for _, e := range entries {
		for _, a := range e.Ancestors {
			if _, ok := byID[a]; !ok {
				return nil, &BadHierarchyError{Reason: "dangling ancestor", ID: a}
			}
		}
	}

	return &Hierarchy{entries: byID, dict: dict}, nil
}

// Lookup returns the entry for id, or ok=false if id is not known.
func (h *Hierarchy) Lookup(id GeoObjectId) (Entry, bool) {
	e, ok := h.entries[id]
	return e, ok
}

// IsParentTo reports whether candidateAncestor's id appears anywhere in
// descendant's ancestor chain. The relation is transitive across the whole
// hierarchy but only ever stored on the descendant side, so this is a
// linear scan of one (short) chain (spec §3, §9).
func (h *Hierarchy) IsParentTo(candidateAncestor, descendant Entry) bool {
	for _, a := range descendant.Ancestors {
		if a == candidateAncestor.ID {
			return true
		}
	}
	return false
}

// NameDict returns the shared name-interning table.
func (h *Hierarchy) NameDict() *NameDict {
	return h.dict
}

// Len returns the number of entries in the hierarchy.
func (h *Hierarchy) Len() int {
	return len(h.entries)
}

// Entries returns every entry, in unspecified order. Used by Index
// construction.
func (h *Hierarchy) Entries() []Entry {
	out := make([]Entry, 0, len(h.entries))
	for _, e := range h.entries {
		out = append(out, e)
	}
	return out
}
