package geo

import (
	"testing"

	"github.com/gcbaptista/go-geocoder/geotext"
)

// buildSynonymHierarchy builds a France > Paris > "rivoli" chain where the
// street's own name carries none of the generic road-type words in
// geotext's synonym table, so a query naming the street plus a bare synonym
// word (e.g. "street") can only be joined to it via recordAndRecurse's
// synonym-scan branch, not via an ordinary index match.
func buildSynonymHierarchy() (h *Hierarchy, paris, rivoli GeoObjectId) {
	dict := NewNameDict()
	name := func(s string) []int { return []int{dict.Intern(geotext.Normalize(s))} }

	france := GeoObjectId{Source: 2, ID: 1}
	paris = GeoObjectId{Source: 2, ID: 2}
	rivoli = GeoObjectId{Source: 2, ID: 3}

	entries := []Entry{
		{ID: france, Type: Country, Names: name("france")},
		{ID: paris, Type: Locality, Names: name("paris"), Ancestors: []GeoObjectId{france}},
		{ID: rivoli, Type: Street, Names: name("rivoli"), Ancestors: []GeoObjectId{france, paris}},
	}

	h, err := BuildHierarchy(entries, dict)
	if err != nil {
		panic(err) // fixture is known-good; a failure here is a test bug
	}
	return h, paris, rivoli
}

func equalIntSlices(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestGoLayer_StreetSynonymTokenJoinsCertainty drives recordAndRecurse's
// street-synonym branch (spec §4.5 step 4, §9's "at most one synonym mark
// per recursion level") directly, asserting the exact tokenIds and raw
// certainty it produces before the query-level test asserts the normalized
// result.
func TestGoLayer_StreetSynonymTokenJoinsCertainty(t *testing.T) {
	h, paris, rivoli := buildSynonymHierarchy()
	g := NewGeocoder(h, 1)

	tokens := geotext.Tokenize(geotext.Normalize("rivoli street paris"))
	ctx := NewContext(tokens, DefaultBeamSize)
	g.goLayer(ctx, Country)

	var streetEntry *BeamEntry
	for _, e := range ctx.Beam().Entries() {
		if e.Key.OsmId == rivoli {
			entry := e
			streetEntry = &entry
			break // Entries() is sorted by descending score; first hit is the best one
		}
	}
	if streetEntry == nil {
		t.Fatal("no beam entry recorded for the street")
	}

	// "street" (token 1) has no entry of its own; IsStreetSynonym must fold
	// it into the street match alongside the street token (0) and the
	// locality token (2) - never left unassigned, never a second street mark.
	wantTokenIds := []int{0, 1, 2}
	if !equalIntSlices(streetEntry.Key.TokenIds, wantTokenIds) {
		t.Fatalf("street TokenIds = %v, want %v", streetEntry.Key.TokenIds, wantTokenIds)
	}
	wantTypes := []Type{Street, Street, Locality}
	if len(streetEntry.Key.AllTypes) != len(wantTypes) {
		t.Fatalf("street AllTypes = %v, want %v", streetEntry.Key.AllTypes, wantTypes)
	}
	for i, wt := range wantTypes {
		if streetEntry.Key.AllTypes[i] != wt {
			t.Fatalf("street AllTypes = %v, want %v", streetEntry.Key.AllTypes, wantTypes)
		}
	}

	// Street(1.0) + synonym-marked Street(1.0) + Locality(3.0) = 5.0.
	if !approxEqual(streetEntry.Score, 5.0) {
		t.Fatalf("street raw certainty = %v, want 5.0", streetEntry.Score)
	}

	results := fillResults(ctx)
	if len(results) == 0 || results[0].OsmId != rivoli {
		t.Fatalf("results = %+v, want top result to be the street", results)
	}
	if !approxEqual(results[0].Certainty, 1.0) {
		t.Errorf("top certainty = %v, want 1.0", results[0].Certainty)
	}

	parisResult, ok := findResult(results, paris)
	if !ok {
		t.Fatal("paris missing from results")
	}
	if !approxEqual(parisResult.Certainty, 3.0/5.0) {
		t.Errorf("paris certainty = %v, want %v", parisResult.Certainty, 3.0/5.0)
	}
}
