package geo

import "github.com/gcbaptista/go-geocoder/geotext"

// DefaultBeamSize is the K used by ProcessQuery's beam unless overridden via
// NewGeocoderWithBeamSize (spec §3, §4.3: K=100).
const DefaultBeamSize = 100

// MaxResults is the maximum number of results ProcessQuery ever returns
// (spec §4.6).
const MaxResults = 100

// Geocoder is the public entry point of the hierarchical geocoder core. It
// owns an immutable Hierarchy and the Index built over it; both are shared,
// read-only, across every concurrent ProcessQuery call (spec §4.7, §5).
type Geocoder struct {
	hierarchy *Hierarchy
	index     *Index
	beamSize  int
}

// NewGeocoder takes ownership of hierarchy and builds its Index using
// loadThreads worker goroutines.
func NewGeocoder(hierarchy *Hierarchy, loadThreads int) *Geocoder {
	return &Geocoder{
		hierarchy: hierarchy,
		index:     BuildIndex(hierarchy, loadThreads),
		beamSize:  DefaultBeamSize,
	}
}

// NewGeocoderWithBeamSize is like NewGeocoder but overrides the beam's K,
// mainly useful for tests that want to exercise beam eviction with a small
// hierarchy.
func NewGeocoderWithBeamSize(hierarchy *Hierarchy, loadThreads, beamSize int) *Geocoder {
	g := NewGeocoder(hierarchy, loadThreads)
	if beamSize > 0 {
		g.beamSize = beamSize
	}
	return g
}

// Hierarchy returns the read-only Hierarchy backing this Geocoder.
func (g *Geocoder) Hierarchy() *Hierarchy { return g.hierarchy }

// Index returns the read-only Index backing this Geocoder.
func (g *Geocoder) Index() *Index { return g.index }

// Result is a single ranked match: an object id and a certainty in (0, 1].
type Result struct {
	OsmId     GeoObjectId
	Certainty float64
}

// ProcessQuery normalizes and tokenizes query, runs the layered search, and
// returns up to MaxResults matches sorted by descending certainty. Query-time
// processing never fails: malformed or empty input simply yields an empty
// result list (spec §4.7, §7).
func (g *Geocoder) ProcessQuery(query string) []Result {
	tokens := geotext.Tokenize(geotext.Normalize(query))
	ctx := NewContext(tokens, g.beamSize)
	g.goLayer(ctx, Country)
	results := fillResults(ctx)
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}
