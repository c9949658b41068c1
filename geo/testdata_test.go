package geo

import "github.com/gcbaptista/go-geocoder/geotext"

// seedIds are the object ids used by the end-to-end scenarios in spec §8:
// a France > Île-de-France > Paris > Rue de Rivoli > "1" chain.
var (
	seedFrance  = GeoObjectId{Source: 1, ID: 1}
	seedRegion  = GeoObjectId{Source: 1, ID: 2}
	seedParis   = GeoObjectId{Source: 1, ID: 3}
	seedRivoli  = GeoObjectId{Source: 1, ID: 4}
	seedBuild1  = GeoObjectId{Source: 1, ID: 5}
	seedUnknown = GeoObjectId{Source: 1, ID: 99}
)

// buildSeedHierarchy builds the hierarchy fixture described in spec §8:
// country "france" (F), region "île-de-france" (R, ancestor F), locality
// "paris" (P, ancestors F, R), street "rue de rivoli" in P (S, ancestors F,
// R, P), building "1" on S (B1, ancestors F, R, P, S).
func buildSeedHierarchy() (*Hierarchy, *NameDict) {
	dict := NewNameDict()
	name := func(s string) []int { return []int{dict.Intern(geotext.Normalize(s))} }

	entries := []Entry{
		{ID: seedFrance, Type: Country, Names: name("france")},
		{ID: seedRegion, Type: Region, Names: name("ile de france"), Ancestors: []GeoObjectId{seedFrance}},
		{ID: seedParis, Type: Locality, Names: name("paris"), Ancestors: []GeoObjectId{seedFrance, seedRegion}},
		{ID: seedRivoli, Type: Street, Names: name("rue de rivoli"), Ancestors: []GeoObjectId{seedFrance, seedRegion, seedParis}},
		{ID: seedBuild1, Type: Building, Names: name("1"), Ancestors: []GeoObjectId{seedFrance, seedRegion, seedParis, seedRivoli}},
	}

	h, err := BuildHierarchy(entries, dict)
	if err != nil {
		panic(err) // fixture is known-good; a failure here is a test bug
	}
	return h, dict
}

func newSeedGeocoder() *Geocoder {
	h, _ := buildSeedHierarchy()
	return NewGeocoder(h, 2)
}
