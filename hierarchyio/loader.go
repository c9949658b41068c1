// Package hierarchyio decodes a hierarchy JSON source into a geo.Hierarchy.
// It owns the on-disk wire format entirely; the geo package never sees JSON.
package hierarchyio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/gcbaptista/go-geocoder/geo"
	"github.com/gcbaptista/go-geocoder/geotext"
	"github.com/gcbaptista/go-geocoder/internal/geoerrors"
)

// rawID is the wire shape of a GeoObjectId: {"source": "osm", "id": 123}.
type rawID struct {
	Source string `json:"source"`
	ID     uint64 `json:"id"`
}

// rawEntry is the wire shape of one hierarchy entry.
type rawEntry struct {
	ID      rawID             `json:"id"`
	Type    string            `json:"type"`
	Names   map[string]string `json:"names"`
	Address []rawID           `json:"address"`
}

var typeByName = map[string]geo.Type{
	"COUNTRY":     geo.Country,
	"REGION":      geo.Region,
	"SUBREGION":   geo.Subregion,
	"LOCALITY":    geo.Locality,
	"SUBURB":      geo.Suburb,
	"SUBLOCALITY": geo.Sublocality,
	"STREET":      geo.Street,
	"BUILDING":    geo.Building,
}

// sourceTag interns a rawID's source string into the small numeric tag
// geo.GeoObjectId carries. Sources are assigned in first-seen order and are
// stable for the lifetime of one Load call.
type sourceTag struct {
	byName map[string]uint8
}

func newSourceTag() *sourceTag {
	return &sourceTag{byName: make(map[string]uint8)}
}

func (s *sourceTag) intern(name string) uint8 {
	if tag, ok := s.byName[name]; ok {
		return tag
	}
	tag := uint8(len(s.byName))
	s.byName[name] = tag
	return tag
}

func (s *sourceTag) resolve(id rawID) geo.GeoObjectId {
	return geo.GeoObjectId{Source: s.intern(id.Source), ID: id.ID}
}

// LoadFile opens path and delegates to Load, wrapping open/read failures as
// an *geoerrors.IoError naming path.
func LoadFile(path string) (*geo.Hierarchy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, geoerrors.NewIoError(path, err)
	}
	defer f.Close()

	h, err := Load(f)
	if err != nil {
		if _, ok := err.(*geoerrors.BadHierarchyError); ok {
			return nil, err
		}
		return nil, geoerrors.NewIoError(path, err)
	}
	return h, nil
}

// Load decodes a JSON array of hierarchy entries from r, normalizes and
// interns their names, and builds a geo.Hierarchy. Type names are matched
// case-insensitively; an unrecognized type or a hierarchy-consistency
// failure (duplicate id, dangling ancestor) is returned as a
// *geoerrors.BadHierarchyError. Read/decode failures are returned as-is for
// the caller to classify (LoadFile wraps them as IoError).
func Load(r io.Reader) (*geo.Hierarchy, error) {
	var raws []rawEntry
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return nil, err
	}

	dict := geo.NewNameDict()
	tags := newSourceTag()
	entries := make([]geo.Entry, 0, len(raws))

	for _, raw := range raws {
		id := tags.resolve(raw.ID)

		t, ok := typeByName[normalizeTypeName(raw.Type)]
		if !ok {
			return nil, geoerrors.NewBadHierarchyError("unknown type", fmt.Sprintf("%s (id %s)", raw.Type, id))
		}

		names := internNames(dict, raw.Names)
		if len(names) == 0 {
			return nil, geoerrors.NewBadHierarchyError("entry has no usable name", id.String())
		}

		ancestors := make([]geo.GeoObjectId, len(raw.Address))
		for i, a := range raw.Address {
			ancestors[i] = tags.resolve(a)
		}

		entries = append(entries, geo.Entry{ID: id, Type: t, Names: names, Ancestors: ancestors})
	}

	h, err := geo.BuildHierarchy(entries, dict)
	if err != nil {
		if bad, ok := err.(*geo.BadHierarchyError); ok {
			return nil, geoerrors.NewBadHierarchyError(bad.Reason, bad.ID.String())
		}
		return nil, err
	}
	return h, nil
}

// internNames normalizes and interns every value of names, returning the
// resulting NameDict indices with the "default" key's name first (falling
// back to the lexicographically first key when "default" is absent, since
// Go's map iteration order is randomized and the wire format gives no
// ordering guarantee otherwise).
func internNames(dict *geo.NameDict, names map[string]string) []int {
	if len(names) == 0 {
		return nil
	}

	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	mainKey := keys[0]
	if _, ok := names["default"]; ok {
		mainKey = "default"
	}

	out := make([]int, 0, len(names))
	out = append(out, dict.Intern(geotext.Normalize(names[mainKey])))
	for _, k := range keys {
		if k == mainKey {
			continue
		}
		out = append(out, dict.Intern(geotext.Normalize(names[k])))
	}
	return out
}

func normalizeTypeName(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}
