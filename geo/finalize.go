package geo

// fillResults drains ctx's beam, dedupes by object id (first-wins, since
// the beam is already sorted by descending certainty), applies the
// house-number filter when the query touched any potential house-number
// token, and normalizes certainties to (0, 1] with the top result at
// exactly 1.0 (spec §4.6).
func fillResults(ctx *Context) []Result {
	entries := ctx.Beam().Entries()
	results := make([]Result, 0, len(entries))

	seen := make(map[GeoObjectId]struct{}, len(entries))
	hnPositions := ctx.HouseNumberPositions()
	hasPotentialHouseNumber := len(hnPositions) > 0

	for _, e := range entries {
		if _, dup := seen[e.Key.OsmId]; dup {
			continue
		}
		seen[e.Key.OsmId] = struct{}{}

		if hasPotentialHouseNumber && !isGoodForPotentialHouseNumberAt(e.Key, hnPositions, ctx.NumTokens()) {
			continue
		}

		results = append(results, Result{OsmId: e.Key.OsmId, Certainty: e.Score})
	}

	if len(results) > 0 {
		top := results[0].Certainty
		if top != 0 {
			for i := range results {
				results[i].Certainty /= top
			}
		}
	}

	return results
}

// isGoodForPotentialHouseNumberAt implements the final-stage house-number
// filter (spec §4.6): a candidate survives if it used every query token, or
// is a building with a full locality/region + street + building address, or
// carries a locality/region and covers every house-number token position.
func isGoodForPotentialHouseNumberAt(key BeamKey, hnTokenIds map[int]struct{}, numTokens int) bool {
	if len(key.TokenIds) == numTokens {
		return true
	}

	if isBuildingWithAddress(key) {
		return true
	}

	if hasLocalityOrRegion(key) && containsTokenIds(key, hnTokenIds) {
		return true
	}

	return false
}

func isBuildingWithAddress(key BeamKey) bool {
	if key.Type != Building {
		return false
	}
	var gotLocality, gotStreet, gotBuilding bool
	for _, t := range key.AllTypes {
		switch t {
		case Region, Subregion, Locality:
			gotLocality = true
		case Street:
			gotStreet = true
		case Building:
			gotBuilding = true
		}
	}
	return gotLocality && gotStreet && gotBuilding
}

func hasLocalityOrRegion(key BeamKey) bool {
	for _, t := range key.AllTypes {
		if t == Region || t == Subregion || t == Locality {
			return true
		}
	}
	return false
}

// containsTokenIds reports whether key's used tokens are a superset of
// needTokenIds.
func containsTokenIds(key BeamKey, needTokenIds map[int]struct{}) bool {
	have := make(map[int]struct{}, len(key.TokenIds))
	for _, id := range key.TokenIds {
		have[id] = struct{}{}
	}
	for id := range needTokenIds {
		if _, ok := have[id]; !ok {
			return false
		}
	}
	return true
}
