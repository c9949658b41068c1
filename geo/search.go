package geo

import (
	"strings"

	"github.com/gcbaptista/go-geocoder/geotext"
)

// goLayer is the recursive layered enumerator (spec §4.5, "Go"). It
// decomposes the remaining query into contiguous token subranges, tries to
// assign each subrange to a candidate at the current type, applies the
// hierarchy-consistency check, records certainties into the beam, and
// recurses to the next type - both under an assignment and, after trying
// every start position, once more while skipping this type entirely.
func (g *Geocoder) goLayer(ctx *Context, t Type) {
	if ctx.NumTokens() == 0 {
		return
	}
	if ctx.AllTokensUsed() {
		return
	}
	if t == Count {
		return
	}

	for i := 0; i < ctx.NumTokens(); i++ {
		var subquery []string
		var subqueryTokenIds []int

		for j := i; j < ctx.NumTokens(); j++ {
			if ctx.IsTokenUsed(j) {
				break
			}
			subquery = append(subquery, ctx.Token(j))
			subqueryTokenIds = append(subqueryTokenIds, j)

			curLayer := Layer{Type: t}
			if t == Building {
				g.fillBuildingsLayer(ctx, subquery, subqueryTokenIds, &curLayer)
			} else {
				g.fillRegularLayer(ctx, t, subquery, &curLayer)
			}

			if len(curLayer.Entries) == 0 {
				continue
			}

			g.recordAndRecurse(ctx, t, i, j, curLayer)
		}
	}

	g.goLayer(ctx, NextType(t))
}

// recordAndRecurse marks tokens [i, j] as t, records a beam entry for every
// candidate in curLayer, pushes curLayer, and recurses into the next type.
// All marking and stack changes are unwound via defer on every exit path,
// including panics (spec §4.4, §9).
func (g *Geocoder) recordAndRecurse(ctx *Context, t Type, i, j int, curLayer Layer) {
	unmark := ctx.MarkRange(i, j+1, t)
	defer unmark()

	// At most one street-synonym token gets an additional, single-token
	// mark per Street-level recursion (spec §4.5, §9).
	var unmarkSynonym func()
	if t == Street {
		for tokId := 0; tokId < ctx.NumTokens(); tokId++ {
			if ctx.TokenType(tokId) != Count {
				continue
			}
			if geotext.IsStreetSynonym(ctx.Token(tokId)) {
				unmarkSynonym = ctx.MarkRange(tokId, tokId+1, Street)
				break
			}
		}
	}
	if unmarkSynonym != nil {
		defer unmarkSynonym()
	}

	certainty := 0.0
	var tokenIds []int
	var allTypes []Type
	for tokId := 0; tokId < ctx.NumTokens(); tokId++ {
		tt := ctx.TokenType(tokId)
		certainty += typeWeight(tt)
		if tt != Count {
			tokenIds = append(tokenIds, tokId)
			allTypes = append(allTypes, tt)
		}
	}

	for _, docId := range curLayer.Entries {
		ctx.AddResult(g.index.GetDoc(docId).ID, certainty, t, tokenIds, allTypes)
	}

	popLayer := ctx.PushLayer(curLayer)
	defer popLayer()

	g.goLayer(ctx, NextType(t))
}

// fillRegularLayer fills curLayer with every DocId of type t whose entry is
// contained by every token of subquery and, when a layer stack already
// exists, is a hierarchy-child of some entry in the current top layer (spec
// §4.5, "FillRegularLayer").
func (g *Geocoder) fillRegularLayer(ctx *Context, t Type, subquery []string, curLayer *Layer) {
	g.index.ForEachDocId(subquery, func(docId DocId) {
		d := g.index.GetDoc(docId)
		if d.Type != t {
			return
		}
		if len(ctx.Layers()) == 0 || g.hasParent(ctx.Layers(), d) {
			curLayer.Entries = append(curLayer.Entries, docId)
		}
	})
}

// fillBuildingsLayer fills curLayer with buildings whose house-number name
// matches subquery, restricted to buildings related to a Street or Locality
// entry already on the layer stack (spec §4.5, "FillBuildingsLayer").
func (g *Geocoder) fillBuildingsLayer(ctx *Context, subquery []string, subqueryTokenIds []int, curLayer *Layer) {
	if len(ctx.Layers()) == 0 {
		return
	}

	subqueryHN := strings.Join(subquery, " ")
	if !geotext.LooksLikeHouseNumber(subqueryHN, false) {
		return
	}

	layers := ctx.Layers()
	for i := len(layers) - 1; i >= 0; i-- {
		layer := layers[i]
		if layer.Type != Street && layer.Type != Locality {
			continue
		}

		ctx.MarkHouseNumberPositions(subqueryTokenIds)

		for _, docId := range layer.Entries {
			g.index.ForEachRelatedBuilding(docId, func(buildingDocId DocId) {
				bld := g.index.GetDoc(buildingDocId)
				mainName := bld.MainName(g.hierarchy.NameDict())
				if geotext.HouseNumbersMatch(mainName, subqueryHN, false) {
					curLayer.Entries = append(curLayer.Entries, buildingDocId)
				}
			})
		}
	}
}

// hasParent reports whether e is a hierarchy-child of some entry in the top
// layer of layers.
func (g *Geocoder) hasParent(layers []Layer, e Entry) bool {
	top := layers[len(layers)-1]
	for _, docId := range top.Entries {
		if g.hierarchy.IsParentTo(g.index.GetDoc(docId), e) {
			return true
		}
	}
	return false
}
