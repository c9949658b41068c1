package geo

import (
	"sort"
	"sync"

	"github.com/gcbaptista/go-geocoder/geotext"
)

// DocId is a dense 0-based integer over the entries loaded into an Index.
// It is stable for the lifetime of one Index (spec §3).
type DocId uint32

// Index is a token-indexed corpus over a Hierarchy: it maps normalized
// tokens to the DocIds of entries whose names contain them, and maintains a
// secondary street-to-buildings relation used by the building layer. It is
// built once (optionally with several worker goroutines) and is read-only,
// safe for concurrent use, afterwards (spec §4.2, §5).
type Index struct {
	docs             []Entry
	idToDoc          map[GeoObjectId]DocId
	tokenPostings    map[string][]DocId
	relatedBuildings map[DocId][]DocId
}

// shardResult is the partial output of one worker's slice of the doc list.
type shardResult struct {
	tokenPostings    map[string][]DocId
	relatedBuildings map[DocId][]DocId
}

// BuildIndex constructs an Index over every entry in h. Tokenization and
// posting-list construction are sharded across loadThreads worker
// goroutines (spec §4.2, §5); the public Index is immutable once this
// returns.
func BuildIndex(h *Hierarchy, loadThreads int) *Index {
	entries := h.Entries()
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID.Less(entries[j].ID) })

	idToDoc := make(map[GeoObjectId]DocId, len(entries))
	for i, e := range entries {
		idToDoc[e.ID] = DocId(i)
	}

	if loadThreads < 1 {
		loadThreads = 1
	}
	if loadThreads > len(entries) && len(entries) > 0 {
		loadThreads = len(entries)
	}

	dict := h.NameDict()

	shardResults := make([]shardResult, loadThreads)
	if loadThreads <= 1 || len(entries) == 0 {
		if len(entries) > 0 {
			shardResults[0] = buildShard(entries, 0, entries, idToDoc, dict)
		}
	} else {
		var wg sync.WaitGroup
		shardSize := (len(entries) + loadThreads - 1) / loadThreads
		for w := 0; w < loadThreads; w++ {
			lo := w * shardSize
			hi := lo + shardSize
			if hi > len(entries) {
				hi = len(entries)
			}
			if lo >= hi {
				continue
			}
			wg.Add(1)
			go func(w, lo, hi int) {
				defer wg.Done()
				shardResults[w] = buildShard(entries[lo:hi], DocId(lo), entries, idToDoc, dict)
			}(w, lo, hi)
		}
		wg.Wait()
	}

	tokenPostings := make(map[string][]DocId)
	relatedBuildings := make(map[DocId][]DocId)
	for _, sr := range shardResults {
		for tok, ids := range sr.tokenPostings {
			tokenPostings[tok] = append(tokenPostings[tok], ids...)
		}
		for streetDoc, ids := range sr.relatedBuildings {
			relatedBuildings[streetDoc] = append(relatedBuildings[streetDoc], ids...)
		}
	}
	for tok, ids := range tokenPostings {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		tokenPostings[tok] = ids
	}

	return &Index{
		docs:             entries,
		idToDoc:          idToDoc,
		tokenPostings:    tokenPostings,
		relatedBuildings: relatedBuildings,
	}
}

// buildShard tokenizes entries[lo:hi] (whose absolute DocIds start at
// baseDoc) and computes the token postings and street->building
// relationships contributed by this shard alone. docs is the full DocId-ordered
// entry list, used to look up the type of a building's ancestors.
func buildShard(shard []Entry, baseDoc DocId, docs []Entry, idToDoc map[GeoObjectId]DocId, dict *NameDict) shardResult {
	res := shardResult{
		tokenPostings:    make(map[string][]DocId),
		relatedBuildings: make(map[DocId][]DocId),
	}

	for i, e := range shard {
		docID := baseDoc + DocId(i)

		seen := make(map[string]struct{})
		for _, nameID := range e.Names {
			for _, tok := range geotext.Tokenize(dict.Get(nameID)) {
				if _, ok := seen[tok]; ok {
					continue
				}
				seen[tok] = struct{}{}
				res.tokenPostings[tok] = append(res.tokenPostings[tok], docID)
			}
		}

		if e.Type == Building {
			for _, a := range e.Ancestors {
				if streetDoc, ok := idToDoc[a]; ok && docs[streetDoc].Type == Street {
					res.relatedBuildings[streetDoc] = append(res.relatedBuildings[streetDoc], docID)
				}
			}
		}
	}

	return res
}

// ForEachDocId visits, exactly once and in ascending DocId order, every
// DocId whose entry's names contain every token in tokens (multiset
// containment over distinct tokens, order-insensitive; spec §4.2).
func (ix *Index) ForEachDocId(tokens []string, visit func(DocId)) {
	distinct := dedupeTokens(tokens)
	if len(distinct) == 0 {
		return
	}

	lists := make([][]DocId, 0, len(distinct))
	for _, tok := range distinct {
		list, ok := ix.tokenPostings[tok]
		if !ok {
			return // a token with no postings means no entry can contain it
		}
		lists = append(lists, list)
	}
	sort.Slice(lists, func(i, j int) bool { return len(lists[i]) < len(lists[j]) })

	for _, docID := range lists[0] {
		inAll := true
		for _, list := range lists[1:] {
			if !containsDocID(list, docID) {
				inAll = false
				break
			}
		}
		if inAll {
			visit(docID)
		}
	}
}

func containsDocID(sorted []DocId, id DocId) bool {
	i := sort.Search(len(sorted), func(i int) bool { return sorted[i] >= id })
	return i < len(sorted) && sorted[i] == id
}

func dedupeTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ForEachRelatedBuilding visits every Building DocId registered under
// streetDocId, in insertion (construction) order (spec §4.2).
func (ix *Index) ForEachRelatedBuilding(streetDocId DocId, visit func(DocId)) {
	for _, b := range ix.relatedBuildings[streetDocId] {
		visit(b)
	}
}

// GetDoc returns the entry for docId in O(1).
func (ix *Index) GetDoc(docId DocId) Entry {
	return ix.docs[docId]
}

// Len returns the number of documents in the index.
func (ix *Index) Len() int {
	return len(ix.docs)
}
