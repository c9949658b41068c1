package geo

// Layer is the candidate set built at one Type level during one recursion
// frame of the search engine (spec §3).
type Layer struct {
	Type    Type
	Entries []DocId
}

// Context is the mutable per-query state threaded through one ProcessQuery
// invocation. It is exclusively owned by that invocation and never escapes
// it (spec §3, §5).
type Context struct {
	tokens               []string
	tokenTypes           []Type
	numUsedTokens        int
	layers               []Layer
	beam                 *Beam
	houseNumberPositions map[int]struct{}
}

// NewContext builds a Context over an already-tokenized query.
func NewContext(tokens []string, beamSize int) *Context {
	types := make([]Type, len(tokens))
	for i := range types {
		types[i] = Count
	}
	return &Context{
		tokens:               tokens,
		tokenTypes:           types,
		beam:                 NewBeam(beamSize),
		houseNumberPositions: make(map[int]struct{}),
	}
}

// NumTokens returns the number of tokens in the query.
func (c *Context) NumTokens() int { return len(c.tokens) }

// Token returns the normalized token at position i.
func (c *Context) Token(i int) string { return c.tokens[i] }

// TokenType returns the type currently assigned to token i (Count if
// unassigned).
func (c *Context) TokenType(i int) Type { return c.tokenTypes[i] }

// IsTokenUsed reports whether token i currently has a type other than
// Count.
func (c *Context) IsTokenUsed(i int) bool { return c.tokenTypes[i] != Count }

// AllTokensUsed reports whether every token currently has a type.
func (c *Context) AllTokensUsed() bool { return c.numUsedTokens == len(c.tokens) }

// MarkToken sets the type of token i, maintaining the numUsedTokens
// invariant: numUsedTokens == count(tokenTypes[i] != Count). Marking with
// type == Count clears the token.
func (c *Context) MarkToken(i int, t Type) {
	wasUsed := c.tokenTypes[i] != Count
	c.tokenTypes[i] = t
	nowUsed := c.tokenTypes[i] != Count

	if wasUsed && !nowUsed {
		c.numUsedTokens--
	}
	if !wasUsed && nowUsed {
		c.numUsedTokens++
	}
}

// MarkRange marks tokens [l, r) as t and returns a function that restores
// every one of them to Count. The caller must invoke the returned function
// on every exit path (normal return, early return, or panic unwinding) via
// defer, so that scope-marking is always balanced (spec §4.4, §9):
//
//	unmark := ctx.MarkRange(i, j+1, Street)
//	defer unmark()
func (c *Context) MarkRange(l, r int, t Type) func() {
	for i := l; i < r; i++ {
		c.MarkToken(i, t)
	}
	return func() {
		for i := l; i < r; i++ {
			c.MarkToken(i, Count)
		}
	}
}

// PushLayer pushes l onto the layer stack and returns a function that pops
// it; the caller must invoke it on every exit path via defer.
func (c *Context) PushLayer(l Layer) func() {
	c.layers = append(c.layers, l)
	return func() {
		c.layers = c.layers[:len(c.layers)-1]
	}
}

// Layers returns the current layer stack, top (most recently pushed) last.
func (c *Context) Layers() []Layer { return c.layers }

// MarkHouseNumberPositions records tokenIds as having been treated as a
// potential house number at some point during the query. The set only ever
// grows over the lifetime of one query (spec §3, §4.5).
func (c *Context) MarkHouseNumberPositions(tokenIds []int) {
	for _, id := range tokenIds {
		c.houseNumberPositions[id] = struct{}{}
	}
}

// HouseNumberPositions returns the accumulated set of token positions ever
// marked as a potential house number.
func (c *Context) HouseNumberPositions() map[int]struct{} {
	return c.houseNumberPositions
}

// AddResult snapshots the currently-assigned tokens/types into a BeamKey and
// inserts it into the beam with the given certainty score (spec §4.4).
func (c *Context) AddResult(osmId GeoObjectId, certainty float64, t Type, tokenIds []int, allTypes []Type) {
	key := BeamKey{
		OsmId:    osmId,
		Type:     t,
		TokenIds: append([]int(nil), tokenIds...),
		AllTypes: append([]Type(nil), allTypes...),
	}
	c.beam.Add(key, certainty)
}

// Beam exposes the underlying beam for the result finalizer.
func (c *Context) Beam() *Beam { return c.beam }
