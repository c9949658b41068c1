package geo

import "testing"

func TestContext_MarkTokenInvariant(t *testing.T) {
	ctx := NewContext([]string{"a", "b", "c"}, 10)

	if ctx.AllTokensUsed() {
		t.Fatal("AllTokensUsed() = true before any marking")
	}

	ctx.MarkToken(0, Country)
	if !ctx.IsTokenUsed(0) {
		t.Error("IsTokenUsed(0) = false after marking")
	}
	if ctx.AllTokensUsed() {
		t.Error("AllTokensUsed() = true with only 1/3 tokens marked")
	}

	ctx.MarkToken(1, Locality)
	ctx.MarkToken(2, Street)
	if !ctx.AllTokensUsed() {
		t.Error("AllTokensUsed() = false with all tokens marked")
	}

	// Re-marking an already-used token with another type must not double
	// count.
	ctx.MarkToken(0, Region)
	if !ctx.AllTokensUsed() {
		t.Error("AllTokensUsed() = false after re-marking an already-used token")
	}

	ctx.MarkToken(0, Count) // clear
	if ctx.AllTokensUsed() {
		t.Error("AllTokensUsed() = true after clearing a token")
	}
	if ctx.IsTokenUsed(0) {
		t.Error("IsTokenUsed(0) = true after clearing")
	}
}

func TestContext_MarkRangeUnwinds(t *testing.T) {
	ctx := NewContext([]string{"a", "b", "c"}, 10)

	unmark := ctx.MarkRange(0, 2, Locality)
	if !ctx.IsTokenUsed(0) || !ctx.IsTokenUsed(1) {
		t.Fatal("MarkRange did not mark [0,2)")
	}
	if ctx.IsTokenUsed(2) {
		t.Fatal("MarkRange marked token 2, out of range")
	}

	unmark()
	if ctx.IsTokenUsed(0) || ctx.IsTokenUsed(1) {
		t.Fatal("unmark() left tokens marked")
	}
}

func TestContext_PushPopLayer(t *testing.T) {
	ctx := NewContext([]string{"a"}, 10)

	if len(ctx.Layers()) != 0 {
		t.Fatal("Layers() not empty initially")
	}

	pop := ctx.PushLayer(Layer{Type: Locality, Entries: []DocId{0}})
	if len(ctx.Layers()) != 1 {
		t.Fatal("PushLayer did not push")
	}

	pop()
	if len(ctx.Layers()) != 0 {
		t.Fatal("pop() did not restore the empty stack")
	}
}

func TestContext_HouseNumberPositionsAccumulate(t *testing.T) {
	ctx := NewContext([]string{"1", "rue", "rivoli"}, 10)

	ctx.MarkHouseNumberPositions([]int{0})
	ctx.MarkHouseNumberPositions([]int{2})

	got := ctx.HouseNumberPositions()
	if _, ok := got[0]; !ok {
		t.Error("position 0 missing")
	}
	if _, ok := got[2]; !ok {
		t.Error("position 2 missing")
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}
