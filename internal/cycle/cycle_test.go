package cycle

import "testing"

type ident uint32

func (i ident) ID() Ident {
	return Ident(i)
}

func newFixture(unwindable bool) *Cycle[ident] {
	return New([]ident{0, 10, 20, 30, 40, 50, 60}, unwindable)
}

func assertIndices(t *testing.T, c *Cycle[ident], want map[Ident]Index) {
	t.Helper()

	for id, index := range want {
		got, ok := c.indices[id]
		if !ok {
			t.Fatalf("ident %d missing from index map, want index %d", id, index)
		}
		if got != index {
			t.Fatalf("ident %d at index %d, want %d", id, got, index)
		}
	}

	if len(c.indices) != len(want) {
		t.Fatalf("index map holds %d entries, want %d", len(c.indices), len(want))
	}

	for i, e := range c.elements {
		if c.indices[e.ID()] != i {
			t.Fatalf("ident %d maps to %d but sits at %d", e.ID(), c.indices[e.ID()], i)
		}
	}
}

func TestRemovingElementBeforeFocus(t *testing.T) {
	c := newFixture(false)

	if c.ActiveIndex() != 6 {
		t.Fatalf("active index = %d, want 6", c.ActiveIndex())
	}

	c.RemoveFor(AtIndex[ident](2))
	if c.ActiveIndex() != 5 {
		t.Fatalf("active index = %d, want 5", c.ActiveIndex())
	}
	assertIndices(t, c, map[Ident]Index{0: 0, 10: 1, 30: 2, 40: 3, 50: 4, 60: 5})

	c.RemoveFor(AtIndex[ident](2))
	if c.ActiveIndex() != 4 {
		t.Fatalf("active index = %d, want 4", c.ActiveIndex())
	}
	assertIndices(t, c, map[Ident]Index{0: 0, 10: 1, 40: 2, 50: 3, 60: 4})

	c.RemoveFor(AtIndex[ident](2))
	if c.ActiveIndex() != 3 {
		t.Fatalf("active index = %d, want 3", c.ActiveIndex())
	}
	assertIndices(t, c, map[Ident]Index{0: 0, 10: 1, 50: 2, 60: 3})

	c.RemoveFor(AtIndex[ident](2))
	if c.ActiveIndex() != 2 {
		t.Fatalf("active index = %d, want 2", c.ActiveIndex())
	}
	assertIndices(t, c, map[Ident]Index{0: 0, 10: 1, 60: 2})

	c.RemoveFor(AtIndex[ident](2))
	if c.ActiveIndex() != 1 {
		t.Fatalf("active index = %d, want 1", c.ActiveIndex())
	}
	assertIndices(t, c, map[Ident]Index{0: 0, 10: 1})

	// Out-of-range removal is a no-op.
	c.RemoveFor(AtIndex[ident](2))
	if c.ActiveIndex() != 1 {
		t.Fatalf("active index = %d, want 1", c.ActiveIndex())
	}
	assertIndices(t, c, map[Ident]Index{0: 0, 10: 1})

	c.RemoveFor(AtIndex[ident](1))
	if c.ActiveIndex() != 0 {
		t.Fatalf("active index = %d, want 0", c.ActiveIndex())
	}
	assertIndices(t, c, map[Ident]Index{0: 0})

	c.RemoveFor(AtIndex[ident](0))
	if c.ActiveIndex() != 0 {
		t.Fatalf("active index = %d, want 0", c.ActiveIndex())
	}
	assertIndices(t, c, map[Ident]Index{})
}

func TestRemovingLastElementAtFocus(t *testing.T) {
	c := newFixture(false)

	if c.ActiveIndex() != 6 {
		t.Fatalf("active index = %d, want 6", c.ActiveIndex())
	}

	c.RemoveFor(AtIndex[ident](6))
	if c.ActiveIndex() != 5 {
		t.Fatalf("active index = %d, want 5", c.ActiveIndex())
	}
	assertIndices(t, c, map[Ident]Index{0: 0, 10: 1, 20: 2, 30: 3, 40: 4, 50: 5})

	c.RemoveFor(AtIndex[ident](6))
	if c.ActiveIndex() != 5 {
		t.Fatalf("active index = %d, want 5", c.ActiveIndex())
	}
	assertIndices(t, c, map[Ident]Index{0: 0, 10: 1, 20: 2, 30: 3, 40: 4, 50: 5})

	for want := 4; want >= 0; want-- {
		c.RemoveFor(AtIndex[ident](want + 1))
		if c.ActiveIndex() != want {
			t.Fatalf("active index = %d, want %d", c.ActiveIndex(), want)
		}
	}
	assertIndices(t, c, map[Ident]Index{0: 0})

	c.RemoveFor(AtIndex[ident](0))
	if c.ActiveIndex() != 0 {
		t.Fatalf("active index = %d, want 0", c.ActiveIndex())
	}
	assertIndices(t, c, map[Ident]Index{})

	c.RemoveFor(AtIndex[ident](0))
	if c.ActiveIndex() != 0 {
		t.Fatalf("active index = %d, want 0", c.ActiveIndex())
	}
}

func TestRemovingFirstElementAtFocus(t *testing.T) {
	c := newFixture(false)

	if c.ActiveIndex() != 6 {
		t.Fatalf("active index = %d, want 6", c.ActiveIndex())
	}

	c.ActivateFor(AtIndex[ident](0))
	if c.ActiveIndex() != 0 {
		t.Fatalf("active index = %d, want 0", c.ActiveIndex())
	}

	// Without a history stack, removing the active first element falls
	// back to the new last index.
	c.RemoveFor(AtIndex[ident](0))
	if c.ActiveIndex() != 5 {
		t.Fatalf("active index = %d, want 5", c.ActiveIndex())
	}
	assertIndices(t, c, map[Ident]Index{10: 0, 20: 1, 30: 2, 40: 3, 50: 4, 60: 5})

	if e, ok := c.Get(5); !ok || e != 60 {
		t.Fatalf("element at 5 = %v, want 60", e)
	}

	for want := 4; want >= 0; want-- {
		c.ActivateFor(AtIndex[ident](0))
		c.RemoveFor(AtIndex[ident](0))
		if c.ActiveIndex() != want {
			t.Fatalf("active index = %d, want %d", c.ActiveIndex(), want)
		}
	}

	c.ActivateFor(AtIndex[ident](0))
	c.RemoveFor(AtIndex[ident](0))
	if c.ActiveIndex() != 0 {
		t.Fatalf("active index = %d, want 0", c.ActiveIndex())
	}
	assertIndices(t, c, map[Ident]Index{})
}

func TestUnwindableRemovalRestoresPreviousActive(t *testing.T) {
	c := newFixture(true)

	c.ActivateFor(AtIdent[ident](20))
	c.ActivateFor(AtIdent[ident](40))

	// 40 is active; removing it must reactivate 20, the most recently
	// active ident still present.
	c.RemoveFor(AtActive[ident]())

	e, ok := c.ActiveElement()
	if !ok || e != 20 {
		t.Fatalf("active element = %v, want 20", e)
	}
}

func TestUnwindSkipsRemovedIdents(t *testing.T) {
	c := newFixture(true)

	c.ActivateFor(AtIdent[ident](10))
	c.ActivateFor(AtIdent[ident](30))

	// 10 is on the history stack but leaves the cycle before the unwind.
	c.RemoveFor(AtIdent[ident](10))
	c.RemoveFor(AtActive[ident]())

	e, ok := c.ActiveElement()
	if !ok {
		t.Fatalf("no active element after unwind")
	}
	if e == 30 || e == 10 {
		t.Fatalf("active element = %v, want a still-present ident", e)
	}
}

func TestInsertAfterActiveMakesInsertedActive(t *testing.T) {
	c := New([]ident{1, 2, 3}, true)

	c.ActivateFor(AtIdent[ident](2))
	c.InsertAt(AfterActive(), ident(9))

	e, ok := c.ActiveElement()
	if !ok || e != 9 {
		t.Fatalf("active element = %v, want 9", e)
	}
	if index, ok := c.IndexFor(AtIdent[ident](9)); !ok || index != 2 {
		t.Fatalf("ident 9 at index %d, want 2", index)
	}
	if index, ok := c.IndexFor(AtIdent[ident](3)); !ok || index != 3 {
		t.Fatalf("ident 3 at index %d, want 3", index)
	}
	assertIndices(t, c, map[Ident]Index{1: 0, 2: 1, 9: 2, 3: 3})
}

func TestRotateRebuildsIndices(t *testing.T) {
	c := New([]ident{1, 2, 3, 4}, false)

	c.Rotate(Forward)
	assertIndices(t, c, map[Ident]Index{4: 0, 1: 1, 2: 2, 3: 3})

	c.Rotate(Backward)
	assertIndices(t, c, map[Ident]Index{1: 0, 2: 1, 3: 2, 4: 3})
}

func TestDragActiveSwapsAndFollows(t *testing.T) {
	c := New([]ident{1, 2, 3, 4}, false)

	c.ActivateFor(AtIdent[ident](2))
	c.DragActive(Forward)

	if e, ok := c.ActiveElement(); !ok || e != 2 {
		t.Fatalf("active element = %v, want 2", e)
	}
	if index, _ := c.IndexFor(AtIdent[ident](2)); index != 2 {
		t.Fatalf("ident 2 at index %d, want 2", index)
	}
	if index, _ := c.IndexFor(AtIdent[ident](3)); index != 1 {
		t.Fatalf("ident 3 at index %d, want 1", index)
	}
}

func TestDragActiveAtBoundaryRotates(t *testing.T) {
	c := New([]ident{1, 2, 3}, false)

	// Active is the last element; dragging forward wraps via rotation.
	c.DragActive(Forward)

	assertIndices(t, c, map[Ident]Index{3: 0, 1: 1, 2: 2})
	if e, ok := c.ActiveElement(); !ok || e != 3 {
		t.Fatalf("active element = %v, want 3", e)
	}
}

func TestNextWillWrap(t *testing.T) {
	c := New([]ident{1, 2, 3}, false)

	if !c.NextWillWrap(Forward) {
		t.Fatalf("active at last index must wrap forward")
	}
	if c.NextWillWrap(Backward) {
		t.Fatalf("active at last index must not wrap backward")
	}

	c.ActivateFor(First[ident]())
	if !c.NextWillWrap(Backward) {
		t.Fatalf("active at first index must wrap backward")
	}
	if c.NextWillWrap(Forward) {
		t.Fatalf("active at first index must not wrap forward")
	}
}

func TestStackAfterFocus(t *testing.T) {
	c := newFixture(true)

	c.ActivateFor(AtIdent[ident](10))
	c.ActivateFor(AtIdent[ident](30))
	c.ActivateFor(AtIdent[ident](50))

	stack := c.StackAfterFocus()
	if len(stack) == 0 || stack[len(stack)-1] != 50 {
		t.Fatalf("stack after focus = %v, want active ident 50 last", stack)
	}

	for _, id := range stack[:len(stack)-1] {
		if id == 50 {
			t.Fatalf("active ident 50 occurs twice in %v", stack)
		}
	}
}

func TestSelectorsResolveConsistently(t *testing.T) {
	c := newFixture(false)

	if e, ok := c.GetFor(First[ident]()); !ok || e != 0 {
		t.Fatalf("First = %v, want 0", e)
	}
	if e, ok := c.GetFor(Last[ident]()); !ok || e != 60 {
		t.Fatalf("Last = %v, want 60", e)
	}
	if e, ok := c.GetFor(AtIdent[ident](40)); !ok || e != 40 {
		t.Fatalf("AtIdent(40) = %v, want 40", e)
	}
	if _, ok := c.GetFor(AtIdent[ident](99)); ok {
		t.Fatalf("AtIdent(99) resolved on a cycle that never held it")
	}

	matches := c.GetAllFor(ForCond[ident](func(e ident) bool { return e >= 40 }))
	if len(matches) != 3 {
		t.Fatalf("ForCond matched %d elements, want 3", len(matches))
	}
}

func TestCycleActivePushesHistory(t *testing.T) {
	c := New([]ident{1, 2, 3}, true)

	c.CycleActive(Forward)
	if e, _ := c.ActiveElement(); e != 1 {
		t.Fatalf("active element = %v, want 1 after wrapping forward", e)
	}

	stack := c.Stack()
	if len(stack) != 1 || stack[0] != 3 {
		t.Fatalf("history stack = %v, want [3]", stack)
	}
}
