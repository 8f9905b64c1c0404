// Package cycle implements the ordered collection underlying client, zone
// and workspace bookkeeping: a sequence with O(1) identity lookup, a movable
// active cursor, positional insertion semantics and an optional history
// stack that restores a sensible active element after removals.
package cycle

type stackAction int

const (
	stackInsert stackAction = iota
	stackRemove
)

// Cycle is an ordered sequence of identifiable elements. The identity index
// is kept consistent with the sequence across every structural mutation.
// Operations referencing a missing index or ident are no-ops.
type Cycle[T Identify] struct {
	index    Index
	elements []T
	indices  map[Ident]Index

	unwindable bool
	stack      historyStack
}

// New creates a Cycle holding elements in order, with the last element
// active. When unwindable, removals of the active element unwind to the
// most recently active ident still present.
func New[T Identify](elements []T, unwindable bool) *Cycle[T] {
	indices := make(map[Ident]Index, len(elements))
	for i, e := range elements {
		indices[e.ID()] = i
	}

	return &Cycle[T]{
		index:      lastIndex(len(elements)),
		elements:   append([]T(nil), elements...),
		indices:    indices,
		unwindable: unwindable,
		stack:      newHistoryStack(),
	}
}

func lastIndex(n int) Index {
	if n <= 1 {
		return 0
	}
	return n - 1
}

func (c *Cycle[T]) validIndex() (Index, bool) {
	if c.index < len(c.elements) {
		return c.index, true
	}
	return 0, false
}

// Clear removes every element and resets the cursor and history.
func (c *Cycle[T]) Clear() {
	c.index = 0
	c.elements = c.elements[:0]
	c.indices = make(map[Ident]Index)
	c.stack.clear()
}

// NextWillWrap reports whether cycling in dir would wrap past an end.
func (c *Cycle[T]) NextWillWrap(dir Direction) bool {
	return c.index == lastIndex(len(c.elements)) && dir == Forward ||
		c.index == 0 && dir == Backward
}

func (c *Cycle[T]) Len() int {
	return len(c.elements)
}

func (c *Cycle[T]) IsEmpty() bool {
	return len(c.elements) == 0
}

// Contains reports whether an element with the given ident is present.
func (c *Cycle[T]) Contains(id Ident) bool {
	_, ok := c.indices[id]
	return ok
}

// ActiveIndex returns the cursor position, which may equal Len for an
// exhausted cycle.
func (c *Cycle[T]) ActiveIndex() Index {
	return c.index
}

// NextIndex returns the cursor position one step in dir, with wraparound.
func (c *Cycle[T]) NextIndex(dir Direction) Index {
	return c.nextIndexFrom(c.index, dir)
}

// NextElement returns the element one step in dir from the cursor.
func (c *Cycle[T]) NextElement(dir Direction) (T, bool) {
	return c.GetFor(AtIndex[T](c.NextIndex(dir)))
}

// CycleActive advances the cursor one step in dir with wraparound, pushing
// the previously active ident onto the history stack.
func (c *Cycle[T]) CycleActive(dir Direction) (T, bool) {
	c.pushActiveToStack()
	c.index = c.NextIndex(dir)
	return c.ActiveElement()
}

// IndexFor resolves sel to a positional index.
func (c *Cycle[T]) IndexFor(sel Selector[T]) (Index, bool) {
	switch sel.kind {
	case selAtActive:
		return c.index, true
	case selAtIndex:
		if sel.index < len(c.elements) {
			return sel.index, true
		}
		return 0, false
	case selAtIdent:
		if index, ok := c.indices[sel.ident]; ok {
			return c.IndexFor(AtIndex[T](index))
		}
		return 0, false
	case selFirst:
		return 0, true
	case selLast:
		if len(c.elements) == 0 {
			return 0, false
		}
		return len(c.elements) - 1, true
	default:
		if index, _, ok := c.by(sel.cond); ok {
			return index, true
		}
		return 0, false
	}
}

// ActiveElement returns the element under the cursor.
func (c *Cycle[T]) ActiveElement() (T, bool) {
	return c.Get(c.index)
}

// Get returns the element at index.
func (c *Cycle[T]) Get(index Index) (T, bool) {
	if index < 0 || index >= len(c.elements) {
		var zero T
		return zero, false
	}
	return c.elements[index], true
}

// Rotate shifts every element one position in dir with wraparound and
// rebuilds the identity index, which rotation invalidates wholesale.
func (c *Cycle[T]) Rotate(dir Direction) {
	n := len(c.elements)
	if n == 0 {
		return
	}

	switch dir {
	case Forward:
		last := c.elements[n-1]
		copy(c.elements[1:], c.elements[:n-1])
		c.elements[0] = last
	case Backward:
		first := c.elements[0]
		copy(c.elements[:n-1], c.elements[1:])
		c.elements[n-1] = first
	}

	for i, e := range c.elements {
		c.indices[e.ID()] = i
	}
}

// DragActive swaps the active element with its neighbor in dir and follows
// it with the cursor. At a boundary the whole sequence rotates instead, so
// dragging wraps.
func (c *Cycle[T]) DragActive(dir Direction) (T, bool) {
	active := c.index
	next := c.NextIndex(dir)

	switch {
	case active == 0 && dir == Backward, next == 0 && dir == Forward:
		c.Rotate(dir)
	default:
		if active < len(c.elements) && next < len(c.elements) {
			activeID := c.elements[active].ID()
			nextID := c.elements[next].ID()

			c.elements[active], c.elements[next] = c.elements[next], c.elements[active]
			c.indices[activeID] = next
			c.indices[nextID] = active
		}
	}

	return c.CycleActive(dir)
}

// InsertAt places element at pos and makes it active. The previously active
// ident is pushed onto the history stack first.
func (c *Cycle[T]) InsertAt(pos InsertPos, element T) {
	switch pos.kind {
	case insertBeforeActive:
		c.insert(c.index, element)
	case insertAfterActive:
		c.InsertAt(AfterIndex(c.index), element)
	case insertBeforeIndex:
		c.insert(pos.index, element)
	case insertFront:
		c.insert(0, element)
	case insertBack:
		c.pushBack(element)
	case insertAfterIndex:
		next := pos.index + 1
		if next > len(c.elements) {
			c.pushBack(element)
		} else {
			c.insert(next, element)
		}
	case insertBeforeIdent:
		if index, ok := c.indices[pos.ident]; ok {
			c.InsertAt(BeforeIndex(index), element)
		}
	case insertAfterIdent:
		if index, ok := c.indices[pos.ident]; ok {
			c.InsertAt(AfterIndex(index), element)
		}
	}
}

func (c *Cycle[T]) insert(index Index, element T) {
	if index > len(c.elements) {
		index = len(c.elements)
	}

	c.pushActiveToStack()
	c.syncIndices(index, stackInsert)
	c.indices[element.ID()] = index

	c.elements = append(c.elements, element)
	copy(c.elements[index+1:], c.elements[index:])
	c.elements[index] = element

	c.index = index
}

func (c *Cycle[T]) pushBack(element T) {
	end := len(c.elements)

	c.pushActiveToStack()
	c.indices[element.ID()] = end
	c.elements = append(c.elements, element)
	c.index = end
}

// Elements returns the sequence in order.
func (c *Cycle[T]) Elements() []T {
	out := make([]T, len(c.elements))
	copy(out, c.elements)
	return out
}

// GetFor resolves sel to its element.
func (c *Cycle[T]) GetFor(sel Selector[T]) (T, bool) {
	var zero T

	switch sel.kind {
	case selAtActive:
		return c.ActiveElement()
	case selAtIndex:
		return c.Get(sel.index)
	case selFirst:
		return c.Get(0)
	case selLast:
		return c.Get(lastIndex(len(c.elements)))
	case selForCond:
		if _, e, ok := c.by(sel.cond); ok {
			return e, true
		}
		return zero, false
	default:
		if index, ok := c.indices[sel.ident]; ok {
			return c.GetFor(AtIndex[T](index))
		}
		return zero, false
	}
}

// GetAllFor resolves sel to every matching element; only ForCond can match
// more than one.
func (c *Cycle[T]) GetAllFor(sel Selector[T]) []T {
	if sel.kind == selForCond {
		var out []T
		for _, e := range c.elements {
			if sel.cond(e) {
				out = append(out, e)
			}
		}
		return out
	}

	if e, ok := c.GetFor(sel); ok {
		return []T{e}
	}
	return nil
}

// OnActive applies f to the active element, if any.
func (c *Cycle[T]) OnActive(f func(T)) {
	if e, ok := c.ActiveElement(); ok {
		f(e)
	}
}

// OnAll applies f to every element in order.
func (c *Cycle[T]) OnAll(f func(T)) {
	for _, e := range c.elements {
		f(e)
	}
}

// OnAllFor applies f to every element matching sel.
func (c *Cycle[T]) OnAllFor(sel Selector[T], f func(T)) {
	for _, e := range c.GetAllFor(sel) {
		f(e)
	}
}

// ActivateFor moves the cursor to the element matching sel, pushing the
// previously active ident onto the history stack.
func (c *Cycle[T]) ActivateFor(sel Selector[T]) (T, bool) {
	var zero T

	switch sel.kind {
	case selAtActive:
		return c.ActiveElement()
	case selAtIndex:
		c.pushActiveToStack()
		c.index = sel.index
		return c.ActiveElement()
	case selAtIdent:
		if index, ok := c.indices[sel.ident]; ok {
			return c.ActivateFor(AtIndex[T](index))
		}
		return zero, false
	case selFirst:
		c.pushActiveToStack()
		c.index = 0
		return c.ActiveElement()
	case selLast:
		c.pushActiveToStack()
		c.index = lastIndex(len(c.elements))
		return c.ActiveElement()
	default:
		if index, _, ok := c.by(sel.cond); ok {
			c.pushActiveToStack()
			c.index = index
			return c.elements[index], true
		}
		return zero, false
	}
}

// RemoveFor removes the element matching sel and returns it. Removing the
// active element re-derives the cursor from the history stack, falling back
// to the last index.
func (c *Cycle[T]) RemoveFor(sel Selector[T]) (T, bool) {
	var zero T

	index, ok := c.IndexFor(sel)
	if !ok {
		return zero, false
	}
	if sel.kind == selAtActive && index >= len(c.elements) {
		return zero, false
	}

	element := c.elements[index]
	c.elements = append(c.elements[:index], c.elements[index+1:]...)

	id := element.ID()
	delete(c.indices, id)
	c.removeFromStack(id)
	c.syncIndices(index, stackRemove)

	return element, true
}

// Swap exchanges the elements matching the two selectors in place and
// re-syncs their identity indices.
func (c *Cycle[T]) Swap(sel1, sel2 Selector[T]) {
	index1, ok1 := c.IndexFor(sel1)
	if !ok1 {
		return
	}
	index2, ok2 := c.IndexFor(sel2)
	if !ok2 || index1 >= len(c.elements) || index2 >= len(c.elements) {
		return
	}

	c.elements[index1], c.elements[index2] = c.elements[index2], c.elements[index1]
	c.indices[c.elements[index1].ID()] = index1
	c.indices[c.elements[index2].ID()] = index2
}

func (c *Cycle[T]) nextIndexFrom(index Index, dir Direction) Index {
	end := lastIndex(len(c.elements))

	switch dir {
	case Forward:
		if index >= end {
			return 0
		}
		return index + 1
	default:
		if index == 0 {
			return end
		}
		return index - 1
	}
}

func (c *Cycle[T]) syncIndices(pivot Index, action stackAction) {
	for index := pivot; index < len(c.elements); index++ {
		id := c.elements[index].ID()
		switch action {
		case stackRemove:
			c.indices[id]--
		case stackInsert:
			c.indices[id]++
		}
	}

	if action != stackRemove {
		return
	}

	switch {
	case pivot == c.index:
		if id, ok := c.popFromStack(); ok {
			if index, ok := c.indices[id]; ok {
				c.index = index
				return
			}
		}
		c.index = lastIndex(len(c.elements))
	case pivot < c.index:
		if c.index > 0 {
			c.index--
		}
	}
}

func (c *Cycle[T]) by(cond func(T) bool) (Index, T, bool) {
	for i, e := range c.elements {
		if cond(e) {
			return i, e, true
		}
	}
	var zero T
	return 0, zero, false
}

func (c *Cycle[T]) indexToID(index Index) (Ident, bool) {
	if e, ok := c.Get(index); ok {
		return e.ID(), true
	}
	return 0, false
}

// Stack returns the history stack, least recent first.
func (c *Cycle[T]) Stack() []Ident {
	return c.stack.asSlice()
}

// StackAfterFocus returns the history stack with the currently active ident
// moved to the end, defining bottom-to-top focus order.
func (c *Cycle[T]) StackAfterFocus() []Ident {
	stack := c.stack.asSlice()

	if index, ok := c.validIndex(); ok {
		if id, ok := c.indexToID(index); ok {
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i] == id {
					stack = append(stack[:i], stack[i+1:]...)
					break
				}
			}
			stack = append(stack, id)
		}
	}

	return stack
}

func (c *Cycle[T]) pushActiveToStack() {
	if !c.unwindable {
		return
	}

	if index, ok := c.validIndex(); ok {
		if id, ok := c.indexToID(index); ok {
			c.stack.removeID(id)
			c.stack.pushBack(id)
		}
	}
}

func (c *Cycle[T]) removeFromStack(id Ident) {
	if c.unwindable {
		c.stack.removeID(id)
	}
}

func (c *Cycle[T]) popFromStack() (Ident, bool) {
	if !c.unwindable {
		return 0, false
	}
	return c.stack.popBack()
}
