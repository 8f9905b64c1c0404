package cycle

// Ident is the stable 32-bit identity an element keeps across structural
// mutation of a Cycle.
type Ident = uint32

// Index is a positional index into a Cycle. Unlike an Ident it is not stable
// across insertions and removals.
type Index = int

// Identify is implemented by every element type a Cycle can hold.
type Identify interface {
	ID() Ident
}

// Direction selects an iteration direction through a Cycle.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Forward {
		return Backward
	}
	return Forward
}

type insertPosKind int

const (
	insertBeforeActive insertPosKind = iota
	insertAfterActive
	insertBeforeIndex
	insertAfterIndex
	insertBeforeIdent
	insertAfterIdent
	insertFront
	insertBack
)

// InsertPos names the position at which a new element enters a Cycle.
type InsertPos struct {
	kind  insertPosKind
	index Index
	ident Ident
}

func BeforeActive() InsertPos       { return InsertPos{kind: insertBeforeActive} }
func AfterActive() InsertPos        { return InsertPos{kind: insertAfterActive} }
func BeforeIndex(i Index) InsertPos { return InsertPos{kind: insertBeforeIndex, index: i} }
func AfterIndex(i Index) InsertPos  { return InsertPos{kind: insertAfterIndex, index: i} }
func BeforeIdent(id Ident) InsertPos {
	return InsertPos{kind: insertBeforeIdent, ident: id}
}
func AfterIdent(id Ident) InsertPos {
	return InsertPos{kind: insertAfterIdent, ident: id}
}
func Front() InsertPos { return InsertPos{kind: insertFront} }
func Back() InsertPos  { return InsertPos{kind: insertBack} }

type selectorKind int

const (
	selAtActive selectorKind = iota
	selAtIndex
	selAtIdent
	selFirst
	selLast
	selForCond
)

// Selector resolves to at most one element of a Cycle. AtIdent resolves in
// O(1) through the identity index.
type Selector[T Identify] struct {
	kind  selectorKind
	index Index
	ident Ident
	cond  func(T) bool
}

func AtActive[T Identify]() Selector[T] { return Selector[T]{kind: selAtActive} }
func AtIndex[T Identify](i Index) Selector[T] {
	return Selector[T]{kind: selAtIndex, index: i}
}
func AtIdent[T Identify](id Ident) Selector[T] {
	return Selector[T]{kind: selAtIdent, ident: id}
}
func First[T Identify]() Selector[T] { return Selector[T]{kind: selFirst} }
func Last[T Identify]() Selector[T]  { return Selector[T]{kind: selLast} }
func ForCond[T Identify](cond func(T) bool) Selector[T] {
	return Selector[T]{kind: selForCond, cond: cond}
}
