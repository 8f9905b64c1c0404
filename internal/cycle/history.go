package cycle

// historyStack remembers previously active idents, most recent last. An
// ident occurs at most once; pushing it again moves it to the top.
type historyStack struct {
	stack []Ident
}

func newHistoryStack() historyStack {
	return historyStack{stack: make([]Ident, 0, 30)}
}

func (h *historyStack) clear() {
	h.stack = h.stack[:0]
}

func (h *historyStack) pushBack(id Ident) {
	h.stack = append(h.stack, id)
}

func (h *historyStack) popBack() (Ident, bool) {
	if len(h.stack) == 0 {
		return 0, false
	}
	id := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	return id, true
}

func (h *historyStack) removeID(id Ident) {
	for i := len(h.stack) - 1; i >= 0; i-- {
		if h.stack[i] == id {
			h.stack = append(h.stack[:i], h.stack[i+1:]...)
			return
		}
	}
}

func (h *historyStack) asSlice() []Ident {
	out := make([]Ident, len(h.stack))
	copy(out, h.stack)
	return out
}
