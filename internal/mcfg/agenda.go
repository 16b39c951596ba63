package mcfg

// Agenda is the ordered buffer of items awaiting propagation. Any
// deterministic order is acceptable for completeness (spec.md §5, §9); this
// implementation uses FIFO, which is sufficient and keeps derivation order
// predictable for debug tracing.
type Agenda struct {
	items []*Item
}

// NewAgenda returns an empty agenda.
func NewAgenda() *Agenda {
	return &Agenda{}
}

// Push appends it to the back of the agenda.
func (a *Agenda) Push(it *Item) {
	a.items = append(a.items, it)
}

// Pop removes and returns the item at the front of the agenda. It panics if
// the agenda is empty; callers must check Empty first.
func (a *Agenda) Pop() *Item {
	it := a.items[0]
	a.items = a.items[1:]
	return it
}

// Empty reports whether the agenda has no items left to process.
func (a *Agenda) Empty() bool {
	return len(a.items) == 0
}
