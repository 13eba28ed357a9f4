package translate

import "github.com/liscad/liscad/internal/emit"

// State carries the mutable drafting context within one translation run: the
// active layer, color and linetype. Every run starts from NewState, the value
// is owned by that run alone, and only the layer/color/linetype commands
// mutate it — so the state visible to command k reflects exactly the
// mutations of commands 1..k-1 in document order, and concurrent translation
// runs cannot interfere with each other.
type State struct {
	Layer    string
	Color    int
	Linetype string
}

// NewState returns the drafting defaults every run begins with.
func NewState() State {
	return State{
		Layer:    emit.DefaultLayer,
		Color:    emit.DefaultColor,
		Linetype: emit.DefaultLinetype,
	}
}
