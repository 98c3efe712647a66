package via

// StateHandle is a typed handle to a server-side value scoped to one page visit.
type StateHandle[T any] struct {
	id      string
	initial T
}

// State declares a per-visit server value with the given initial value.
func State[T any](c *Composition, initial T) *StateHandle[T] {
	c.mustBeOpen("State()")
	s := &StateHandle[T]{id: genRandID(), initial: initial}
	c.states = append(c.states, stateRegistration{id: s.id, initial: initial})
	return s
}

func (s *StateHandle[T]) Get(ctx *Context) T {
	if ctx == nil || ctx.s == nil || ctx.s.store == nil {
		return s.initial
	}
	if val, ok := ctx.s.store.state[s.id]; ok {
		return val.(T)
	}
	return s.initial
}

// Set stores value and re-syncs the view. Calls made while rendering a view are
// ignored.
func (s *StateHandle[T]) Set(ctx *Context, value T) {
	if ctx == nil || ctx.s == nil || ctx.s.store == nil {
		return
	}
	if ctx.mode == sessionModeView {
		ctx.warnf("State.Set() called during view render; mutation ignored")
		return
	}
	ctx.s.store.state[s.id] = value
	ctx.Sync()
}
