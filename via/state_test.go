package via

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type cart struct {
	Items int
	Note  string
}

func TestState_SetGetContract(t *testing.T) {
	c := newComposition("/", false)
	count := State(c, 0)
	ctx := NewContext(nil)

	assert.Equal(t, 0, count.Get(ctx))
	count.Set(ctx, 42)
	assert.Equal(t, 42, count.Get(ctx))
	count.Set(ctx, -1)
	assert.Equal(t, -1, count.Get(ctx))
}

func TestState_StructValues(t *testing.T) {
	c := newComposition("/", false)
	st := State(c, cart{Note: "empty"})
	ctx := NewContext(nil)

	got := st.Get(ctx)
	got.Items = 3
	assert.Equal(t, 0, st.Get(ctx).Items, "Get returns a copy")

	st.Set(ctx, got)
	assert.Equal(t, cart{Items: 3, Note: "empty"}, st.Get(ctx))
}

func TestState_GetWithNilSession(t *testing.T) {
	c := newComposition("/", false)
	count := State(c, 7)

	assert.Equal(t, 7, count.Get(nil))
	ctx := &Context{s: nil, mode: sessionModeAction, warn: func(string, ...any) {}}
	assert.Equal(t, 7, count.Get(ctx))
}

func TestState_SetInViewModeWarns(t *testing.T) {
	var warnMsg string
	ctx := &Context{
		s:    &session{store: newStore()},
		mode: sessionModeView,
		warn: func(format string, _ ...any) { warnMsg = format },
	}
	st := State(newComposition("/", false), 0)

	st.Set(ctx, 42)

	assert.Contains(t, warnMsg, "State.Set()")
	assert.Equal(t, 0, st.Get(ctx), "Value should remain at initial (not mutated in view mode)")
}

func TestState_RegistersWithComposition(t *testing.T) {
	c := newComposition("/", false)
	count := State(c, 42)

	assert.Len(t, c.states, 1)
	assert.Equal(t, count.id, c.states[0].id)
	assert.Equal(t, 42, c.states[0].initial)
}
