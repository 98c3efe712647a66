package via

import (
	"encoding/json"
	"strconv"

	"github.com/go-via/storefront/via/h"
)

type SignalType interface {
	int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64 |
		string | bool
}

// Signal declares a browser-side reactive value. Its current value travels with
// every action request and is injected into the visit's store before the action runs.
func Signal[T SignalType](c *Composition, initial T) *SignalHandle[T] {
	c.mustBeOpen("Signal()")
	id := "s" + genRandID()
	c.signals = append(c.signals, signalRegistration{id: id, initial: initial})
	return &SignalHandle[T]{id: id, initial: initial}
}

type SignalHandle[T SignalType] struct {
	id      string
	initial T
}

func (sh *SignalHandle[T]) Get(ctx *Context) T {
	if ctx == nil || ctx.s == nil || ctx.s.store == nil {
		return sh.initial
	}
	val, ok := ctx.s.store.signals[sh.id]
	if !ok {
		return sh.initial
	}
	if typed, ok := val.(T); ok {
		return typed
	}
	// JSON numbers arrive as float64, query-encoded values as strings
	switch v := val.(type) {
	case float64:
		return convertFloat64ToType(v, sh.initial)
	case string:
		return convertStringToType(v, sh.initial)
	}
	return sh.initial
}

func convertFloat64ToType[T any](f float64, initial T) T {
	var result any
	switch any(initial).(type) {
	case int:
		result = int(f)
	case int8:
		result = int8(f)
	case int16:
		result = int16(f)
	case int32:
		result = int32(f)
	case int64:
		result = int64(f)
	case uint:
		result = uint(f)
	case uint8:
		result = uint8(f)
	case uint16:
		result = uint16(f)
	case uint32:
		result = uint32(f)
	case uint64:
		result = uint64(f)
	case float32:
		result = float32(f)
	case float64:
		result = f
	case bool:
		result = f != 0
	case string:
		result = strconv.FormatFloat(f, 'f', -1, 64)
	}
	if result != nil {
		return result.(T)
	}
	return initial
}

func convertStringToType[T any](s string, initial T) T {
	var result any
	switch any(initial).(type) {
	case int, int8, int16, int32, int64:
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return convertFloat64ToType(float64(v), initial)
		}
	case uint, uint8, uint16, uint32, uint64:
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			return convertFloat64ToType(float64(v), initial)
		}
	case float32, float64:
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return convertFloat64ToType(v, initial)
		}
	case bool:
		if v, err := strconv.ParseBool(s); err == nil {
			result = v
		}
	}
	if result != nil {
		return result.(T)
	}
	return initial
}

// Set stores value and marks the signal for the next Sync or SyncSignals.
func (sh *SignalHandle[T]) Set(ctx *Context, value T) {
	if ctx == nil || ctx.s == nil || ctx.s.store == nil {
		return
	}
	if ctx.mode == sessionModeView {
		ctx.warnf("SignalHandle.Set() called during view render; mutation ignored")
		return
	}
	ctx.s.store.signals[sh.id] = value
	ctx.s.store.changedSignals[sh.id] = value
}

func (sh *SignalHandle[T]) Bind() h.H {
	return h.Data("bind", sh.id)
}

func (sh *SignalHandle[T]) Text() h.H {
	return h.Data("text", sh.Ref())
}

func (sh *SignalHandle[T]) Show() h.H {
	return h.DataShow(sh.Ref())
}

// Ref returns the signal as a Datastar expression operand, e.g. "$s1a2b".
func (sh *SignalHandle[T]) Ref() string {
	return "$" + sh.id
}

// Assign returns a Datastar expression that sets the signal to value in the
// browser, without a server round trip.
func (sh *SignalHandle[T]) Assign(value T) string {
	return sh.Ref() + " = " + jsLiteral(value)
}

// Equals returns a Datastar expression comparing the signal with value.
func (sh *SignalHandle[T]) Equals(value T) string {
	return sh.Ref() + " === " + jsLiteral(value)
}

// Toggle returns a Datastar expression that negates the signal.
func (sh *SignalHandle[T]) Toggle() string {
	return sh.Ref() + " = !" + sh.Ref()
}

func (sh *SignalHandle[T]) ID() string {
	return sh.id
}

// Initial returns the initial value of the signal.
func (sh *SignalHandle[T]) Initial() T {
	return sh.initial
}

func jsLiteral(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
