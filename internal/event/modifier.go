package event

import "github.com/dshills/jdwp/internal/runtime"

// Modifier is one request filter predicate. A modifier decides, per
// occurrence, whether the occurrence still qualifies for its request.
//
// Matches never fails; a filtering decision is only ever a boolean. It may
// mutate internal state (CountModifier's counter) and InstanceOnlyModifier
// may fill in Info.Instance; every other kind treats the record as
// read-only. A single modifier must not be invoked concurrently (its
// chain's caller serializes it), but distinct modifiers may run on any
// threads.
//
// Close releases any VM handles the modifier owns. It is a no-op for
// kinds that own none and is safe to call more than once.
type Modifier interface {
	// Kind returns the protocol kind assigned at construction.
	Kind() ModifierKind

	// Matches reports whether the occurrence passes this filter.
	Matches(env runtime.Env, info *Info) bool

	// Close releases owned VM handles.
	Close()
}

// CountModifier reports an event exactly once, after a countdown of
// occurrences that passed the modifiers before it in the chain.
type CountModifier struct {
	count int
	fired bool
}

// NewCountModifier creates a Count modifier with the initial count n.
// A count of zero never fires.
func NewCountModifier(n int) *CountModifier {
	return &CountModifier{count: n}
}

// Count returns the current countdown value.
func (m *CountModifier) Count() int { return m.count }

// Fired reports whether the countdown has reached zero and the modifier
// has reported its one event. A modifier constructed with a zero count
// never fires.
func (m *CountModifier) Fired() bool { return m.fired }

// Kind returns ModCount.
func (m *CountModifier) Kind() ModifierKind { return ModCount }

// Matches decrements the countdown and reports true on the call that
// reaches zero. Every later call, and every call on a modifier that
// started at zero, reports false.
func (m *CountModifier) Matches(runtime.Env, *Info) bool {
	if m.count > 0 {
		m.count--
		if m.count == 0 {
			m.fired = true
			return true
		}
	}
	return false
}

// Close implements Modifier. CountModifier owns no handles.
func (m *CountModifier) Close() {}

// ConditionalModifier is the protocol's reserved expression filter. No VM
// implements expression evaluation, so the modifier records the expression
// ID and accepts every occurrence. This is mandated behavior, not a gap.
type ConditionalModifier struct {
	exprID int32
}

// NewConditionalModifier creates a Conditional modifier for the given
// expression ID.
func NewConditionalModifier(exprID int32) *ConditionalModifier {
	return &ConditionalModifier{exprID: exprID}
}

// ExprID returns the expression ID supplied by the debugger.
func (m *ConditionalModifier) ExprID() int32 { return m.exprID }

// Kind returns ModConditional.
func (m *ConditionalModifier) Kind() ModifierKind { return ModConditional }

// Matches always reports true.
func (m *ConditionalModifier) Matches(runtime.Env, *Info) bool { return true }

// Close implements Modifier. ConditionalModifier owns no handles.
func (m *ConditionalModifier) Close() {}
