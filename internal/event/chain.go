package event

import "github.com/dshills/jdwp/internal/runtime"

// Chain is the ordered modifier list of one debugger request. An
// occurrence qualifies for the request only when every modifier accepts
// it; an empty chain accepts everything.
//
// The chain owns its modifiers: Close releases every one of them.
//
// A chain performs no locking of its own. Distinct chains may be matched
// concurrently, but the caller must serialize all use of a single chain
// because CountModifier mutates its counter during Match (the request
// layer holds a per-request lock for exactly this reason).
type Chain struct {
	modifiers []Modifier
}

// NewChain creates a chain from the given modifiers, in order.
func NewChain(modifiers ...Modifier) *Chain {
	return &Chain{modifiers: modifiers}
}

// Add appends a modifier. The chain takes ownership of it.
func (c *Chain) Add(m Modifier) {
	c.modifiers = append(c.modifiers, m)
}

// Len returns the number of modifiers in the chain.
func (c *Chain) Len() int { return len(c.modifiers) }

// Modifiers returns the chain's modifiers in insertion order. The slice
// is a copy; the modifiers themselves are the live ones, so their
// accessors reflect current state.
func (c *Chain) Modifiers() []Modifier {
	out := make([]Modifier, len(c.modifiers))
	copy(out, c.modifiers)
	return out
}

// Match evaluates the modifiers in insertion order and reports whether
// all of them accept the occurrence, stopping at the first rejection.
// Insertion order matters: a CountModifier only counts occurrences that
// passed the modifiers before it.
func (c *Chain) Match(env runtime.Env, info *Info) bool {
	for _, m := range c.modifiers {
		if !m.Matches(env, info) {
			return false
		}
	}
	return true
}

// Fired reports whether the chain's Count modifier, if any, has fired:
// its countdown reached zero. The request layer uses this to apply the
// protocol's one-shot removal after a reported event.
func (c *Chain) Fired() bool {
	for _, m := range c.modifiers {
		if count, ok := m.(*CountModifier); ok && count.Fired() {
			return true
		}
	}
	return false
}

// Close releases every modifier's owned handles. The chain must not be
// matched after Close.
func (c *Chain) Close() {
	for _, m := range c.modifiers {
		m.Close()
	}
}
