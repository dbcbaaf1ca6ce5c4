package request

import (
	"sync"

	"github.com/dshills/jdwp/internal/event"
	"github.com/dshills/jdwp/internal/runtime"
)

// SuspendPolicy is what the VM does when a request's event is reported.
// Values are the protocol's SuspendPolicy constants.
type SuspendPolicy uint8

const (
	// SuspendNone suspends nothing.
	SuspendNone SuspendPolicy = 0
	// SuspendEventThread suspends the thread the event occurred on.
	SuspendEventThread SuspendPolicy = 1
	// SuspendAll suspends every thread.
	SuspendAll SuspendPolicy = 2
)

// String returns the protocol name of the suspend policy.
func (p SuspendPolicy) String() string {
	switch p {
	case SuspendNone:
		return "NONE"
	case SuspendEventThread:
		return "EVENT_THREAD"
	case SuspendAll:
		return "ALL"
	default:
		return "UNKNOWN"
	}
}

// Request is one outstanding debugger event request. Requests are created
// and removed through a Manager; the request owns its chain and the chain
// owns its modifiers.
type Request struct {
	id      int32
	kind    event.Kind
	suspend SuspendPolicy

	// mu serializes chain evaluation and guards enabled. Count modifiers
	// mutate during Match, so a single chain must never run concurrently.
	mu      sync.Mutex
	enabled bool
	chain   *event.Chain
}

// ID returns the protocol request ID.
func (r *Request) ID() int32 { return r.id }

// Kind returns the event kind the request is registered for.
func (r *Request) Kind() event.Kind { return r.kind }

// SuspendPolicy returns the request's suspend policy.
func (r *Request) SuspendPolicy() SuspendPolicy { return r.suspend }

// Enabled reports whether the request currently reports events.
func (r *Request) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

// SetEnabled enables or disables the request without discarding its
// modifier state.
func (r *Request) SetEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = enabled
}

// Modifiers returns the request's modifiers in chain order. The modifiers
// are live: kind-specific accessors reflect current state, such as a
// Count modifier's remaining countdown.
func (r *Request) Modifiers() []event.Modifier {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.chain.Modifiers()
}

// Match evaluates the request's chain against the occurrence. A disabled
// request never matches. The per-request lock serializes evaluation.
func (r *Request) Match(env runtime.Env, info *event.Info) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.enabled {
		return false
	}
	return r.chain.Match(env, info)
}

// expired reports whether the request's Count modifier has fired, which
// makes the request one-shot per the protocol.
func (r *Request) expired() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.chain.Fired()
}

// close releases the request's chain. Called by the Manager with the
// request already unlinked from the table.
func (r *Request) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = false
	r.chain.Close()
}
