// Package request implements the agent's event request table.
//
// A debugger registers interest in VM occurrences by creating event
// requests, each carrying an event kind, a suspend policy, and a modifier
// chain (see internal/event). The Manager owns the live requests: it
// allocates protocol request IDs, builds chains atomically (a request
// whose modifiers cannot all be constructed is never installed), looks up
// candidates by event kind, and applies the protocol's one-shot removal
// when a request's Count modifier fires.
//
// The manager also enforces the filtering core's serialization contract:
// a single request's chain is never evaluated concurrently, while
// requests as a whole may be dispatched from any number of VM threads.
package request
