// Package runtime defines the agent's view of the target virtual machine.
//
// The agent never talks to the VM directly. Every introspection it needs -
// minting and releasing durable object handles, identity and assignability
// tests, reading a frame-local receiver, resolving a type signature - goes
// through the Env interface, which the embedding runtime implements. This
// keeps the filtering core testable against an in-memory VM (see the
// runtimetest subpackage) and keeps handle lifetime rules in one place.
//
// # Handles
//
// A handle is an opaque numeric reference to a live object inside the
// target VM. Threads and classes are objects and share the ObjectID space,
// mirroring how the VM itself treats them. The zero value is the null
// handle and always means "absent".
//
// Handles obtained from an event callback are borrowed: they are valid only
// for the duration of the callback. Anything that must outlive the callback
// (a filter that remembers a thread, for example) must be promoted to a
// durable handle with Env.Retain and released exactly once when no longer
// needed. GlobalRef wraps that acquire/release pair so release happens on
// every path, including construction failures partway through a larger
// structure.
//
// # Errors
//
// Retain can fail with ErrOutOfResources when the VM cannot mint another
// durable handle; callers must treat that as fatal to whatever they were
// constructing. All other Env calls report ordinary errors which callers
// are free to tolerate.
package runtime
