package event

import "github.com/dshills/jdwp/internal/runtime"

// Info describes one occurrence raised by the target VM. The callback
// layer builds it, every modifier of every candidate chain reads it during
// one synchronous filtering pass, and it is discarded afterwards.
//
// All handles are borrowed from the VM callback; the record owns nothing
// and nothing in it outlives the pass.
//
// Thread, Class and Signature must be populated for every kind the
// modifiers inspect. Instance may start null; InstanceOnly is the one
// modifier allowed to fill it in (once, never cleared) when it resolves
// the receiver lazily.
type Info struct {
	// Kind is the event kind of the occurrence.
	Kind Kind

	// Thread is the thread the occurrence happened on.
	Thread runtime.ObjectID

	// Class is the class the occurrence happened in.
	Class runtime.ObjectID

	// Signature is the encoded signature of Class.
	Signature string

	// Method is the method the occurrence happened in, where applicable.
	Method runtime.MethodID

	// Location is the position within Method, where applicable.
	Location runtime.Location

	// Field is the accessed or modified field for field events.
	Field runtime.FieldID

	// Instance is the receiver object, null in static context.
	Instance runtime.ObjectID

	// AuxClass is the thrown exception's class for exception events, or
	// the field's declaring class for field events.
	AuxClass runtime.ObjectID

	// Caught reports whether a thrown exception was caught by a handler.
	// Meaningful only for exception events.
	Caught bool
}
