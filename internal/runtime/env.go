package runtime

// ObjectID identifies a live object in the target VM. Threads and classes
// are objects and share this space. The zero value is the null handle.
type ObjectID uint64

// MethodID identifies a method within its declaring class.
type MethodID uint64

// FieldID identifies a field within its declaring class.
type FieldID uint64

// Location is an opaque program-counter position within a method.
type Location uint64

// IsNull reports whether the handle is the null handle.
func (id ObjectID) IsNull() bool { return id == 0 }

// Env is the set of VM primitives the filtering core consumes. The
// embedding runtime provides the real implementation; runtimetest provides
// an in-memory one for tests.
//
// Calls are fast and synchronous; none of them block or suspend the
// calling thread.
type Env interface {
	// Retain promotes obj to a durable handle that stays valid until
	// released. The returned handle may differ from obj. Retaining the
	// null handle returns the null handle without error. Fails with
	// ErrOutOfResources when the VM cannot mint another durable handle.
	Retain(obj ObjectID) (ObjectID, error)

	// Release drops a durable handle previously returned by Retain.
	// Releasing the null handle is a no-op.
	Release(obj ObjectID)

	// Same reports whether two handles refer to the same object identity.
	Same(a, b ObjectID) bool

	// AssignableTo reports whether class cls is target or a subtype of
	// target.
	AssignableTo(cls, target ObjectID) bool

	// Signature returns the encoded type signature of class cls, for
	// example "Ljava/lang/String;".
	Signature(cls ObjectID) (string, error)

	// Receiver reads the object in local variable slot of the frame at
	// depth on the given thread. Depth 0 is the current frame. Instance
	// methods keep their receiver in slot 0.
	Receiver(thread ObjectID, depth, slot int) (ObjectID, error)

	// StaticMethod reports whether method is declared static.
	StaticMethod(method MethodID) (bool, error)
}
