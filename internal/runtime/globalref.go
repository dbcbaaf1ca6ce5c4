package runtime

import "fmt"

// GlobalRef owns one durable handle into the target VM. Construction
// retains, Release releases; a ref is released at most once no matter how
// many times Release is called, and releasing a nil ref is a no-op. Both
// properties keep teardown paths simple for structures that own several
// refs and may fail partway through construction.
//
// A GlobalRef must not be copied; pass the pointer.
type GlobalRef struct {
	env      Env
	id       ObjectID
	released bool
}

// NewGlobalRef retains obj and returns its owning wrapper. Returns
// ErrOutOfResources (wrapped) when the VM cannot mint the handle.
// Retaining the null handle yields a ref whose ID is null; this is how
// optional owned handles ("match any type") are represented.
func NewGlobalRef(env Env, obj ObjectID) (*GlobalRef, error) {
	if obj.IsNull() {
		return &GlobalRef{env: env}, nil
	}
	id, err := env.Retain(obj)
	if err != nil {
		return nil, fmt.Errorf("retain handle %d: %w", obj, err)
	}
	return &GlobalRef{env: env, id: id}, nil
}

// ID returns the owned handle, or the null handle for an optional ref that
// was constructed from null. The handle stays valid until Release.
func (r *GlobalRef) ID() ObjectID {
	if r == nil {
		return 0
	}
	return r.id
}

// IsNull reports whether the ref wraps the null handle.
func (r *GlobalRef) IsNull() bool { return r == nil || r.id.IsNull() }

// Release drops the owned handle. Safe to call more than once and on nil.
func (r *GlobalRef) Release() {
	if r == nil || r.released {
		return
	}
	r.released = true
	if !r.id.IsNull() {
		r.env.Release(r.id)
	}
	r.id = 0
}
