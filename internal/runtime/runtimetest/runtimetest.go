// Package runtimetest provides an in-memory runtime.Env for tests.
//
// The fake VM keeps an object table, a single-parent class hierarchy, and
// per-thread frame receivers. Every Retain and Release is counted per
// handle so tests can assert that filter construction and teardown are
// balanced: no leaked durable handles, no double releases.
package runtimetest

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/dshills/jdwp/internal/runtime"
)

// Env is an in-memory implementation of runtime.Env.
// All methods are safe for concurrent use.
type Env struct {
	mu sync.Mutex

	nextObject runtime.ObjectID
	nextMethod runtime.MethodID

	// objects maps every live handle (canonical or durable alias) to the
	// canonical object it denotes.
	objects map[runtime.ObjectID]*object

	// classes maps canonical class handles to their definitions.
	classes map[runtime.ObjectID]*class

	// receivers maps thread/depth/slot to the object stored there.
	receivers map[frameSlot]runtime.ObjectID

	staticMethods map[runtime.MethodID]bool

	retains  int
	releases int
	misuse   []string

	// failRetains makes the next N Retain calls fail with
	// ErrOutOfResources.
	failRetains int

	// failReceiver makes Receiver fail with ErrNoFrame.
	failReceiver bool
}

type object struct {
	canonical runtime.ObjectID
	class     runtime.ObjectID
	durable   bool
	released  bool
}

type class struct {
	name      string
	signature string
	super     runtime.ObjectID // canonical class handle, 0 for root
}

type frameSlot struct {
	thread runtime.ObjectID
	depth  int
	slot   int
}

// NewEnv creates an empty fake VM.
func NewEnv() *Env {
	return &Env{
		nextObject:    1,
		nextMethod:    1,
		objects:       make(map[runtime.ObjectID]*object),
		classes:       make(map[runtime.ObjectID]*class),
		receivers:     make(map[frameSlot]runtime.ObjectID),
		staticMethods: make(map[runtime.MethodID]bool),
	}
}

// AddClass registers a class with the given dotted name and superclass
// (0 for a root class) and returns its handle. The signature is derived
// from the name ("java.lang.String" -> "Ljava/lang/String;").
func (e *Env) AddClass(name string, super runtime.ObjectID) runtime.ObjectID {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.allocObject(0)
	e.classes[id] = &class{
		name:      name,
		signature: "L" + strings.ReplaceAll(name, ".", "/") + ";",
		super:     e.canonicalLocked(super),
	}
	return id
}

// NewObject creates an object of the given class and returns its handle.
func (e *Env) NewObject(cls runtime.ObjectID) runtime.ObjectID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.allocObject(e.canonicalLocked(cls))
}

// NewThread creates a thread object and returns its handle.
func (e *Env) NewThread() runtime.ObjectID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.allocObject(0)
}

// NewMethod registers a method and whether it is static.
func (e *Env) NewMethod(static bool) runtime.MethodID {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextMethod
	e.nextMethod++
	e.staticMethods[id] = static
	return id
}

// SetReceiver places obj in the given frame slot of thread, where
// Receiver will find it.
func (e *Env) SetReceiver(thread runtime.ObjectID, depth, slot int, obj runtime.ObjectID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.receivers[frameSlot{e.canonicalLocked(thread), depth, slot}] = e.canonicalLocked(obj)
}

// FailRetains makes the next n Retain calls fail with ErrOutOfResources.
func (e *Env) FailRetains(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failRetains = n
}

// FailReceiver makes Receiver calls fail with ErrNoFrame until reset.
func (e *Env) FailReceiver(fail bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failReceiver = fail
}

// allocObject must be called with e.mu held.
func (e *Env) allocObject(cls runtime.ObjectID) runtime.ObjectID {
	id := e.nextObject
	e.nextObject++
	e.objects[id] = &object{canonical: id, class: cls}
	return id
}

// canonicalLocked resolves a handle (possibly a durable alias) to the
// canonical object handle. Must be called with e.mu held.
func (e *Env) canonicalLocked(id runtime.ObjectID) runtime.ObjectID {
	if obj, ok := e.objects[id]; ok {
		return obj.canonical
	}
	return id
}

// Retain implements runtime.Env.
func (e *Env) Retain(obj runtime.ObjectID) (runtime.ObjectID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.failRetains > 0 {
		e.failRetains--
		return 0, runtime.ErrOutOfResources
	}

	src, ok := e.objects[obj]
	if !ok {
		e.misuse = append(e.misuse, fmt.Sprintf("retain of unknown handle %d", obj))
		return 0, runtime.ErrOutOfResources
	}

	id := e.nextObject
	e.nextObject++
	e.objects[id] = &object{canonical: src.canonical, class: src.class, durable: true}
	e.retains++
	return id, nil
}

// Release implements runtime.Env.
func (e *Env) Release(obj runtime.ObjectID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.objects[obj]
	switch {
	case !ok:
		e.misuse = append(e.misuse, fmt.Sprintf("release of unknown handle %d", obj))
	case !entry.durable:
		e.misuse = append(e.misuse, fmt.Sprintf("release of borrowed handle %d", obj))
	case entry.released:
		e.misuse = append(e.misuse, fmt.Sprintf("double release of handle %d", obj))
	default:
		entry.released = true
		e.releases++
	}
}

// Same implements runtime.Env.
func (e *Env) Same(a, b runtime.ObjectID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if a.IsNull() || b.IsNull() {
		return a == b
	}
	return e.canonicalLocked(a) == e.canonicalLocked(b)
}

// AssignableTo implements runtime.Env. It walks the superclass chain of
// cls looking for target.
func (e *Env) AssignableTo(cls, target runtime.ObjectID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	want := e.canonicalLocked(target)
	for cur := e.canonicalLocked(cls); !cur.IsNull(); {
		if cur == want {
			return true
		}
		def, ok := e.classes[cur]
		if !ok {
			return false
		}
		cur = def.super
	}
	return false
}

// Signature implements runtime.Env.
func (e *Env) Signature(cls runtime.ObjectID) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	def, ok := e.classes[e.canonicalLocked(cls)]
	if !ok {
		return "", fmt.Errorf("no class for handle %d", cls)
	}
	return def.signature, nil
}

// Receiver implements runtime.Env.
func (e *Env) Receiver(thread runtime.ObjectID, depth, slot int) (runtime.ObjectID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.failReceiver {
		return 0, runtime.ErrNoFrame
	}
	obj, ok := e.receivers[frameSlot{e.canonicalLocked(thread), depth, slot}]
	if !ok {
		return 0, runtime.ErrNoFrame
	}
	return obj, nil
}

// StaticMethod implements runtime.Env.
func (e *Env) StaticMethod(method runtime.MethodID) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	static, ok := e.staticMethods[method]
	if !ok {
		return false, fmt.Errorf("no method for id %d", method)
	}
	return static, nil
}

// Retains returns the number of successful Retain calls so far.
func (e *Env) Retains() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.retains
}

// Releases returns the number of valid Release calls so far.
func (e *Env) Releases() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.releases
}

// AssertBalanced fails the test unless every retained handle has been
// released exactly once and no release was ever invalid.
func (e *Env) AssertBalanced(t *testing.T) {
	t.Helper()

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, m := range e.misuse {
		t.Errorf("handle misuse: %s", m)
	}
	if e.retains != e.releases {
		t.Errorf("unbalanced handles: %d retained, %d released", e.retains, e.releases)
	}
	for id, obj := range e.objects {
		if obj.durable && !obj.released {
			t.Errorf("leaked durable handle %d", id)
		}
	}
}
