package request

import (
	"errors"
	"sync"
	"testing"

	"github.com/dshills/jdwp/internal/event"
	"github.com/dshills/jdwp/internal/runtime"
	"github.com/dshills/jdwp/internal/runtime/runtimetest"
)

func threadOnly(env runtime.Env, thread runtime.ObjectID) ModifierFunc {
	return func() (event.Modifier, error) { return event.NewThreadOnlyModifier(env, thread) }
}

func classOnly(env runtime.Env, cls runtime.ObjectID) ModifierFunc {
	return func() (event.Modifier, error) { return event.NewClassOnlyModifier(env, cls) }
}

func count(n int) ModifierFunc {
	return func() (event.Modifier, error) { return event.NewCountModifier(n), nil }
}

func TestManagerCreateAndGet(t *testing.T) {
	env := runtimetest.NewEnv()
	thread := env.NewThread()
	m := NewManager(0)
	defer m.Close()

	req, err := m.Create(event.KindBreakpoint, SuspendAll, threadOnly(env, thread))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if req.ID() != 1 {
		t.Errorf("ID() = %d, want 1", req.ID())
	}
	if req.Kind() != event.KindBreakpoint {
		t.Errorf("Kind() = %v", req.Kind())
	}
	if req.SuspendPolicy() != SuspendAll {
		t.Errorf("SuspendPolicy() = %v", req.SuspendPolicy())
	}
	if !req.Enabled() {
		t.Error("new requests start enabled")
	}

	got, err := m.Get(req.ID())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != req {
		t.Error("Get() returned a different request")
	}

	if _, err := m.Get(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(99) error = %v, want ErrNotFound", err)
	}
}

func TestManagerCreateAbortsOnOutOfResources(t *testing.T) {
	// The second constructor fails; the first modifier's handle must be
	// released and no request installed.
	env := runtimetest.NewEnv()
	thread := env.NewThread()
	cls := env.AddClass("com.example.Foo", 0)
	m := NewManager(0)
	defer m.Close()

	fail := func() (event.Modifier, error) {
		env.FailRetains(1)
		return event.NewClassOnlyModifier(env, cls)
	}

	_, err := m.Create(event.KindBreakpoint, SuspendNone, threadOnly(env, thread), fail)
	if !errors.Is(err, runtime.ErrOutOfResources) {
		t.Fatalf("Create() error = %v, want ErrOutOfResources", err)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d after failed create, want 0", m.Len())
	}
	env.AssertBalanced(t)
}

func TestManagerLimit(t *testing.T) {
	env := runtimetest.NewEnv()
	thread := env.NewThread()
	m := NewManager(1)
	defer m.Close()

	if _, err := m.Create(event.KindBreakpoint, SuspendNone, count(1)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	_, err := m.Create(event.KindBreakpoint, SuspendNone, threadOnly(env, thread))
	if !errors.Is(err, ErrTooManyRequests) {
		t.Fatalf("Create() error = %v, want ErrTooManyRequests", err)
	}
	// The rejected request's handles must not leak.
	m.Close()
	env.AssertBalanced(t)
}

func TestManagerDispatch(t *testing.T) {
	env := runtimetest.NewEnv()
	wanted := env.NewThread()
	other := env.NewThread()
	m := NewManager(0)
	defer m.Close()

	onWanted, err := m.Create(event.KindBreakpoint, SuspendEventThread, threadOnly(env, wanted))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	all, err := m.Create(event.KindBreakpoint, SuspendNone)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := m.Create(event.KindException, SuspendAll); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	matched := m.Dispatch(env, &event.Info{Kind: event.KindBreakpoint, Thread: wanted})
	if len(matched) != 2 || matched[0] != onWanted || matched[1] != all {
		t.Fatalf("Dispatch() matched %d requests, want [onWanted, all]", len(matched))
	}

	matched = m.Dispatch(env, &event.Info{Kind: event.KindBreakpoint, Thread: other})
	if len(matched) != 1 || matched[0] != all {
		t.Fatalf("Dispatch() on other thread matched %d, want just the unfiltered request", len(matched))
	}
}

func TestManagerDispatchSkipsDisabled(t *testing.T) {
	env := runtimetest.NewEnv()
	m := NewManager(0)
	defer m.Close()

	req, err := m.Create(event.KindBreakpoint, SuspendNone)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	req.SetEnabled(false)
	if got := m.Dispatch(env, &event.Info{Kind: event.KindBreakpoint}); len(got) != 0 {
		t.Errorf("Dispatch() matched %d disabled requests, want 0", len(got))
	}

	req.SetEnabled(true)
	if got := m.Dispatch(env, &event.Info{Kind: event.KindBreakpoint}); len(got) != 1 {
		t.Errorf("Dispatch() matched %d, want 1 after re-enable", len(got))
	}
}

func TestManagerOneShotRemovalAfterCountFires(t *testing.T) {
	env := runtimetest.NewEnv()
	thread := env.NewThread()
	m := NewManager(0)

	req, err := m.Create(event.KindBreakpoint, SuspendAll, threadOnly(env, thread), count(2))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	info := &event.Info{Kind: event.KindBreakpoint, Thread: thread}
	if got := m.Dispatch(env, info); len(got) != 0 {
		t.Fatalf("first occurrence should not report (count 2)")
	}
	got := m.Dispatch(env, info)
	if len(got) != 1 || got[0] != req {
		t.Fatalf("second occurrence should report the request")
	}

	// The count fired, so the request is one-shot: gone from the table,
	// handles released.
	if m.Len() != 0 {
		t.Errorf("Len() = %d after one-shot removal, want 0", m.Len())
	}
	if got := m.Dispatch(env, info); len(got) != 0 {
		t.Errorf("expired request must not report again")
	}
	env.AssertBalanced(t)
}

func TestManagerRemoveKind(t *testing.T) {
	env := runtimetest.NewEnv()
	thread := env.NewThread()
	m := NewManager(0)

	for i := 0; i < 3; i++ {
		if _, err := m.Create(event.KindBreakpoint, SuspendNone, threadOnly(env, thread)); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	keep, err := m.Create(event.KindException, SuspendNone)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if n := m.RemoveKind(event.KindBreakpoint); n != 3 {
		t.Errorf("RemoveKind() = %d, want 3", n)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
	if _, err := m.Get(keep.ID()); err != nil {
		t.Errorf("unrelated kind should survive: %v", err)
	}

	m.Close()
	env.AssertBalanced(t)
}

func TestManagerRemoveReleasesHandles(t *testing.T) {
	env := runtimetest.NewEnv()
	cls := env.AddClass("com.example.Foo", 0)
	m := NewManager(0)

	req, err := m.Create(event.KindClassPrepare, SuspendNone, classOnly(env, cls))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := m.Remove(req.ID()); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := m.Remove(req.ID()); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Remove() error = %v, want ErrNotFound", err)
	}
	env.AssertBalanced(t)
}

func TestManagerConcurrentDispatch(t *testing.T) {
	// Two single-shot requests dispatched from several VM threads at
	// once: each must report exactly once overall.
	env := runtimetest.NewEnv()
	m := NewManager(0)
	defer m.Close()

	reqA, err := m.Create(event.KindBreakpoint, SuspendNone, count(1))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	reqB, err := m.Create(event.KindBreakpoint, SuspendNone, count(1))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	const workers = 4
	const rounds = 50

	var mu sync.Mutex
	reported := make(map[int32]int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				info := &event.Info{Kind: event.KindBreakpoint}
				for _, req := range m.Dispatch(env, info) {
					mu.Lock()
					reported[req.ID()]++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	for _, req := range []*Request{reqA, reqB} {
		if n := reported[req.ID()]; n != 1 {
			t.Errorf("request %d reported %d times, want exactly 1", req.ID(), n)
		}
	}
	env.AssertBalanced(t)
}
