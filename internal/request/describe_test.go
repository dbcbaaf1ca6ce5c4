package request

import (
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/jdwp/internal/event"
	"github.com/dshills/jdwp/internal/runtime/runtimetest"
)

func TestDescribe(t *testing.T) {
	env := runtimetest.NewEnv()
	thread := env.NewThread()
	m := NewManager(0)
	defer m.Close()

	req, err := m.Create(event.KindBreakpoint, SuspendEventThread,
		threadOnly(env, thread),
		func() (event.Modifier, error) { return event.NewClassMatchModifier("com.example.*"), nil },
		count(3),
	)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	out, err := Describe(req)
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if !gjson.Valid(out) {
		t.Fatalf("Describe() produced invalid JSON: %s", out)
	}

	checks := []struct {
		path string
		want string
	}{
		{"id", "1"},
		{"eventKind", "BREAKPOINT"},
		{"suspendPolicy", "EVENT_THREAD"},
		{"enabled", "true"},
		{"modifiers.#", "3"},
		{"modifiers.0.kind", "ThreadOnly"},
		{"modifiers.1.kind", "ClassMatch"},
		{"modifiers.1.pattern", "com.example.*"},
		{"modifiers.2.kind", "Count"},
		{"modifiers.2.count", "3"},
		{"modifiers.2.fired", "false"},
	}
	for _, c := range checks {
		if got := gjson.Get(out, c.path).String(); got != c.want {
			t.Errorf("%s = %q, want %q", c.path, got, c.want)
		}
	}
}

func TestDescribeReflectsLiveState(t *testing.T) {
	// The description reads the live modifiers, so a partially counted
	// down Count shows its current value.
	env := runtimetest.NewEnv()
	m := NewManager(0)
	defer m.Close()

	req, err := m.Create(event.KindBreakpoint, SuspendNone, count(3))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	m.Dispatch(env, &event.Info{Kind: event.KindBreakpoint})

	out, err := Describe(req)
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if got := gjson.Get(out, "modifiers.0.count").Int(); got != 2 {
		t.Errorf("count = %d after one occurrence, want 2", got)
	}

	req.SetEnabled(false)
	out, err = Describe(req)
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if gjson.Get(out, "enabled").Bool() {
		t.Error("enabled should reflect the live disabled state")
	}
}
