package event

import (
	"sync"
	"testing"

	"github.com/dshills/jdwp/internal/runtime/runtimetest"
)

func TestChainEmptyMatchesEverything(t *testing.T) {
	env := runtimetest.NewEnv()
	chain := NewChain()

	if !chain.Match(env, &Info{Kind: KindBreakpoint}) {
		t.Error("empty chain should match")
	}
	if chain.Len() != 0 {
		t.Errorf("Len() = %d, want 0", chain.Len())
	}
}

func TestChainAndSemantics(t *testing.T) {
	env := runtimetest.NewEnv()

	tests := []struct {
		name     string
		patterns []string // ClassMatch patterns, all must accept
		sig      string
		want     bool
	}{
		{"all accept", []string{"java.*", "*.String", "java.lang.String"}, "Ljava/lang/String;", true},
		{"first rejects", []string{"com.*", "*"}, "Ljava/lang/String;", false},
		{"middle rejects", []string{"*", "com.*", "*"}, "Ljava/lang/String;", false},
		{"last rejects", []string{"*", "java.*", "*.Integer"}, "Ljava/lang/String;", false},
		{"single accept", []string{"*"}, "Ljava/lang/String;", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := NewChain()
			for _, p := range tt.patterns {
				chain.Add(NewClassMatchModifier(p))
			}
			info := &Info{Kind: KindClassPrepare, Signature: tt.sig}
			if got := chain.Match(env, info); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChainEvaluationOrder(t *testing.T) {
	// Count sits after a thread filter, so it must only count occurrences
	// that passed the filter. Short-circuit order is observable state.
	env := runtimetest.NewEnv()
	wanted := env.NewThread()
	other := env.NewThread()

	threadOnly, err := NewThreadOnlyModifier(env, wanted)
	if err != nil {
		t.Fatalf("NewThreadOnlyModifier() error = %v", err)
	}
	count := NewCountModifier(2)
	chain := NewChain(threadOnly, count)

	if chain.Match(env, &Info{Kind: KindBreakpoint, Thread: other}) {
		t.Error("occurrence on the wrong thread should not match")
	}
	if count.Count() != 2 {
		t.Errorf("Count() = %d after rejected occurrence, want 2 (not decremented)", count.Count())
	}

	if chain.Match(env, &Info{Kind: KindBreakpoint, Thread: wanted}) {
		t.Error("first matching occurrence should not fire a count of 2")
	}
	if !chain.Match(env, &Info{Kind: KindBreakpoint, Thread: wanted}) {
		t.Error("second matching occurrence should fire")
	}
	if !chain.Fired() {
		t.Error("Fired() = false after the count fired")
	}

	chain.Close()
	env.AssertBalanced(t)
}

func TestChainFiredWithoutCount(t *testing.T) {
	chain := NewChain(NewClassMatchModifier("*"))
	if chain.Fired() {
		t.Error("chain without a Count modifier never reports fired")
	}

	zero := NewChain(NewCountModifier(0))
	if zero.Fired() {
		t.Error("a zero count never fires")
	}
}

func TestChainModifiersSnapshot(t *testing.T) {
	chain := NewChain(NewCountModifier(1), NewClassMatchModifier("*"))

	mods := chain.Modifiers()
	if len(mods) != 2 {
		t.Fatalf("Modifiers() returned %d entries, want 2", len(mods))
	}
	if mods[0].Kind() != ModCount || mods[1].Kind() != ModClassMatch {
		t.Error("Modifiers() must preserve insertion order")
	}

	// Mutating the snapshot must not affect the chain.
	mods[0] = nil
	if chain.Modifiers()[0] == nil {
		t.Error("Modifiers() must return a copy")
	}
}

func TestChainCloseReleasesAll(t *testing.T) {
	env := runtimetest.NewEnv()
	cls := env.AddClass("com.example.Foo", 0)
	thread := env.NewThread()

	threadOnly, err := NewThreadOnlyModifier(env, thread)
	if err != nil {
		t.Fatalf("NewThreadOnlyModifier() error = %v", err)
	}
	classOnly, err := NewClassOnlyModifier(env, cls)
	if err != nil {
		t.Fatalf("NewClassOnlyModifier() error = %v", err)
	}

	chain := NewChain(threadOnly, classOnly, NewCountModifier(1))
	chain.Close()
	chain.Close() // second Close must be harmless
	env.AssertBalanced(t)
}

func TestChainsEvaluateConcurrently(t *testing.T) {
	// Two independent chains, each with a Count(1), matched from separate
	// goroutines. Each must fire exactly once; chains share no state.
	env := runtimetest.NewEnv()

	const rounds = 100
	chains := []*Chain{
		NewChain(NewCountModifier(1)),
		NewChain(NewCountModifier(1)),
	}

	fired := make([]int, len(chains))
	var wg sync.WaitGroup
	for i, chain := range chains {
		i, chain := i, chain
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				if chain.Match(env, &Info{Kind: KindBreakpoint}) {
					fired[i]++
				}
			}
		}()
	}
	wg.Wait()

	for i, n := range fired {
		if n != 1 {
			t.Errorf("chain %d fired %d times, want exactly 1", i, n)
		}
	}
}
