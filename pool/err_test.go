package pool

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
)

func TestNew_InvalidWorkerCount(t *testing.T) {
	for _, threads := range []int{0, -1, -3} {
		t.Run(fmt.Sprintf("threads=%d", threads), func(t *testing.T) {
			p, err := New(threads)
			if !errors.Is(err, ErrInvalidWorkerCount) {
				t.Fatalf("expected ErrInvalidWorkerCount, got %v", err)
			}
			if p != nil {
				t.Error("expected nil pool on construction failure")
			}
		})
	}
}

func TestPool_Execute_NilFunc(t *testing.T) {
	p, err := New(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer p.Close()

	if err := p.Execute(10, nil); !errors.Is(err, ErrNilFunc) {
		t.Errorf("Execute: expected ErrNilFunc, got %v", err)
	}
	if err := p.ExecuteChunked(10, 4, nil); !errors.Is(err, ErrNilFunc) {
		t.Errorf("ExecuteChunked: expected ErrNilFunc, got %v", err)
	}
}

func TestPool_Execute_PanicSurfacedAsError(t *testing.T) {
	p, err := New(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer p.Close()

	err = p.Execute(100, func(i int) {
		if i == 42 {
			panic("boom")
		}
	})

	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PanicError, got %v", err)
	}
	if pe.Index != 42 {
		t.Errorf("expected panic index 42, got %d", pe.Index)
	}
	if pe.Value != "boom" {
		t.Errorf("expected panic value %q, got %v", "boom", pe.Value)
	}
	if len(pe.Stack) == 0 {
		t.Error("expected a captured stack trace")
	}
}

func TestPool_Execute_PanicDoesNotStopOtherIndices(t *testing.T) {
	p, err := New(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer p.Close()

	var count atomic.Int64
	err = p.Execute(1000, func(i int) {
		if i == 500 {
			panic("halfway")
		}
		count.Add(1)
	})
	if err == nil {
		t.Fatal("expected an error")
	}

	if got := count.Load(); got != 999 {
		t.Errorf("expected 999 completed invocations, got %d", got)
	}
}

func TestPool_Execute_SingleWorkerSurvivesPanic(t *testing.T) {
	p, err := New(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer p.Close()

	var count atomic.Int64
	err = p.Execute(1000, func(i int) {
		if i == 0 {
			panic("first index")
		}
		count.Add(1)
	})
	if err == nil {
		t.Fatal("expected an error")
	}

	if got := count.Load(); got != 999 {
		t.Errorf("expected the worker to keep claiming after a panic, got %d of 999", got)
	}
}

func TestPool_Execute_FirstPanicWins(t *testing.T) {
	// A single worker claims indices in order, so the first panic it hits is
	// deterministic even though several indices panic.
	p, err := New(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer p.Close()

	err = p.Execute(20, func(i int) {
		if i == 3 || i == 7 || i == 15 {
			panic(fmt.Sprintf("panic at %d", i))
		}
	})

	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PanicError, got %v", err)
	}
	if pe.Index != 3 {
		t.Errorf("expected the first panic (index 3) to win, got index %d", pe.Index)
	}
	if got := p.Stats().Panics; got != 3 {
		t.Errorf("expected all 3 panics counted, got %d", got)
	}
}

func TestPool_Execute_UsableAfterPanic(t *testing.T) {
	p, err := New(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer p.Close()

	if err := p.Execute(10, func(int) { panic("transient") }); err == nil {
		t.Fatal("expected an error from the panicking call")
	}

	counters := make([]atomic.Int32, 100)
	if err := p.Execute(100, func(i int) {
		counters[i].Add(1)
	}); err != nil {
		t.Fatalf("expected the pool to recover, got %v", err)
	}
	for i := range counters {
		if got := counters[i].Load(); got != 1 {
			t.Fatalf("index %d after recovery: expected 1 invocation, got %d", i, got)
		}
	}
}

func TestPool_ExecuteChunked_PanicReportsChunkStart(t *testing.T) {
	p, err := New(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer p.Close()

	err = p.ExecuteChunked(64, 16, func(lo, hi int) {
		if lo <= 40 && 40 < hi {
			panic("bad chunk")
		}
	})

	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PanicError, got %v", err)
	}
	if pe.Index != 32 {
		t.Errorf("expected the chunk start 32, got %d", pe.Index)
	}
}

func TestPanicError_Error(t *testing.T) {
	pe := &PanicError{Index: 7, Value: "kaput", Stack: []byte("goroutine 9 [running]:")}
	msg := pe.Error()

	for _, want := range []string{"index 7", "kaput", "goroutine 9"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected message to contain %q, got %q", want, msg)
		}
	}
}
