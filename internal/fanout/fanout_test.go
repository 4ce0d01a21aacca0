package fanout

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// --- Map Tests ---

func TestMap_PreservesInputOrder(t *testing.T) {
	inputs := []string{"u0", "u1", "u2"}

	// u1 resolves slower than its siblings; output order must not change.
	got := Map(context.Background(), inputs, 3, func(_ context.Context, i int, in string) string {
		if i == 1 {
			time.Sleep(50 * time.Millisecond)
		}
		return "r" + in[1:]
	})

	want := []string{"r0", "r1", "r2"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMap_EmptyInput(t *testing.T) {
	got := Map(context.Background(), nil, 4, func(_ context.Context, _ int, in int) int {
		return in
	})
	if len(got) != 0 {
		t.Errorf("expected empty results, got %d", len(got))
	}
}

func TestMap_SingleWorker_Sequential(t *testing.T) {
	var order []int
	var mu sync.Mutex

	Map(context.Background(), []int{0, 1, 2, 3}, 1, func(_ context.Context, i int, _ int) int {
		mu.Lock()
		order = append(order, i)
		mu.Unlock()
		return i
	})

	for i, idx := range order {
		if idx != i {
			t.Fatalf("single worker should process in order, got %v", order)
		}
	}
}

func TestMap_RespectsWorkerBound(t *testing.T) {
	const workers = 3

	var active, peak int64
	inputs := make([]int, 20)

	Map(context.Background(), inputs, workers, func(_ context.Context, _ int, _ int) int {
		n := atomic.AddInt64(&active, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&active, -1)
		return 0
	})

	if got := atomic.LoadInt64(&peak); got > workers {
		t.Errorf("peak concurrency %d exceeds worker bound %d", got, workers)
	}
}

func TestMap_MoreWorkersThanInputs(t *testing.T) {
	got := Map(context.Background(), []int{1, 2}, 12, func(_ context.Context, _ int, in int) int {
		return in * 10
	})

	if got[0] != 10 || got[1] != 20 {
		t.Errorf("unexpected results: %v", got)
	}
}

func TestMap_CancelledContext_SkipsRemaining(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls int64
	inputs := make([]int, 100)

	results := Map(ctx, inputs, 1, func(_ context.Context, i int, _ int) int {
		if i == 0 {
			cancel()
		}
		atomic.AddInt64(&calls, 1)
		return 1
	})

	if n := atomic.LoadInt64(&calls); n == 100 {
		t.Error("expected cancellation to skip remaining inputs")
	}

	if len(results) != 100 {
		t.Errorf("result slice should keep input length, got %d", len(results))
	}
}
