package resume2pdf

import (
	"runtime"
	"sync"
	"testing"
	"time"
)

// Compile-time interface check.
var _ interface {
	Acquire() *Exporter
	Release(*Exporter)
	Size() int
	Close() error
} = (*ExporterPool)(nil)

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{
			name:    "explicit takes priority",
			workers: 4,
			want:    4,
		},
		{
			name:    "explicit=1 for sequential",
			workers: 1,
			want:    1,
		},
		{
			name:    "explicit can exceed max",
			workers: MaxPoolSize + 4,
			want:    MaxPoolSize + 4,
		},
		{
			name:    "zero uses auto calculation",
			workers: 0,
			want:    min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ResolvePoolSize(tt.workers)
			if got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func TestNewExporterPool_MinimumSize(t *testing.T) {
	t.Parallel()

	pool := NewExporterPool(0)
	defer pool.Close()

	if pool.Size() != MinPoolSize {
		t.Errorf("Size() = %d, want %d", pool.Size(), MinPoolSize)
	}
}

func TestExporterPool_AcquireRelease(t *testing.T) {
	t.Parallel()

	browser := &fakeBrowser{}
	pool := NewExporterPool(2, WithBrowser(browser))

	a := pool.Acquire()
	b := pool.Acquire()
	if a == nil || b == nil || a == b {
		t.Fatalf("Acquire() = %p, %p; want two distinct exporters", a, b)
	}

	// A third acquire blocks until one is released.
	got := make(chan *Exporter, 1)
	go func() { got <- pool.Acquire() }()

	select {
	case <-got:
		t.Fatal("Acquire() returned while pool exhausted")
	case <-time.After(50 * time.Millisecond):
	}

	pool.Release(a)
	select {
	case e := <-got:
		if e != a {
			t.Errorf("Acquire() = %p, want released exporter %p", e, a)
		}
	case <-time.After(time.Second):
		t.Fatal("Acquire() still blocked after Release()")
	}

	pool.Release(b)
	pool.Release(nil)

	if err := pool.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if browser.closed != 2 {
		t.Errorf("browser closed %d times, want 2", browser.closed)
	}
}

func TestExporterPool_Close(t *testing.T) {
	t.Parallel()

	pool := NewExporterPool(1, WithBrowser(&fakeBrowser{}))
	e := pool.Acquire()

	if err := pool.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	// Release after close must not panic on the closed channel.
	pool.Release(e)

	if got := pool.Acquire(); got != nil {
		t.Errorf("Acquire() after Close = %p, want nil", got)
	}
}

func TestExporterPool_IdleExporterNotReusedAfterClose(t *testing.T) {
	t.Parallel()

	browser := &fakeBrowser{}
	pool := NewExporterPool(2, WithBrowser(browser))
	a, b := pool.Acquire(), pool.Acquire()
	pool.Release(a)
	pool.Release(b)

	if err := pool.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	for range 2 {
		if got := pool.Acquire(); got != nil {
			t.Fatalf("Acquire() after Close = %p, want nil", got)
		}
	}
}

func TestExporterPool_Concurrent(t *testing.T) {
	t.Parallel()

	pool := NewExporterPool(3, WithBrowser(&fakeBrowser{}))
	defer pool.Close()

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			e := pool.Acquire()
			if e == nil {
				t.Error("Acquire() = nil")
				return
			}
			time.Sleep(time.Millisecond)
			pool.Release(e)
		})
	}
	wg.Wait()
}
