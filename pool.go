package resume2pdf

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// ExporterPool manages Exporter instances for parallel exports.
// Each exporter owns its own browser. Exporters are created lazily on first
// acquire, all with the options given to NewExporterPool.
type ExporterPool struct {
	size      int
	opts      []Option
	exporters []*Exporter
	sem       chan *Exporter
	mu        sync.Mutex
	created   int
	closed    bool
}

// NewExporterPool creates a pool with capacity for n exporters.
func NewExporterPool(n int, opts ...Option) *ExporterPool {
	if n < MinPoolSize {
		n = MinPoolSize
	}
	return &ExporterPool{
		size:      n,
		opts:      opts,
		exporters: make([]*Exporter, 0, n),
		sem:       make(chan *Exporter, n),
	}
}

// Acquire gets an exporter from the pool, creating one if capacity allows.
// Blocks while all exporters are in use. Returns nil once the pool is closed.
func (p *ExporterPool) Acquire() *Exporter {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	select {
	case e := <-p.sem:
		p.mu.Unlock()
		return e
	default:
	}
	if p.created < p.size {
		p.created++
		e := NewExporter(p.opts...)
		p.exporters = append(p.exporters, e)
		p.mu.Unlock()
		return e
	}
	p.mu.Unlock()

	// Close may run while waiting; a closed sem yields nil.
	e, ok := <-p.sem
	if !ok {
		return nil
	}
	return e
}

// Release returns an exporter to the pool. It is a no-op once the pool is
// closed. The send holds the lock so Close cannot close sem underneath it;
// sem has room for every exporter ever created, so it never blocks.
func (p *ExporterPool) Release(e *Exporter) {
	if e == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.sem <- e
}

// Close releases all browsers.
// Returns an aggregated error if several exporters fail to close.
func (p *ExporterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	// Drop idle exporters so nothing can hand them out after Close.
	for range p.sem {
	}
	exporters := p.exporters
	p.mu.Unlock()

	var errs []error
	for _, e := range exporters {
		if err := e.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *ExporterPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is container-aware once automaxprocs has run.
	n := runtime.GOMAXPROCS(0) / cpuDivisor
	return min(max(n, MinPoolSize), MaxPoolSize)
}
