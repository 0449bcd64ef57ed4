package main

import (
	"context"
	"fmt"

	"github.com/laurentxxc/resume2pdf"
)

// Exporter is the part of resume2pdf.Exporter the command uses.
type Exporter interface {
	Export(ctx context.Context, input resume2pdf.Input) (*resume2pdf.Result, error)
}

// Compile-time interface implementation check.
var _ Exporter = (*resume2pdf.Exporter)(nil)

// Pool abstracts exporter pool operations for testability.
type Pool interface {
	Acquire() Exporter
	Release(Exporter)
	Size() int
	Close() error
}

// poolAdapter exposes a resume2pdf.ExporterPool as a Pool.
type poolAdapter struct {
	pool *resume2pdf.ExporterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

// newPool creates a pool of size exporters sharing opts.
func newPool(size int, opts ...resume2pdf.Option) *poolAdapter {
	return &poolAdapter{pool: resume2pdf.NewExporterPool(size, opts...)}
}

// Acquire returns nil once the pool is closed.
func (a *poolAdapter) Acquire() Exporter {
	e := a.pool.Acquire()
	if e == nil {
		return nil
	}
	return e
}

// Release panics if e is not a *resume2pdf.Exporter, which is a
// programming error.
func (a *poolAdapter) Release(e Exporter) {
	exp, ok := e.(*resume2pdf.Exporter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", e))
	}
	a.pool.Release(exp)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
