package main

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/laurentxxc/resume2pdf"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// NewBrowser, when set, supplies the browser shared by every exporter
	// of a run. Nil launches one headless Chrome per exporter.
	NewBrowser func() resume2pdf.Browser
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// synced returns a copy of env whose writers are safe for the concurrent
// use of export workers, loggers and observers.
func (env *Environment) synced() *Environment {
	c := *env
	c.Stdout = &lockedWriter{w: env.Stdout}
	c.Stderr = &lockedWriter{w: env.Stderr}
	return &c
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
