package resume2pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sink receives the finished PDF.
type Sink interface {
	Save(ctx context.Context, filename string, pdf []byte) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, filename string, pdf []byte) error

// Save calls f.
func (f SinkFunc) Save(ctx context.Context, filename string, pdf []byte) error {
	return f(ctx, filename, pdf)
}

// DirSink writes each document into Dir under its filename.
type DirSink struct {
	Dir string
}

// Save writes pdf to Dir/filename, creating Dir if needed.
// filename must be a bare name.
func (s DirSink) Save(ctx context.Context, filename string, pdf []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if filename == "" || strings.ContainsAny(filename, "/\\\x00") || filename == "." || filename == ".." {
		return fmt.Errorf("invalid output filename %q", filename)
	}

	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), pdf, filePermissions); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}

// MemorySink keeps documents in memory, keyed by filename.
type MemorySink struct {
	mu    sync.Mutex
	files map[string][]byte
}

// Save stores a copy of pdf.
func (s *MemorySink) Save(_ context.Context, filename string, pdf []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files == nil {
		s.files = make(map[string][]byte)
	}
	s.files[filename] = append([]byte(nil), pdf...)
	return nil
}

// File returns the stored document and whether it exists.
func (s *MemorySink) File(filename string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.files[filename]
	return b, ok
}

// Len returns the number of stored documents.
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}
