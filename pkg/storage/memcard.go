package storage

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"sync"
)

// MemCard is an in-memory Card for tests and for running the logger
// without removable media. It holds a flat namespace of files.
type MemCard struct {
	mu    sync.Mutex
	files map[string]*bytes.Buffer

	// BeginErr, when set, makes Begin fail so startup fatal paths can
	// be exercised.
	BeginErr error
	// Syncs counts File.Sync calls across all files.
	Syncs int
}

// NewMemCard creates an empty in-memory card.
func NewMemCard() *MemCard {
	return &MemCard{files: make(map[string]*bytes.Buffer)}
}

func (c *MemCard) Begin() error {
	return c.BeginErr
}

func (c *MemCard) Exists(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.files[name]
	return ok
}

func (c *MemCard) Create(name string) (File, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	buf, ok := c.files[name]
	if !ok {
		buf = &bytes.Buffer{}
		c.files[name] = buf
	}
	return &memFile{card: c, buf: buf}, nil
}

func (c *MemCard) Open(name string) (io.ReadCloser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	buf, ok := c.files[name]
	if !ok {
		return nil, fmt.Errorf("file %s does not exist", name)
	}
	return io.NopCloser(bytes.NewReader(buf.Bytes())), nil
}

func (c *MemCard) Remove(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.files[name]; !ok {
		return fmt.Errorf("file %s does not exist", name)
	}
	delete(c.files, name)
	return nil
}

func (c *MemCard) List() ([]Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.files))
	for name := range c.files {
		names = append(names, name)
	}
	sort.Strings(names)
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, Entry{Name: name, Size: int64(c.files[name].Len())})
	}
	return entries, nil
}

// Contents returns the current bytes of a file, for test assertions.
func (c *MemCard) Contents(name string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	buf, ok := c.files[name]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), buf.Bytes()...), true
}

type memFile struct {
	card *MemCard
	buf  *bytes.Buffer
}

func (f *memFile) Write(p []byte) (int, error) {
	f.card.mu.Lock()
	defer f.card.mu.Unlock()
	return f.buf.Write(p)
}

func (f *memFile) Sync() error {
	f.card.mu.Lock()
	defer f.card.mu.Unlock()
	f.card.Syncs++
	return nil
}

func (f *memFile) Close() error { return nil }
