package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// DirCard exposes a host directory as the logger's card. Entry names
// are kept exactly as the filesystem reports them (case-sensitive).
type DirCard struct {
	root string
}

// NewDirCard creates a card backed by the directory at root. The
// directory must already exist when Begin is called.
func NewDirCard(root string) *DirCard {
	return &DirCard{root: root}
}

func (c *DirCard) Begin() error {
	info, err := os.Stat(c.root)
	if err != nil {
		return fmt.Errorf("failed to mount card directory %s: %w", c.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("card path %s is not a directory", c.root)
	}
	return nil
}

func (c *DirCard) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(c.root, name))
	return err == nil
}

func (c *DirCard) Create(name string) (File, error) {
	f, err := os.OpenFile(filepath.Join(c.root, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s for writing: %w", name, err)
	}
	return f, nil
}

func (c *DirCard) Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(c.root, name))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	return f, nil
}

func (c *DirCard) Remove(name string) error {
	if err := os.Remove(filepath.Join(c.root, name)); err != nil {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}

func (c *DirCard) List() ([]Entry, error) {
	return c.list(c.root)
}

func (c *DirCard) list(dir string) ([]Entry, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name() < items[j].Name() })

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		e := Entry{Name: item.Name(), Dir: item.IsDir()}
		if item.IsDir() {
			children, err := c.list(filepath.Join(dir, item.Name()))
			if err != nil {
				return nil, err
			}
			e.Children = children
		} else {
			info, err := item.Info()
			if err != nil {
				return nil, fmt.Errorf("failed to stat %s: %w", item.Name(), err)
			}
			e.Size = info.Size()
		}
		entries = append(entries, e)
	}
	return entries, nil
}
