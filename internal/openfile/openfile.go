// Package openfile implements the open-file table: a name-keyed structure
// tracking how many outstanding opens a file has and a per-file
// reader/writer lock guarding its data chain, backed by the hash table in
// internal/hashtable rather than Go's builtin map so the table's own
// locking discipline stays independent of Go runtime map internals. It is
// grounded on the source's file_table.c, which does the same thing over
// glibc's hsearch_r.
package openfile

import (
	"sync"

	"github.com/blockpool/memfs/internal/directory"
	"github.com/blockpool/memfs/internal/hashtable"
	"github.com/blockpool/memfs/pkg/fserrors"
)

// Entry tracks one open file: its outstanding open count and the
// reader/writer lock serializing access to its data chain.
type Entry struct {
	mu      sync.RWMutex
	node    *directory.FileNode
	openCnt int
}

// Node returns the FileNode this entry refers to. The caller must hold
// either the read or write lock (via the table's *Lock methods) before
// touching the node's data chain.
func (e *Entry) Node() *directory.FileNode {
	return e.node
}

// Table is the open-file table: name -> Entry.
type Table struct {
	mu    sync.Mutex
	table *hashtable.Table
}

// New creates an open-file table sized for capacity simultaneously open
// files, matching the source's "sized to the block count" choice (the
// maximum number of files can't exceed the number of blocks).
func New(capacity int) *Table {
	return &Table{table: hashtable.New(capacity)}
}

// Len returns the number of distinct names currently open.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.table.Len()
}

// IsOpen reports whether name has an entry with a positive open count.
func (t *Table) IsOpen(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.table.Get(name)
	if !ok {
		return false
	}
	entry := v.(*Entry)
	return entry.openCnt > 0
}

// Open creates an entry for node if none exists, or increments the
// existing entry's open count. Returns the entry so the facade can build
// a handle from it.
func (t *Table) Open(node *directory.FileNode) *Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	if v, ok := t.table.Get(node.Name); ok {
		entry := v.(*Entry)
		entry.openCnt++
		return entry
	}

	entry := &Entry{node: node, openCnt: 1}
	t.table.Set(node.Name, entry)
	return entry
}

// Close decrements name's open count, removing the entry once it reaches
// zero. Fails with ErrFileNotOpen if no entry exists.
func (t *Table) Close(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.table.Get(name)
	if !ok {
		return fserrors.NewFileNotOpenError(name)
	}

	entry := v.(*Entry)
	entry.openCnt--
	if entry.openCnt == 0 {
		t.table.Remove(name)
	}
	return nil
}

// Get returns the entry for name, or ErrFileNotOpen if none exists.
func (t *Table) Get(name string) (*Entry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.table.Get(name)
	if !ok {
		return nil, fserrors.NewFileNotOpenError(name)
	}
	return v.(*Entry), nil
}

// ReadLock acquires name's entry for reading. Fails with ErrFileNotOpen if
// the entry is missing.
func (t *Table) ReadLock(name string) error {
	entry, err := t.Get(name)
	if err != nil {
		return err
	}
	entry.mu.RLock()
	return nil
}

// ReadUnlock releases a read lock previously acquired with ReadLock.
func (t *Table) ReadUnlock(name string) error {
	entry, err := t.Get(name)
	if err != nil {
		return err
	}
	entry.mu.RUnlock()
	return nil
}

// WriteLock acquires name's entry for writing. Fails with ErrFileNotOpen
// if the entry is missing.
func (t *Table) WriteLock(name string) error {
	entry, err := t.Get(name)
	if err != nil {
		return err
	}
	entry.mu.Lock()
	return nil
}

// WriteUnlock releases a write lock previously acquired with WriteLock.
func (t *Table) WriteUnlock(name string) error {
	entry, err := t.Get(name)
	if err != nil {
		return err
	}
	entry.mu.Unlock()
	return nil
}
