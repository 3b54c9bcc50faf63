// Package hashtable implements a fixed-capacity, string-keyed associative
// container using open addressing with linear probing, the Go analogue of
// the source's wrapper around glibc's hsearch_r
// (original_source/lib/hash_table.c). It exists as its own component
// rather than a bare Go map so the open-file table's backing structure
// stays a distinct, independently testable piece, matching the source's
// component boundary.
//
// Table is not safe for concurrent use; callers serialize access (the
// open-file table guards it with its own mutex).
package hashtable

import "hash/fnv"

type entry struct {
	key        string
	value      any
	occupied   bool
	tombstoned bool // deleted, but probing must still skip over it
}

// Table is a fixed-capacity open-addressing hash table.
type Table struct {
	entries []entry
	count   int
}

// New creates a Table sized for capacity keys. Capacity is fixed at
// construction, matching the source's "sized to the block count" design —
// the maximum number of simultaneously open files can't exceed the number
// of blocks in the arena.
func New(capacity int) *Table {
	if capacity <= 0 {
		capacity = 1
	}
	// Over-allocate so linear probing has room to breathe even near
	// capacity; a load factor of 1.0 degrades probe chains badly.
	size := capacity * 2
	return &Table{entries: make([]entry, size)}
}

// Len returns the number of live entries.
func (t *Table) Len() int {
	return t.count
}

// Get returns the value stored for key, and whether it was found.
func (t *Table) Get(key string) (any, bool) {
	idx, found := t.find(key)
	if !found {
		return nil, false
	}
	return t.entries[idx].value, true
}

// Set inserts or overwrites the value for key.
func (t *Table) Set(key string, value any) {
	if idx, found := t.find(key); found {
		t.entries[idx].value = value
		return
	}

	idx := t.slotFor(key)
	t.entries[idx] = entry{key: key, value: value, occupied: true}
	t.count++
}

// Remove deletes key from the table and returns its value, or (nil, false)
// if it was not present.
func (t *Table) Remove(key string) (any, bool) {
	idx, found := t.find(key)
	if !found {
		return nil, false
	}

	value := t.entries[idx].value
	t.entries[idx] = entry{tombstoned: true}
	t.count--
	return value, true
}

// Iterate calls fn for every live entry in unspecified order. fn must not
// mutate the table.
func (t *Table) Iterate(fn func(key string, value any)) {
	for _, e := range t.entries {
		if e.occupied && !e.tombstoned {
			fn(e.key, e.value)
		}
	}
}

// find locates the slot currently holding key, if any.
func (t *Table) find(key string) (int, bool) {
	n := len(t.entries)
	start := t.hash(key) % n
	for i := range n {
		idx := (start + i) % n
		e := &t.entries[idx]
		if !e.occupied && !e.tombstoned {
			return 0, false // probe chain ends at a never-used slot
		}
		if e.occupied && !e.tombstoned && e.key == key {
			return idx, true
		}
	}
	return 0, false
}

// slotFor finds the first available slot for inserting key, skipping over
// occupied and tombstoned entries.
func (t *Table) slotFor(key string) int {
	n := len(t.entries)
	start := t.hash(key) % n
	for i := range n {
		idx := (start + i) % n
		e := &t.entries[idx]
		if !e.occupied || e.tombstoned {
			return idx
		}
	}
	panic("hashtable: table full")
}

func (t *Table) hash(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32())
}
