// Package directory implements the single-level directory: a LIFO linked
// stack of file-metadata blocks keyed by name, protected by a
// many-readers/single-writer lock. It is grounded on the source's
// linked-list directory (original_source/lib/dir.c), translated so that
// "pointer to the next node" becomes "index of the next block".
package directory

import (
	"sync"
	"time"

	"github.com/blockpool/memfs/internal/blockstore"
	"github.com/blockpool/memfs/pkg/fserrors"
)

// FileNode is the decoded view of a FileNode block: name, timestamps, and
// the links to the next directory entry and this file's first data block.
// It is a snapshot taken under a read lock — callers that need a live view
// should re-read through the Directory rather than cache this value.
type FileNode struct {
	Self       blockstore.BlockIndex
	Name       string
	CreateTime time.Time
	ModTime    time.Time
	Next       blockstore.BlockIndex
	Data       blockstore.BlockIndex
}

// Directory is a single-level, name-keyed stack of files backed by blocks
// drawn from a blockstore.Store.
type Directory struct {
	mu     sync.RWMutex
	store  *blockstore.Store
	head   blockstore.BlockIndex
	nFiles int
}

// New returns an empty directory backed by store.
func New(store *blockstore.Store) *Directory {
	return &Directory{
		store: store,
		head:  blockstore.NoBlock,
	}
}

// NFiles returns the number of files currently in the directory.
func (d *Directory) NFiles() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.nFiles
}

// Exists reports whether a file with the given name is present.
func (d *Directory) Exists(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.search(name) != nil
}

// Search returns the decoded FileNode for name, or ErrNotExists.
func (d *Directory) Search(name string) (*FileNode, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	node := d.search(name)
	if node == nil {
		return nil, fserrors.NewNotExistsError(name)
	}
	return node, nil
}

// search performs the unlocked linear scan used by Exists and Search.
func (d *Directory) search(name string) *FileNode {
	for idx := d.head; idx != blockstore.NoBlock; {
		next, data, createTime, modTime, nodeName := decodeFileNode(d.store.Block(idx))
		if nodeName == name {
			return &FileNode{
				Self:       idx,
				Name:       nodeName,
				CreateTime: createTime,
				ModTime:    modTime,
				Next:       next,
				Data:       data,
			}
		}
		idx = next
	}
	return nil
}

// Add writes a new FileNode into the caller-supplied block and prepends it
// to the directory stack. The caller must have obtained block from the
// allocator and must not touch it before calling Add — this is what makes
// Add infallible with respect to memory. Add does not check uniqueness;
// the facade must do that under its own read-then-write-locked check.
func (d *Directory) Add(block blockstore.BlockIndex, name string) (*FileNode, error) {
	if len(name) > MaxFilenameLength(d.store.BlockSize()) {
		return nil, fserrors.NewNameLengthExceededError(name)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now()
	oldHead := d.head
	buf := d.store.Block(block)
	encodeFileNode(buf, oldHead, blockstore.NoBlock, now, now, name)

	d.head = block
	d.nFiles++

	return &FileNode{
		Self:       block,
		Name:       name,
		CreateTime: now,
		ModTime:    now,
		Next:       oldHead,
		Data:       blockstore.NoBlock,
	}, nil
}

// TryAdd is the facade's lock-upgrade entry point: it checks for an
// existing name and inserts in a single write-lock critical section, so
// there is no window between "check" and "insert" for a duplicate to slip
// in. This is the atomic check-then-insert the source's design notes call
// for, since Add itself (used directly by lower-level tests) does not
// check uniqueness.
func (d *Directory) TryAdd(block blockstore.BlockIndex, name string) (*FileNode, error) {
	if len(name) > MaxFilenameLength(d.store.BlockSize()) {
		return nil, fserrors.NewNameLengthExceededError(name)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.search(name) != nil {
		return nil, fserrors.NewNonUniqueNameError(name)
	}

	now := time.Now()
	oldHead := d.head
	buf := d.store.Block(block)
	encodeFileNode(buf, oldHead, blockstore.NoBlock, now, now, name)

	d.head = block
	d.nFiles++

	return &FileNode{
		Self:       block,
		Name:       name,
		CreateTime: now,
		ModTime:    now,
		Next:       oldHead,
		Data:       blockstore.NoBlock,
	}, nil
}

// Remove unlinks the entry named name from the stack. It does not free the
// underlying block — the facade owns that, since the facade is also the
// one that must free the file's data chain.
func (d *Directory) Remove(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var prev blockstore.BlockIndex = blockstore.NoBlock
	for idx := d.head; idx != blockstore.NoBlock; {
		buf := d.store.Block(idx)
		next, _, _, _, nodeName := decodeFileNode(buf)
		if nodeName == name {
			if prev == blockstore.NoBlock {
				d.head = next
			} else {
				setFileNodeNext(d.store.Block(prev), next)
			}
			d.nFiles--
			return nil
		}
		prev = idx
		idx = next
	}

	return fserrors.NewNotExistsError(name)
}

// Gather returns a snapshot of every FileNode currently in the directory,
// head-first (most recently created first, per the LIFO stack order).
func (d *Directory) Gather() ([]*FileNode, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.nFiles == 0 {
		return nil, fserrors.NewNotExistsError("")
	}

	entries := make([]*FileNode, 0, d.nFiles)
	for idx := d.head; idx != blockstore.NoBlock; {
		next, data, createTime, modTime, name := decodeFileNode(d.store.Block(idx))
		entries = append(entries, &FileNode{
			Self:       idx,
			Name:       name,
			CreateTime: createTime,
			ModTime:    modTime,
			Next:       next,
			Data:       data,
		})
		idx = next
	}
	return entries, nil
}

// SetData records the index of a file's first data block, called by the
// facade the first time a write allocates a data chain for an empty file.
func (d *Directory) SetData(node *FileNode, data blockstore.BlockIndex) {
	d.mu.Lock()
	defer d.mu.Unlock()
	setFileNodeData(d.store.Block(node.Self), data)
	node.Data = data
}

// TouchModTime updates a file's mod_time to now, called by the facade at
// the end of a successful write.
func (d *Directory) TouchModTime(node *FileNode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := time.Now()
	setFileNodeModTime(d.store.Block(node.Self), now)
	node.ModTime = now
}
