// Package blockstore implements the fixed-capacity block allocator: a
// single contiguous arena of fixed-size blocks, carved out at
// construction and handed out/reclaimed by index via a bitmap free list.
//
// A Store is not safe for concurrent use. The facade that owns it
// serializes malloc/free under its own lock (see pkg/memfs), the same
// way the source keeps the pool itself free of internal locking and
// folds synchronization into the caller.
package blockstore

import (
	"github.com/blockpool/memfs/internal/bitmap"
	"github.com/blockpool/memfs/pkg/fserrors"
)

// BlockIndex identifies a block's position within the arena. NoBlock is the
// sentinel meaning "no block" — the Go equivalent of a null link.
type BlockIndex int32

// NoBlock is the sentinel link value meaning "none".
const NoBlock BlockIndex = -1

// Store is a fixed-capacity pool of BlockSize-byte blocks.
type Store struct {
	arena     []byte
	free      *bitmap.Bitmap
	blockSize int
	numBlocks int
	nFree     int
}

// New carves an arena of numBlocks blocks of blockSize bytes each. It fails
// only if the backing allocation parameters are invalid — there is no host
// OOM signal to surface in Go the way the source checks malloc's return.
func New(numBlocks, blockSize int) *Store {
	if numBlocks <= 0 {
		panic("blockstore: numBlocks must be positive")
	}
	if blockSize <= 0 {
		panic("blockstore: blockSize must be positive")
	}

	return &Store{
		arena:     make([]byte, numBlocks*blockSize),
		free:      bitmap.New(numBlocks),
		blockSize: blockSize,
		numBlocks: numBlocks,
		nFree:     numBlocks,
	}
}

// NumBlocks returns the total capacity of the arena.
func (s *Store) NumBlocks() int {
	return s.numBlocks
}

// BlockSize returns the fixed size of each block in bytes.
func (s *Store) BlockSize() int {
	return s.blockSize
}

// NFree returns the number of currently unallocated blocks.
func (s *Store) NFree() int {
	return s.nFree
}

// Malloc finds the lowest-indexed free block, marks it allocated, and
// returns its index. The second return value is false if the pool is full.
func (s *Store) Malloc() (BlockIndex, bool) {
	if s.nFree == 0 {
		return NoBlock, false
	}

	idx := s.free.FirstClear()
	if idx < 0 {
		return NoBlock, false
	}

	s.free.Set(idx)
	s.nFree--
	return BlockIndex(idx), true
}

// Free releases a previously allocated block back to the pool. It fails
// with ErrPtrNotAllocated if the index is not currently marked allocated —
// a double free, mirroring the source's bitset_get check in dw_mem_free.
func (s *Store) Free(idx BlockIndex) error {
	s.checkIndex(idx)

	if !s.free.Get(int(idx)) {
		return fserrors.NewPtrNotAllocatedError()
	}

	s.free.Clear(int(idx))
	s.nFree++
	return nil
}

// Block returns the byte slice backing the block at idx. The slice aliases
// the arena directly; callers must not retain it past a Free of this index.
func (s *Store) Block(idx BlockIndex) []byte {
	s.checkIndex(idx)
	start := int(idx) * s.blockSize
	return s.arena[start : start+s.blockSize]
}

// PopCount returns the number of currently allocated blocks, exposed so
// tests can check bitmap.popcount + n_free == num_blocks directly.
func (s *Store) PopCount() int {
	return s.free.PopCount()
}

func (s *Store) checkIndex(idx BlockIndex) {
	if idx < 0 || int(idx) >= s.numBlocks {
		panic("blockstore: block index out of range")
	}
}
