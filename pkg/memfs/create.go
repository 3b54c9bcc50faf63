package memfs

import (
	"github.com/blockpool/memfs/internal/logger"
	"github.com/blockpool/memfs/pkg/fserrors"
)

// Create allocates a new, empty file named name and opens it, returning a
// Handle with an open count of one. Fails with NonUniqueName if the name
// is already taken, NameLengthExceeded if name doesn't fit in a FileNode
// block, or OOM if the arena has no free blocks.
//
// The existence check runs first, unconditionally, before any block is
// allocated: if the arena is full and the name is already taken, Create
// must report NonUniqueName rather than OOM. That read-locked pre-check
// only rules out the common case; the actual atomicity guarantee is
// Directory.TryAdd's write-locked check-then-insert, which re-checks
// uniqueness and rejects a concurrent Create of the same name that slips
// in between the pre-check and the write lock. The block is allocated
// before TryAdd is attempted and freed again if TryAdd fails, so a failed
// Create never leaks a block.
func (fs *FileSystem) Create(name string) (*Handle, error) {
	lc := logger.NewLogContext("Create", name)

	if fs.dir.Exists(name) {
		err := fserrors.NewNonUniqueNameError(name)
		logger.Debug("create failed", logger.KeyFilename, name, logger.Err(err))
		fs.recordOp(lc, "Create", err)
		return nil, err
	}

	block, err := fs.malloc()
	if err != nil {
		logger.Warn("create failed: arena exhausted", logger.KeyFilename, name)
		fs.recordOp(lc, "Create", err)
		return nil, err
	}

	node, err := fs.dir.TryAdd(block, name)
	if err != nil {
		// Roll back the allocation; TryAdd never touched the block.
		_ = fs.free(block)
		logger.Debug("create failed", logger.KeyFilename, name, logger.Err(err))
		fs.recordOp(lc, "Create", err)
		return nil, err
	}

	fs.openFiles.Open(node)
	fs.recordGauges()

	logger.Info("file created", logger.KeyFilename, name, logger.KeyBlockIndex, int32(block))
	fs.recordOp(lc, "Create", nil)

	return &Handle{name: name}, nil
}
