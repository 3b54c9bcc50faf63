package memfs

import (
	"github.com/blockpool/memfs/internal/blockstore"
	"github.com/blockpool/memfs/internal/datanode"
	"github.com/blockpool/memfs/internal/logger"
	"github.com/blockpool/memfs/pkg/fserrors"
)

// Delete removes name from the directory and frees every block it owns:
// the full data chain, then the FileNode block itself. Fails with
// NotExists if no such file exists, or FileOpen if the file currently has
// an open entry — deleting an open file is refused explicitly rather than
// silently ignored, and refusing happens before anything is unlinked or
// freed.
func (fs *FileSystem) Delete(name string) error {
	lc := logger.NewLogContext("Delete", name)

	node, err := fs.dir.Search(name)
	if err != nil {
		logger.Debug("delete failed", logger.KeyFilename, name, logger.Err(err))
		fs.recordOp(lc, "Delete", err)
		return err
	}

	if fs.openFiles.IsOpen(name) {
		err := fserrors.NewFileOpenError(name)
		logger.Warn("delete refused: file is open", logger.KeyFilename, name)
		fs.recordOp(lc, "Delete", err)
		return err
	}

	if err := fs.dir.Remove(name); err != nil {
		fs.recordOp(lc, "Delete", err)
		return err
	}

	freed := 0
	for idx := node.Data; idx != blockstore.NoBlock; {
		next := datanode.Next(fs.store.Block(idx))
		if err := fs.free(idx); err != nil {
			logger.Error("failed to free data block during delete",
				logger.KeyFilename, name, logger.KeyBlockIndex, int32(idx), logger.Err(err))
		}
		freed++
		idx = next
	}

	if err := fs.free(node.Self); err != nil {
		logger.Error("failed to free file node block during delete",
			logger.KeyFilename, name, logger.KeyBlockIndex, int32(node.Self), logger.Err(err))
	}

	fs.recordGauges()
	logger.Info("file deleted", logger.KeyFilename, name, "blocks_freed", freed+1)
	fs.recordOp(lc, "Delete", nil)

	return nil
}
