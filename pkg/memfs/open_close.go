package memfs

import (
	"github.com/blockpool/memfs/internal/logger"
)

// Open looks up name in the directory and registers an open entry for it,
// incrementing the open count if one already exists. Fails with
// NotExists if no file with that name exists.
func (fs *FileSystem) Open(name string) (*Handle, error) {
	lc := logger.NewLogContext("Open", name)

	node, err := fs.dir.Search(name)
	if err != nil {
		logger.Debug("open failed", logger.KeyFilename, name, logger.Err(err))
		fs.recordOp(lc, "Open", err)
		return nil, err
	}

	fs.openFiles.Open(node)
	fs.recordGauges()

	logger.Debug("file opened", logger.KeyFilename, name)
	fs.recordOp(lc, "Open", nil)

	return &Handle{name: name}, nil
}

// Close decrements h's open count, removing the open-file entry entirely
// once no handle references the file. Fails with FileNotOpen if the
// handle's name has already been fully closed (or was never opened).
func (fs *FileSystem) Close(h *Handle) error {
	lc := logger.NewLogContext("Close", h.name)

	err := fs.openFiles.Close(h.name)
	fs.recordGauges()

	if err != nil {
		logger.Debug("close failed", logger.KeyFilename, h.name, logger.Err(err))
		fs.recordOp(lc, "Close", err)
		return err
	}

	logger.Debug("file closed", logger.KeyFilename, h.name)
	fs.recordOp(lc, "Close", nil)
	return nil
}
