package memfs

import (
	"github.com/blockpool/memfs/internal/blockstore"
	"github.com/blockpool/memfs/internal/datanode"
	"github.com/blockpool/memfs/internal/directory"
	"github.com/blockpool/memfs/internal/logger"
)

// Read copies up to n bytes from h's data chain into a freshly allocated
// buffer, starting from the first data block. Returns the buffer and the
// actual number of bytes copied, which is less than n once the chain is
// exhausted. Fails with FileNotOpen if h's name has no open entry.
func (fs *FileSystem) Read(h *Handle, n int) ([]byte, int, error) {
	lc := logger.NewLogContext("Read", h.name)

	entry, err := fs.openFiles.Get(h.name)
	if err != nil {
		logger.Debug("read failed", logger.KeyFilename, h.name, logger.Err(err))
		fs.recordOp(lc, "Read", err)
		return nil, 0, err
	}

	if err := fs.openFiles.ReadLock(h.name); err != nil {
		fs.recordOp(lc, "Read", err)
		return nil, 0, err
	}
	defer fs.openFiles.ReadUnlock(h.name)

	buf := make([]byte, n)
	nRead := 0

	for idx := entry.Node().Data; idx != blockstore.NoBlock && nRead < n; {
		block := fs.store.Block(idx)
		valid := datanode.Bytes(block)
		payload := datanode.Payload(block)[:valid]

		remaining := n - nRead
		take := len(payload)
		if take > remaining {
			take = remaining
		}
		copy(buf[nRead:nRead+take], payload[:take])
		nRead += take

		idx = datanode.Next(block)
	}

	if fs.facadeMetrics != nil {
		fs.facadeMetrics.RecordBytesRead(nRead)
	}
	logger.Debug("read completed", logger.KeyFilename, h.name, logger.KeyBytesRead, nRead)
	fs.recordOp(lc, "Read", nil)

	return buf[:nRead], nRead, nil
}

// Write appends data to h's data chain, extending it with freshly
// allocated blocks as needed. Existing bytes in a partial tail block are
// never overwritten; a write always continues from the tail's current
// byte count. Fails with FileNotOpen if h's name has no open entry, or
// OOM if the arena runs out of blocks mid-chain — in that case Write
// returns 0 with the error, and the bytes already appended before the
// failing allocation remain valid and visible to later reads.
func (fs *FileSystem) Write(h *Handle, data []byte) (int, error) {
	lc := logger.NewLogContext("Write", h.name)

	entry, err := fs.openFiles.Get(h.name)
	if err != nil {
		logger.Debug("write failed", logger.KeyFilename, h.name, logger.Err(err))
		fs.recordOp(lc, "Write", err)
		return 0, err
	}

	if err := fs.openFiles.WriteLock(h.name); err != nil {
		fs.recordOp(lc, "Write", err)
		return 0, err
	}
	defer fs.openFiles.WriteUnlock(h.name)

	node := entry.Node()
	maxData := datanode.MaxDataSize(fs.store.BlockSize())

	tail, err := fs.tailBlock(node)
	if err != nil {
		fs.recordOp(lc, "Write", err)
		return 0, err
	}

	written := 0
	for written < len(data) {
		block := fs.store.Block(tail)
		valid := datanode.Bytes(block)
		space := maxData - valid

		if space == 0 {
			next, err := fs.malloc()
			if err != nil {
				logger.Warn("write ran out of blocks mid-chain",
					logger.KeyFilename, h.name, logger.KeyBytesWritten, written)
				fs.recordOp(lc, "Write", err)
				return 0, err
			}
			newBlock := fs.store.Block(next)
			datanode.Init(newBlock)
			datanode.SetNext(block, next)
			tail = next
			continue
		}

		take := space
		if remaining := len(data) - written; take > remaining {
			take = remaining
		}

		copy(datanode.Payload(block)[valid:valid+take], data[written:written+take])
		datanode.SetBytes(block, valid+take)
		written += take
	}

	fs.dir.TouchModTime(node)

	if fs.facadeMetrics != nil {
		fs.facadeMetrics.RecordBytesWritten(written)
	}
	logger.Debug("write completed", logger.KeyFilename, h.name, logger.KeyBytesWritten, written)
	fs.recordOp(lc, "Write", nil)

	return written, nil
}

// tailBlock returns the index of node's last data block, allocating and
// linking the first block through the directory if the chain is
// currently empty.
func (fs *FileSystem) tailBlock(node *directory.FileNode) (blockstore.BlockIndex, error) {
	if node.Data == blockstore.NoBlock {
		first, err := fs.malloc()
		if err != nil {
			return blockstore.NoBlock, err
		}
		datanode.Init(fs.store.Block(first))
		fs.dir.SetData(node, first)
		return first, nil
	}

	idx := node.Data
	for {
		next := datanode.Next(fs.store.Block(idx))
		if next == blockstore.NoBlock {
			return idx, nil
		}
		idx = next
	}
}
