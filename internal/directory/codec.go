package directory

import (
	"encoding/binary"
	"time"

	"github.com/blockpool/memfs/internal/blockstore"
)

// A FileNode block is laid out as a fixed header followed by a
// null-terminated name, reflecting the source's "block is typed by the
// link that reaches it" design: the bytes mean nothing until read through
// this layout.
//
//	[0:4)   next link  (int32, blockstore.NoBlock if absent)
//	[4:8)   data link   (int32, blockstore.NoBlock if absent)
//	[8:16)  create_time (int64, unix seconds)
//	[16:24) mod_time    (int64, unix seconds)
//	[24:)   name, NUL-terminated
const (
	linkSize           = 4
	timeFieldSize      = 8
	fileNodeHeaderSize = linkSize*2 + timeFieldSize*2
)

// MaxFilenameLength returns the longest name (not counting the terminator)
// that fits in a FileNode block of the given size, the Go equivalent of the
// source's `BLOCK_SIZE - 2*sizeof(link)` derivation, adjusted for the two
// embedded timestamps.
func MaxFilenameLength(blockSize int) int {
	return blockSize - fileNodeHeaderSize - 1
}

func encodeFileNode(buf []byte, next, data blockstore.BlockIndex, createTime, modTime time.Time, name string) {
	binary.LittleEndian.PutUint32(buf[0:4], uint32(next))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(data))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(createTime.Unix()))
	binary.LittleEndian.PutUint64(buf[16:24], uint64(modTime.Unix()))

	n := copy(buf[fileNodeHeaderSize:len(buf)-1], name)
	buf[fileNodeHeaderSize+n] = 0
}

func decodeFileNode(buf []byte) (next, data blockstore.BlockIndex, createTime, modTime time.Time, name string) {
	next = blockstore.BlockIndex(int32(binary.LittleEndian.Uint32(buf[0:4])))
	data = blockstore.BlockIndex(int32(binary.LittleEndian.Uint32(buf[4:8])))
	createTime = time.Unix(int64(binary.LittleEndian.Uint64(buf[8:16])), 0)
	modTime = time.Unix(int64(binary.LittleEndian.Uint64(buf[16:24])), 0)

	rest := buf[fileNodeHeaderSize:]
	end := 0
	for end < len(rest) && rest[end] != 0 {
		end++
	}
	name = string(rest[:end])
	return
}

func setFileNodeModTime(buf []byte, modTime time.Time) {
	binary.LittleEndian.PutUint64(buf[16:24], uint64(modTime.Unix()))
}

func setFileNodeData(buf []byte, data blockstore.BlockIndex) {
	binary.LittleEndian.PutUint32(buf[4:8], uint32(data))
}

func setFileNodeNext(buf []byte, next blockstore.BlockIndex) {
	binary.LittleEndian.PutUint32(buf[0:4], uint32(next))
}
