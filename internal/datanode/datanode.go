// Package datanode encodes and decodes the data blocks that hold a file's
// payload: a link to the next block, a byte count, and the payload itself.
// It is grounded on the source's data_node struct (original_source/lib/dir.h)
// and mirrors the FileNode codec in internal/directory — a block means
// nothing until read through the layout of whoever links to it.
package datanode

import (
	"encoding/binary"

	"github.com/blockpool/memfs/internal/blockstore"
)

// Layout of a data block:
//
//	[0:4) next link (int32, blockstore.NoBlock if absent)
//	[4:8) bytes     (int32, valid byte count in the payload)
//	[8:)  payload
const headerSize = 8

// MaxDataSize returns the number of payload bytes a data block of the
// given size can hold, the Go equivalent of the source's
// `BLOCK_SIZE - sizeof(link) - sizeof(length)`.
func MaxDataSize(blockSize int) int {
	return blockSize - headerSize
}

// Init zero-initializes a freshly allocated data block: empty, unlinked.
func Init(buf []byte) {
	SetNext(buf, blockstore.NoBlock)
	binary.LittleEndian.PutUint32(buf[4:8], 0)
}

// Next returns the link to the following data block.
func Next(buf []byte) blockstore.BlockIndex {
	return blockstore.BlockIndex(int32(binary.LittleEndian.Uint32(buf[0:4])))
}

// SetNext updates the link to the following data block.
func SetNext(buf []byte, next blockstore.BlockIndex) {
	binary.LittleEndian.PutUint32(buf[0:4], uint32(next))
}

// Bytes returns the number of valid payload bytes in this block.
func Bytes(buf []byte) int {
	return int(binary.LittleEndian.Uint32(buf[4:8]))
}

// SetBytes updates the number of valid payload bytes in this block.
func SetBytes(buf []byte, n int) {
	binary.LittleEndian.PutUint32(buf[4:8], uint32(n))
}

// Payload returns the full payload capacity of this block, regardless of
// how many bytes are currently valid.
func Payload(buf []byte) []byte {
	return buf[headerSize:]
}
