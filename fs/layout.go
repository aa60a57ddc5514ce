// Package fs implements the core of the file system: on-disk layout,
// in-memory metadata cache, inode/block allocators, name resolution,
// offset-to-block mapping, and the read/write splicing algorithm described
// in spec.md.
package fs

import "github.com/juanfgarcia/simple-file-system/device"

// Fixed geometry constants, spec.md section 3.
const (
	BlockSize     = device.BlockSize
	MaxFileNum    = 48
	MaxNameLength = 32

	MinDiskSize = 460 * 1024
	MaxDiskSize = 600 * 1024

	DirectBlockCount = 5
	MaxFileSize      = DirectBlockCount * BlockSize
	MaxBlockNum      = MaxFileNum * DirectBlockCount

	SuperblockMagic = 383464
)

// Fixed block indices, spec.md section 3 "On-disk layout".
const (
	SuperblockBlockID = 0
	InodeBlock1ID     = 1
	InodeBlock2ID     = 2
	FirstDataBlock    = 3

	InodesPerBlock = MaxFileNum / 2
)

// Seek origins for LseekFile, spec.md section 6.
const (
	SeekBegin = 0
	SeekCur   = 1
	SeekEnd   = 2
)

// Descriptor states, spec.md section 3 "In-memory file descriptor table".
const (
	stateClosed = 0
	stateOpen   = 1
)

const noBlock = -1
