package fs

import (
	"encoding/binary"

	"github.com/juanfgarcia/simple-file-system/internal/bitmap"
)

const (
	inodeMapBytes = (MaxFileNum + 7) / 8
	blockMapBytes = (MaxBlockNum + 7) / 8
)

// superblock is the single fixed-layout metadata block, spec.md section 3.
// The invariants it carries ("inode bit i set iff slot i holds a live
// file or link"; "block bit b set iff b is referenced by exactly one
// inode's direct_block[]") are maintained by the allocator, not by this
// struct itself.
type superblock struct {
	magic      uint32
	numInodes  uint32
	deviceSize uint32
	blockNum   uint32
	inodeMap   bitmap.Bitmap
	blockMap   bitmap.Bitmap
}

func newSuperblock(deviceSize int64) superblock {
	return superblock{
		magic:      SuperblockMagic,
		numInodes:  0,
		deviceSize: uint32(deviceSize),
		blockNum:   uint32(deviceSize / BlockSize),
		inodeMap:   bitmap.New(MaxFileNum),
		blockMap:   bitmap.New(MaxBlockNum),
	}
}

// marshalSuperblock packs sb into a BlockSize-byte buffer: magic(4),
// numInodes(4), deviceSize(4), blockNum(4), inodeMap(6), blockMap(30),
// zero-padded to 2048 bytes (spec.md section 7).
func marshalSuperblock(sb superblock) []byte {
	buf := make([]byte, BlockSize)
	binary.LittleEndian.PutUint32(buf[0:4], sb.magic)
	binary.LittleEndian.PutUint32(buf[4:8], sb.numInodes)
	binary.LittleEndian.PutUint32(buf[8:12], sb.deviceSize)
	binary.LittleEndian.PutUint32(buf[12:16], sb.blockNum)
	copy(buf[16:16+inodeMapBytes], sb.inodeMap.Bytes())
	copy(buf[16+inodeMapBytes:16+inodeMapBytes+blockMapBytes], sb.blockMap.Bytes())
	return buf
}

func unmarshalSuperblock(buf []byte) superblock {
	var sb superblock
	sb.magic = binary.LittleEndian.Uint32(buf[0:4])
	sb.numInodes = binary.LittleEndian.Uint32(buf[4:8])
	sb.deviceSize = binary.LittleEndian.Uint32(buf[8:12])
	sb.blockNum = binary.LittleEndian.Uint32(buf[12:16])

	inodeRaw := make([]byte, inodeMapBytes)
	copy(inodeRaw, buf[16:16+inodeMapBytes])
	sb.inodeMap = bitmap.FromBytes(inodeRaw, MaxFileNum)

	blockRaw := make([]byte, blockMapBytes)
	copy(blockRaw, buf[16+inodeMapBytes:16+inodeMapBytes+blockMapBytes])
	sb.blockMap = bitmap.FromBytes(blockRaw, MaxBlockNum)

	return sb
}
