package fs

import (
	"fmt"

	diskoerrors "github.com/juanfgarcia/simple-file-system/errors"
)

// blockMap translates a byte offset within a file to the data-block id
// that stores it, lazily allocating a block on first touch. Callers keep
// offset inside [0, MaxFileSize): WriteFile clamps n against
// MaxFileSize-pos and ReadFile clamps n against size-pos before calling
// this. An offset that maps past the last direct block is rejected with an
// error rather than over-indexing the direct array.
func (fsys *FileSystem) blockMap(inodeID, offset int) (int, error) {
	if inodeID < 0 || inodeID >= MaxFileNum {
		return -1, diskoerrors.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("inode id %d out of range", inodeID))
	}
	if !fsys.sb.inodeMap.Get(inodeID) {
		return -1, diskoerrors.ErrNotFound
	}

	block := offset / BlockSize
	if block < 0 || block >= DirectBlockCount {
		return -1, diskoerrors.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("offset %d maps outside the %d direct blocks", offset, DirectBlockCount))
	}

	in := &fsys.inodes[inodeID]
	if in.direct[block] == noBlock {
		blockID, err := fsys.balloc()
		if err != nil {
			return -1, err
		}
		in.direct[block] = int32(blockID)
	}
	return int(in.direct[block]), nil
}
