package fs

import (
	"fmt"

	diskoerrors "github.com/juanfgarcia/simple-file-system/errors"
)

// ialloc scans inode slots 0..MaxFileNum-1 for the first free one, marks
// it allocated, and zero-initializes it in memory. Spec.md section 4.1.
func (fsys *FileSystem) ialloc() (int, error) {
	id := fsys.sb.inodeMap.FindClear()
	if id < 0 {
		return -1, diskoerrors.ErrNoSpace.WithMessage("no free inode slots")
	}

	fsys.sb.inodeMap.Set(id, true)
	fsys.inodes[id] = inode{}
	return id, nil
}

// balloc scans data blocks 0..blockNum-1 for a free bit, marks it
// allocated, writes a zero-filled block to guarantee deterministic
// contents, and returns its index. Spec.md section 4.1.
func (fsys *FileSystem) balloc() (int, error) {
	id := -1
	for i := 0; i < int(fsys.sb.blockNum); i++ {
		if !fsys.sb.blockMap.Get(i) {
			id = i
			break
		}
	}
	if id < 0 {
		return -1, diskoerrors.ErrNoSpace.WithMessage("no free data blocks")
	}

	fsys.sb.blockMap.Set(id, true)

	zero := make([]byte, BlockSize)
	if err := fsys.device.WriteBlock(FirstDataBlock+id, zero); err != nil {
		fsys.sb.blockMap.Set(id, false)
		return -1, err
	}
	return id, nil
}

// ifree clears inode slot i's allocation bit and zeroes it in memory. It
// does not free any data blocks the inode referenced; callers (removeFile)
// must do that first. Spec.md section 4.1.
func (fsys *FileSystem) ifree(i int) error {
	if i < 0 || i >= MaxFileNum {
		return diskoerrors.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("inode id %d out of range", i))
	}
	if !fsys.sb.inodeMap.Get(i) {
		return diskoerrors.ErrNotFound.WithMessage("inode already free")
	}

	fsys.sb.inodeMap.Set(i, false)
	fsys.inodes[i] = inode{}
	return nil
}

// bfree clears data block b's allocation bit and zero-scrubs it on disk.
// Spec.md section 4.1.
func (fsys *FileSystem) bfree(b int) error {
	if b < 0 || b >= int(fsys.sb.blockNum) {
		return diskoerrors.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("block id %d out of range", b))
	}
	if !fsys.sb.blockMap.Get(b) {
		return diskoerrors.ErrNotFound.WithMessage("block already free")
	}

	fsys.sb.blockMap.Set(b, false)

	zero := make([]byte, BlockSize)
	return fsys.device.WriteBlock(FirstDataBlock+b, zero)
}
