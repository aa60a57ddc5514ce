package fs

import (
	"github.com/hashicorp/go-multierror"
	"github.com/noxer/bytewriter"
)

// loadMetadata reads the superblock and both inode-table blocks from disk
// into memory. Spec.md section 4.4 "mount"; kept as an independently
// testable operation per SPEC_FULL.md section 9.
func (fsys *FileSystem) loadMetadata() error {
	sbBuf := make([]byte, BlockSize)
	if err := fsys.device.ReadBlock(SuperblockBlockID, sbBuf); err != nil {
		return err
	}
	fsys.sb = unmarshalSuperblock(sbBuf)

	if err := fsys.loadInodeBlock(InodeBlock1ID, 0); err != nil {
		return err
	}
	return fsys.loadInodeBlock(InodeBlock2ID, InodesPerBlock)
}

func (fsys *FileSystem) loadInodeBlock(blockID, firstInode int) error {
	buf := make([]byte, BlockSize)
	if err := fsys.device.ReadBlock(blockID, buf); err != nil {
		return err
	}
	for i := 0; i < InodesPerBlock; i++ {
		start := i * onDiskInodeSize
		fsys.inodes[firstInode+i] = unmarshalInode(buf[start : start+onDiskInodeSize])
	}
	return nil
}

// flushMetadata writes the superblock and both inode-table blocks from
// memory back to disk. Spec.md section 4.4 "unmount"; every block write is
// attempted even if an earlier one fails, and all failures are reported
// together via go-multierror rather than stopping at the first.
func (fsys *FileSystem) flushMetadata() error {
	var result *multierror.Error

	if err := fsys.device.WriteBlock(SuperblockBlockID, marshalSuperblock(fsys.sb)); err != nil {
		result = multierror.Append(result, err)
	}
	if err := fsys.flushInodeBlock(InodeBlock1ID, 0); err != nil {
		result = multierror.Append(result, err)
	}
	if err := fsys.flushInodeBlock(InodeBlock2ID, InodesPerBlock); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

func (fsys *FileSystem) flushInodeBlock(blockID, firstInode int) error {
	buf := make([]byte, BlockSize)
	writer := bytewriter.New(buf)
	for i := 0; i < InodesPerBlock; i++ {
		if _, err := writer.Write(marshalInode(fsys.inodes[firstInode+i])); err != nil {
			return err
		}
	}
	return fsys.device.WriteBlock(blockID, buf)
}
