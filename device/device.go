// Package device provides the block device adaptor the file system core
// consumes: the external bread/bwrite(block_id, buffer) primitives, over
// any seekable byte stream.
package device

import (
	"fmt"
	"io"

	diskoerrors "github.com/juanfgarcia/simple-file-system/errors"
)

// BlockSize is the fixed block size of this device, in bytes. The file
// system has no notion of variable block sizes (spec.md non-goal).
const BlockSize = 2048

// BlockDevice wraps a seekable byte stream and exposes it as an
// addressable array of fixed-size blocks, mirroring the bread/bwrite
// contract the core is specified against.
type BlockDevice struct {
	stream      io.ReadWriteSeeker
	totalBlocks int
}

// New wraps stream as a BlockDevice with room for totalBlocks blocks.
// stream must already be sized to totalBlocks*BlockSize bytes or more.
func New(stream io.ReadWriteSeeker, totalBlocks int) *BlockDevice {
	return &BlockDevice{stream: stream, totalBlocks: totalBlocks}
}

// TotalBlocks returns the number of addressable blocks on the device.
func (d *BlockDevice) TotalBlocks() int {
	return d.totalBlocks
}

func (d *BlockDevice) checkBlockID(blockID int) error {
	if blockID < 0 || blockID >= d.totalBlocks {
		return diskoerrors.ErrIO.WithMessage(fmt.Sprintf(
			"block %d not in range [0, %d)", blockID, d.totalBlocks))
	}
	return nil
}

// ReadBlock reads the block at blockID into buf, which must be exactly
// BlockSize bytes long. Equivalent to the spec's bread(blk, buf).
func (d *BlockDevice) ReadBlock(blockID int, buf []byte) error {
	if len(buf) != BlockSize {
		return diskoerrors.ErrIO.WithMessage("buffer is not one block long")
	}
	if err := d.checkBlockID(blockID); err != nil {
		return err
	}

	if _, err := d.stream.Seek(int64(blockID)*BlockSize, io.SeekStart); err != nil {
		return diskoerrors.ErrIO.WrapError(err)
	}
	if _, err := io.ReadFull(d.stream, buf); err != nil {
		return diskoerrors.ErrIO.WrapError(err)
	}
	return nil
}

// WriteBlock writes buf, which must be exactly BlockSize bytes long, to
// the block at blockID. Equivalent to the spec's bwrite(blk, buf).
func (d *BlockDevice) WriteBlock(blockID int, buf []byte) error {
	if len(buf) != BlockSize {
		return diskoerrors.ErrIO.WithMessage("buffer is not one block long")
	}
	if err := d.checkBlockID(blockID); err != nil {
		return err
	}

	if _, err := d.stream.Seek(int64(blockID)*BlockSize, io.SeekStart); err != nil {
		return diskoerrors.ErrIO.WrapError(err)
	}
	if _, err := d.stream.Write(buf); err != nil {
		return diskoerrors.ErrIO.WrapError(err)
	}
	return nil
}
