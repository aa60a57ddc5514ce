// Package simtest builds an in-memory, mounted file system for use in
// tests, the same way the teacher driver's testing.LoadDiskImage builds a
// seekable stream from raw bytes for its own test suite — minus the
// compressed-image fixture step, which this format has no use for.
package simtest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"

	"github.com/juanfgarcia/simple-file-system/device"
	"github.com/juanfgarcia/simple-file-system/fs"
)

// NewDevice builds an in-memory block device with room for deviceSize
// bytes of data region plus the fixed superblock/inode-table blocks.
func NewDevice(deviceSize int64) *device.BlockDevice {
	blockNum := int(deviceSize / fs.BlockSize)
	totalBlocks := fs.FirstDataBlock + blockNum
	raw := make([]byte, totalBlocks*fs.BlockSize)
	stream := bytesextra.NewReadWriteSeeker(raw)
	return device.New(stream, totalBlocks)
}

// NewFormatted returns a FileSystem and its underlying device, freshly
// formatted with MkFS but not yet mounted.
func NewFormatted(t *testing.T, deviceSize int64) (*fs.FileSystem, *device.BlockDevice) {
	t.Helper()
	dev := NewDevice(deviceSize)
	sys := fs.New(dev)
	require.Equal(t, 0, sys.MkFS(deviceSize), "MkFS should succeed")
	return sys, dev
}

// NewMounted returns a FileSystem and its underlying device, formatted and
// mounted, ready for file operations. The returned device lets tests poke
// at raw block contents directly, simulating out-of-band disk corruption
// for integrity tests.
func NewMounted(t *testing.T, deviceSize int64) (*fs.FileSystem, *device.BlockDevice) {
	t.Helper()
	sys, dev := NewFormatted(t, deviceSize)
	require.Equal(t, 0, sys.Mount(), "Mount should succeed")
	return sys, dev
}

// DefaultDeviceSize is a device size comfortably inside
// [fs.MinDiskSize, fs.MaxDiskSize], convenient for tests that don't care
// about the exact size.
const DefaultDeviceSize = 480 * 1024
